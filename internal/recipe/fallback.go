package recipe

import (
	"context"

	"receptari/internal/textutil"
	"receptari/pkg/models"
)

// FallbackRecipes is the built-in dataset installed when the CSV load fails,
// so the API and the chatbot stay queryable instead of serving an empty table.
func FallbackRecipes() []models.Recipe {
	recipes := []models.Recipe{
		{
			ID:          1001,
			Name:        "Escalivada al forn (MOSTRA)",
			Category:    "espanya",
			Ingredients: "Albergínia\nPebrot vermell\nCeba\nOli d'oliva",
			Steps:       "Coure les verdures al forn, pelar-les i amanir-les amb oli i sal.",
			ImageURL:    "https://placehold.co/400x300/a3e635/000?text=MOSTRA",
		},
		{
			ID:          1002,
			Name:        "Tacos al pastor (MOSTRA)",
			Category:    "mexic",
			Ingredients: "Tortilla de blat de moro\nLlom de porc\nPinya\nCoriandre",
			Steps:       "Marinar la carn, coure-la i servir-la sobre tortillas amb pinya.",
			ImageURL:    "https://placehold.co/400x300/fca5a5/000?text=MOSTRA",
		},
		{
			ID:          1003,
			Name:        "Pastel de choclo (MOSTRA)",
			Category:    "chile",
			Ingredients: "Blat de moro\nCarn picada\nCeba\nOu dur",
			Steps:       "Preparar el sofregit, cobrir amb la crema de blat de moro i gratinar.",
			ImageURL:    "https://placehold.co/400x300/fde047/000?text=MOSTRA",
		},
	}
	for i := range recipes {
		recipes[i].NameNormalized = textutil.Fold(recipes[i].Name)
	}
	return recipes
}

// InstallFallback swaps the fallback dataset into the store.
func (r *Repo) InstallFallback(ctx context.Context) error {
	return r.ReplaceAll(ctx, FallbackRecipes())
}

// UsingFallback reports whether the store currently serves the built-in
// sample data.
func (r *Repo) UsingFallback(ctx context.Context) (bool, error) {
	rows, err := r.queryRecipes(ctx, selectColumns+` WHERE nombre LIKE '%(MOSTRA)' LIMIT 1`)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}
