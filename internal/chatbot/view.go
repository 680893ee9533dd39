package chatbot

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"receptari/pkg/models"
)

// RecipeView is the public shape of a recipe attached to a chat reply:
// title-cased display name, public categoria key, and none of the internal
// search helper fields.
type RecipeView struct {
	ID          int    `json:"id"`
	Name        string `json:"nombre"`
	Category    string `json:"categoria"`
	Ingredients string `json:"ingredientes"`
	Steps       string `json:"pasos"`
	ImageURL    string `json:"imagen_url,omitempty"`
	Duration    int    `json:"duracion,omitempty"`
	Servings    int    `json:"raciones,omitempty"`
	Calories    int    `json:"calorias,omitempty"`
	Difficulty  string `json:"dificultad,omitempty"`
}

func NewRecipeView(rec models.Recipe) RecipeView {
	// a cases.Caser is stateful and must not be shared between goroutines;
	// handlers call this concurrently, so build one per call
	titler := cases.Title(language.Catalan)
	return RecipeView{
		ID:          rec.ID,
		Name:        titler.String(rec.Name),
		Category:    rec.Category,
		Ingredients: rec.Ingredients,
		Steps:       rec.Steps,
		ImageURL:    rec.ImageURL,
		Duration:    rec.Duration,
		Servings:    rec.Servings,
		Calories:    rec.Calories,
		Difficulty:  rec.Difficulty,
	}
}
