package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"receptari/internal/category"
	"receptari/internal/recipe"
	"receptari/internal/textutil"
	"receptari/pkg/database"
	"receptari/pkg/models"
)

// generate-db seeds the store with procedurally generated recipes, a stand-in
// dataset for demos and local frontend work.
func main() {
	var (
		perCategory = flag.Int("per-category", 40, "recipes generated per category")
		seed        = flag.Int64("seed", 0, "rng seed (0 = time-based)")
		force       = flag.Bool("force", false, "replace existing data even when the table is already populated")
	)
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	repo := recipe.NewRepo(db)
	target := *perCategory * len(category.Keys())

	count, err := repo.Count(ctx)
	if err != nil {
		log.Fatalf("count: %v", err)
	}
	if count >= target && !*force {
		log.Printf("database already holds %d recipes, nothing to do (use -force to regenerate)", count)
		return
	}

	recipes := generate(rng, *perCategory)
	rng.Shuffle(len(recipes), func(i, j int) { recipes[i], recipes[j] = recipes[j], recipes[i] })
	for i := range recipes {
		recipes[i].ID = i + 1
	}

	if err := repo.ReplaceAll(ctx, recipes); err != nil {
		log.Fatalf("insert generated recipes: %v", err)
	}
	log.Printf("generated %d recipes (%d per category, seed %d)", len(recipes), *perCategory, *seed)
}

// components holds the name and ingredient building blocks of one cuisine.
type components struct {
	dishes []string
	mains  []string
	preps  []string
	extra  []string
}

var commonIngredients = []string{
	"Oli d'oliva verge extra", "Sal", "Pebre negre mòlt", "Ceba", "All", "Julivert fresc",
}

var cuisines = map[string]components{
	"espanya": {
		dishes: []string{"Paella de", "Truita de", "Crema de", "Estofat de", "Arròs amb"},
		mains:  []string{"marisc", "pollastre", "verdures", "bacallà", "conill"},
		preps:  []string{"a la llauna", "al forn", "de l'àvia", "amb sofregit"},
		extra:  []string{"Arròs bomba", "Pebrot vermell", "Tomàquet madur", "Safrà"},
	},
	"mexic": {
		dishes: []string{"Tacos de", "Enchiladas de", "Quesadillas de", "Mole amb", "Burrito de"},
		mains:  []string{"pollastre", "vedella", "formatge", "gambes", "carn al pastor"},
		preps:  []string{"amb guacamole", "picants", "amb pico de gallo", "a la brasa"},
		extra:  []string{"Tortilla de blat de moro", "Xile jalapeño", "Alvocat", "Coriandre"},
	},
	"chile": {
		dishes: []string{"Pastel de", "Empanadas de", "Cazuela de", "Sopaipillas amb", "Charquicán de"},
		mains:  []string{"choclo", "pino", "vedella", "pebre", "verdures"},
		preps:  []string{"a la xilena", "gratinat", "tradicional", "de camp"},
		extra:  []string{"Blat de moro", "Comí", "Carbassa", "Ou dur"},
	},
	"argentina": {
		dishes: []string{"Asado de", "Empanadas de", "Milanesa de", "Locro amb", "Choripán de"},
		mains:  []string{"tira", "carn", "pollastre", "carbassa", "xoriço criollo"},
		preps:  []string{"a la parrilla", "amb chimichurri", "a la napolitana", "casolà"},
		extra:  []string{"Chimichurri", "Carn de vedella", "Pa de xapata", "Orenga"},
	},
	"peru": {
		dishes: []string{"Ceviche de", "Lomo saltado amb", "Ají de", "Causa de", "Arròs chaufa de"},
		mains:  []string{"corbina", "vedella", "gallina", "tonyina", "gambes"},
		preps:  []string{"amb llet de tigre", "criollo", "amb ají groc", "al wok"},
		extra:  []string{"Llima", "Ají groc", "Moniato", "Blat de moro torrat"},
	},
	"italia": {
		dishes: []string{"Pasta amb", "Risotto de", "Pizza de", "Lasanya de", "Gnocchi amb"},
		mains:  []string{"bolets", "pesto", "quatre formatges", "carn", "espinacs"},
		preps:  []string{"al dente", "a la carbonara", "al forn de llenya", "amb parmesà"},
		extra:  []string{"Parmesà", "Alfàbrega fresca", "Tomàquet San Marzano", "Mozzarella"},
	},
	"franca": {
		dishes: []string{"Quiche de", "Ratatouille amb", "Crep de", "Gratin de", "Coq au vin amb"},
		mains:  []string{"formatge", "verdures", "xampinyons", "patata", "vi negre"},
		preps:  []string{"a la provençal", "gratinat", "amb fines herbes", "de bistrot"},
		extra:  []string{"Mantega", "Nata fresca", "Farigola", "Formatge gruyère"},
	},
	"grecia": {
		dishes: []string{"Moussaka de", "Amanida grega amb", "Gyros de", "Tzatziki amb", "Spanakopita de"},
		mains:  []string{"albergínia", "feta", "xai", "iogurt", "espinacs"},
		preps:  []string{"al forn", "amb olives", "amb pa de pita", "tradicional"},
		extra:  []string{"Formatge feta", "Olives kalamata", "Iogurt grec", "Orenga"},
	},
	"marroc": {
		dishes: []string{"Tagín de", "Cuscús amb", "Harira de", "Pastela de", "Brochetes de"},
		mains:  []string{"xai", "set verdures", "llenties", "pollastre", "kefta"},
		preps:  []string{"amb llimona confitada", "especiat", "amb fruits secs", "a l'estil de Fez"},
		extra:  []string{"Ras el hanout", "Sèmola", "Canyella", "Ametlles"},
	},
	"xina": {
		dishes: []string{"Arròs saltat amb", "Fideus amb", "Dim sum de", "Sopa de", "Pollastre amb"},
		mains:  []string{"ou", "verdures", "gamba", "wonton", "ametlles"},
		preps:  []string{"al wok", "amb salsa de soja", "al vapor", "agredolç"},
		extra:  []string{"Salsa de soja", "Gingebre", "Oli de sèsam", "Ceba tendra"},
	},
	"japo": {
		dishes: []string{"Sushi de", "Ramen de", "Tempura de", "Donburi de", "Yakitori de"},
		mains:  []string{"salmó", "miso", "verdures", "pollastre", "tonyina"},
		preps:  []string{"amb alga nori", "amb brou dashi", "cruixent", "a la graella"},
		extra:  []string{"Arròs japonès", "Alga nori", "Salsa teriyaki", "Wasabi"},
	},
	"india": {
		dishes: []string{"Curri de", "Biryani de", "Dal de", "Tandoori de", "Samoses de"},
		mains:  []string{"pollastre", "xai", "llenties", "verdures", "paneer"},
		preps:  []string{"amb garam masala", "al tandoor", "amb arròs basmati", "especiat"},
		extra:  []string{"Garam masala", "Cúrcuma", "Iogurt", "Arròs basmati"},
	},
	category.KeyOther: {
		dishes: []string{"Amanida de", "Sopa de", "Guisat de", "Entrepà de", "Pastís de"},
		mains:  []string{"temporada", "verdures", "llegums", "formatge", "xocolata"},
		preps:  []string{"de la casa", "casolà", "ràpid", "per a convidats"},
		extra:  []string{"Verdures de temporada", "Llegums cuits", "Formatge curat", "Pa"},
	},
}

func generate(rng *rand.Rand, perCategory int) []models.Recipe {
	var out []models.Recipe
	for _, key := range category.Keys() {
		comp := cuisines[key]
		for i := 0; i < perCategory; i++ {
			name := fmt.Sprintf("%s %s %s",
				comp.dishes[rng.Intn(len(comp.dishes))],
				comp.mains[rng.Intn(len(comp.mains))],
				comp.preps[rng.Intn(len(comp.preps))],
			)
			out = append(out, models.Recipe{
				Name:           name,
				NameNormalized: textutil.Fold(name),
				Category:       key,
				CategoryRaw:    key,
				Ingredients:    ingredientsFor(rng, comp),
				Steps:          stepsFor(name),
				ImageURL:       "https://placehold.co/400x300/cccccc/000?text=" + url.QueryEscape(name),
				Duration:       15 + rng.Intn(76),
				Servings:       2 + rng.Intn(5),
				Calories:       250 + rng.Intn(500),
				Difficulty:     []string{"fàcil", "mitjana", "difícil"}[rng.Intn(3)],
			})
		}
	}
	return out
}

func ingredientsFor(rng *rand.Rand, comp components) string {
	picked := append([]string(nil), comp.extra...)
	rng.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
	picked = append(picked, commonIngredients[:3]...)
	return strings.Join(picked, "\n")
}

func stepsFor(name string) string {
	return fmt.Sprintf("1. Preparar els ingredients de %s.\n"+
		"2. Sofregir la base amb oli d'oliva.\n"+
		"3. Afegir l'ingredient principal i coure a foc mitjà.\n"+
		"4. Rectificar de sal i pebre.\n"+
		"5. Servir calent.", name)
}
