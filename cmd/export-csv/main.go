package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"strconv"
	"time"

	"receptari/internal/recipe"
	"receptari/pkg/database"
)

// export-csv dumps the recipe table back into the pipe-delimited CSV form,
// the input format of the translation pipeline.
func main() {
	var (
		out       = flag.String("out", "data/recetas_export.csv", "output CSV path")
		delimiter = flag.String("delimiter", "|", "CSV field delimiter")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	repo := recipe.NewRepo(db)
	recipes, err := repo.Search(ctx, recipe.Query{Limit: 1 << 20})
	if err != nil {
		log.Fatalf("read recipes: %v", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = firstRune(*delimiter, '|')

	header := []string{"id", "nombre", "categoria", "ingredientes", "pasos", "imagen_url", "duracion", "raciones", "calorias", "dificultad"}
	if err := w.Write(header); err != nil {
		log.Fatalf("write header: %v", err)
	}

	for _, rec := range recipes {
		row := []string{
			strconv.Itoa(rec.ID),
			rec.Name,
			rec.Category,
			rec.Ingredients,
			rec.Steps,
			rec.ImageURL,
			strconv.Itoa(rec.Duration),
			strconv.Itoa(rec.Servings),
			strconv.Itoa(rec.Calories),
			rec.Difficulty,
		}
		if err := w.Write(row); err != nil {
			log.Fatalf("write row %d: %v", rec.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("flush: %v", err)
	}
	log.Printf("exported %d recipes to %s", len(recipes), *out)
}

func firstRune(s string, def rune) rune {
	for _, r := range s {
		return r
	}
	return def
}
