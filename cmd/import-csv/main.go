package main

import (
	"context"
	"flag"
	"log"
	"time"

	"receptari/internal/recipe"
	"receptari/pkg/database"
)

func main() {
	var (
		csvIn     = flag.String("csv", "data/recetas.csv", "input CSV path")
		delimiter = flag.String("delimiter", "|", "CSV field delimiter")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	repo := recipe.NewRepo(db)
	n, err := repo.Reload(ctx, recipe.LoaderConfig{
		Path:      *csvIn,
		Delimiter: firstRune(*delimiter, '|'),
		Columns:   recipe.DefaultColumnMapping(),
	})
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	log.Printf("imported %d recipes from %s", n, *csvIn)
}

func firstRune(s string, def rune) rune {
	for _, r := range s {
		return r
	}
	return def
}
