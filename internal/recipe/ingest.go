package recipe

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"receptari/internal/category"
	"receptari/internal/textutil"
	"receptari/pkg/models"
)

// ErrSchemaMismatch means the CSV header is missing required columns. The
// whole load attempt fails; individual bad rows are just dropped.
var ErrSchemaMismatch = errors.New("csv schema mismatch")

const defaultSteps = "Passos no especificats a la font."

// ColumnMapping names the external CSV columns for each internal field.
// ID, Name, Category and Ingredients are required; the rest are optional and
// get defaults when their column is absent.
type ColumnMapping struct {
	ID          string
	Name        string
	Category    string
	Ingredients string
	Steps       string
	ImageURL    string
	Duration    string
	Servings    string
	Calories    string
	Difficulty  string
}

// DefaultColumnMapping matches the recetas.csv export format.
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{
		ID:          "id",
		Name:        "nombre",
		Category:    "categoria",
		Ingredients: "ingredientes",
		Steps:       "pasos",
		ImageURL:    "imagen_url",
		Duration:    "duracion",
		Servings:    "raciones",
		Calories:    "calorias",
		Difficulty:  "dificultad",
	}
}

type LoaderConfig struct {
	Path      string
	Delimiter rune // '|' for the source dataset
	Columns   ColumnMapping
}

// LoadCSV reads, repairs and normalizes the source file into recipe records.
// It does not touch the store; pair it with Repo.ReplaceAll.
func LoadCSV(cfg LoaderConfig) ([]models.Recipe, error) {
	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return readCSV(f, cfg)
}

func readCSV(src io.Reader, cfg LoaderConfig) ([]models.Recipe, error) {
	if cfg.Delimiter == 0 {
		cfg.Delimiter = '|'
	}
	cols := cfg.Columns
	if cols == (ColumnMapping{}) {
		cols = DefaultColumnMapping()
	}

	r := csv.NewReader(src)
	r.Comma = cfg.Delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := readHeader(r)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for _, required := range []string{cols.ID, cols.Name, cols.Category, cols.Ingredients} {
		if _, ok := header[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrSchemaMismatch, required)
		}
	}

	var out []models.Recipe
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(row) == 0 {
			continue
		}

		id, err := strconv.Atoi(valueAt(header, row, cols.ID))
		if err != nil || id <= 0 {
			continue // identity must be a positive integer
		}

		name := cleanName(textutil.Repair(valueAt(header, row, cols.Name)))
		if name == "" {
			continue
		}

		rawCategory := textutil.Repair(valueAt(header, row, cols.Category))
		rawCategory = afterMarker(rawCategory, "Recetas de ")

		ingredients := textutil.Repair(valueAt(header, row, cols.Ingredients))
		ingredients = strings.ReplaceAll(ingredients, ",", "\n")

		steps := textutil.Repair(valueAt(header, row, cols.Steps))
		if steps == "" {
			steps = defaultSteps
		}

		imageURL := strings.TrimSpace(valueAt(header, row, cols.ImageURL))
		if imageURL == "" {
			imageURL = placeholderImage(name)
		}

		out = append(out, models.Recipe{
			ID:             id,
			Name:           name,
			NameNormalized: textutil.Fold(name),
			Category:       category.Normalize(rawCategory),
			CategoryRaw:    rawCategory,
			Ingredients:    ingredients,
			Steps:          steps,
			ImageURL:       imageURL,
			Duration:       atoiOrZero(valueAt(header, row, cols.Duration)),
			Servings:       atoiOrZero(valueAt(header, row, cols.Servings)),
			Calories:       atoiOrZero(valueAt(header, row, cols.Calories)),
			Difficulty:     textutil.Repair(valueAt(header, row, cols.Difficulty)),
		})
	}
	return out, nil
}

// Reload replaces the store content from the CSV. On any failure the prior
// record set is left untouched.
func (r *Repo) Reload(ctx context.Context, cfg LoaderConfig) (int, error) {
	recipes, err := LoadCSV(cfg)
	if err != nil {
		return 0, err
	}
	if len(recipes) == 0 {
		return 0, fmt.Errorf("%w: no usable rows in %s", ErrSchemaMismatch, cfg.Path)
	}
	if err := r.ReplaceAll(ctx, recipes); err != nil {
		return 0, err
	}
	return len(recipes), nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// cleanName drops the boilerplate "Receta de " prefix present in scraped
// names.
func cleanName(name string) string {
	return strings.TrimSpace(afterMarker(name, "Receta de "))
}

// afterMarker returns the text after the last occurrence of marker, or the
// whole string when the marker is absent.
func afterMarker(s, marker string) string {
	if idx := strings.LastIndex(s, marker); idx >= 0 {
		return s[idx+len(marker):]
	}
	return s
}

func placeholderImage(name string) string {
	return "https://placehold.co/400x300/cccccc/000?text=" + url.QueryEscape(name)
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
