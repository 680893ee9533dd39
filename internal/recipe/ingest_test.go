package recipe

import (
	"errors"
	"strings"
	"testing"
)

const sampleCSV = `id|nombre|categoria|ingredientes|pasos|imagen_url|duracion
1|Receta de Tacos al pastor|Recetas de México|Tortilla,Cerdo,Piña||  |45
2|Paella Valenciana|cocina española|Arroz,Pollo,Judía verde|Sofreír y cocer el arroz.|https://example.test/paella.jpg|60
abc|Gazpacho|cocina española|Tomate|||30
-3|Salmorejo|cocina española|Tomate,Pan|||20
3|Ceviche cl%C3%A1sico|cocina peruana|Corvina,Lima||   |x
`

func TestReadCSV(t *testing.T) {
	recipes, err := readCSV(strings.NewReader(sampleCSV), LoaderConfig{Delimiter: '|'})
	if err != nil {
		t.Fatalf("readCSV: %v", err)
	}
	if len(recipes) != 3 {
		t.Fatalf("got %d recipes, want 3 (bad ids dropped)", len(recipes))
	}

	tacos := recipes[0]
	if tacos.Name != "Tacos al pastor" {
		t.Errorf(`boilerplate prefix kept: %q`, tacos.Name)
	}
	if tacos.Category != "mexic" {
		t.Errorf("category = %q, want mexic", tacos.Category)
	}
	if tacos.CategoryRaw != "México" {
		t.Errorf("raw category = %q, want México", tacos.CategoryRaw)
	}
	if tacos.Ingredients != "Tortilla\nCerdo\nPiña" {
		t.Errorf("ingredients = %q", tacos.Ingredients)
	}
	if tacos.Steps != defaultSteps {
		t.Errorf("missing steps should default, got %q", tacos.Steps)
	}
	if !strings.HasPrefix(tacos.ImageURL, "https://placehold.co/") {
		t.Errorf("missing image should be synthesized, got %q", tacos.ImageURL)
	}
	if tacos.Duration != 45 {
		t.Errorf("duration = %d, want 45", tacos.Duration)
	}

	paella := recipes[1]
	if paella.NameNormalized != "paella valenciana" {
		t.Errorf("name_normalized = %q", paella.NameNormalized)
	}
	if paella.ImageURL != "https://example.test/paella.jpg" {
		t.Errorf("provided image lost: %q", paella.ImageURL)
	}

	ceviche := recipes[2]
	if ceviche.Name != "Ceviche clásico" {
		t.Errorf("url-encoded name not repaired: %q", ceviche.Name)
	}
	if ceviche.Duration != 0 {
		t.Errorf("invalid numeric should coerce to 0, got %d", ceviche.Duration)
	}
}

func TestReadCSVSchemaMismatch(t *testing.T) {
	_, err := readCSV(strings.NewReader("id|nombre|pasos\n1|Paella|Coure\n"), LoaderConfig{Delimiter: '|'})
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("want ErrSchemaMismatch, got %v", err)
	}
}

func TestReadCSVCustomColumns(t *testing.T) {
	csv := "ref|title|cuisine|items\n7|Moussaka|cocina griega|Albergínia,Feta\n"
	cols := DefaultColumnMapping()
	cols.ID, cols.Name, cols.Category, cols.Ingredients = "ref", "title", "cuisine", "items"

	recipes, err := readCSV(strings.NewReader(csv), LoaderConfig{Delimiter: '|', Columns: cols})
	if err != nil {
		t.Fatalf("readCSV: %v", err)
	}
	if len(recipes) != 1 || recipes[0].ID != 7 || recipes[0].Category != "grecia" {
		t.Fatalf("unexpected result: %+v", recipes)
	}
}
