package models

// Recipe is one row of the recipe table. Public JSON field names follow the
// frontend contract (Spanish), internal helper fields stay hidden.
type Recipe struct {
	ID             int    `json:"id"`
	Name           string `json:"nombre"`
	NameNormalized string `json:"-"` // folded form of Name, computed once at ingest
	Category       string `json:"categoria"`
	CategoryRaw    string `json:"-"` // original source label, kept for auditing
	Ingredients    string `json:"ingredientes"`
	Steps          string `json:"pasos"`
	ImageURL       string `json:"imagen_url,omitempty"`
	Duration       int    `json:"duracion,omitempty"`
	Servings       int    `json:"raciones,omitempty"`
	Calories       int    `json:"calorias,omitempty"`
	Difficulty     string `json:"dificultad,omitempty"`
}
