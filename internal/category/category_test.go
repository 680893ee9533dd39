package category

import (
	"strings"
	"testing"
)

func TestNormalizeTotal(t *testing.T) {
	// whatever goes in, a member of the set comes out
	inputs := []string{
		"", "   ", "Recetas de México", "cocina chilena", "ESPAÑOLA",
		"qwertyuiop", "comida internacional", "12345", "Cocina japonesa tradicional",
	}
	for _, in := range inputs {
		key := Normalize(in)
		if !Valid(key) {
			t.Errorf("Normalize(%q) = %q, not in the category set", in, key)
		}
	}
}

func TestNormalizeMapping(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Recetas de México", "mexic"},
		{"cocina mejicana", "mexic"},
		{"Cocina Chilena", "chile"},
		{"recetas de España", "espanya"},
		{"Cocina peruana", "peru"},
		{"recetas italianas", "italia"},
		{"cocina francesa", "franca"},
		{"platos griegos", "grecia"},
		{"cocina marroquí", "marroc"},
		{"comida china", "xina"},
		{"recetas japonesas", "japo"},
		{"cocina india", "india"},
		{"recetas internacionales", KeyOther},
		{"", KeyOther},
		{"sin clasificar", KeyOther},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePrecedence(t *testing.T) {
	// "chilaquiles" contains "chile" but is a Mexican dish; the longer keyword
	// must win because it is listed first.
	if got := Normalize("Chilaquiles verdes"); got != "mexic" {
		t.Errorf("Normalize(chilaquiles) = %q, want mexic", got)
	}
}

func TestKeysAndDisplayNames(t *testing.T) {
	ks := Keys()
	if len(ks) == 0 {
		t.Fatal("no category keys")
	}
	if ks[len(ks)-1] != KeyOther {
		t.Errorf("last key = %q, want %q", ks[len(ks)-1], KeyOther)
	}
	for _, k := range ks {
		if !Valid(k) {
			t.Errorf("key %q not valid", k)
		}
		if DisplayName(k) == "" {
			t.Errorf("key %q has no display name", k)
		}
	}
	if Valid("atlantis") {
		t.Error("atlantis should not be a valid category")
	}
}

func TestSynonymsLongestFirst(t *testing.T) {
	syns := Synonyms()
	for i := 1; i < len(syns); i++ {
		if len(syns[i-1].Alias) < len(syns[i].Alias) {
			t.Fatalf("synonyms not sorted longest-first: %q before %q",
				syns[i-1].Alias, syns[i].Alias)
		}
	}
	found := false
	for _, s := range syns {
		if s.Alias == "xile" && s.Key == "chile" {
			found = true
		}
		if s.Alias != strings.ToLower(s.Alias) {
			t.Errorf("alias %q not folded", s.Alias)
		}
	}
	if !found {
		t.Error(`missing "xile" -> chile synonym`)
	}
}
