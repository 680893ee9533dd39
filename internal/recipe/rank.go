package recipe

import (
	"sort"
	"strings"

	"receptari/internal/textutil"
	"receptari/pkg/models"
)

// Relevance tiers for a term match. Lower is better.
const (
	TierExact     = 0 // normalized name equals the term
	TierPrefix    = 1 // normalized name starts with the term
	TierSubstring = 2 // term appears anywhere in name, ingredients or steps
	tierNoMatch   = -1
)

// MatchTier classifies how well a recipe matches an already-folded term.
// The name column is folded at ingest; ingredients and steps are folded here
// because they are stored raw.
func MatchTier(rec models.Recipe, folded string) int {
	if folded == "" {
		return tierNoMatch
	}
	switch {
	case rec.NameNormalized == folded:
		return TierExact
	case strings.HasPrefix(rec.NameNormalized, folded):
		return TierPrefix
	case strings.Contains(rec.NameNormalized, folded),
		strings.Contains(textutil.Fold(rec.Ingredients), folded),
		strings.Contains(textutil.Fold(rec.Steps), folded):
		return TierSubstring
	}
	return tierNoMatch
}

// Rank filters recipes to those matching the folded term and orders them by
// tier, then name ascending within a tier.
func Rank(recipes []models.Recipe, folded string) []models.Recipe {
	type scored struct {
		rec  models.Recipe
		tier int
	}

	matched := make([]scored, 0, len(recipes))
	for _, rec := range recipes {
		if tier := MatchTier(rec, folded); tier != tierNoMatch {
			matched = append(matched, scored{rec: rec, tier: tier})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].tier != matched[j].tier {
			return matched[i].tier < matched[j].tier
		}
		return matched[i].rec.Name < matched[j].rec.Name
	})

	out := make([]models.Recipe, len(matched))
	for i, s := range matched {
		out[i] = s.rec
	}
	return out
}
