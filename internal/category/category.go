// Package category holds the closed cuisine taxonomy: canonical keys, display
// names, and the keyword/synonym tables that map noisy source labels and chat
// messages onto those keys. Everything here is static configuration, built
// once and never mutated.
package category

import (
	"sort"
	"strings"

	"receptari/internal/textutil"
)

// KeyOther is the catch-all sentinel every unrecognized label maps to.
const KeyOther = "altres"

// KeyAll is the query sentinel meaning "no category filter".
const KeyAll = "all"

// keys in display order. KeyOther stays last.
var keys = []string{
	"espanya",
	"mexic",
	"chile",
	"argentina",
	"peru",
	"italia",
	"franca",
	"grecia",
	"marroc",
	"xina",
	"japo",
	"india",
	KeyOther,
}

var displayNames = map[string]string{
	"espanya":   "Espanya",
	"mexic":     "Mèxic",
	"chile":     "Xile",
	"argentina": "Argentina",
	"peru":      "Perú",
	"italia":    "Itàlia",
	"franca":    "França",
	"grecia":    "Grècia",
	"marroc":    "Marroc",
	"xina":      "Xina",
	"japo":      "Japó",
	"india":     "Índia",
	KeyOther:    "Altres cuines",
}

// keywordRule maps a folded substring of a raw source label to a key.
type keywordRule struct {
	keyword string
	key     string
}

// keywordRules is checked in order and the first substring hit wins, so
// ordering is load-bearing: a more specific keyword must come before any
// shorter keyword it contains. "chilaquil" has to run before "chile" or every
// chilaquiles label lands in Xile, and the "peru ..." dish prefixes would be
// shadowed the other way around. Keep new rules longest-first.
var keywordRules = []keywordRule{
	{"chilaquil", "mexic"}, // Mexican dish, contains "chile"
	{"espanol", "espanya"},
	{"espana", "espanya"},
	{"spanish", "espanya"},
	{"mexic", "mexic"},
	{"mejic", "mexic"},
	{"chile", "chile"},
	{"argentin", "argentina"},
	{"peru", "peru"},
	{"italia", "italia"},
	{"frances", "franca"},
	{"francia", "franca"},
	{"grieg", "grecia"},
	{"grecia", "grecia"},
	{"marroqu", "marroc"},
	{"marruec", "marroc"},
	{"china", "xina"},
	{"chino", "xina"},
	{"xines", "xina"},
	{"japon", "japo"},
	{"hindu", "india"},
	{"india", "india"},
	{"internacional", KeyOther},
	{"otras cocinas", KeyOther},
	{"otros", KeyOther},
}

// Synonym is a folded alias a user may type for a category.
type Synonym struct {
	Alias string
	Key   string
}

// extraAliases extends each key beyond its own name and display name with the
// Catalan demonyms and spellings seen in chat logs.
var extraAliases = map[string][]string{
	"espanya":   {"espanyola", "espanol", "espanola"},
	"mexic":     {"mexico", "mexicana", "mexica"},
	"chile":     {"xile", "xilena"},
	"argentina": {"argentines"},
	"peru":      {"peruana"},
	"italia":    {"italiana"},
	"franca":    {"francesa"},
	"grecia":    {"grega"},
	"marroc":    {"marroquina", "marroqui"},
	"xina":      {"xinesa"},
	"japo":      {"japonesa", "japonesos"},
	"india":     {"hindu"},
	KeyOther:    {"internacional", "internacionals"},
}

// Synonyms returns every alias a chat message may use for a category, folded
// and sorted longest alias first so a short alias never shadows a longer one
// that contains it ("xile" vs "xilena").
func Synonyms() []Synonym {
	var out []Synonym
	for _, key := range keys {
		seen := map[string]bool{}
		add := func(alias string) {
			alias = textutil.Fold(alias)
			if alias == "" || seen[alias] {
				return
			}
			seen[alias] = true
			out = append(out, Synonym{Alias: alias, Key: key})
		}
		add(key)
		add(displayNames[key])
		for _, alias := range extraAliases[key] {
			add(alias)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Alias) != len(out[j].Alias) {
			return len(out[i].Alias) > len(out[j].Alias)
		}
		return out[i].Alias < out[j].Alias
	})
	return out
}

// Keys returns the canonical keys in display order.
func Keys() []string {
	return append([]string(nil), keys...)
}

// Valid reports whether key belongs to the taxonomy.
func Valid(key string) bool {
	_, ok := displayNames[key]
	return ok
}

// DisplayName returns the human label for a key, falling back to the key
// itself for anything outside the set.
func DisplayName(key string) string {
	if name, ok := displayNames[key]; ok {
		return name
	}
	return key
}

// Normalize maps a raw source label to a canonical key. It is total: every
// input, including empty or garbage, produces a member of the set, with
// KeyOther as the catch-all.
func Normalize(raw string) string {
	folded := textutil.Fold(strings.TrimSpace(raw))
	if folded == "" {
		return KeyOther
	}
	for _, rule := range keywordRules {
		if strings.Contains(folded, rule.keyword) {
			return rule.key
		}
	}
	return KeyOther
}
