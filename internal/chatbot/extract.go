package chatbot

import (
	"strings"
	"unicode"

	"receptari/internal/category"
)

// synonyms is the category alias table, longest alias first.
var synonyms = category.Synonyms()

// stopWords are intent verbs, articles and filler dropped from a search
// message once the category span is gone. All entries are folded.
var stopWords = map[string]bool{
	"vull": true, "voldria": true, "vol": true, "volia": true,
	"m": true, "d": true, "l": true, "s": true, "n": true, "t": true,
	"agradaria": true, "tinc": true, "tens": true, "teniu": true,
	"ganes": true, "busca": true, "buscar": true, "busco": true,
	"cerca": true, "cercar": true, "troba": true, "trobar": true,
	"fes": true, "fer": true, "cuinar": true, "cuina": true,
	"recepta": true, "receptes": true, "plat": true, "plats": true,
	"menjar": true, "alguna": true, "algun": true, "cosa": true,
	"una": true, "un": true, "el": true, "la": true, "els": true, "les": true,
	"de": true, "del": true, "dels": true, "que": true, "em": true,
	"per": true, "si": true, "us": true, "plau": true, "avui": true,
	"sobre": true, "com": true, "es": true, "fa": true,
}

// Extract pulls a category key and a cleaned search term out of an
// already-folded message. The category synonym is matched whole-word,
// longest alias first, and its span is removed before stop-word stripping so
// "xilena" never leaves residue in the term.
func Extract(folded string) (term, catKey string) {
	msg := " " + strings.Join(strings.FieldsFunc(folded, isSeparator), " ") + " "

	for _, syn := range synonyms {
		needle := " " + syn.Alias + " "
		if strings.Contains(msg, needle) {
			catKey = syn.Key
			msg = strings.Replace(msg, needle, " ", 1)
			break
		}
	}

	var kept []string
	for _, word := range strings.Fields(msg) {
		if !stopWords[word] {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " "), catKey
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
