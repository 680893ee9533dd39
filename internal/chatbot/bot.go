// Package chatbot maps free-text Catalan messages onto store queries. There
// is no NLP here: classification is first-match-wins over ordered trigger
// substrings, and entity extraction is synonym and stop-word table work over
// the folded message.
package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"receptari/internal/category"
	"receptari/internal/recipe"
	"receptari/internal/textutil"
)

// ErrEmptyMessage is rejected at the serving boundary, before classification.
var ErrEmptyMessage = errors.New("empty message")

const minTermLen = 2

type Bot struct {
	repo *recipe.Repo
}

type Response struct {
	Text   string      `json:"response"`
	Recipe *RecipeView `json:"recepta,omitempty"`
}

func New(repo *recipe.Repo) *Bot {
	return &Bot{repo: repo}
}

type intent struct {
	triggers []string
	handle   func(b *Bot, ctx context.Context) (Response, error)
}

// intents in match order; classification stops at the first trigger found as
// a substring of the folded message. Anything that falls through is a search.
var intents = []intent{
	{
		triggers: []string{"hola", "bon dia", "bona tarda", "bones", "que tal", "ei!"},
		handle: func(b *Bot, ctx context.Context) (Response, error) {
			return Response{Text: "Hola! Sóc el teu assistent de cuina. Digues-me quin plat o ingredient busques."}, nil
		},
	},
	{
		triggers: []string{"adeu", "fins aviat", "bona nit", "a reveure", "gracies, res mes"},
		handle: func(b *Bot, ctx context.Context) (Response, error) {
			return Response{Text: "Fins aviat! Que vagi de gust."}, nil
		},
	},
	{
		triggers: []string{"categories", "quines cuines", "tipus de cuina", "quins paisos"},
		handle:   (*Bot).listCategories,
	},
	{
		triggers: []string{"sorpren", "a l'atzar", "atzar", "aleatori", "qualsevol cosa", "el que sigui"},
		handle:   (*Bot).randomSuggestion,
	},
}

// Respond classifies one message and produces a reply, possibly with an
// attached recipe. It is state-free: nothing is remembered between calls.
func (b *Bot) Respond(ctx context.Context, message string) (Response, error) {
	folded := textutil.Fold(strings.TrimSpace(message))
	if folded == "" {
		return Response{}, ErrEmptyMessage
	}

	for _, in := range intents {
		for _, trigger := range in.triggers {
			if strings.Contains(folded, trigger) {
				return in.handle(b, ctx)
			}
		}
	}

	return b.search(ctx, folded)
}

func (b *Bot) listCategories(ctx context.Context) (Response, error) {
	var names []string
	for _, key := range category.Keys() {
		names = append(names, category.DisplayName(key))
	}
	return Response{
		Text: "Tinc receptes d'aquestes cuines: " + strings.Join(names, ", ") + ".",
	}, nil
}

func (b *Bot) randomSuggestion(ctx context.Context) (Response, error) {
	rec, err := b.repo.Random(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("random suggestion: %w", err)
	}
	if rec == nil {
		return Response{Text: "Ara mateix no tinc cap recepta carregada."}, nil
	}
	view := NewRecipeView(*rec)
	return Response{
		Text: fmt.Sprintf("Et proposo %s, una recepta de la cuina %s. Bon profit!",
			view.Name, category.DisplayName(rec.Category)),
		Recipe: &view,
	}, nil
}

func (b *Bot) search(ctx context.Context, folded string) (Response, error) {
	term, catKey := Extract(folded)
	if len([]rune(term)) < minTermLen {
		return Response{Text: "No t'he acabat d'entendre. Quin plat o ingredient vols cuinar?"}, nil
	}

	results, err := b.repo.Search(ctx, recipe.Query{
		Term:     term,
		Category: searchCategory(catKey),
		Limit:    recipe.ChatSearchLimit,
	})
	if err != nil {
		return Response{}, fmt.Errorf("chat search: %w", err)
	}
	if len(results) == 0 {
		return Response{Text: notFoundText(term, catKey)}, nil
	}

	// variety over strict best-match: any of the ranked hits may come back
	picked := b.repo.Pick(results)
	view := NewRecipeView(picked)

	var text string
	switch recipe.MatchTier(picked, textutil.Fold(term)) {
	case recipe.TierExact, recipe.TierPrefix:
		text = fmt.Sprintf("He trobat una recepta perfecta per a tu: %s.", view.Name)
	default:
		text = fmt.Sprintf("No tinc exactament això, però %s s'hi assembla força.", view.Name)
	}
	return Response{Text: text, Recipe: &view}, nil
}

func searchCategory(key string) string {
	if key == "" {
		return category.KeyAll
	}
	return key
}

func notFoundText(term, catKey string) string {
	if catKey != "" {
		return fmt.Sprintf("No he trobat cap recepta de %q a la cuina %s. Vols provar una altra cosa?",
			term, category.DisplayName(catKey))
	}
	return fmt.Sprintf("No he trobat cap recepta de %q. Vols provar una altra cosa?", term)
}
