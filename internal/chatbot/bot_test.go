package chatbot

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receptari/internal/recipe"
	"receptari/internal/textutil"
	"receptari/pkg/database"
	"receptari/pkg/models"
)

func newTestBot(t *testing.T) *Bot {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	repo := recipe.NewRepoWithRand(db, rand.New(rand.NewSource(7)))
	seed := []models.Recipe{
		{ID: 1, Name: "pollastre amb prunes", Category: "chile", Ingredients: "Pollastre\nPrunes", Steps: "Coure a foc lent."},
		{ID: 2, Name: "Pollastre al curri", Category: "india", Ingredients: "Pollastre\nCurri", Steps: "Coure amb les espècies."},
		{ID: 3, Name: "Paella Valenciana", Category: "espanya", Ingredients: "Arròs\nPollastre", Steps: "Sofregir i coure."},
	}
	for i := range seed {
		seed[i].NameNormalized = textutil.Fold(seed[i].Name)
	}
	require.NoError(t, repo.ReplaceAll(context.Background(), seed))
	return New(repo)
}

func TestGreeting(t *testing.T) {
	bot := newTestBot(t)
	resp, err := bot.Respond(context.Background(), "Hola")
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "assistent de cuina")
	assert.Nil(t, resp.Recipe)
}

func TestFarewell(t *testing.T) {
	bot := newTestBot(t)
	resp, err := bot.Respond(context.Background(), "adéu!")
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "Fins aviat")
	assert.Nil(t, resp.Recipe)
}

func TestListCategories(t *testing.T) {
	bot := newTestBot(t)
	resp, err := bot.Respond(context.Background(), "quines categories tens?")
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "Xile")
	assert.Contains(t, resp.Text, "Altres cuines")
	assert.Nil(t, resp.Recipe)
}

func TestRandomSuggestion(t *testing.T) {
	bot := newTestBot(t)
	resp, err := bot.Respond(context.Background(), "sorprèn-me")
	require.NoError(t, err)
	require.NotNil(t, resp.Recipe)
	assert.Contains(t, resp.Text, resp.Recipe.Name)
}

func TestSearchWithCategoryAndTerm(t *testing.T) {
	bot := newTestBot(t)
	resp, err := bot.Respond(context.Background(), "vull una recepta de Xile de pollastre")
	require.NoError(t, err)
	require.NotNil(t, resp.Recipe)
	assert.Equal(t, "chile", resp.Recipe.Category)
	assert.Contains(t, strings.ToLower(resp.Recipe.Name), "pollastre")
}

func TestSearchTitleCasesAttachedRecipe(t *testing.T) {
	bot := newTestBot(t)
	resp, err := bot.Respond(context.Background(), "vull una recepta de Xile de pollastre")
	require.NoError(t, err)
	require.NotNil(t, resp.Recipe)
	// stored lowercase, presented title-cased
	assert.Equal(t, "Pollastre Amb Prunes", resp.Recipe.Name)
}

func TestSearchNotFound(t *testing.T) {
	bot := newTestBot(t)
	resp, err := bot.Respond(context.Background(), "vull una recepta de llamàntol")
	require.NoError(t, err)
	assert.Nil(t, resp.Recipe)
	assert.Contains(t, resp.Text, "llamantol") // folded term echoed back
}

func TestShortTermAsksForClarification(t *testing.T) {
	bot := newTestBot(t)
	resp, err := bot.Respond(context.Background(), "vull una recepta de x")
	require.NoError(t, err)
	assert.Nil(t, resp.Recipe)
	assert.Contains(t, resp.Text, "No t'he acabat d'entendre")
}

func TestEmptyMessageRejected(t *testing.T) {
	bot := newTestBot(t)
	_, err := bot.Respond(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}
