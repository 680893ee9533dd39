package recipe

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receptari/internal/textutil"
	"receptari/pkg/database"
	"receptari/pkg/models"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return NewRepoWithRand(db, rand.New(rand.NewSource(1)))
}

func testRecipe(id int, name, categoryKey, ingredients string) models.Recipe {
	return models.Recipe{
		ID:             id,
		Name:           name,
		NameNormalized: textutil.Fold(name),
		Category:       categoryKey,
		Ingredients:    ingredients,
		Steps:          "Passos de prova.",
	}
}

func seedRepo(t *testing.T, repo *Repo) {
	t.Helper()
	require.NoError(t, repo.ReplaceAll(context.Background(), []models.Recipe{
		testRecipe(1, "Tacos al pastor", "mexic", "Tortilla\nCarn de porc\nPinya"),
		testRecipe(2, "Tacos de peix", "mexic", "Tortilla\nPeix blanc"),
		testRecipe(3, "Pastel de choclo", "chile", "Blat de moro\nCarn picada"),
		testRecipe(4, "Pollastre a la xilena", "chile", "Pollastre\nCeba\nPastanaga"),
		testRecipe(5, "Paella Valenciana", "espanya", "Arròs\nPollastre\nGarrofó"),
		testRecipe(6, "Amanida de quinoa", "altres", "Quinoa\nTomàquet"),
	}))
}

func TestSearchByCategoryAndTerm(t *testing.T) {
	repo := newTestRepo(t)
	seedRepo(t, repo)

	got, err := repo.Search(context.Background(), Query{Term: "tacos", Category: "mexic"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, "mexic", r.Category)
		assert.Contains(t, r.NameNormalized, "tacos")
	}
	// both are name-prefix matches, so order is alphabetical
	assert.Equal(t, "Tacos al pastor", got[0].Name)
	assert.Equal(t, "Tacos de peix", got[1].Name)
}

func TestSearchCategoryFilterExcludesOthers(t *testing.T) {
	repo := newTestRepo(t)
	seedRepo(t, repo)

	// "pollastre" appears in espanya ingredients too; the chile filter must win
	got, err := repo.Search(context.Background(), Query{Term: "pollastre", Category: "chile"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Pollastre a la xilena", got[0].Name)
}

func TestSearchInvalidCategory(t *testing.T) {
	repo := newTestRepo(t)
	seedRepo(t, repo)

	_, err := repo.Search(context.Background(), Query{Term: "tacos", Category: "atlantis"})
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestSearchCategoryDisplaySpelling(t *testing.T) {
	repo := newTestRepo(t)
	seedRepo(t, repo)

	// display spellings fold to their canonical key
	got, err := repo.Search(context.Background(), Query{Term: "tacos", Category: "Mèxic"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, "mexic", r.Category)
	}
}

func TestSearchAllSentinel(t *testing.T) {
	repo := newTestRepo(t)
	seedRepo(t, repo)

	got, err := repo.Search(context.Background(), Query{Term: "tacos", Category: "all"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSearchEmptyResultIsNotAnError(t *testing.T) {
	repo := newTestRepo(t)
	seedRepo(t, repo)

	got, err := repo.Search(context.Background(), Query{Term: "sushi"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchNoTermAlphabetical(t *testing.T) {
	repo := newTestRepo(t)
	seedRepo(t, repo)

	got, err := repo.Search(context.Background(), Query{Category: "mexic"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Tacos al pastor", got[0].Name)
	assert.Equal(t, "Tacos de peix", got[1].Name)
}

func TestSearchLimit(t *testing.T) {
	repo := newTestRepo(t)
	seedRepo(t, repo)

	got, err := repo.Search(context.Background(), Query{Term: "tacos", Limit: 1})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestReplaceAllIsAtomic(t *testing.T) {
	repo := newTestRepo(t)
	seedRepo(t, repo)

	second := []models.Recipe{
		testRecipe(10, "Sushi de salmó", "japo", "Arròs\nSalmó\nAlga nori"),
	}
	require.NoError(t, repo.ReplaceAll(context.Background(), second))

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	// nothing from the first dataset survives
	got, err := repo.Search(context.Background(), Query{Term: "tacos"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSampleCoversCategories(t *testing.T) {
	repo := newTestRepo(t)
	seedRepo(t, repo)

	got, err := repo.Sample(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 6) // every seeded recipe fits inside the per-category caps

	seen := map[string]bool{}
	for _, r := range got {
		seen[r.Category] = true
	}
	for _, key := range []string{"mexic", "chile", "espanya", "altres"} {
		assert.True(t, seen[key], "category %s missing from sample", key)
	}
}

func TestSampleCapsPerCategory(t *testing.T) {
	repo := newTestRepo(t)

	// overfill one normal category and the catch-all past their caps
	var recipes []models.Recipe
	for i := 0; i < samplePerCategory+8; i++ {
		recipes = append(recipes, testRecipe(100+i, fmt.Sprintf("Taco número %d", i), "mexic", "Tortilla"))
	}
	for i := 0; i < samplePerOther+5; i++ {
		recipes = append(recipes, testRecipe(500+i, fmt.Sprintf("Plat divers %d", i), "altres", "Quinoa"))
	}
	require.NoError(t, repo.ReplaceAll(context.Background(), recipes))

	got, err := repo.Sample(context.Background())
	require.NoError(t, err)

	counts := map[string]int{}
	for _, r := range got {
		counts[r.Category]++
	}
	assert.Equal(t, samplePerCategory, counts["mexic"])
	assert.Equal(t, samplePerOther, counts["altres"])
	assert.Len(t, got, samplePerCategory+samplePerOther)
}

func TestRandomFromSeededStore(t *testing.T) {
	repo := newTestRepo(t)
	seedRepo(t, repo)

	rec, err := repo.Random(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Positive(t, rec.ID)
}

// Parallel queries force the pool to hand out connections concurrently; each
// one must see the migrated schema, not a fresh empty database.
func TestConcurrentQueriesSeeSameDatabase(t *testing.T) {
	repo := newTestRepo(t)
	seedRepo(t, repo)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := repo.Search(context.Background(), Query{Term: "tacos"})
			if err != nil {
				errs <- err
				return
			}
			if len(got) != 2 {
				errs <- fmt.Errorf("expected 2 results, got %d", len(got))
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

func TestRandomEmptyStore(t *testing.T) {
	repo := newTestRepo(t)

	rec, err := repo.Random(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rec)
}
