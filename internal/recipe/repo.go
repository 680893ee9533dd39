package recipe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"receptari/internal/category"
	"receptari/internal/textutil"
	"receptari/pkg/models"
)

// ErrInvalidCategory is returned for a category filter outside the taxonomy.
// It is a caller error, distinct from an empty result.
var ErrInvalidCategory = errors.New("invalid category filter")

// Default result caps per call site. Browsing is allowed a bigger window than
// a free-text search, and chat answers stay small.
const (
	DefaultBrowseLimit   = 200
	DefaultCategoryLimit = 100
	DefaultSearchLimit   = 50
	ChatSearchLimit      = 10

	samplePerCategory = 12
	samplePerOther    = 24
)

type Repo struct {
	DB *sql.DB

	mu  sync.Mutex
	rng *rand.Rand
}

type Query struct {
	Term     string // free-text term, matched against name/ingredients/steps
	Category string // canonical key, "" or "all" for no filter
	Limit    int
}

func NewRepo(db *sql.DB) *Repo {
	return NewRepoWithRand(db, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewRepoWithRand injects the randomness source used by Sample and Random so
// tests can seed it.
func NewRepoWithRand(db *sql.DB, rng *rand.Rand) *Repo {
	return &Repo{DB: db, rng: rng}
}

const selectColumns = `
	SELECT id, nombre, nombre_normalizado, categoria, categoria_raw,
	       ingredientes, pasos, imagen_url, duracion, raciones, calorias, dificultad
	FROM recipe
`

// ReplaceAll swaps in a full new record set inside one transaction, so no
// reader ever observes a mix of old and new rows.
func (r *Repo) ReplaceAll(ctx context.Context, recipes []models.Recipe) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe`); err != nil {
		return fmt.Errorf("clear recipe table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO recipe (id, nombre, nombre_normalizado, categoria, categoria_raw,
		                    ingredientes, pasos, imagen_url, duracion, raciones, calorias, dificultad)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recipes {
		if _, err := stmt.ExecContext(ctx,
			rec.ID, rec.Name, rec.NameNormalized, rec.Category, rec.CategoryRaw,
			rec.Ingredients, rec.Steps, rec.ImageURL,
			rec.Duration, rec.Servings, rec.Calories, rec.Difficulty,
		); err != nil {
			return fmt.Errorf("insert recipe %d: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipe`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count scan: %w", err)
	}
	return total, nil
}

// Search filters by category in SQL and applies term matching and tier
// ranking in Go, where ingredients and steps can be diacritic-folded the same
// way the precomputed name column was.
func (r *Repo) Search(ctx context.Context, q Query) ([]models.Recipe, error) {
	filter, err := categoryFilter(q.Category)
	if err != nil {
		return nil, err
	}

	folded := textutil.Fold(strings.TrimSpace(q.Term))

	limit := q.Limit
	if limit <= 0 {
		switch {
		case folded != "":
			limit = DefaultSearchLimit
		case filter != "":
			limit = DefaultCategoryLimit
		default:
			limit = DefaultBrowseLimit
		}
	}

	sqlStr := selectColumns
	var args []any
	if filter != "" {
		sqlStr += ` WHERE categoria = ?`
		args = append(args, filter)
	}
	sqlStr += ` ORDER BY nombre ASC`
	if folded == "" {
		// no term: plain alphabetical browse, cap in SQL
		sqlStr += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.queryRecipes(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	if folded == "" {
		return rows, nil
	}

	ranked := Rank(rows, folded)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// Sample returns the default browse view: up to N random records from every
// category (more from the catch-all, which is usually the largest), shuffled
// together so no single category dominates the first screen.
func (r *Repo) Sample(ctx context.Context) ([]models.Recipe, error) {
	var out []models.Recipe
	for _, key := range category.Keys() {
		n := samplePerCategory
		if key == category.KeyOther {
			n = samplePerOther
		}

		rows, err := r.queryRecipes(ctx, selectColumns+` WHERE categoria = ? ORDER BY nombre ASC`, key)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.rng.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })
		r.mu.Unlock()

		if len(rows) > n {
			rows = rows[:n]
		}
		out = append(out, rows...)
	}

	r.mu.Lock()
	r.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	r.mu.Unlock()
	return out, nil
}

// Random draws one uniformly random recipe, or nil on an empty table.
func (r *Repo) Random(ctx context.Context) (*models.Recipe, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, nil
	}

	r.mu.Lock()
	offset := r.rng.Intn(total)
	r.mu.Unlock()

	rows, err := r.queryRecipes(ctx, selectColumns+` ORDER BY id LIMIT 1 OFFSET ?`, offset)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Pick returns a random element of a non-empty slice using the repo's rng.
func (r *Repo) Pick(recipes []models.Recipe) models.Recipe {
	r.mu.Lock()
	defer r.mu.Unlock()
	return recipes[r.rng.Intn(len(recipes))]
}

func (r *Repo) queryRecipes(ctx context.Context, sqlStr string, args ...any) ([]models.Recipe, error) {
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("recipe query: %w", err)
	}
	defer rows.Close()

	var out []models.Recipe
	for rows.Next() {
		var (
			rec      models.Recipe
			imageURL sql.NullString
			diff     sql.NullString
		)
		if err := rows.Scan(
			&rec.ID, &rec.Name, &rec.NameNormalized, &rec.Category, &rec.CategoryRaw,
			&rec.Ingredients, &rec.Steps, &imageURL,
			&rec.Duration, &rec.Servings, &rec.Calories, &diff,
		); err != nil {
			return nil, fmt.Errorf("recipe scan: %w", err)
		}
		rec.ImageURL = imageURL.String
		rec.Difficulty = diff.String
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// categoryFilter validates a requested category. Empty and the "all" sentinel
// mean no filter; anything else must belong to the taxonomy. The key is folded
// first so display spellings like "Mèxic" select their canonical key.
func categoryFilter(key string) (string, error) {
	folded := textutil.Fold(strings.TrimSpace(key))
	if folded == "" || folded == category.KeyAll {
		return "", nil
	}
	if !category.Valid(folded) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, key)
	}
	return folded, nil
}
