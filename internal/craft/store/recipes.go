package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gocraft/infinite-craft-oracle/internal/craft/ids"
)

// Use describes one side of a uses_of query: combining `name` with `Other`
// produced `Result`.
type Use struct {
	Other  string
	Result string
}

// Craft describes one side of a crafts_of query: `A` + `B` produced the
// queried result.
type Craft struct {
	A string
	B string
}

// RecipeStore handles recipe (pair -> result) persistence. The store is
// monotonic for confirmed results: a recipe whose prior result was
// UncertainNothing may be overwritten by any answer; any other existing
// result is left alone.
type RecipeStore struct {
	db *DB
}

// NewRecipeStore creates a RecipeStore over db.
func NewRecipeStore(db *DB) *RecipeStore {
	return &RecipeStore{db: db}
}

// ensureItemID returns the id for name, inserting a placeholder item (blank
// emoji, first_discovery=false) if it doesn't exist yet.
func (s *RecipeStore) ensureItemID(ctx context.Context, name string) (int64, error) {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO items (name) VALUES (?) ON CONFLICT (name) DO NOTHING`, name,
	); err != nil {
		return 0, fmt.Errorf("ensuring item %q: %w", name, err)
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM items WHERE name = ?`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("resolving id for %q: %w", name, err)
	}
	return id, nil
}

// UpsertRecipe canonicalizes ingredient case, ensures both ingredients and
// the result exist as items, and writes the (a,b)->result triple. If the
// existing result for this pair was UncertainNothing, it is overwritten;
// otherwise the existing row is left as-is (the store is monotonic for
// confirmed results).
func (s *RecipeStore) UpsertRecipe(ctx context.Context, a, b, result string) error {
	a = ids.ToStartCase(a)
	b = ids.ToStartCase(b)
	if a > b {
		a, b = b, a
	}

	aID, err := s.ensureItemID(ctx, a)
	if err != nil {
		return err
	}
	bID, err := s.ensureItemID(ctx, b)
	if err != nil {
		return err
	}
	resultID, err := s.ensureItemID(ctx, result)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO recipes (ingredient1_id, ingredient2_id, result_id)
		VALUES (?, ?, ?)
		ON CONFLICT (ingredient1_id, ingredient2_id) DO UPDATE SET
			result_id = excluded.result_id
		WHERE recipes.result_id = ?
	`, aID, bID, resultID, ids.UncertainNothing)
	if err != nil {
		return fmt.Errorf("upserting recipe %s+%s: %w", a, b, err)
	}
	return nil
}

// Lookup returns the literal result name for (a,b), including the sentinel
// strings ("Nothing", "Nothing\t"), or ("", false) if the pair has never
// been seen.
func (s *RecipeStore) Lookup(ctx context.Context, a, b string) (string, bool, error) {
	a = ids.ToStartCase(a)
	b = ids.ToStartCase(b)
	if a > b {
		a, b = b, a
	}

	var result string
	err := s.db.QueryRowContext(ctx, `
		SELECT result.name
		FROM recipes
		JOIN items AS ing1 ON ing1.id = recipes.ingredient1_id
		JOIN items AS ing2 ON ing2.id = recipes.ingredient2_id
		JOIN items AS result ON result.id = recipes.result_id
		WHERE ing1.name = ? AND ing2.name = ?
	`, a, b).Scan(&result)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("looking up recipe %s+%s: %w", a, b, err)
	}
	return result, true, nil
}

// UsesOf returns every (other ingredient, result) pair produced by
// combining name with anything.
func (s *RecipeStore) UsesOf(ctx context.Context, name string) ([]Use, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ing2.name, result.name
		FROM recipes
		JOIN items AS ing1 ON ing1.id = recipes.ingredient1_id
		JOIN items AS ing2 ON ing2.id = recipes.ingredient2_id
		JOIN items AS result ON result.id = recipes.result_id
		WHERE ing1.name = ?
		UNION ALL
		SELECT ing1.name, result.name
		FROM recipes
		JOIN items AS ing1 ON ing1.id = recipes.ingredient1_id
		JOIN items AS ing2 ON ing2.id = recipes.ingredient2_id
		JOIN items AS result ON result.id = recipes.result_id
		WHERE ing2.name = ? AND ing1.name != ?
	`, name, name, name)
	if err != nil {
		return nil, fmt.Errorf("querying uses of %q: %w", name, err)
	}
	defer func() { _ = rows.Close() }()

	var uses []Use
	for rows.Next() {
		var u Use
		if err := rows.Scan(&u.Other, &u.Result); err != nil {
			return nil, fmt.Errorf("scanning use: %w", err)
		}
		uses = append(uses, u)
	}
	return uses, rows.Err()
}

// CraftsOf returns every (a, b) ingredient pair that produces result.
func (s *RecipeStore) CraftsOf(ctx context.Context, result string) ([]Craft, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ing1.name, ing2.name
		FROM recipes
		JOIN items AS ing1 ON ing1.id = recipes.ingredient1_id
		JOIN items AS ing2 ON ing2.id = recipes.ingredient2_id
		JOIN items AS result ON result.id = recipes.result_id
		WHERE result.name = ?
	`, result)
	if err != nil {
		return nil, fmt.Errorf("querying crafts of %q: %w", result, err)
	}
	defer func() { _ = rows.Close() }()

	var crafts []Craft
	for rows.Next() {
		var c Craft
		if err := rows.Scan(&c.A, &c.B); err != nil {
			return nil, fmt.Errorf("scanning craft: %w", err)
		}
		crafts = append(crafts, c)
	}
	return crafts, rows.Err()
}

// AllRecipes returns every (ingredient1_id, ingredient2_id, result_id)
// triple in the store, for building an in-memory recipe graph.
func (s *RecipeStore) AllRecipes(ctx context.Context) ([]RecipeRow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT ingredient1_id, ingredient2_id, result_id FROM recipes`)
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []RecipeRow
	for rows.Next() {
		var row RecipeRow
		if err := rows.Scan(&row.Ingredient1ID, &row.Ingredient2ID, &row.ResultID); err != nil {
			return nil, fmt.Errorf("scanning recipe row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// RecipeRow is a raw (ingredient1_id, ingredient2_id, result_id) triple as
// stored on disk.
type RecipeRow struct {
	Ingredient1ID int64
	Ingredient2ID int64
	ResultID      int64
}
