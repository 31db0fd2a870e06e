// Package store provides the persistent, crash-safe key-value store of
// items and recipes that fronts the oracle, and the companion optimal-craft
// store the search engine records traces into. Both are backed by modernc.org/sqlite
// (pure Go, no cgo), matching the driver the teacher service is built on.
package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "modernc.org/sqlite"
)

//go:embed schema_recipes.sql
var recipesSchemaFS embed.FS

//go:embed schema_optimals.sql
var optimalsSchemaFS embed.FS

// DB wraps a sql.DB with crafting-specific helpers. It's safe for concurrent
// use by many readers; write discipline is single-writer by convention
// (see RecipeStore/ItemStore), not enforced at this layer.
type DB struct {
	*sql.DB
}

// openWithSchema opens a SQLite database at path (or ":memory:") in WAL mode
// with foreign keys enabled, then applies the given embedded schema.
func openWithSchema(path string, schemaFS embed.FS, schemaFile string) (*DB, error) {
	dsn := fmt.Sprintf("%s?_foreign_keys=on&_journal_mode=WAL", path)

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	schema, err := schemaFS.ReadFile(schemaFile)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("reading embedded schema: %w", err)
	}

	if _, err := sqlDB.Exec(string(schema)); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &DB{DB: sqlDB}, nil
}

// OpenRecipeDB opens (creating if absent) the items+recipes database.
func OpenRecipeDB(path string) (*DB, error) {
	return openWithSchema(path, recipesSchemaFS, "schema_recipes.sql")
}

// OpenOptimalDB opens (creating if absent) the optimal-recipe-trace
// database.
func OpenOptimalDB(path string) (*DB, error) {
	return openWithSchema(path, optimalsSchemaFS, "schema_optimals.sql")
}

// InTransaction executes fn within a transaction, rolling back on error and
// committing otherwise.
func (db *DB) InTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// GetSyncMetadata retrieves a metadata value by key, returning "" if absent.
func (db *DB) GetSyncMetadata(ctx context.Context, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM sync_metadata WHERE key = ?`,
		key,
	).Scan(&value)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("querying sync metadata: %w", err)
	}

	return value, nil
}

// SetSyncMetadata sets a metadata value.
func (db *DB) SetSyncMetadata(ctx context.Context, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO sync_metadata (key, value, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value)

	if err != nil {
		return fmt.Errorf("setting sync metadata: %w", err)
	}

	return nil
}
