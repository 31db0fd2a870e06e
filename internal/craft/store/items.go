package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gocraft/infinite-craft-oracle/internal/craft/ids"
)

// Item is an element record as persisted in the store.
type Item struct {
	ID             int64
	Name           string
	Emoji          string
	FirstDiscovery bool
}

// ItemStore handles item (element) persistence.
type ItemStore struct {
	db *DB
}

// NewItemStore creates an ItemStore over db.
func NewItemStore(db *DB) *ItemStore {
	return &ItemStore{db: db}
}

// Bootstrap ensures the two sentinel elements and the given seed elements
// exist. It must run once before any UpsertRecipe/Lookup call.
func (s *ItemStore) Bootstrap(ctx context.Context, seeds []string) error {
	if err := s.upsertWithID(ctx, ids.Nothing, ids.NothingName, "", false); err != nil {
		return err
	}
	if err := s.upsertWithID(ctx, ids.UncertainNothing, ids.UncertainNothingName, "", false); err != nil {
		return err
	}
	for _, seed := range seeds {
		if err := s.upsertIfAbsent(ctx, ids.ToStartCase(seed), "", false); err != nil {
			return err
		}
	}
	return nil
}

// upsertWithID inserts an item at a forced id (used only for sentinels);
// it's a no-op if the id already exists.
func (s *ItemStore) upsertWithID(ctx context.Context, id int64, name, emoji string, firstDiscovery bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO items (id, emoji, name, first_discovery) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`, id, emoji, name, firstDiscovery)
	if err != nil {
		return fmt.Errorf("upserting sentinel item %q: %w", name, err)
	}
	return nil
}

// upsertIfAbsent inserts a starting item, leaving any existing row alone.
// Seed elements never overwrite a result that already has a richer record.
func (s *ItemStore) upsertIfAbsent(ctx context.Context, name, emoji string, firstDiscovery bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO items (emoji, name, first_discovery) VALUES (?, ?, ?)
		ON CONFLICT (name) DO NOTHING
	`, emoji, name, firstDiscovery)
	if err != nil {
		return fmt.Errorf("upserting starting item %q: %w", name, err)
	}
	return nil
}

// UpsertItem adds or merges an item: emoji is overwritten only when the
// existing value was empty, and first_discovery is logical-OR'd in.
func (s *ItemStore) UpsertItem(ctx context.Context, name, emoji string, firstDiscovery bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO items (emoji, name, first_discovery) VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			emoji = CASE WHEN items.emoji = '' THEN excluded.emoji ELSE items.emoji END,
			first_discovery = items.first_discovery OR excluded.first_discovery
	`, emoji, name, firstDiscovery)
	if err != nil {
		return fmt.Errorf("upserting item %q: %w", name, err)
	}
	return nil
}

// GetItem returns the (emoji, first_discovery) pair for name, or nil if
// absent.
func (s *ItemStore) GetItem(ctx context.Context, name string) (*Item, error) {
	var item Item
	item.Name = name
	err := s.db.QueryRowContext(ctx,
		`SELECT id, emoji, first_discovery FROM items WHERE name = ?`, name,
	).Scan(&item.ID, &item.Emoji, &item.FirstDiscovery)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying item %q: %w", name, err)
	}
	return &item, nil
}

// All returns every item in the store, for building an in-memory registry
// snapshot (see graph.BuildFromStore).
func (s *ItemStore) All(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, emoji, first_discovery FROM items`)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Emoji, &it.FirstDiscovery); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
