// Package local persists financial items when no remote store is
// configured. The whole item list lives as one JSON blob under a fixed key
// in a sqlite key-value table, mirroring a browser local-storage slot.
package local

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

// storageKey is the fixed slot the serialized item list lives under.
const storageKey = "financial_items"

type Store struct {
	db *sql.DB
}

// New opens (or creates) the sqlite file at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Create assigns a fresh id, appends the item to the stored list and
// writes the whole list back.
func (s *Store) Create(ctx context.Context, item core.Item) (*core.Item, error) {
	items := s.readItems(ctx)

	item.ID = uuid.NewString()
	items = append(items, item)

	if err := s.writeItems(ctx, items); err != nil {
		return nil, &core.StoreError{Op: "create", Err: err}
	}

	slog.InfoContext(ctx, "Item saved to local store",
		"id", item.ID,
		"name", item.Name,
		"type", item.Type,
		"amount", item.Amount)

	return &item, nil
}

// Update merges the patch into the stored item and bumps its UpdatedAt.
// An absent id is a no-op, not an error.
func (s *Store) Update(ctx context.Context, id string, patch core.Patch, updatedAt time.Time) error {
	items := s.readItems(ctx)

	for i := range items {
		if items[i].ID != id {
			continue
		}
		patch.Apply(&items[i])
		items[i].UpdatedAt = updatedAt
		if err := s.writeItems(ctx, items); err != nil {
			return &core.StoreError{Op: "update", Err: err}
		}
		return nil
	}

	slog.WarnContext(ctx, "Update skipped, item not in local store", "id", id)
	return nil
}

// Delete removes the item with the given id. Deleting an absent id
// succeeds.
func (s *Store) Delete(ctx context.Context, id string) error {
	items := s.readItems(ctx)

	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return nil
	}

	if err := s.writeItems(ctx, kept); err != nil {
		return &core.StoreError{Op: "delete", Err: err}
	}
	return nil
}

// GetAll reads the full list and applies every filter client-side,
// returning items ordered by date descending.
func (s *Store) GetAll(ctx context.Context, filters core.Filters) ([]core.Item, error) {
	return filters.Apply(s.readItems(ctx)), nil
}

// GetByID scans the stored list; an absent id yields (nil, nil).
func (s *Store) GetByID(ctx context.Context, id string) (*core.Item, error) {
	for _, item := range s.readItems(ctx) {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, nil
}

// readItems loads the blob and decodes it. A missing or corrupt blob
// degrades to an empty list; the next write overwrites it.
func (s *Store) readItems(ctx context.Context) []core.Item {
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE key = ?`, storageKey).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		slog.WarnContext(ctx, "Failed to read local store, returning empty list", "error", err)
		return nil
	}

	var items []core.Item
	if err := json.Unmarshal(blob, &items); err != nil {
		slog.WarnContext(ctx, "Corrupt local store blob, returning empty list", "error", err)
		return nil
	}
	return items
}

func (s *Store) writeItems(ctx context.Context, items []core.Item) error {
	if items == nil {
		items = []core.Item{}
	}
	blob, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		storageKey, blob)
	if err != nil {
		return fmt.Errorf("write items blob: %w", err)
	}
	return nil
}
