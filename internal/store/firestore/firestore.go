// Package firestore adapts the item store port onto a Google Cloud
// Firestore collection. Dates and audit timestamps marshal to native
// Firestore timestamps, so round-trips are lossless.
package firestore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"fintrack/internal/core"
)

// collectionName is the single logical collection holding every item.
const collectionName = "financialItems"

// Config carries what the Firestore client needs. CredentialsFile is
// optional; without it the client falls back to application default
// credentials.
type Config struct {
	ProjectID       string
	CredentialsFile string
}

type Store struct {
	client *firestore.Client
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) col() *firestore.CollectionRef {
	return s.client.Collection(collectionName)
}

// Create writes a new document and returns the item carrying the
// store-assigned document id.
func (s *Store) Create(ctx context.Context, item core.Item) (*core.Item, error) {
	ref, _, err := s.col().Add(ctx, item)
	if err != nil {
		return nil, &core.StoreError{Op: "create", Err: err}
	}

	item.ID = ref.ID
	slog.InfoContext(ctx, "Item saved to Firestore",
		"id", item.ID,
		"name", item.Name,
		"type", item.Type,
		"amount", item.Amount)

	return &item, nil
}

// Update applies a partial-document mutation. Firestore rejects updates
// targeting an absent document; that rejection surfaces as a StoreError.
func (s *Store) Update(ctx context.Context, id string, patch core.Patch, updatedAt time.Time) error {
	updates := []firestore.Update{{Path: "updatedAt", Value: updatedAt}}
	if patch.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *patch.Name})
	}
	if patch.Amount != nil {
		updates = append(updates, firestore.Update{Path: "amount", Value: *patch.Amount})
	}
	if patch.Category != nil {
		updates = append(updates, firestore.Update{Path: "category", Value: string(*patch.Category)})
	}
	if patch.Date != nil {
		updates = append(updates, firestore.Update{Path: "date", Value: *patch.Date})
	}
	if patch.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *patch.Description})
	}
	if patch.Tags != nil {
		updates = append(updates, firestore.Update{Path: "tags", Value: *patch.Tags})
	}
	if patch.Recurrence != nil {
		updates = append(updates, firestore.Update{Path: "recurrence", Value: string(*patch.Recurrence)})
	}

	if _, err := s.col().Doc(id).Update(ctx, updates); err != nil {
		return &core.StoreError{Op: "update", Err: err}
	}
	return nil
}

// Delete removes the document unconditionally; absent ids are not an
// error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.col().Doc(id).Delete(ctx); err != nil {
		return &core.StoreError{Op: "delete", Err: err}
	}
	return nil
}

// GetAll builds a server-side query ordered by date descending, pushing
// down the type, category and date-range filters. Free-text search is
// never part of the query; it is applied after the fetch. Read errors
// degrade to an empty list so the dashboard stays renderable.
func (s *Store) GetAll(ctx context.Context, filters core.Filters) ([]core.Item, error) {
	q := s.col().Query.OrderBy("date", firestore.Desc)
	if filters.Type != "" {
		q = q.Where("type", "==", string(filters.Type))
	}
	if filters.Category != "" {
		q = q.Where("category", "==", string(filters.Category))
	}
	if !filters.StartDate.IsZero() {
		q = q.Where("date", ">=", filters.StartDate)
	}
	if !filters.EndDate.IsZero() {
		q = q.Where("date", "<=", filters.EndDate)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var items []core.Item
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			slog.ErrorContext(ctx, "Failed to fetch items from Firestore, returning empty list", "error", err)
			return []core.Item{}, nil
		}

		var item core.Item
		if err := doc.DataTo(&item); err != nil {
			slog.WarnContext(ctx, "Skipping malformed Firestore document", "id", doc.Ref.ID, "error", err)
			continue
		}
		item.ID = doc.Ref.ID

		if filters.Search != "" && !filters.MatchSearch(item) {
			continue
		}
		items = append(items, item)
	}

	return items, nil
}

// GetByID is a point lookup; an absent document yields (nil, nil).
func (s *Store) GetByID(ctx context.Context, id string) (*core.Item, error) {
	doc, err := s.col().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "Failed to fetch item from Firestore", "id", id, "error", err)
		return nil, nil
	}

	var item core.Item
	if err := doc.DataTo(&item); err != nil {
		return nil, &core.StoreError{Op: "get", Err: err}
	}
	item.ID = doc.Ref.ID
	return &item, nil
}
