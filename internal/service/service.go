// Package service implements the financial item contract on top of the
// selected store: validation before persistence, service-owned audit
// timestamps, and optional change-event publishing.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/events"
	"fintrack/internal/store"
)

// EventPublisher publishes item change notifications. It is satisfied by
// *events.Client; a nil publisher disables events.
type EventPublisher interface {
	PublishItemEvent(ctx context.Context, action, itemID string) error
}

type ItemService struct {
	store     store.ItemStore
	publisher EventPublisher
	now       func() time.Time
}

func New(s store.ItemStore, publisher EventPublisher) *ItemService {
	return &ItemService{
		store:     s,
		publisher: publisher,
		now:       time.Now,
	}
}

// Create validates the draft, stamps both audit timestamps and persists a
// new item. Validation failures never reach the store; store rejections
// propagate unmodified.
func (s *ItemService) Create(ctx context.Context, draft core.Draft) (*core.Item, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	item := core.Item{
		Name:        draft.Name,
		Amount:      draft.Amount,
		Type:        draft.Type,
		Category:    draft.Category,
		Date:        draft.Date,
		Description: draft.Description,
		Tags:        draft.Tags,
		Recurrence:  draft.Recurrence,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.store.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.publish(ctx, events.ActionCreated, created.ID)
	return created, nil
}

// Update validates the provided fields and applies the partial update,
// bumping updatedAt. CreatedAt and the item type are never touched.
func (s *ItemService) Update(ctx context.Context, id string, patch core.Patch) error {
	if err := patch.Validate(); err != nil {
		return err
	}

	if err := s.store.Update(ctx, id, patch, s.now()); err != nil {
		return fmt.Errorf("update item %s: %w", id, err)
	}

	s.publish(ctx, events.ActionUpdated, id)
	return nil
}

// Delete removes the item. Deleting an absent id succeeds.
func (s *ItemService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}

	s.publish(ctx, events.ActionDeleted, id)
	return nil
}

// GetAll returns the filtered item list ordered by date descending. Both
// adapters swallow read failures into an empty list, so the dashboard
// never loses its read path.
func (s *ItemService) GetAll(ctx context.Context, filters core.Filters) ([]core.Item, error) {
	items, err := s.store.GetAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// GetByID returns (nil, nil) when the id does not exist.
func (s *ItemService) GetByID(ctx context.Context, id string) (*core.Item, error) {
	return s.store.GetByID(ctx, id)
}

// Stats aggregates the filtered items for the dashboard.
func (s *ItemService) Stats(ctx context.Context, filters core.Filters, months int) (core.Stats, error) {
	items, err := s.GetAll(ctx, filters)
	if err != nil {
		return core.Stats{}, err
	}
	return core.ComputeStats(items, s.now(), months), nil
}

// publish sends a change event when a publisher is configured. Failures
// are logged and never fail the originating write.
func (s *ItemService) publish(ctx context.Context, action, itemID string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishItemEvent(ctx, action, itemID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish item event",
			"action", action, "item_id", itemID, "error", err)
	}
}
