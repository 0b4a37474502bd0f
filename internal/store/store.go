// Package store defines the port every item backend implements.
package store

import (
	"context"
	"time"

	"fintrack/internal/core"
)

// ItemStore is the persistence port for financial items. Implementations
// assign the item id on Create; the service layer owns timestamps and
// passes the new updatedAt alongside each patch.
//
// GetAll applies the given filters and returns items ordered by date
// descending. Free-text search is always evaluated client-side; the other
// filters may be pushed down when the backend supports it. GetByID returns
// (nil, nil) when the id does not exist; absence is not an error. Delete
// is idempotent.
type ItemStore interface {
	Create(ctx context.Context, item core.Item) (*core.Item, error)
	Update(ctx context.Context, id string, patch core.Patch, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	GetAll(ctx context.Context, filters core.Filters) ([]core.Item, error)
	GetByID(ctx context.Context, id string) (*core.Item, error)
}
