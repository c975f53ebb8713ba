// Package gateway adapts the remote "products" document collection to a
// small CRUD + query + subscribe interface. It knows nothing about the
// local fallback store or session state.
package gateway

import (
	"context"

	"cucinanostrard/internal/model"
)

// Snapshot is the full replacement result set a subscription delivers on
// every remote change. Subscriptions never deliver deltas: the latest
// callback invocation is authoritative.
type Snapshot = []model.Product

// ProductGateway defines the consumed surface of the remote catalogue
// collection.
type ProductGateway interface {
	// ListAll retrieves the full collection ordered by creation time,
	// newest first.
	ListAll(ctx context.Context) ([]model.Product, error)

	// ListFeatured retrieves entries with featured=true and available=true,
	// ordered by popularity score descending, capped at limit.
	ListFeatured(ctx context.Context, limit int) ([]model.Product, error)

	// ListByCategory retrieves entries in the given category ordered by
	// popularity score descending.
	ListByCategory(ctx context.Context, category string) ([]model.Product, error)

	// ListAvailable retrieves available entries ordered by popularity
	// score descending.
	ListAvailable(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single entry. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Search runs a case-insensitive substring match over name,
	// description, tags and category on the remote side.
	Search(ctx context.Context, term string) ([]model.Product, error)

	// Create stores a new document, assigns its id and server-side
	// creation/update timestamps, and returns the id.
	Create(ctx context.Context, doc map[string]interface{}) (string, error)

	// Update merges a partial document into the entry and refreshes its
	// update timestamp. Returns model.ErrProductNotFound for unknown ids.
	Update(ctx context.Context, id string, patch map[string]interface{}) error

	// Delete removes the entry immediately and irreversibly.
	Delete(ctx context.Context, id string) error

	// CountByCategory returns the number of entries per category.
	CountByCategory(ctx context.Context) (map[string]int, error)

	// Subscribe registers a live listener that pushes the full ListAll
	// result set on every remote change. Errors go to onErr; the listener
	// keeps running until the returned cancel function is called.
	Subscribe(ctx context.Context, onChange func(Snapshot), onErr func(error)) (cancel func(), err error)

	// SubscribeFeatured is Subscribe for the featured query.
	SubscribeFeatured(ctx context.Context, limit int, onChange func(Snapshot), onErr func(error)) (cancel func(), err error)
}
