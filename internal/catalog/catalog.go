// Package catalog implements the synchronization engine that keeps a
// single, always-populated product list in front of the UI: remote
// gateway results when the store is reachable, the bundled fallback
// snapshot otherwise. Reads never fail; only mutations surface errors.
package catalog

import (
	"context"

	"cucinanostrard/internal/model"
)

// FeaturedLimit caps the featured subset, remote and fallback alike.
const FeaturedLimit = 6

// Engine is the read/write facade the UI consumes.
type Engine interface {
	// LoadAll fetches the full remote collection, newest first. An empty
	// or failed fetch falls back to the bundled snapshot; the result is
	// never empty while the fallback has data.
	LoadAll(ctx context.Context) []model.Product

	// LoadFeatured fetches featured+available entries by popularity,
	// capped at FeaturedLimit, with the same fallback policy.
	LoadFeatured(ctx context.Context) []model.Product

	// Start establishes the live gateway subscriptions. Call it after the
	// initial loads so the UI is never blocked waiting on a live channel.
	Start(ctx context.Context) error

	// Stop tears down the live subscriptions.
	Stop()

	// SubscribeAll registers a callback invoked with the full replacement
	// list on every change to the resident all-products list. Returns an
	// unsubscribe function.
	SubscribeAll(fn func([]model.Product)) (unsubscribe func())

	// SubscribeFeatured is SubscribeAll for the featured list.
	SubscribeFeatured(fn func([]model.Product)) (unsubscribe func())

	// Create validates the draft, strips null fields and stores it
	// remotely. Returns the assigned id, or an empty id and a validation
	// error without any gateway call when the draft is invalid.
	Create(ctx context.Context, draft *model.ProductDraft) (string, error)

	// Update applies a partial patch by id and refreshes the lists.
	Update(ctx context.Context, id string, patch model.ProductPatch) error

	// Delete removes by id. The resident lists drop the entry
	// immediately; the next subscription snapshot is authoritative.
	Delete(ctx context.Context, id string) error

	// Search matches remotely when possible and degrades to a local
	// search over the bundled snapshot on failure.
	Search(ctx context.Context, term string) []model.Product

	// GetByID looks up the remote entry and falls back to the bundled
	// snapshot when the remote misses or fails.
	GetByID(ctx context.Context, id string) *model.Product

	// ByCategory lists one category, falling back locally on failure.
	ByCategory(ctx context.Context, category string) []model.Product

	// Available lists purchasable products, falling back locally on
	// failure.
	Available(ctx context.Context) []model.Product

	// Products returns the resident all-products snapshot.
	Products() []model.Product

	// Featured returns the resident featured snapshot.
	Featured() []model.Product

	// Stats returns aggregates recomputed over whatever list is resident.
	Stats() model.Stats
}
