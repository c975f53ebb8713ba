package catalog

import (
	"context"
	"sync"

	"cucinanostrard/internal/fallback"
	"cucinanostrard/internal/gateway"
	"cucinanostrard/internal/model"

	"github.com/rs/zerolog"
)

// engine implements Engine. The resident lists are single-writer in
// spirit but guarded by a mutex: subscription pushes, mutations and
// reloads all land on them from different goroutines.
type engine struct {
	gw     gateway.ProductGateway
	logger zerolog.Logger

	mu        sync.RWMutex
	products  []model.Product
	featured  []model.Product
	stats     model.Stats
	fromLocal bool

	obsMu         sync.Mutex
	nextObsID     int
	allObservers  map[int]func([]model.Product)
	featObservers map[int]func([]model.Product)

	cancelAll      func()
	cancelFeatured func()
}

// NewEngine creates a catalog synchronization engine over the gateway.
func NewEngine(gw gateway.ProductGateway, logger zerolog.Logger) Engine {
	return &engine{
		gw:            gw,
		logger:        logger.With().Str("component", "catalog-engine").Logger(),
		stats:         model.ComputeStats(nil),
		allObservers:  make(map[int]func([]model.Product)),
		featObservers: make(map[int]func([]model.Product)),
	}
}

// LoadAll refreshes the resident all-products list.
func (e *engine) LoadAll(ctx context.Context) []model.Product {
	products, err := e.gw.ListAll(ctx)
	if err != nil {
		e.logger.Warn().Err(err).Msg("remote catalogue unavailable, serving bundled snapshot")
		return e.setProducts(fallback.Catalog(), true)
	}
	if len(products) == 0 {
		e.logger.Info().Msg("remote catalogue empty, serving bundled snapshot")
		return e.setProducts(fallback.Catalog(), true)
	}
	return e.setProducts(products, false)
}

// LoadFeatured refreshes the resident featured list.
func (e *engine) LoadFeatured(ctx context.Context) []model.Product {
	featured, err := e.gw.ListFeatured(ctx, FeaturedLimit)
	if err != nil {
		e.logger.Warn().Err(err).Msg("remote featured query failed, serving bundled snapshot")
		return e.setFeatured(fallback.FeaturedAvailable(FeaturedLimit))
	}
	if len(featured) == 0 {
		return e.setFeatured(fallback.FeaturedAvailable(FeaturedLimit))
	}
	return e.setFeatured(featured)
}

// Start wires the gateway subscriptions into the resident lists. An empty
// snapshot substitutes the bundled data, same as an initial load.
func (e *engine) Start(ctx context.Context) error {
	cancelAll, err := e.gw.Subscribe(ctx,
		func(snapshot gateway.Snapshot) {
			if len(snapshot) == 0 {
				e.setProducts(fallback.Catalog(), true)
				return
			}
			e.setProducts(snapshot, false)
		},
		func(err error) {
			e.logger.Error().Err(err).Msg("all-products subscription error")
		},
	)
	if err != nil {
		return err
	}

	cancelFeatured, err := e.gw.SubscribeFeatured(ctx, FeaturedLimit,
		func(snapshot gateway.Snapshot) {
			if len(snapshot) == 0 {
				e.setFeatured(fallback.FeaturedAvailable(FeaturedLimit))
				return
			}
			e.setFeatured(snapshot)
		},
		func(err error) {
			e.logger.Error().Err(err).Msg("featured subscription error")
		},
	)
	if err != nil {
		cancelAll()
		return err
	}

	e.cancelAll = cancelAll
	e.cancelFeatured = cancelFeatured
	e.logger.Info().Msg("live catalogue subscriptions established")
	return nil
}

// Stop cancels the live subscriptions.
func (e *engine) Stop() {
	if e.cancelAll != nil {
		e.cancelAll()
		e.cancelAll = nil
	}
	if e.cancelFeatured != nil {
		e.cancelFeatured()
		e.cancelFeatured = nil
	}
}

// SubscribeAll registers a full-replacement observer on the all list.
func (e *engine) SubscribeAll(fn func([]model.Product)) func() {
	return e.addObserver(e.allObservers, fn)
}

// SubscribeFeatured registers a full-replacement observer on the featured list.
func (e *engine) SubscribeFeatured(fn func([]model.Product)) func() {
	return e.addObserver(e.featObservers, fn)
}

// Create validates and stores a new product, then reloads both lists.
func (e *engine) Create(ctx context.Context, draft *model.ProductDraft) (string, error) {
	if err := draft.Validate(); err != nil {
		e.logger.Debug().Err(err).Msg("product draft rejected")
		return "", err
	}
	draft.Normalize()

	doc, err := draft.Document()
	if err != nil {
		return "", err
	}

	id, err := e.gw.Create(ctx, doc)
	if err != nil {
		e.logger.Error().Err(err).Str("name", draft.Name).Msg("failed to create product")
		return "", err
	}

	e.LoadAll(ctx)
	e.LoadFeatured(ctx)
	return id, nil
}

// Update validates and applies a partial patch, then reloads both lists.
func (e *engine) Update(ctx context.Context, id string, patch model.ProductPatch) error {
	if err := patch.Validate(); err != nil {
		e.logger.Debug().Err(err).Str("product_id", id).Msg("product patch rejected")
		return err
	}

	if err := e.gw.Update(ctx, id, patch.Normalize()); err != nil {
		e.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return err
	}

	e.LoadAll(ctx)
	e.LoadFeatured(ctx)
	return nil
}

// Delete removes the entry remotely and drops it from the resident lists
// right away. The next subscription snapshot replaces both lists and
// discards this local optimism either way.
func (e *engine) Delete(ctx context.Context, id string) error {
	if err := e.gw.Delete(ctx, id); err != nil {
		e.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return err
	}

	e.mu.Lock()
	e.products = removeByID(e.products, id)
	e.featured = removeByID(e.featured, id)
	e.stats = model.ComputeStats(e.products)
	products := snapshotOf(e.products)
	featured := snapshotOf(e.featured)
	e.mu.Unlock()

	e.notify(e.allObservers, products)
	e.notify(e.featObservers, featured)
	return nil
}

// Search queries the remote store, degrading to the bundled snapshot.
func (e *engine) Search(ctx context.Context, term string) []model.Product {
	results, err := e.gw.Search(ctx, term)
	if err != nil {
		e.logger.Warn().Err(err).Str("term", term).Msg("remote search failed, searching bundled snapshot")
		return fallback.Search(term)
	}
	return results
}

// GetByID looks up an entry remotely, then in the bundled snapshot.
func (e *engine) GetByID(ctx context.Context, id string) *model.Product {
	product, err := e.gw.GetByID(ctx, id)
	if err != nil {
		e.logger.Warn().Err(err).Str("product_id", id).Msg("remote lookup failed, checking bundled snapshot")
		return fallback.ByID(id)
	}
	if product == nil {
		return fallback.ByID(id)
	}
	return product
}

// ByCategory lists one category, locally on remote failure.
func (e *engine) ByCategory(ctx context.Context, category string) []model.Product {
	products, err := e.gw.ListByCategory(ctx, category)
	if err != nil {
		e.logger.Warn().Err(err).Str("category", category).Msg("remote category query failed, filtering bundled snapshot")
		return fallback.ByCategory(category)
	}
	return products
}

// Available lists purchasable products, locally on remote failure.
func (e *engine) Available(ctx context.Context) []model.Product {
	products, err := e.gw.ListAvailable(ctx)
	if err != nil {
		e.logger.Warn().Err(err).Msg("remote availability query failed, filtering bundled snapshot")
		return fallback.Available()
	}
	return products
}

// Products returns a copy of the resident all-products list.
func (e *engine) Products() []model.Product {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return snapshotOf(e.products)
}

// Featured returns a copy of the resident featured list.
func (e *engine) Featured() []model.Product {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return snapshotOf(e.featured)
}

// Stats returns the aggregates over the resident list.
func (e *engine) Stats() model.Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stats
}

func (e *engine) setProducts(products []model.Product, fromLocal bool) []model.Product {
	e.mu.Lock()
	e.products = products
	e.fromLocal = fromLocal
	e.stats = model.ComputeStats(products)
	out := snapshotOf(products)
	e.mu.Unlock()

	e.notify(e.allObservers, out)
	return out
}

func (e *engine) setFeatured(featured []model.Product) []model.Product {
	e.mu.Lock()
	e.featured = featured
	out := snapshotOf(featured)
	e.mu.Unlock()

	e.notify(e.featObservers, out)
	return out
}

func (e *engine) addObserver(observers map[int]func([]model.Product), fn func([]model.Product)) func() {
	e.obsMu.Lock()
	id := e.nextObsID
	e.nextObsID++
	observers[id] = fn
	e.obsMu.Unlock()

	return func() {
		e.obsMu.Lock()
		delete(observers, id)
		e.obsMu.Unlock()
	}
}

// notify fans a snapshot out to registered observers. Callbacks run
// outside the state lock; each observer gets its own copy.
func (e *engine) notify(observers map[int]func([]model.Product), snapshot []model.Product) {
	e.obsMu.Lock()
	fns := make([]func([]model.Product), 0, len(observers))
	for _, fn := range observers {
		fns = append(fns, fn)
	}
	e.obsMu.Unlock()

	for _, fn := range fns {
		fn(snapshotOf(snapshot))
	}
}

func snapshotOf(products []model.Product) []model.Product {
	out := make([]model.Product, len(products))
	copy(out, products)
	return out
}

func removeByID(products []model.Product, id string) []model.Product {
	out := products[:0]
	for _, p := range products {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
