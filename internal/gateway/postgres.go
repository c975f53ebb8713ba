package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cucinanostrard/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// DefaultChannel is the NOTIFY channel the schema trigger fires on.
const DefaultChannel = "products_changed"

// postgresGateway implements ProductGateway against a products table that
// stores each entry as one JSONB document. Change notifications ride on
// LISTEN/NOTIFY via a statement-level trigger.
type postgresGateway struct {
	pool    *pgxpool.Pool
	channel string
	logger  zerolog.Logger
}

// NewPostgresGateway creates a Postgres-backed product gateway listening
// for change notifications on the given channel (DefaultChannel if empty).
func NewPostgresGateway(pool *pgxpool.Pool, channel string, logger zerolog.Logger) ProductGateway {
	if channel == "" {
		channel = DefaultChannel
	}
	return &postgresGateway{
		pool:    pool,
		channel: channel,
		logger:  logger.With().Str("component", "product-gateway").Logger(),
	}
}

// EnsureSchema creates the products table and the change-notification
// trigger if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, channel string) error {
	if channel == "" {
		channel = DefaultChannel
	}

	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			doc JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE OR REPLACE FUNCTION notify_products_changed() RETURNS trigger AS $f$
		BEGIN
			PERFORM pg_notify(%s, TG_OP);
			RETURN NULL;
		END;
		$f$ LANGUAGE plpgsql;

		DROP TRIGGER IF EXISTS products_changed ON products;
		CREATE TRIGGER products_changed
			AFTER INSERT OR UPDATE OR DELETE ON products
			FOR EACH STATEMENT EXECUTE FUNCTION notify_products_changed();
	`, quoteLiteral(channel))

	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure products schema: %w", err)
	}
	return nil
}

// ListAll retrieves the full collection, newest first.
func (g *postgresGateway) ListAll(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT id, doc, created_at, updated_at
		FROM products
		ORDER BY created_at DESC
	`
	return g.queryProducts(ctx, query)
}

// ListFeatured retrieves featured, available entries by popularity.
func (g *postgresGateway) ListFeatured(ctx context.Context, limit int) ([]model.Product, error) {
	query := `
		SELECT id, doc, created_at, updated_at
		FROM products
		WHERE (doc->>'featured')::boolean AND (doc->>'available')::boolean
		ORDER BY (doc->>'popularityScore')::numeric DESC
		LIMIT $1
	`
	return g.queryProducts(ctx, query, limit)
}

// ListByCategory retrieves one category by popularity.
func (g *postgresGateway) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	query := `
		SELECT id, doc, created_at, updated_at
		FROM products
		WHERE doc->>'category' = $1
		ORDER BY (doc->>'popularityScore')::numeric DESC
	`
	return g.queryProducts(ctx, query, category)
}

// ListAvailable retrieves available entries by popularity.
func (g *postgresGateway) ListAvailable(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT id, doc, created_at, updated_at
		FROM products
		WHERE (doc->>'available')::boolean
		ORDER BY (doc->>'popularityScore')::numeric DESC
	`
	return g.queryProducts(ctx, query)
}

// GetByID retrieves a single entry, (nil, nil) when absent.
func (g *postgresGateway) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `
		SELECT id, doc, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	row := g.pool.QueryRow(ctx, query, id)
	product, err := scanProduct(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			g.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		g.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return product, nil
}

// Search matches name, description, category and tags case-insensitively.
func (g *postgresGateway) Search(ctx context.Context, term string) ([]model.Product, error) {
	query := `
		SELECT id, doc, created_at, updated_at
		FROM products
		WHERE doc->>'name' ILIKE $1
		   OR doc->>'description' ILIKE $1
		   OR doc->>'category' ILIKE $1
		   OR EXISTS (
			SELECT 1 FROM jsonb_array_elements_text(doc->'tags') AS tag
			WHERE tag ILIKE $1
		   )
		ORDER BY created_at DESC
	`
	return g.queryProducts(ctx, query, "%"+term+"%")
}

// Create stores the document under a freshly assigned id.
func (g *postgresGateway) Create(ctx context.Context, doc map[string]interface{}) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode product document: %w", err)
	}

	id := uuid.NewString()
	query := `
		INSERT INTO products (id, doc)
		VALUES ($1, $2)
	`

	if _, err := g.pool.Exec(ctx, query, id, raw); err != nil {
		g.logger.Error().Err(err).Msg("failed to create product")
		return "", fmt.Errorf("failed to create product: %w", err)
	}

	g.logger.Info().Str("product_id", id).Msg("product created")
	return id, nil
}

// Update merges the patch into the stored document and bumps updated_at.
func (g *postgresGateway) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	raw, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("failed to encode product patch: %w", err)
	}

	query := `
		UPDATE products
		SET doc = doc || $2, updated_at = now()
		WHERE id = $1
	`

	tag, err := g.pool.Exec(ctx, query, id, raw)
	if err != nil {
		g.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	g.logger.Info().Str("product_id", id).Msg("product updated")
	return nil
}

// Delete removes the entry. No soft delete.
func (g *postgresGateway) Delete(ctx context.Context, id string) error {
	tag, err := g.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		g.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	g.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

// CountByCategory returns entry counts grouped by category.
func (g *postgresGateway) CountByCategory(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT doc->>'category', COUNT(*)
		FROM products
		GROUP BY doc->>'category'
	`

	rows, err := g.pool.Query(ctx, query)
	if err != nil {
		g.logger.Error().Err(err).Msg("failed to count products by category")
		return nil, fmt.Errorf("failed to count products by category: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts[category] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category counts: %w", err)
	}

	return counts, nil
}

// Subscribe pushes the full ListAll result set on every change.
func (g *postgresGateway) Subscribe(ctx context.Context, onChange func(Snapshot), onErr func(error)) (func(), error) {
	return g.subscribe(ctx, onChange, onErr, func(ctx context.Context) ([]model.Product, error) {
		return g.ListAll(ctx)
	})
}

// SubscribeFeatured pushes the featured result set on every change.
func (g *postgresGateway) SubscribeFeatured(ctx context.Context, limit int, onChange func(Snapshot), onErr func(error)) (func(), error) {
	return g.subscribe(ctx, onChange, onErr, func(ctx context.Context) ([]model.Product, error) {
		return g.ListFeatured(ctx, limit)
	})
}

// subscribe holds a dedicated connection on LISTEN and re-runs the query
// after each notification. A lost listener connection is re-acquired with
// exponential backoff and a recovery snapshot is pushed once restored, so
// the subscription survives store outages. It ends only when its context
// is cancelled.
func (g *postgresGateway) subscribe(
	ctx context.Context,
	onChange func(Snapshot),
	onErr func(error),
	load func(context.Context) ([]model.Product, error),
) (func(), error) {
	conn, err := g.listenConn(ctx)
	if err != nil {
		return nil, err
	}

	subCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)

		for {
			err := g.waitLoop(subCtx, conn, onChange, onErr, load)
			conn.Release()
			if subCtx.Err() != nil {
				return
			}

			g.logger.Error().Err(err).Msg("subscription listener lost, reconnecting")
			if onErr != nil {
				onErr(err)
			}

			conn = g.relisten(subCtx)
			if conn == nil {
				return
			}
			// Changes may have landed while the listener was down.
			g.pushSnapshot(subCtx, onChange, onErr, load)
		}
	}()

	return func() {
		cancel()
		<-done
	}, nil
}

// listenConn acquires a dedicated connection and puts it on LISTEN.
func (g *postgresGateway) listenConn(ctx context.Context) (*pgxpool.Conn, error) {
	conn, err := g.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire listener connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{g.channel}.Sanitize()); err != nil {
		conn.Release()
		return nil, fmt.Errorf("failed to listen on %s: %w", g.channel, err)
	}
	return conn, nil
}

// waitLoop blocks on notifications until the connection fails or the
// context is cancelled, pushing a fresh snapshot for each one.
func (g *postgresGateway) waitLoop(
	ctx context.Context,
	conn *pgxpool.Conn,
	onChange func(Snapshot),
	onErr func(error),
	load func(context.Context) ([]model.Product, error),
) error {
	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		g.logger.Debug().
			Str("channel", notification.Channel).
			Str("op", notification.Payload).
			Msg("catalogue change notification")

		g.pushSnapshot(ctx, onChange, onErr, load)
	}
}

// pushSnapshot runs one bounded requery and delivers the result, so one
// wedged query can't stall the listener forever.
func (g *postgresGateway) pushSnapshot(
	ctx context.Context,
	onChange func(Snapshot),
	onErr func(error),
	load func(context.Context) ([]model.Product, error),
) {
	loadCtx, loadCancel := context.WithTimeout(ctx, 15*time.Second)
	products, err := load(loadCtx)
	loadCancel()
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		g.logger.Error().Err(err).Msg("failed to reload snapshot after notification")
		if onErr != nil {
			onErr(err)
		}
		return
	}

	onChange(products)
}

// relisten re-acquires a LISTEN connection with exponential backoff,
// returning nil once the context is cancelled.
func (g *postgresGateway) relisten(ctx context.Context) *pgxpool.Conn {
	backoff := time.Second
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}

		conn, err := g.listenConn(ctx)
		if err == nil {
			g.logger.Info().Msg("catalogue listener restored")
			return conn
		}
		if ctx.Err() != nil {
			return nil
		}

		g.logger.Warn().Err(err).Dur("retry_in", backoff).Msg("failed to restore catalogue listener")
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

// quoteLiteral renders s as a single-quoted SQL string literal. The
// NOTIFY channel is spliced into the trigger body as a literal, so it
// gets the same escaping care the LISTEN side gets from pgx.Identifier.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// queryProducts runs a product SELECT and scans the result set.
func (g *postgresGateway) queryProducts(ctx context.Context, query string, args ...interface{}) ([]model.Product, error) {
	rows, err := g.pool.Query(ctx, query, args...)
	if err != nil {
		g.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			g.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		g.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// scanProduct decodes one (id, doc, created_at, updated_at) row. The id
// and both timestamps live in columns and override whatever the document
// carries; the store, not the client, owns them.
func scanProduct(row pgx.Row) (*model.Product, error) {
	var (
		id        string
		raw       []byte
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&id, &raw, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var product model.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil, fmt.Errorf("failed to decode product document %s: %w", id, err)
	}

	product.ID = id
	product.CreatedAt = createdAt
	product.UpdatedAt = updatedAt
	return &product, nil
}
