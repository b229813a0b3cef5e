package catalog

import (
	"context"
	"fmt"

	"prodexa/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS catalog_products (
		position INTEGER NOT NULL,
		name TEXT PRIMARY KEY,
		price NUMERIC(12, 2) NOT NULL CHECK (price >= 0),
		stock INTEGER NOT NULL CHECK (stock >= 0),
		category TEXT NOT NULL DEFAULT '',
		brand TEXT NOT NULL DEFAULT '',
		unit TEXT NOT NULL DEFAULT '',
		customer TEXT NOT NULL DEFAULT '',
		purchase_date TEXT NOT NULL DEFAULT '',
		sku TEXT NOT NULL DEFAULT '',
		expiry TEXT NOT NULL DEFAULT '',
		discount TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT ''
	);

	ALTER TABLE catalog_products ADD COLUMN IF NOT EXISTS customer TEXT NOT NULL DEFAULT '';
	ALTER TABLE catalog_products ADD COLUMN IF NOT EXISTS purchase_date TEXT NOT NULL DEFAULT '';
	ALTER TABLE catalog_products ADD COLUMN IF NOT EXISTS discount TEXT NOT NULL DEFAULT '';
`

// postgresStore implements Store on a PostgreSQL table. The whole table is
// read on Load and rewritten in one transaction on Save.
type postgresStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresStore creates a PostgreSQL-backed catalogue store.
func NewPostgresStore(pool *pgxpool.Pool, logger zerolog.Logger) Store {
	return &postgresStore{
		pool:   pool,
		logger: logger.With().Str("component", "catalog-postgres-store").Logger(),
	}
}

// EnsureSchema creates the catalogue table if it does not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create catalog schema: %w", err)
	}
	return nil
}

// Load retrieves every product in stored order.
func (s *postgresStore) Load(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT name, price::text, stock, category, brand, unit, customer, purchase_date, sku, expiry, discount, notes
		FROM catalog_products
		ORDER BY position
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query catalog")
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var (
			p     model.Product
			price string
		)
		err := rows.Scan(&p.Name, &price, &p.Stock, &p.Category, &p.Brand, &p.Unit,
			&p.Customer, &p.Date, &p.SKU, &p.Expiry, &p.Discount, &p.Notes)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to scan catalog row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("%w: price %q for %s: %v", ErrCorruptCatalog, price, p.Name, err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		s.logger.Error().Err(err).Msg("error iterating catalog rows")
		return nil, fmt.Errorf("error iterating catalog: %w", err)
	}

	return products, nil
}

// Save replaces the catalogue table contents with products.
func (s *postgresStore) Save(ctx context.Context, products []model.Product) (err error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to save catalog: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM catalog_products`); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	batch := &pgx.Batch{}
	for i, p := range products {
		batch.Queue(`
			INSERT INTO catalog_products (position, name, price, stock, category, brand, unit,
				customer, purchase_date, sku, expiry, discount, notes)
			VALUES ($1, $2, $3::text::numeric, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			i, p.Name, p.Price.String(), p.Stock, p.Category, p.Brand, p.Unit,
			p.Customer, p.Date, p.SKU, p.Expiry, p.Discount, p.Notes,
		)
	}

	if err = tx.SendBatch(ctx, batch).Close(); err != nil {
		s.logger.Error().Err(err).Int("count", len(products)).Msg("failed to insert catalog rows")
		return fmt.Errorf("failed to insert catalog rows: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit transaction")
		return fmt.Errorf("failed to save catalog: %w", err)
	}

	s.logger.Info().Int("products_saved", len(products)).Msg("catalog saved")

	return nil
}
