package service

import (
	"context"
	"fmt"
	"strings"

	"prodexa/internal/catalog"
	"prodexa/internal/metrics"
	"prodexa/internal/model"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	catalog Catalog
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(cat Catalog, m *metrics.Metrics, logger zerolog.Logger) ProductService {
	return &productService{
		catalog: cat,
		metrics: m,
		logger:  logger.With().Str("service", "product").Logger(),
	}
}

// List returns every product in catalogue order.
func (s *productService) List(ctx context.Context) (*model.ProductList, error) {
	list := listOf(s.catalog.Current())

	s.logger.Debug().Int("count", list.Count).Msg("listed products")
	return list, nil
}

// Get retrieves a single product by name.
func (s *productService) Get(ctx context.Context, name string) (*model.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.Validation("product name is required")
	}

	p, ok := s.catalog.Current().Lookup(name)
	if !ok {
		s.logger.Debug().Str("product", name).Msg("product not found")
		return nil, model.NotFound("product %q not found", name)
	}
	return &p, nil
}

// Create adds a product.
func (s *productService) Create(ctx context.Context, p model.Product) (*model.Product, error) {
	snap, err := s.catalog.Create(ctx, p)
	if err != nil {
		s.logger.Warn().Err(err).Str("product", p.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	created, _ := snap.Lookup(strings.TrimSpace(p.Name))
	s.logger.Info().Str("product", created.Name).Msg("product created")
	return &created, nil
}

// Update replaces the product called name.
func (s *productService) Update(ctx context.Context, name string, p model.Product) (*model.Product, error) {
	snap, err := s.catalog.Update(ctx, name, p)
	if err != nil {
		s.logger.Warn().Err(err).Str("product", name).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	updated, _ := snap.Lookup(strings.TrimSpace(p.Name))
	s.logger.Info().Str("product", name).Str("new_name", updated.Name).Msg("product updated")
	return &updated, nil
}

// Delete removes the product called name.
func (s *productService) Delete(ctx context.Context, name string) error {
	if _, err := s.catalog.Delete(ctx, name); err != nil {
		s.logger.Warn().Err(err).Str("product", name).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info().Str("product", name).Msg("product deleted")
	return nil
}

// Refresh reloads the catalogue from its store.
func (s *productService) Refresh(ctx context.Context) (*model.ProductList, error) {
	snap, err := s.catalog.Refresh(ctx)
	if err != nil {
		s.metrics.CatalogRefreshed("error")
		s.logger.Error().Err(err).Msg("failed to refresh catalogue")
		return nil, fmt.Errorf("failed to refresh catalogue: %w", err)
	}

	if snap.Warning() != "" {
		s.metrics.CatalogRefreshed("degraded")
	} else {
		s.metrics.CatalogRefreshed("ok")
	}
	return listOf(snap), nil
}

func listOf(snap *catalog.Snapshot) *model.ProductList {
	products := snap.Products()
	return &model.ProductList{
		Products: products,
		Count:    len(products),
		Warning:  snap.Warning(),
	}
}
