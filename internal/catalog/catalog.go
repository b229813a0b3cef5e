package catalog

import (
	"context"
	"errors"

	"prodexa/internal/model"
)

// ErrCorruptCatalog is returned by a Store whose backing data cannot be decoded.
var ErrCorruptCatalog = errors.New("catalog data is corrupt")

// Store defines whole-collection access to the product catalogue.
type Store interface {
	// Load returns every product. A missing backing store yields an empty list.
	Load(ctx context.Context) ([]model.Product, error)

	// Save replaces the stored catalogue with products.
	Save(ctx context.Context, products []model.Product) error
}

