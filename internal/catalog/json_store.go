package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"prodexa/internal/model"

	"github.com/rs/zerolog"
)

// jsonStore implements Store on a single JSON file holding a product list.
type jsonStore struct {
	path   string
	logger zerolog.Logger
}

// NewJSONStore creates a file-backed catalogue store.
func NewJSONStore(path string, logger zerolog.Logger) Store {
	return &jsonStore{
		path:   path,
		logger: logger.With().Str("component", "catalog-json-store").Logger(),
	}
}

// Load reads the catalogue file. A missing or blank file is an empty catalogue;
// undecodable content returns ErrCorruptCatalog.
func (s *jsonStore) Load(ctx context.Context) ([]model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug().Str("file", s.path).Msg("catalog file not found, starting empty")
			return []model.Product{}, nil
		}
		s.logger.Error().Err(err).Str("file", s.path).Msg("failed to read catalog file")
		return nil, fmt.Errorf("failed to read catalog file %s: %w", s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Product{}, nil
	}

	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		s.logger.Warn().Err(err).Str("file", s.path).Msg("catalog file is not a valid product list")
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptCatalog, s.path, err)
	}
	if products == nil {
		products = []model.Product{}
	}

	s.logger.Debug().
		Str("file", s.path).
		Int("products_loaded", len(products)).
		Msg("catalog file loaded")

	return products, nil
}

// Save writes the full catalogue to a temporary file in the same directory
// and renames it over the target, so readers never see a partial file.
func (s *jsonStore) Save(ctx context.Context, products []model.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if products == nil {
		products = []model.Product{}
	}

	data, err := json.MarshalIndent(products, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create catalog directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		s.logger.Error().Err(err).Str("dir", dir).Msg("failed to create temp catalog file")
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close catalog: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		s.logger.Error().Err(err).Str("file", s.path).Msg("failed to replace catalog file")
		return fmt.Errorf("failed to replace catalog file %s: %w", s.path, err)
	}

	s.logger.Info().
		Str("file", s.path).
		Int("products_saved", len(products)).
		Msg("catalog saved")

	return nil
}
