package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"prodexa/internal/model"

	"github.com/rs/zerolog"
)

// Manager owns the current catalogue snapshot and applies whole-collection
// mutations through a Store. Snapshots handed out are never modified; every
// change publishes a new one.
type Manager struct {
	store  Store
	logger zerolog.Logger

	writeMu sync.Mutex
	mu      sync.RWMutex
	current *Snapshot
}

// NewManager creates a manager holding an empty snapshot. Call Refresh to load
// the store.
func NewManager(store Store, logger zerolog.Logger) *Manager {
	return &Manager{
		store:   store,
		logger:  logger.With().Str("component", "catalog-manager").Logger(),
		current: NewSnapshot(nil),
	}
}

// Current returns the latest published snapshot.
func (m *Manager) Current() *Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Refresh discards the in-memory catalogue and reloads it from the store.
// Corrupt data degrades to an empty snapshot carrying a warning; any other
// load failure is returned as an I/O error and the previous snapshot is kept.
// Records that fail validation or repeat an earlier name are dropped and
// counted in the snapshot warning.
func (m *Manager) Refresh(ctx context.Context) (*Snapshot, error) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	products, err := m.store.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrCorruptCatalog) {
			m.logger.Warn().Err(err).Msg("catalog is corrupt, continuing with an empty catalog")
			snap := emptySnapshot("Product data could not be read and was treated as empty.")
			m.publish(snap)
			return snap, nil
		}
		m.logger.Error().Err(err).Msg("failed to refresh catalog")
		return nil, fmt.Errorf("%w: %v", model.IO("catalog unavailable"), err)
	}

	valid, skipped := m.sanitise(products)
	snap := NewSnapshot(valid)
	if skipped > 0 {
		snap.warning = fmt.Sprintf("%d product record(s) were skipped because they were invalid or duplicated.", skipped)
	}
	m.publish(snap)

	m.logger.Info().Int("products", snap.Len()).Int("skipped", skipped).Msg("catalog refreshed")

	return snap, nil
}

// Create appends a new product. Names must be unique.
func (m *Manager) Create(ctx context.Context, p model.Product) (*Snapshot, error) {
	p = normalise(p)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return m.mutate(ctx, func(products []model.Product) ([]model.Product, error) {
		if indexOf(products, p.Name) >= 0 {
			return nil, model.Validation("product %q already exists", p.Name)
		}
		return append(products, p), nil
	})
}

// Update replaces the product stored under name. The replacement may carry a
// new name as long as it does not collide with another product.
func (m *Manager) Update(ctx context.Context, name string, p model.Product) (*Snapshot, error) {
	p = normalise(p)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return m.mutate(ctx, func(products []model.Product) ([]model.Product, error) {
		i := indexOf(products, name)
		if i < 0 {
			return nil, model.NotFound("product %q not found", name)
		}
		if p.Name != name && indexOf(products, p.Name) >= 0 {
			return nil, model.Validation("product %q already exists", p.Name)
		}
		products[i] = p
		return products, nil
	})
}

// Delete removes the product stored under name.
func (m *Manager) Delete(ctx context.Context, name string) (*Snapshot, error) {
	return m.mutate(ctx, func(products []model.Product) ([]model.Product, error) {
		i := indexOf(products, name)
		if i < 0 {
			return nil, model.NotFound("product %q not found", name)
		}
		return append(products[:i], products[i+1:]...), nil
	})
}

func (m *Manager) mutate(ctx context.Context, apply func([]model.Product) ([]model.Product, error)) (*Snapshot, error) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	products, err := apply(m.Current().Products())
	if err != nil {
		return nil, err
	}

	if err := m.store.Save(ctx, products); err != nil {
		m.logger.Error().Err(err).Msg("failed to save catalog")
		return nil, fmt.Errorf("%w: %v", model.IO("failed to save catalog"), err)
	}

	snap := NewSnapshot(products)
	m.publish(snap)
	return snap, nil
}

func (m *Manager) publish(snap *Snapshot) {
	m.mu.Lock()
	m.current = snap
	m.mu.Unlock()
}

// sanitise keeps the first valid record for each name.
func (m *Manager) sanitise(products []model.Product) ([]model.Product, int) {
	valid := make([]model.Product, 0, len(products))
	seen := make(map[string]bool, len(products))
	skipped := 0
	for i, p := range products {
		if err := p.Validate(); err != nil {
			m.logger.Warn().Err(err).Int("position", i).Str("product", p.Name).Msg("skipping invalid catalog record")
			skipped++
			continue
		}
		if seen[p.Name] {
			m.logger.Warn().Int("position", i).Str("product", p.Name).Msg("skipping duplicate catalog record")
			skipped++
			continue
		}
		seen[p.Name] = true
		valid = append(valid, p)
	}
	return valid, skipped
}

// indexOf returns the first position of name, matching Snapshot.Lookup.
func indexOf(products []model.Product, name string) int {
	for i, p := range products {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func normalise(p model.Product) model.Product {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	return p
}
