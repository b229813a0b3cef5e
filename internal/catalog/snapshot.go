package catalog

import (
	"prodexa/internal/model"
)

// Snapshot is an immutable, indexed view of the catalogue at one point in time.
type Snapshot struct {
	products []model.Product
	index    map[string]int
	warning  string
}

// NewSnapshot copies products into a new snapshot. Later mutation of the
// input slice does not affect the snapshot. When names repeat, Lookup returns
// the first record.
func NewSnapshot(products []model.Product) *Snapshot {
	s := &Snapshot{
		products: make([]model.Product, len(products)),
		index:    make(map[string]int, len(products)),
	}
	copy(s.products, products)
	for i, p := range s.products {
		if _, ok := s.index[p.Name]; !ok {
			s.index[p.Name] = i
		}
	}
	return s
}

func emptySnapshot(warning string) *Snapshot {
	s := NewSnapshot(nil)
	s.warning = warning
	return s
}

// Lookup returns the product with the given name.
func (s *Snapshot) Lookup(name string) (model.Product, bool) {
	i, ok := s.index[name]
	if !ok {
		return model.Product{}, false
	}
	return s.products[i], true
}

// Products returns a copy of the catalogue in stored order.
func (s *Snapshot) Products() []model.Product {
	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Len returns the number of products.
func (s *Snapshot) Len() int {
	return len(s.products)
}

// Warning is non-empty when the snapshot was degraded, e.g. after reading a
// corrupt catalogue file.
func (s *Snapshot) Warning() string {
	return s.warning
}
