// Package catalog holds the loaded product catalog as an immutable, swappable snapshot.
package catalog

import (
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hyperjump/erabu/internal/models"
)

// Snapshot is one immutable catalog load. Products keep insertion order.
type Snapshot struct {
	Version  string
	LoadedAt time.Time
	products []models.NormalizedProduct
	byID     map[int64]int
}

// Count returns the number of products in the snapshot.
func (s *Snapshot) Count() int {
	return len(s.products)
}

// Store serves reads from the current snapshot. Load replaces it wholesale.
type Store struct {
	writeMu sync.Mutex
	current atomic.Pointer[Snapshot]
}

// NewStore returns an empty store.
func NewStore() *Store {
	s := &Store{}
	s.current.Store(newSnapshot(nil))
	return s
}

// Load builds a new snapshot from products and publishes it. Products are
// trusted: callers loading raw records go through normalize first. When ids
// repeat, the first occurrence wins.
func (s *Store) Load(products []models.NormalizedProduct) *Snapshot {
	snap := newSnapshot(products)
	s.writeMu.Lock()
	s.current.Store(snap)
	s.writeMu.Unlock()
	return snap
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// All returns a copy of every product in catalog order.
func (s *Store) All() []models.NormalizedProduct {
	return s.current.Load().All()
}

// ByID returns the product with id.
func (s *Store) ByID(id int64) (models.NormalizedProduct, bool) {
	return s.current.Load().ByID(id)
}

// ByIDs returns the products for ids in the order given, skipping unknown ids.
func (s *Store) ByIDs(ids []int64) []models.NormalizedProduct {
	return s.current.Load().ByIDs(ids)
}

// Count returns the number of loaded products.
func (s *Store) Count() int {
	return s.current.Load().Count()
}

// All returns a deep copy of every product in catalog order.
func (s *Snapshot) All() []models.NormalizedProduct {
	out := make([]models.NormalizedProduct, len(s.products))
	for i := range s.products {
		out[i] = clone(s.products[i])
	}
	return out
}

// ByID returns the product with id.
func (s *Snapshot) ByID(id int64) (models.NormalizedProduct, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.NormalizedProduct{}, false
	}
	return clone(s.products[i]), true
}

// ByIDs returns the products for ids in the order given, skipping unknown ids.
func (s *Snapshot) ByIDs(ids []int64) []models.NormalizedProduct {
	out := make([]models.NormalizedProduct, 0, len(ids))
	for _, id := range ids {
		if i, ok := s.byID[id]; ok {
			out = append(out, clone(s.products[i]))
		}
	}
	return out
}

func newSnapshot(products []models.NormalizedProduct) *Snapshot {
	snap := &Snapshot{
		Version:  uuid.New().String(),
		LoadedAt: time.Now(),
		products: make([]models.NormalizedProduct, 0, len(products)),
		byID:     make(map[int64]int, len(products)),
	}
	for _, p := range products {
		if _, dup := snap.byID[p.ID]; dup {
			continue
		}
		snap.byID[p.ID] = len(snap.products)
		snap.products = append(snap.products, clone(p))
	}
	return snap
}

// clone copies p along with its slices and map so the copy shares no
// memory with the snapshot. Nil fields stay nil.
func clone(p models.NormalizedProduct) models.NormalizedProduct {
	p.Tags = slices.Clone(p.Tags)
	p.Images = slices.Clone(p.Images)
	p.Variants = slices.Clone(p.Variants)
	p.Attributes = maps.Clone(p.Attributes)
	p.Embedding = slices.Clone(p.Embedding)
	return p
}
