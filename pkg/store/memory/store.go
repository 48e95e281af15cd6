package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/warehouse-atlas/pkg/models/domain"
	"github.com/de-tools/warehouse-atlas/pkg/models/store"
)

const Kind = "memory"

// Store is an in-process keyed warehouse source. Values are copied on the way in
// and out, so callers never observe later writes through a returned record.
type Store struct {
	mu   sync.RWMutex
	data map[string]store.Warehouse
}

func NewStore() *Store {
	return &Store{data: make(map[string]store.Warehouse)}
}

// NewStoreFromCatalog builds a store holding every warehouse of the catalog
func NewStoreFromCatalog(catalog *store.Catalog) (*Store, error) {
	s := NewStore()
	if catalog == nil {
		return s, nil
	}
	for _, wh := range catalog.Warehouses {
		if err := s.Put(wh); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) Kind() string {
	return Kind
}

func (s *Store) Put(wh store.Warehouse) error {
	if wh.ID == "" {
		return fmt.Errorf("warehouse id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[wh.ID] = wh.Clone()
	return nil
}

func (s *Store) GetWarehouse(_ context.Context, id string) (*store.Warehouse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wh, found := s.data[id]
	if !found {
		return nil, fmt.Errorf("warehouse %q: %w", id, domain.ErrNotFound)
	}
	out := wh.Clone()
	return &out, nil
}

// ListWarehouses returns all warehouses sorted by id
func (s *Store) ListWarehouses(_ context.Context) ([]store.Warehouse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Warehouse, 0, len(s.data))
	for _, wh := range s.data {
		out = append(out, wh.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
