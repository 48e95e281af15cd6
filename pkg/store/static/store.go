package static

import (
	"context"

	"github.com/de-tools/warehouse-atlas/pkg/models/store"
)

const Kind = "static"

const (
	WarehouseName   = "Linz Bahnhof (gRPC)"
	WarehouseCity   = "Linz"
	ProductID       = "00-443175"
	ProductName     = "Bio Orangensaft Sonne"
	ProductQuantity = 2500
)

// Store answers every lookup with the same fixed warehouse, echoing the requested id.
// It never fails and holds no state.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Kind() string {
	return Kind
}

func (s *Store) GetWarehouse(_ context.Context, id string) (*store.Warehouse, error) {
	return &store.Warehouse{
		ID:   id,
		Name: WarehouseName,
		City: WarehouseCity,
		Products: []store.Product{
			{ID: ProductID, Name: ProductName, Quantity: ProductQuantity},
		},
	}, nil
}
