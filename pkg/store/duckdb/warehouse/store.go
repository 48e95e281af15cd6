package warehouse

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/warehouse-atlas/pkg/models/store"
	"github.com/de-tools/warehouse-atlas/pkg/store/duckdb"
	sqlstore "github.com/de-tools/warehouse-atlas/pkg/store/sql"
)

const Kind = "duckdb"

// Store supports both ingestion (Add) and lookups for warehouses kept in DuckDB.
// Reads share the generic SQL reader so every SQL backend returns the same shape.
type Store interface {
	Kind() string
	Add(ctx context.Context, warehouses []store.Warehouse) error
	GetWarehouse(ctx context.Context, id string) (*store.Warehouse, error)
	ListWarehouses(ctx context.Context) ([]store.Warehouse, error)
	Close() error
}

type warehouseStore struct {
	db *sql.DB
	sqlstore.WarehouseReader
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	reader, err := sqlstore.NewWarehouseReader(db, Kind)
	if err != nil {
		return nil, err
	}
	return &warehouseStore{
		db:              db,
		WarehouseReader: reader,
	}, nil
}

// Add upserts the given warehouses. Products of an existing warehouse are replaced,
// keeping the order they are passed in. A transaction stored in ctx is reused.
func (s *warehouseStore) Add(ctx context.Context, warehouses []store.Warehouse) error {
	if len(warehouses) == 0 {
		return nil
	}

	return duckdb.InTransaction(ctx, s.db, func(tx *sql.Tx) error {
		return s.add(ctx, tx, warehouses)
	})
}

func (s *warehouseStore) add(ctx context.Context, tx *sql.Tx, warehouses []store.Warehouse) error {
	whStmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO warehouses (warehouse_id, name, city, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)`)
	if err != nil {
		return fmt.Errorf("prepare warehouse statement: %w", err)
	}
	defer whStmt.Close()

	productStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO warehouse_products (
			warehouse_id, position, product_id, product_name, product_quantity
		) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare product statement: %w", err)
	}
	defer productStmt.Close()

	for _, wh := range warehouses {
		if wh.ID == "" {
			return fmt.Errorf("warehouse id is required")
		}
		if _, err := whStmt.ExecContext(ctx, wh.ID, wh.Name, wh.City); err != nil {
			return fmt.Errorf("upsert warehouse %q: %w", wh.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM warehouse_products WHERE warehouse_id = ?`, wh.ID); err != nil {
			return fmt.Errorf("clear products of %q: %w", wh.ID, err)
		}
		for position, p := range wh.Products {
			_, err := productStmt.ExecContext(ctx, wh.ID, position, p.ID, p.Name, p.Quantity)
			if err != nil {
				return fmt.Errorf("insert product %q of %q: %w", p.ID, wh.ID, err)
			}
		}
	}

	return nil
}
