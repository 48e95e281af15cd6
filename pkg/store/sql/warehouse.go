package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/de-tools/warehouse-atlas/pkg/models/domain"
	"github.com/de-tools/warehouse-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

const (
	DefaultWarehousesTable = "warehouses"
	DefaultProductsTable   = "warehouse_products"
)

// WarehouseReader looks warehouses up in any database/sql backend holding the
// warehouses / warehouse_products layout.
type WarehouseReader interface {
	Kind() string
	GetWarehouse(ctx context.Context, id string) (*store.Warehouse, error)
	ListWarehouses(ctx context.Context) ([]store.Warehouse, error)
	Close() error
}

type Option func(*reader)

// WithTables points the reader at fully qualified table names, e.g. main.inventory.warehouses
func WithTables(warehouses, products string) Option {
	return func(r *reader) {
		if warehouses != "" {
			r.warehousesTable = warehouses
		}
		if products != "" {
			r.productsTable = products
		}
	}
}

type reader struct {
	db              *sql.DB
	kind            string // e.g. "duckdb", "databricks", "snowflake"
	warehousesTable string
	productsTable   string
}

func NewWarehouseReader(db *sql.DB, kind string, opts ...Option) (WarehouseReader, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	r := &reader{
		db:              db,
		kind:            kind,
		warehousesTable: DefaultWarehousesTable,
		productsTable:   DefaultProductsTable,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *reader) Kind() string {
	return r.kind
}

func (r *reader) GetWarehouse(ctx context.Context, id string) (*store.Warehouse, error) {
	query := fmt.Sprintf(
		`SELECT warehouse_id, name, city FROM %s WHERE warehouse_id = ?`,
		r.warehousesTable,
	)

	var wh store.Warehouse
	err := r.db.QueryRowContext(ctx, query, id).Scan(&wh.ID, &wh.Name, &wh.City)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("warehouse %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s warehouse query failed: %w", r.kind, err)
	}

	products, err := r.products(ctx, id)
	if err != nil {
		return nil, err
	}
	wh.Products = products
	return &wh, nil
}

func (r *reader) ListWarehouses(ctx context.Context) ([]store.Warehouse, error) {
	logger := zerolog.Ctx(ctx)
	query := fmt.Sprintf(
		`SELECT warehouse_id, name, city FROM %s ORDER BY warehouse_id`,
		r.warehousesTable,
	)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s warehouse list query failed: %w", r.kind, err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close warehouse rows")
		}
	}(rows)

	warehouses := make([]store.Warehouse, 0)
	for rows.Next() {
		var wh store.Warehouse
		if err := rows.Scan(&wh.ID, &wh.Name, &wh.City); err != nil {
			return nil, err
		}
		warehouses = append(warehouses, wh)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range warehouses {
		products, err := r.products(ctx, warehouses[i].ID)
		if err != nil {
			return nil, err
		}
		warehouses[i].Products = products
	}
	return warehouses, nil
}

func (r *reader) Close() error {
	return r.db.Close()
}

func (r *reader) products(ctx context.Context, warehouseID string) ([]store.Product, error) {
	logger := zerolog.Ctx(ctx)
	query := fmt.Sprintf(
		`SELECT product_id, product_name, product_quantity FROM %s WHERE warehouse_id = ? ORDER BY position`,
		r.productsTable,
	)

	rows, err := r.db.QueryContext(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("%s product query failed: %w", r.kind, err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close product rows")
		}
	}(rows)

	products := make([]store.Product, 0)
	for rows.Next() {
		var p store.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
