package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const WarehousesTableSchema = `
	CREATE TABLE IF NOT EXISTS warehouses (
		warehouse_id VARCHAR NOT NULL,
		name VARCHAR NOT NULL,
		city VARCHAR NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (warehouse_id)
	);
`
const ProductsTableSchema = `
	CREATE TABLE IF NOT EXISTS warehouse_products (
		warehouse_id VARCHAR NOT NULL,
		position INTEGER NOT NULL,
		product_id VARCHAR NOT NULL,
		product_name VARCHAR NOT NULL,
		product_quantity INTEGER NOT NULL,
		PRIMARY KEY (warehouse_id, product_id)
	);
`

var bootQueries = []string{
	WarehousesTableSchema,
	ProductsTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	if settings.DbPath == "" {
		return nil, fmt.Errorf("duckdb path is required")
	}
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		bootQueries := append([]string{}, bootQueries...)

		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
