package commands

import (
	"fmt"

	"github.com/de-tools/warehouse-atlas/pkg/services/source"
	"github.com/de-tools/warehouse-atlas/pkg/store/catalog"
	"github.com/de-tools/warehouse-atlas/pkg/store/duckdb"
	"github.com/de-tools/warehouse-atlas/pkg/store/duckdb/warehouse"
	"github.com/spf13/cobra"
)

type SeedCmd struct {
	dbPath      string
	catalogPath string
	loader      *catalog.Loader
}

func NewSeedCmd(loader *catalog.Loader) *cobra.Command {
	if loader == nil {
		loader = catalog.NewLoader()
	}
	sc := &SeedCmd{loader: loader}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a warehouse catalog into a DuckDB file",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.dbPath, "db", "warehouse-atlas.db", "Path to the DuckDB file")
	cmd.Flags().StringVar(&sc.catalogPath, "catalog", "", "Catalog file or s3://bucket/key")

	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

func (sc *SeedCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: sc.dbPath})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	store, err := warehouse.NewStore(db)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer store.Close()

	if err := source.Seed(ctx, sc.loader, store, sc.catalogPath); err != nil {
		return err
	}

	warehouses, err := store.ListWarehouses(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s: %d warehouses\n", sc.dbPath, len(warehouses))
	return nil
}
