package source

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/databricks/databricks-sql-go"
	"github.com/de-tools/warehouse-atlas/pkg/models/store"
	"github.com/de-tools/warehouse-atlas/pkg/services/config"
	"github.com/de-tools/warehouse-atlas/pkg/services/warehouse"
	"github.com/de-tools/warehouse-atlas/pkg/store/catalog"
	"github.com/de-tools/warehouse-atlas/pkg/store/duckdb"
	duckwarehouse "github.com/de-tools/warehouse-atlas/pkg/store/duckdb/warehouse"
	"github.com/de-tools/warehouse-atlas/pkg/store/memory"
	sqlstore "github.com/de-tools/warehouse-atlas/pkg/store/sql"
	"github.com/de-tools/warehouse-atlas/pkg/store/static"
	"github.com/rs/zerolog"
	sf "github.com/snowflakedb/gosnowflake"
)

const (
	KindDatabricks = "databricks"
	KindSnowflake  = "snowflake"
)

// NewDefaultRegistry registers every built-in source kind
func NewDefaultRegistry(loader *catalog.Loader) (Registry, error) {
	if loader == nil {
		loader = catalog.NewLoader()
	}
	f := &factories{loader: loader}

	r := NewRegistry()
	for kind, factory := range map[string]Factory{
		static.Kind:        f.static,
		memory.Kind:        f.memory,
		duckwarehouse.Kind: f.duckdb,
		KindDatabricks:     f.databricks,
		KindSnowflake:      f.snowflake,
	} {
		if err := r.Register(kind, factory); err != nil {
			return nil, err
		}
	}
	return r, nil
}

type factories struct {
	loader *catalog.Loader
}

func (f *factories) static(_ context.Context, _ Settings) (warehouse.Source, error) {
	return static.NewStore(), nil
}

func (f *factories) memory(ctx context.Context, settings Settings) (warehouse.Source, error) {
	cat, err := f.catalog(ctx, settings.Catalog)
	if err != nil {
		return nil, err
	}
	s, err := memory.NewStoreFromCatalog(cat)
	if err != nil {
		return nil, err
	}
	if err := logLoaded(ctx, memory.Kind, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (f *factories) duckdb(ctx context.Context, settings Settings) (warehouse.Source, error) {
	path := settings.DBPath
	if settings.Profile != "" {
		profile, err := loadProfile(ctx, settings)
		if err != nil {
			return nil, err
		}
		if profile.Path != "" {
			path = profile.Path
		}
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: path})
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb %s: %w", path, err)
	}
	s, err := duckwarehouse.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	if settings.Catalog != "" {
		if err := Seed(ctx, f.loader, s, settings.Catalog); err != nil {
			_ = s.Close()
			return nil, err
		}
	}
	if err := logLoaded(ctx, duckwarehouse.Kind, s); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func (f *factories) databricks(ctx context.Context, settings Settings) (warehouse.Source, error) {
	profile, err := loadProfile(ctx, settings)
	if err != nil {
		return nil, err
	}
	dsn, err := DatabricksDSN(profile)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("databricks", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Databricks: %w", err)
	}
	return sqlstore.NewWarehouseReader(db, KindDatabricks, sqlstore.WithTables(profile.WarehousesTable, profile.ProductsTable))
}

func (f *factories) snowflake(ctx context.Context, settings Settings) (warehouse.Source, error) {
	profile, err := loadProfile(ctx, settings)
	if err != nil {
		return nil, err
	}
	dsn, err := SnowflakeDSN(profile)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Snowflake: %w", err)
	}
	return sqlstore.NewWarehouseReader(db, KindSnowflake, sqlstore.WithTables(profile.WarehousesTable, profile.ProductsTable))
}

func (f *factories) catalog(ctx context.Context, location string) (*store.Catalog, error) {
	if location == "" {
		zerolog.Ctx(ctx).Warn().Msg("no catalog configured, memory source starts empty")
		return &store.Catalog{}, nil
	}
	return f.loader.Load(ctx, location)
}

// Lister is implemented by sources that can enumerate their warehouses
type Lister interface {
	ListWarehouses(ctx context.Context) ([]store.Warehouse, error)
}

func logLoaded(ctx context.Context, kind string, src Lister) error {
	warehouses, err := src.ListWarehouses(ctx)
	if err != nil {
		return fmt.Errorf("failed to list %s warehouses: %w", kind, err)
	}
	zerolog.Ctx(ctx).Info().
		Str("source", kind).
		Int("warehouses", len(warehouses)).
		Msg("source loaded")
	return nil
}

// Adder is implemented by sources accepting bulk writes
type Adder interface {
	Add(ctx context.Context, warehouses []store.Warehouse) error
}

// Seed loads the catalog at location and writes every warehouse into dst
func Seed(ctx context.Context, loader *catalog.Loader, dst Adder, location string) error {
	cat, err := loader.Load(ctx, location)
	if err != nil {
		return err
	}
	if err := dst.Add(ctx, cat.Warehouses); err != nil {
		return fmt.Errorf("failed to seed catalog %s: %w", location, err)
	}
	zerolog.Ctx(ctx).Info().
		Str("catalog", location).
		Int("warehouses", len(cat.Warehouses)).
		Msg("catalog seeded")
	return nil
}

func loadProfile(ctx context.Context, settings Settings) (*config.Profile, error) {
	if settings.Profile == "" {
		return nil, fmt.Errorf("source %q requires a profile", settings.Kind)
	}
	reg, err := config.NewRegistry(settings.ProfilesFile)
	if err != nil {
		return nil, err
	}
	profile, err := reg.GetProfile(ctx, settings.Profile)
	if err != nil {
		return nil, err
	}
	if profile.Driver != "" && profile.Driver != settings.Kind {
		return nil, fmt.Errorf("profile %s uses driver %q, not %q", profile.Name, profile.Driver, settings.Kind)
	}
	return profile, nil
}

// DatabricksDSN builds a databricks-sql-go DSN, token:<token>@<host><http_path>?catalog=..&schema=..
func DatabricksDSN(profile *config.Profile) (string, error) {
	if err := config.ResolveDatabricks(profile); err != nil {
		return "", err
	}
	if profile.HTTPPath == "" {
		return "", fmt.Errorf("profile %s: http_path is required", profile.Name)
	}

	host := strings.TrimPrefix(strings.TrimPrefix(profile.Host, "https://"), "http://")
	host = strings.TrimSuffix(host, "/")
	dsn := fmt.Sprintf("token:%s@%s%s", profile.Token, host, profile.HTTPPath)

	params := url.Values{}
	if profile.Catalog != "" {
		params.Set("catalog", profile.Catalog)
	}
	if profile.Schema != "" {
		params.Set("schema", profile.Schema)
	}
	if qp := params.Encode(); qp != "" {
		dsn = dsn + "?" + qp
	}
	return dsn, nil
}

func SnowflakeDSN(profile *config.Profile) (string, error) {
	dsn, err := sf.DSN(&sf.Config{
		Account:   profile.Account,
		User:      profile.User,
		Password:  profile.Password,
		Database:  profile.Database,
		Warehouse: profile.Warehouse,
		Role:      profile.Role,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create DSN: %w", err)
	}
	return dsn, nil
}
