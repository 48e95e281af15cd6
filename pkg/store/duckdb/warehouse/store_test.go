package warehouse

import (
	"context"
	"database/sql"
	"testing"

	"github.com/de-tools/warehouse-atlas/pkg/models/domain"
	"github.com/de-tools/warehouse-atlas/pkg/models/store"
	"github.com/de-tools/warehouse-atlas/pkg/store/duckdb"
	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)

	// :memory: databases are per connection
	db.SetMaxOpenConns(1)

	s, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{
		db:    db,
		store: s,
	}
}

func linz() store.Warehouse {
	return store.Warehouse{
		ID:   "W1",
		Name: "Linz Bahnhof",
		City: "Linz",
		Products: []store.Product{
			{ID: "00-443175", Name: "Bio Orangensaft Sonne", Quantity: 2500},
			{ID: "00-000001", Name: "Apfelsaft", Quantity: 4},
		},
	}
}

func TestNewStore_NilDB(t *testing.T) {
	s, err := NewStore(nil)
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestWarehouseStore_Add(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("success - add and read back in order", func(t *testing.T) {
		require.NoError(t, f.store.Add(ctx, []store.Warehouse{linz()}))

		wh, err := f.store.GetWarehouse(ctx, "W1")
		require.NoError(t, err)
		assert.Equal(t, "Linz Bahnhof", wh.Name)
		require.Len(t, wh.Products, 2)
		assert.Equal(t, "00-443175", wh.Products[0].ID)
		assert.Equal(t, "00-000001", wh.Products[1].ID)
	})

	t.Run("success - upsert replaces products", func(t *testing.T) {
		updated := linz()
		updated.City = "Linz an der Donau"
		updated.Products = []store.Product{{ID: "00-999999", Name: "Most", Quantity: 1}}
		require.NoError(t, f.store.Add(ctx, []store.Warehouse{updated}))

		wh, err := f.store.GetWarehouse(ctx, "W1")
		require.NoError(t, err)
		assert.Equal(t, "Linz an der Donau", wh.City)
		require.Len(t, wh.Products, 1)
		assert.Equal(t, "00-999999", wh.Products[0].ID)
	})

	t.Run("success - empty input", func(t *testing.T) {
		require.NoError(t, f.store.Add(ctx, nil))
	})

	t.Run("error - missing id rolls back", func(t *testing.T) {
		err := f.store.Add(ctx, []store.Warehouse{{ID: "W7", Name: "x", City: "y"}, {Name: "no id"}})
		require.Error(t, err)

		_, err = f.store.GetWarehouse(ctx, "W7")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("error - duplicate product ids", func(t *testing.T) {
		wh := store.Warehouse{
			ID: "W8", Name: "x", City: "y",
			Products: []store.Product{{ID: "p", Name: "a"}, {ID: "p", Name: "b"}},
		}
		assert.Error(t, f.store.Add(ctx, []store.Warehouse{wh}))
	})
}

func TestWarehouseStore_AddInContextTransaction(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	tx, err := f.db.BeginTx(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, f.store.Add(duckdb.WithTransaction(ctx, tx), []store.Warehouse{linz()}))
	require.NoError(t, tx.Rollback())

	_, err = f.store.GetWarehouse(ctx, "W1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWarehouseStore_ListWarehouses(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	second := linz()
	second.ID = "A0"
	require.NoError(t, f.store.Add(ctx, []store.Warehouse{linz(), second}))

	list, err := f.store.ListWarehouses(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A0", list[0].ID)
	assert.Equal(t, "W1", list[1].ID)
	assert.Equal(t, Kind, f.store.Kind())
}
