package terminal

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/warehouse-atlas/pkg/models/api"
	"github.com/de-tools/warehouse-atlas/pkg/server"
	"github.com/de-tools/warehouse-atlas/pkg/services/source"
	"github.com/de-tools/warehouse-atlas/pkg/services/warehouse"
	"github.com/de-tools/warehouse-atlas/pkg/store/static"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

func newCLI(t *testing.T, out io.Writer, dial func(string) (*grpc.ClientConn, error)) *CLI {
	t.Helper()
	registry, err := source.NewDefaultRegistry(nil)
	require.NoError(t, err)
	return NewCLI(Options{
		Registry: registry,
		Dial:     dial,
		Output:   out,
	})
}

func bufDialer(t *testing.T) func(string) (*grpc.ClientConn, error) {
	t.Helper()
	lookup, err := warehouse.NewLookupService(static.NewStore())
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	s, _ := server.NewGRPCServer(server.Config{
		Dependencies: server.Dependencies{Lookup: lookup, Logger: zerolog.Nop()},
	})
	go func() {
		_ = s.Serve(lis)
	}()
	t.Cleanup(s.Stop)

	return func(string) (*grpc.ClientConn, error) {
		return grpc.NewClient("passthrough:///bufnet",
			grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
				return lis.DialContext(ctx)
			}),
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		)
	}
}

func TestCLI_Get(t *testing.T) {
	dial := bufDialer(t)

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, newCLI(t, &out, dial).Execute(context.Background(), "get", "W1"))
		assert.Contains(t, out.String(), "Warehouse: W1")
		assert.Contains(t, out.String(), "Bio Orangensaft Sonne")
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, newCLI(t, &out, dial).Execute(context.Background(), "get", "W7", "--output", "json"))

		var got api.WarehouseData
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, "W7", got.WarehouseID)
		assert.Equal(t, "Linz", got.WarehouseCity)
	})

	t.Run("requires an id", func(t *testing.T) {
		assert.Error(t, newCLI(t, io.Discard, dial).Execute(context.Background(), "get"))
	})

	t.Run("unknown format", func(t *testing.T) {
		assert.Error(t, newCLI(t, io.Discard, dial).Execute(context.Background(), "get", "W1", "-o", "xml"))
	})
}

func TestCLI_Sources(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, newCLI(t, &out, nil).Execute(context.Background(), "sources"))
	assert.Equal(t, "Supported sources:\ndatabricks\nduckdb\nmemory\nsnowflake\nstatic\n", out.String())
}

func TestCLI_Profiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warehousecfg")
	require.NoError(t, os.WriteFile(path, []byte("[lake]\ndriver = databricks\nhost = h\n\n[misc]\nhost = x\n"), 0o600))

	var out bytes.Buffer
	require.NoError(t, newCLI(t, &out, nil).Execute(context.Background(), "profiles", "--file", path))
	assert.Equal(t, "lake\tdatabricks\nmisc\t-\n", out.String())
}

func TestCLI_Seed(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(catalogPath, []byte(`{"warehouses": [
		{"warehouse_id": "W1", "name": "Linz", "city": "Linz", "products": [{"product_id": "p", "name": "x", "quantity": 1}]},
		{"warehouse_id": "W2", "name": "Graz", "city": "Graz"}
	]}`), 0o600))
	dbPath := filepath.Join(dir, "atlas.db")

	var out bytes.Buffer
	require.NoError(t, newCLI(t, &out, nil).Execute(context.Background(), "seed", "--db", dbPath, "--catalog", catalogPath))
	assert.Equal(t, "Seeded "+dbPath+": 2 warehouses\n", out.String())

	assert.Error(t, newCLI(t, io.Discard, nil).Execute(context.Background(), "seed", "--db", dbPath))
}
