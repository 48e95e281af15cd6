package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profilesINI = `
[lakehouse]
driver = databricks
host = adb-123.azuredatabricks.net
token = dapi-secret
http_path = /sql/1.0/warehouses/abc
catalog = main
schema = inventory

[snow]
driver = Snowflake
account = xy12345
user = reader
password = pw
database = INVENTORY
warehouse = COMPUTE_WH
role = READER

[local]
driver = duckdb
path = /var/lib/warehouse-atlas.db

[empty]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRegistry_GetProfiles(t *testing.T) {
	reg, err := NewRegistry(writeFile(t, "profiles.ini", profilesINI))
	require.NoError(t, err)

	profiles, err := reg.GetProfiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"lakehouse", "snow", "local"}, profiles)
}

func TestRegistry_GetProfile(t *testing.T) {
	reg, err := NewRegistry(writeFile(t, "profiles.ini", profilesINI))
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name    string
		profile string
		want    *Profile
		wantErr bool
	}{
		{
			name:    "databricks",
			profile: "lakehouse",
			want: &Profile{
				Name:     "lakehouse",
				Driver:   "databricks",
				Host:     "adb-123.azuredatabricks.net",
				Token:    "dapi-secret",
				HTTPPath: "/sql/1.0/warehouses/abc",
				Catalog:  "main",
				Schema:   "inventory",
			},
		},
		{
			name:    "snowflake driver is lower-cased",
			profile: "snow",
			want: &Profile{
				Name:      "snow",
				Driver:    "snowflake",
				Account:   "xy12345",
				User:      "reader",
				Password:  "pw",
				Database:  "INVENTORY",
				Warehouse: "COMPUTE_WH",
				Role:      "READER",
			},
		},
		{name: "unknown", profile: "nope", wantErr: true},
		{name: "section without keys", profile: "empty", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.GetProfile(ctx, tt.profile)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRegistry_MissingFile(t *testing.T) {
	_, err := NewRegistry(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)
}

func TestResolveDatabricks(t *testing.T) {
	t.Run("explicit host and token win", func(t *testing.T) {
		p := &Profile{Name: "x", Host: "h", Token: "t"}
		require.NoError(t, ResolveDatabricks(p))
		assert.Equal(t, "h", p.Host)
	})

	t.Run("nothing to resolve from", func(t *testing.T) {
		p := &Profile{Name: "x", Host: "h"}
		assert.Error(t, ResolveDatabricks(p))
	})

	t.Run("from databricks config file", func(t *testing.T) {
		cfgFile := writeFile(t, "databrickscfg", "[ws]\nhost = https://adb-42.azuredatabricks.net\ntoken = dapi-42\n")
		p := &Profile{Name: "x", DatabricksProfile: "ws", DatabricksConfigFile: cfgFile}

		require.NoError(t, ResolveDatabricks(p))
		assert.Contains(t, p.Host, "adb-42.azuredatabricks.net")
		assert.Equal(t, "dapi-42", p.Token)
	})
}
