package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/de-tools/warehouse-atlas/pkg/models/api"
	"github.com/de-tools/warehouse-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *domain.WarehouseData {
	return &domain.WarehouseData{
		WarehouseID:   "W1",
		WarehouseName: "Linz Bahnhof (gRPC)",
		WarehouseCity: "Linz",
		Products: []domain.Product{
			{ProductID: "00-443175", ProductName: "Bio Orangensaft Sonne", ProductQuantity: 2500},
		},
	}
}

func TestReporter_Handle(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).Handle(sample()))

	out := buf.String()
	assert.Contains(t, out, "Warehouse: W1")
	assert.Contains(t, out, "Name: Linz Bahnhof (gRPC)")
	assert.Contains(t, out, "City: Linz")
	assert.Contains(t, out, "Products: 1")
	assert.Contains(t, out, "| 00-443175        | Bio Orangensaft Sonne                    |         2500 |")
}

func TestJSONReporter_Handle(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONReporter(&buf).Handle(sample()))

	var got api.WarehouseData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "W1", got.WarehouseID)
	require.Len(t, got.Products, 1)
	assert.Equal(t, int32(2500), got.Products[0].ProductQuantity)
	assert.Contains(t, buf.String(), `"productData"`)
}

func TestNewHandler(t *testing.T) {
	h, err := NewHandler("", nil)
	require.NoError(t, err)
	assert.IsType(t, &Reporter{}, h)

	h, err = NewHandler(FormatJSON, nil)
	require.NoError(t, err)
	assert.IsType(t, &JSONReporter{}, h)

	_, err = NewHandler("xml", nil)
	assert.Error(t, err)
}
