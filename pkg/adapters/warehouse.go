package adapters

import (
	"github.com/de-tools/warehouse-atlas/pkg/models/api"
	"github.com/de-tools/warehouse-atlas/pkg/models/domain"
	"github.com/de-tools/warehouse-atlas/pkg/models/store"
)

// MapStoreWarehouseToDomain converts a persisted warehouse into the service record.
// The product slice is always non-nil and copied in order.
func MapStoreWarehouseToDomain(wh store.Warehouse) domain.WarehouseData {
	products := make([]domain.Product, 0, len(wh.Products))
	for _, p := range wh.Products {
		products = append(products, domain.Product{
			ProductID:       p.ID,
			ProductName:     p.Name,
			ProductQuantity: p.Quantity,
		})
	}
	return domain.WarehouseData{
		WarehouseID:   wh.ID,
		WarehouseName: wh.Name,
		WarehouseCity: wh.City,
		Products:      products,
	}
}

func MapDomainWarehouseToAPI(wh domain.WarehouseData) api.WarehouseData {
	products := make([]api.Product, 0, len(wh.Products))
	for _, p := range wh.Products {
		products = append(products, api.Product{
			ProductID:       p.ProductID,
			ProductName:     p.ProductName,
			ProductQuantity: p.ProductQuantity,
		})
	}
	return api.WarehouseData{
		WarehouseID:   wh.WarehouseID,
		WarehouseName: wh.WarehouseName,
		WarehouseCity: wh.WarehouseCity,
		Products:      products,
	}
}
