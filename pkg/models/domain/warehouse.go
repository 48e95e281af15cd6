package domain

// WarehouseRequest identifies the warehouse a caller wants to look up
type WarehouseRequest struct {
	WarehouseID string
}

type Product struct {
	ProductID       string // 00-443175
	ProductName     string // Bio Orangensaft Sonne
	ProductQuantity int32  // 2500
}

// WarehouseData is the descriptive record returned for a warehouse id.
// Products keep the order in which they were stored.
type WarehouseData struct {
	WarehouseID   string
	WarehouseName string
	WarehouseCity string
	Products      []Product
}
