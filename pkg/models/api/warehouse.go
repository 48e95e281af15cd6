package api

type Product struct {
	ProductID       string `json:"productID"`
	ProductName     string `json:"productName"`
	ProductQuantity int32  `json:"productQuantity"`
}

type WarehouseData struct {
	WarehouseID   string    `json:"warehouseID"`
	WarehouseName string    `json:"warehouseName"`
	WarehouseCity string    `json:"warehouseCity"`
	Products      []Product `json:"productData"`
}

type Error struct {
	Error string `json:"error"`
}
