package store

// Warehouse is the persisted shape of a warehouse, shared by the SQL stores and catalog documents
type Warehouse struct {
	ID       string    `json:"warehouse_id" yaml:"warehouse_id"`
	Name     string    `json:"name" yaml:"name"`
	City     string    `json:"city" yaml:"city"`
	Products []Product `json:"products" yaml:"products"`
}

type Product struct {
	ID       string `json:"product_id" yaml:"product_id"`
	Name     string `json:"name" yaml:"name"`
	Quantity int32  `json:"quantity" yaml:"quantity"`
}

// Catalog is a document listing warehouses, loaded from YAML or JSON
type Catalog struct {
	Warehouses []Warehouse `json:"warehouses" yaml:"warehouses"`
}

// Clone returns a deep copy so callers never share product slices with a store
func (w Warehouse) Clone() Warehouse {
	out := w
	if w.Products != nil {
		out.Products = make([]Product, len(w.Products))
		copy(out.Products, w.Products)
	}
	return out
}
