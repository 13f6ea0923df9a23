package entity

import "time"

// Supplier proveedor opcional de un producto.
type Supplier struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}
