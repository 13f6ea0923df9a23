package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
	Supplier    string          `json:"supplier"`
	ImageURL    string          `json:"imageUrl"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Supplier    *string          `json:"supplier"`
	ImageURL    *string          `json:"imageUrl"`
}

// UpdateQuantityRequest ajuste manual de cantidad fuera del flujo de venta.
type UpdateQuantityRequest struct {
	Quantity    int64  `json:"quantity" validate:"required,min=1"`
	Type        string `json:"type" validate:"required,oneof=in out"`
	Description string `json:"description"`
}

// ProductResponse salida de un producto con la categoría resuelta.
type ProductResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Category    *CategoryResponse `json:"category,omitempty"`
	Price       decimal.Decimal   `json:"price"`
	Quantity    int64             `json:"quantity"`
	SupplierID  string            `json:"supplierId,omitempty"`
	ImageURL    string            `json:"imageUrl,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// ProductListResponse lista de productos + total.
type ProductListResponse struct {
	Products     []ProductResponse `json:"products"`
	TotalProduct int64             `json:"totalProduct"`
}
