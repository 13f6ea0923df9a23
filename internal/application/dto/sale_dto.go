package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleCustomerDTO datos opcionales del cliente de mostrador.
type SaleCustomerDTO struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// SaleItemRequest línea propuesta del checkout: referencia de producto + cantidad.
type SaleItemRequest struct {
	Product  string `json:"product" validate:"required"`
	Quantity int64  `json:"quantity" validate:"required,min=1"`
}

// CreateSaleRequest entrada del checkout. El total NUNCA se acepta del cliente;
// se recalcula en el servidor desde items + tax − discount.
type CreateSaleRequest struct {
	Customer      SaleCustomerDTO   `json:"customer"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	Tax           decimal.Decimal   `json:"tax"`
	Discount      decimal.Decimal   `json:"discount"`
	PaymentMethod string            `json:"paymentMethod" validate:"omitempty,oneof=cash card mobile bank"`
	Notes         string            `json:"notes"`
}

// SaleItemResponse línea persistida con el producto resuelto.
type SaleItemResponse struct {
	Product   *ProductResponse `json:"product"`
	ProductID string           `json:"productId"`
	Quantity  int64            `json:"quantity"`
	UnitPrice decimal.Decimal  `json:"price"`
	LineTotal decimal.Decimal  `json:"total"`
}

// SaleResponse venta completa.
type SaleResponse struct {
	ID            string             `json:"id"`
	SaleNumber    string             `json:"saleNumber"`
	Customer      SaleCustomerDTO    `json:"customer"`
	Items         []SaleItemResponse `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Tax           decimal.Decimal    `json:"tax"`
	Discount      decimal.Decimal    `json:"discount"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"paymentMethod"`
	PaymentStatus string             `json:"paymentStatus"`
	Status        string             `json:"status"`
	CashierID     string             `json:"cashier"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// CreateSaleResponse respuesta 201 del checkout.
type CreateSaleResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Sale    *SaleResponse `json:"sale"`
}

// UpdateSaleStatusRequest transición de estado de una venta. Campos vacíos
// conservan el valor actual; la venta es estructuralmente inmutable por lo demás.
type UpdateSaleStatusRequest struct {
	Status        string `json:"status" validate:"omitempty,oneof=completed pending cancelled"`
	PaymentStatus string `json:"paymentStatus" validate:"omitempty,oneof=pending paid refunded cancelled"`
}

// GetSaleResponse respuesta de consulta puntual.
type GetSaleResponse struct {
	Success bool          `json:"success"`
	Sale    *SaleResponse `json:"sale"`
}

// SaleListResponse listado paginado de ventas.
type SaleListResponse struct {
	Success     bool           `json:"success"`
	Sales       []SaleResponse `json:"sales"`
	TotalPages  int64          `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
	Total       int64          `json:"total"`
}

// TodaySalesResponse resumen del día (ventas completadas y pagadas).
type TodaySalesResponse struct {
	Success           bool            `json:"success"`
	TotalSales        decimal.Decimal `json:"totalSales"`
	TotalTransactions int             `json:"totalTransactions"`
	Sales             []SaleResponse  `json:"sales"`
}

// TopProductStat producto más vendido en el período.
type TopProductStat struct {
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// SalesStatsResponse estadísticas agregadas por período.
type SalesStatsResponse struct {
	Success           bool             `json:"success"`
	Period            string           `json:"period"`
	TotalRevenue      decimal.Decimal  `json:"totalRevenue"`
	TotalTransactions int              `json:"totalTransactions"`
	TopProducts       []TopProductStat `json:"topProducts"`
}
