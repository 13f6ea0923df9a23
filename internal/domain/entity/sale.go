package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados. El pago es solo una etiqueta: no hay pasarela.
const (
	PaymentCash   = "cash"
	PaymentCard   = "card"
	PaymentMobile = "mobile"
	PaymentBank   = "bank"
)

// ValidPaymentMethod reporta si method pertenece a la enumeración.
func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentCash, PaymentCard, PaymentMobile, PaymentBank:
		return true
	}
	return false
}

// Estados de pago y de la venta.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusRefunded  = "refunded"
	PaymentStatusCancelled = "cancelled"

	SaleStatusCompleted = "completed"
	SaleStatusPending   = "pending"
	SaleStatusCancelled = "cancelled"
)

// ValidSaleStatus reporta si status pertenece a la enumeración.
func ValidSaleStatus(status string) bool {
	switch status {
	case SaleStatusCompleted, SaleStatusPending, SaleStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus reporta si status pertenece a la enumeración.
func ValidPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusRefunded, PaymentStatusCancelled:
		return true
	}
	return false
}

// SaleItem línea embebida de una venta. UnitPrice es el snapshot de Product.Price
// al momento de la venta; LineTotal = Quantity × UnitPrice.
type SaleItem struct {
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// SaleCustomer datos opcionales del cliente (sin registro propio).
type SaleCustomer struct {
	Name  string
	Phone string
	Email string
}

// Sale venta persistida. Estructuralmente inmutable después de crearse:
// solo Status y PaymentStatus pueden transicionar.
// Total siempre se recalcula en el servidor: Subtotal + Tax − Discount.
type Sale struct {
	ID            string
	SaleNumber    string // único para siempre, formato SALE-YYYYMMDD-NNNN
	Customer      SaleCustomer
	Items         []SaleItem // secuencia ordenada, no vacía
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
	PaymentStatus string
	Status        string
	CashierID     string
	Notes         string
	CreatedAt     time.Time
}
