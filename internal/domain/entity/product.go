package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Quantity es un contador denormalizado de conveniencia para listados; la cantidad
// autoritativa vive en StockRecord (ver stock.go).
type Product struct {
	ID          string
	Name        string
	Description string
	CategoryID  string
	Price       decimal.Decimal // precio de venta, >= 0
	Quantity    int64           // contador secundario, >= 0
	SupplierID  string          // opcional, vacío si no aplica
	ImageURL    string          // opcional, host de medios externo
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
