package entity

import "time"

// Estados derivados de un StockRecord. Clasificación cacheada, siempre recalculada
// desde Quantity al escribir; nunca se acepta del cliente.
const (
	StockStatusIn  = "in-stock"
	StockStatusLow = "low-stock"
	StockStatusOut = "out-of-stock"
)

// LowStockThreshold umbral bajo el cual un producto se clasifica como low-stock.
const LowStockThreshold = 10

// StockRecord es la cantidad autoritativa por producto (un registro por producto,
// creado perezosamente en el primer movimiento).
type StockRecord struct {
	ProductID string
	Quantity  int64  // con signo; el decremento condicional impide que una venta lo deje negativo
	Status    string // derivado de Quantity vía DeriveStockStatus
	UpdatedAt time.Time
}

// DeriveStockStatus clasifica una cantidad. Única fuente de la derivación:
// los repositorios la invocan en cada escritura.
func DeriveStockStatus(quantity int64) string {
	switch {
	case quantity <= 0:
		return StockStatusOut
	case quantity <= LowStockThreshold:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}
