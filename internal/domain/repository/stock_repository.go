package repository

import "github.com/jhoicas/pos-api/internal/domain/entity"

// StockRepository puerto para el libro de stock autoritativo (un registro por producto).
// Usado dentro de transacciones para garantizar consistencia venta↔stock.
type StockRepository interface {
	// GetByProduct devuelve (nil, nil) si el producto no tiene registro todavía
	// (creación perezosa); el caso de uso decide si eso es cero unidades o not-found.
	GetByProduct(productID string) (*entity.StockRecord, error)
	List() ([]*entity.StockRecord, error)
	// Upsert inserta o reemplaza la cantidad (creación perezosa incluida). Recalcula Status.
	Upsert(record *entity.StockRecord) error
	// Add suma amount sin condición, creando el registro si no existe.
	Add(productID string, amount int64) error
	// DecrementIfAvailable resta amount en una sola operación condicional
	// ("quantity = quantity - n WHERE quantity >= n"): o descuenta o no toca nada.
	// Devuelve la cantidad disponible observada y ok=false si no alcanzó
	// (un registro ausente cuenta como cero disponible).
	DecrementIfAvailable(productID string, amount int64) (available int64, ok bool, err error)
	Delete(productID string) error
}
