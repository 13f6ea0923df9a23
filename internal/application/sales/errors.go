package sales

import (
	"fmt"

	"github.com/jhoicas/pos-api/internal/domain"
)

// ProductNotFoundError referencia de producto inexistente en un checkout.
// Envuelve domain.ErrNotFound para el mapeo HTTP y conserva la referencia ofensiva.
type ProductNotFoundError struct {
	Ref string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("producto no encontrado: %s", e.Ref)
}

func (e *ProductNotFoundError) Unwrap() error { return domain.ErrNotFound }

// InsufficientStockError stock insuficiente para una línea del checkout.
// Conserva el nombre del producto y la cantidad disponible observada.
type InsufficientStockError struct {
	ProductName string
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s. Disponible: %d", e.ProductName, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return domain.ErrInsufficientStock }
