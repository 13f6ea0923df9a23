package sales

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad del checkout: descuento de stock y
// persistencia de la venta confirman o revierten juntos. El consecutivo diario se
// reserva ANTES de abrir la tx: un error ahí dentro abortaría la transacción entera
// (25P02) y ninguna sentencia posterior podría ejecutarse; reservarlo fuera deja a lo
// sumo un hueco en la secuencia si la venta luego revierte, lo cual es inocuo.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ReceiptPDFGenerator genera la representación PDF de un recibo de venta.
type ReceiptPDFGenerator interface {
	GenerateReceipt(ctx context.Context, sale *entity.Sale, cashier *entity.User, products map[string]*entity.Product) ([]byte, error)
}
