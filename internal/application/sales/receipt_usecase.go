package sales

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ReceiptUseCase genera el recibo PDF de una venta existente.
type ReceiptUseCase struct {
	saleRepo    repository.SaleRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	generator   ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	generator ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{saleRepo: saleRepo, userRepo: userRepo, productRepo: productRepo, generator: generator}
}

// GetReceipt busca la venta, el cajero y los productos, y delega en el generador PDF.
func (uc *ReceiptUseCase) GetReceipt(ctx context.Context, saleID string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	cashier, err := uc.userRepo.GetByID(sale.CashierID)
	if err != nil {
		return nil, err
	}
	products := make(map[string]*entity.Product, len(sale.Items))
	for _, item := range sale.Items {
		if _, ok := products[item.ProductID]; ok {
			continue
		}
		p, err := uc.productRepo.GetByID(item.ProductID)
		if err == nil && p != nil {
			products[item.ProductID] = p
		}
	}
	return uc.generator.GenerateReceipt(ctx, sale, cashier, products)
}
