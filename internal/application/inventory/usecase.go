package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-api/internal/application/audit"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los repositorios
// de stock y producto atados a esa tx. El ajuste manual toca el libro autoritativo
// y el contador denormalizado del producto juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// AdjustmentType valores aceptados del ajuste manual.
const (
	AdjustmentIn  = "in"
	AdjustmentOut = "out"
)

// UseCase operaciones del libro de stock: ajuste manual y consultas/correcciones.
type UseCase struct {
	txRunner    TxRunner
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
	recorder    audit.Sink
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	recorder audit.Sink,
) *UseCase {
	return &UseCase{txRunner: txRunner, stockRepo: stockRepo, productRepo: productRepo, recorder: recorder}
}

// AdjustQuantity aplica un delta manual fuera del flujo de venta.
// "in" suma sin condición; "out" usa el descuento condicional: si lo disponible es
// menor que el monto, falla con ErrInsufficientStock y no muta nada.
func (uc *UseCase) AdjustQuantity(ctx context.Context, actor *entity.User, ip, productID string, in dto.UpdateQuantityRequest) (*entity.Product, error) {
	if in.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != AdjustmentIn && in.Type != AdjustmentOut {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		switch in.Type {
		case AdjustmentIn:
			if err := stockRepo.Add(productID, in.Quantity); err != nil {
				return err
			}
			return productRepo.AdjustQuantity(productID, in.Quantity)
		default: // out
			_, ok, err := stockRepo.DecrementIfAvailable(productID, in.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrInsufficientStock
			}
			return productRepo.AdjustQuantity(productID, -in.Quantity)
		}
	})
	if err != nil {
		return nil, err
	}

	sign := "+"
	delta := in.Quantity
	if in.Type == AdjustmentOut {
		sign = "-"
		delta = -in.Quantity
	}
	product.Quantity += delta
	if product.Quantity < 0 {
		product.Quantity = 0
	}
	uc.recorder.Record(audit.Entry{
		Action:      "Update Product Quantity",
		Description: fmt.Sprintf("Cantidad del producto %q ajustada: %s%d", product.Name, sign, in.Quantity),
		Entity:      "product",
		EntityID:    product.ID,
		UserID:      actor.ID,
		IPAddress:   ip,
	})
	return product, nil
}

// List devuelve el libro de stock completo.
func (uc *UseCase) List(ctx context.Context) (*dto.InventoryListResponse, error) {
	records, err := uc.stockRepo.List()
	if err != nil {
		return nil, err
	}
	resp := &dto.InventoryListResponse{
		Success:   true,
		Inventory: make([]dto.StockRecordResponse, 0, len(records)),
		Total:     len(records),
	}
	for _, r := range records {
		resp.Inventory = append(resp.Inventory, toStockResponse(r))
	}
	return resp, nil
}

// GetByProduct devuelve el registro de un producto; ausente equivale a cero unidades.
func (uc *UseCase) GetByProduct(ctx context.Context, productID string) (*dto.StockRecordResponse, error) {
	record, err := uc.stockRepo.GetByProduct(productID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		record = &entity.StockRecord{
			ProductID: productID,
			Quantity:  0,
			Status:    entity.DeriveStockStatus(0),
		}
	}
	out := toStockResponse(record)
	return &out, nil
}

// Upsert fija la cantidad autoritativa (alta o corrección de inventario).
func (uc *UseCase) Upsert(ctx context.Context, actor *entity.User, ip string, in dto.UpsertInventoryRequest) (*dto.StockRecordResponse, error) {
	if in.Product == "" || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.Product)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	record := &entity.StockRecord{
		ProductID: in.Product,
		Quantity:  in.Quantity,
		Status:    entity.DeriveStockStatus(in.Quantity),
		UpdatedAt: time.Now(),
	}
	if err := uc.stockRepo.Upsert(record); err != nil {
		return nil, err
	}
	uc.recorder.Record(audit.Entry{
		Action:      "Set Inventory",
		Description: fmt.Sprintf("Inventario del producto %q fijado en %d", product.Name, in.Quantity),
		Entity:      "inventory",
		EntityID:    in.Product,
		UserID:      actor.ID,
		IPAddress:   ip,
	})
	out := toStockResponse(record)
	return &out, nil
}

// Delete elimina el registro de un producto del libro.
func (uc *UseCase) Delete(ctx context.Context, actor *entity.User, ip, productID string) error {
	record, err := uc.stockRepo.GetByProduct(productID)
	if err != nil {
		return err
	}
	if record == nil {
		return domain.ErrNotFound
	}
	if err := uc.stockRepo.Delete(productID); err != nil {
		return err
	}
	uc.recorder.Record(audit.Entry{
		Action:      "Delete Inventory",
		Description: fmt.Sprintf("Registro de inventario del producto %s eliminado", productID),
		Entity:      "inventory",
		EntityID:    productID,
		UserID:      actor.ID,
		IPAddress:   ip,
	})
	return nil
}

func toStockResponse(r *entity.StockRecord) dto.StockRecordResponse {
	return dto.StockRecordResponse{
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
		Status:    r.Status,
		UpdatedAt: r.UpdatedAt,
	}
}
