package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/audit"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// CreateSaleUseCase convierte una lista propuesta de {producto, cantidad} en una Sale
// persistida y un libro de stock consistente, todo dentro de una sola transacción.
type CreateSaleUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	counterRepo  repository.SaleCounterRepository
	recorder     audit.Sink
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	counterRepo repository.SaleCounterRepository,
	recorder audit.Sink,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		counterRepo:  counterRepo,
		recorder:     recorder,
	}
}

// CreateSale ejecuta el checkout:
//  1. valida la entrada (items no vacíos, cantidades >= 1, tax/discount >= 0);
//  2. resuelve cada producto (referencia inexistente aborta TODO el checkout) y
//     toma el snapshot de precio; calcula subtotal y total en el servidor;
//  3. reserva el consecutivo diario atómico FUERA de la transacción (si la venta
//     luego revierte queda un hueco en la secuencia, no un número repetido);
//  4. en UNA transacción: descuento condicional de stock por línea (sin
//     check-then-act: o descuenta o falla), espejo del contador denormalizado
//     del producto, inserción de la venta;
//  5. tras confirmar, encola la entrada de auditoría (best-effort);
//  6. responde la venta con los productos resueltos.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, cashier *entity.User, ip string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.Product == "" || item.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.Tax.IsNegative() || in.Discount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = entity.PaymentCash
	}
	if !entity.ValidPaymentMethod(paymentMethod) {
		return nil, domain.ErrInvalidInput
	}

	// Resolver productos y snapshot de precios (solo lectura, fuera de la tx).
	productsByID := make(map[string]*entity.Product, len(in.Items))
	items := make([]entity.SaleItem, 0, len(in.Items))
	var subtotal decimal.Decimal
	for _, item := range in.Items {
		product, ok := productsByID[item.Product]
		if !ok {
			var err error
			product, err = uc.productRepo.GetByID(item.Product)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, &ProductNotFoundError{Ref: item.Product}
			}
			productsByID[item.Product] = product
		}
		lineTotal := product.Price.Mul(decimal.NewFromInt(item.Quantity))
		subtotal = subtotal.Add(lineTotal)
		items = append(items, entity.SaleItem{
			ProductID: item.Product,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
			LineTotal: lineTotal,
		})
	}
	total := subtotal.Add(in.Tax).Sub(in.Discount)
	if total.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	sale := &entity.Sale{
		ID: uuid.New().String(),
		Customer: entity.SaleCustomer{
			Name:  in.Customer.Name,
			Phone: in.Customer.Phone,
			Email: in.Customer.Email,
		},
		Items:         items,
		Subtotal:      subtotal,
		Tax:           in.Tax,
		Discount:      in.Discount,
		Total:         total,
		PaymentMethod: paymentMethod,
		PaymentStatus: entity.PaymentStatusPaid,
		Status:        entity.SaleStatusCompleted,
		CashierID:     cashier.ID,
		Notes:         in.Notes,
		CreatedAt:     now,
	}

	// Consecutivo diario atómico (increment-and-read), reservado antes de abrir la
	// transacción: un error de sentencia dentro de la tx la dejaría abortada y
	// arrastraría todo el checkout. Si el contador falla, cae al número por
	// timestamp; la restricción única de sale_number queda como última red de
	// seguridad.
	seq, err := uc.counterRepo.Next(now)
	if err != nil {
		sale.SaleNumber = fmt.Sprintf("SALE-%d", now.UnixMilli())
	} else {
		sale.SaleNumber = fmt.Sprintf("SALE-%s-%04d", now.Format("20060102"), seq)
	}

	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		// Descuento condicional por línea: registro ausente cuenta como cero disponible.
		for _, item := range sale.Items {
			available, ok, err := stockRepo.DecrementIfAvailable(item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return &InsufficientStockError{
					ProductName: productsByID[item.ProductID].Name,
					Available:   available,
				}
			}
			// Espejo en el contador denormalizado del producto (con piso en cero).
			if err := productRepo.AdjustQuantity(item.ProductID, -item.Quantity); err != nil {
				return err
			}
		}

		return saleRepo.Create(sale)
	})
	if err != nil {
		return nil, err
	}

	// Auditoría después del commit; su fallo jamás revierte la venta.
	uc.recorder.Record(audit.Entry{
		Action:      "Create Sale",
		Description: fmt.Sprintf("Venta %s creada con total %s", sale.SaleNumber, sale.Total.StringFixed(2)),
		Entity:      "sale",
		EntityID:    sale.ID,
		UserID:      cashier.ID,
		IPAddress:   ip,
	})

	return uc.toSaleResponse(sale, productsByID), nil
}

// toSaleResponse arma la respuesta con las referencias de producto resueltas.
func (uc *CreateSaleUseCase) toSaleResponse(sale *entity.Sale, productsByID map[string]*entity.Product) *dto.SaleResponse {
	return buildSaleResponse(sale, productsByID, uc.categoryRepo)
}
