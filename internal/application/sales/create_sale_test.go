package sales_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/audit"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria — simulan la transacción con snapshot + restore
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) UpdateQuantity(productID string, quantity int64) error {
	if p, ok := r.products[productID]; ok {
		p.Quantity = quantity
	}
	return nil
}
func (r *fakeProductRepo) AdjustQuantity(productID string, delta int64) error {
	if p, ok := r.products[productID]; ok {
		p.Quantity += delta
		if p.Quantity < 0 {
			p.Quantity = 0
		}
	}
	return nil
}
func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Count() (int64, error)                             { return 0, nil }
func (r *fakeProductRepo) Search(query string) ([]*entity.Product, error)    { return nil, nil }
func (r *fakeProductRepo) TopByQuantity(limit int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Delete(id string) error { delete(r.products, id); return nil }

type fakeStockRepo struct {
	quantities map[string]int64
}

func (r *fakeStockRepo) GetByProduct(productID string) (*entity.StockRecord, error) {
	q, ok := r.quantities[productID]
	if !ok {
		return nil, nil
	}
	return &entity.StockRecord{ProductID: productID, Quantity: q, Status: entity.DeriveStockStatus(q)}, nil
}
func (r *fakeStockRepo) List() ([]*entity.StockRecord, error) { return nil, nil }
func (r *fakeStockRepo) Upsert(record *entity.StockRecord) error {
	r.quantities[record.ProductID] = record.Quantity
	return nil
}
func (r *fakeStockRepo) Add(productID string, amount int64) error {
	r.quantities[productID] += amount
	return nil
}
func (r *fakeStockRepo) DecrementIfAvailable(productID string, amount int64) (int64, bool, error) {
	available, ok := r.quantities[productID]
	if !ok || available < amount {
		return available, false, nil
	}
	r.quantities[productID] = available - amount
	return r.quantities[productID], true, nil
}
func (r *fakeStockRepo) Delete(productID string) error { delete(r.quantities, productID); return nil }

type fakeSaleRepo struct {
	created []*entity.Sale
	err     error
}

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, sale)
	return nil
}
func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	for _, s := range r.created {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}
func (r *fakeSaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, error) {
	return nil, nil
}
func (r *fakeSaleRepo) Count(filter repository.SaleFilter) (int64, error) { return 0, nil }
func (r *fakeSaleRepo) ListPaidCompletedBetween(start, end time.Time) ([]*entity.Sale, error) {
	return nil, nil
}
func (r *fakeSaleRepo) UpdateStatus(id, status, paymentStatus string) error {
	for _, s := range r.created {
		if s.ID == id {
			s.Status = status
			s.PaymentStatus = paymentStatus
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeCounterRepo struct {
	seq int64
	err error
}

func (r *fakeCounterRepo) Next(day time.Time) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.seq++
	return r.seq, nil
}

// fakeTxRunner simula la semántica transaccional: toma snapshot del estado
// mutable antes de fn y lo restaura completo si fn falla (rollback).
type fakeTxRunner struct {
	saleRepo    *fakeSaleRepo
	stockRepo   *fakeStockRepo
	productRepo *fakeProductRepo
}

func (tr *fakeTxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	stockSnapshot := make(map[string]int64, len(tr.stockRepo.quantities))
	for k, v := range tr.stockRepo.quantities {
		stockSnapshot[k] = v
	}
	productQty := make(map[string]int64, len(tr.productRepo.products))
	for k, v := range tr.productRepo.products {
		productQty[k] = v.Quantity
	}
	salesLen := len(tr.saleRepo.created)

	if err := fn(tr.saleRepo, tr.stockRepo, tr.productRepo); err != nil {
		tr.stockRepo.quantities = stockSnapshot
		for k, q := range productQty {
			tr.productRepo.products[k].Quantity = q
		}
		tr.saleRepo.created = tr.saleRepo.created[:salesLen]
		return err
	}
	return nil
}

// fakeSink captura las entradas de auditoría encoladas.
type fakeSink struct {
	entries []audit.Entry
}

func (s *fakeSink) Record(e audit.Entry) { s.entries = append(s.entries, e) }

// ──────────────────────────────────────────────────────────────────────────────
// Armado del escenario
// ──────────────────────────────────────────────────────────────────────────────

type saleFixture struct {
	uc       *sales.CreateSaleUseCase
	products *fakeProductRepo
	stock    *fakeStockRepo
	salesDB  *fakeSaleRepo
	counter  *fakeCounterRepo
	sink     *fakeSink
	cashier  *entity.User
}

// newSaleFixture deja un producto de $100.00 con 5 unidades en stock.
func newSaleFixture(t *testing.T) *saleFixture {
	t.Helper()
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-1": {
			ID:       "prod-1",
			Name:     "Café Molido",
			Price:    decimal.NewFromInt(100),
			Quantity: 5,
		},
	}}
	stock := &fakeStockRepo{quantities: map[string]int64{"prod-1": 5}}
	salesDB := &fakeSaleRepo{}
	counter := &fakeCounterRepo{}
	sink := &fakeSink{}
	tx := &fakeTxRunner{saleRepo: salesDB, stockRepo: stock, productRepo: products}
	uc := sales.NewCreateSaleUseCase(tx, products, nil, counter, sink)
	return &saleFixture{
		uc:       uc,
		products: products,
		stock:    stock,
		salesDB:  salesDB,
		counter:  counter,
		sink:     sink,
		cashier:  &entity.User{ID: "user-1", Name: "Cajero Test", Role: entity.RoleStaff},
	}
}

func requestFor(productID string, qty int64) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{Product: productID, Quantity: qty}},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Checkout feliz: totales calculados en el servidor y stock descontado.
func TestCreateSale_CalculaTotalesYDescuentaStock(t *testing.T) {
	f := newSaleFixture(t)
	in := requestFor("prod-1", 3)
	in.Tax = decimal.NewFromInt(10)
	in.Discount = decimal.NewFromInt(5)

	resp, err := f.uc.CreateSale(context.Background(), f.cashier, "127.0.0.1", in)
	require.NoError(t, err)
	require.NotNil(t, resp)

	// subtotal = 100 * 3 = 300; total = 300 + 10 - 5 = 305
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(300)), "subtotal fue %s", resp.Subtotal)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(305)), "total fue %s", resp.Total)
	assert.Equal(t, entity.PaymentCash, resp.PaymentMethod, "cash es el método por defecto")
	assert.Equal(t, entity.SaleStatusCompleted, resp.Status)
	assert.Equal(t, entity.PaymentStatusPaid, resp.PaymentStatus)
	assert.Equal(t, "user-1", resp.CashierID)

	// Libro de stock y contador denormalizado descontados juntos.
	assert.Equal(t, int64(2), f.stock.quantities["prod-1"])
	assert.Equal(t, int64(2), f.products.products["prod-1"].Quantity)

	require.Len(t, f.salesDB.created, 1, "la venta debe persistirse")
	require.Len(t, f.sink.entries, 1, "debe encolarse una entrada de auditoría")
	assert.Equal(t, "Create Sale", f.sink.entries[0].Action)
	assert.Equal(t, "sale", f.sink.entries[0].Entity)
}

// Consecutivo diario: SALE-YYYYMMDD-NNNN.
func TestCreateSale_ConsecutivoDiario(t *testing.T) {
	f := newSaleFixture(t)

	resp, err := f.uc.CreateSale(context.Background(), f.cashier, "", requestFor("prod-1", 1))
	require.NoError(t, err)

	expected := fmt.Sprintf("SALE-%s-0001", time.Now().Format("20060102"))
	assert.Equal(t, expected, resp.SaleNumber)
}

// Si el contador falla, cae al número por timestamp (un solo guión). Como el
// consecutivo se reserva antes de abrir la transacción, su fallo no puede
// contaminar la tx: la venta igual se persiste y el stock se descuenta.
func TestCreateSale_FallbackSiElContadorFalla(t *testing.T) {
	f := newSaleFixture(t)
	f.counter.err = errors.New("contador caído")

	resp, err := f.uc.CreateSale(context.Background(), f.cashier, "", requestFor("prod-1", 1))
	require.NoError(t, err, "el fallo del contador no debe abortar el checkout")

	assert.True(t, strings.HasPrefix(resp.SaleNumber, "SALE-"))
	assert.Equal(t, 1, strings.Count(resp.SaleNumber, "-"), "el fallback usa timestamp, no fecha-seq")
	require.Len(t, f.salesDB.created, 1, "la venta debe quedar persistida")
	assert.Equal(t, resp.SaleNumber, f.salesDB.created[0].SaleNumber)
	assert.Equal(t, int64(4), f.stock.quantities["prod-1"])
}

// Un checkout que revierte deja un hueco en la secuencia, nunca un número repetido:
// el consecutivo se reserva antes de la transacción.
func TestCreateSale_ReversionDejaHuecoEnLaSecuencia(t *testing.T) {
	f := newSaleFixture(t)

	_, err := f.uc.CreateSale(context.Background(), f.cashier, "", requestFor("prod-1", 10))
	require.Error(t, err, "stock insuficiente debe revertir")

	resp, err := f.uc.CreateSale(context.Background(), f.cashier, "", requestFor("prod-1", 1))
	require.NoError(t, err)

	expected := fmt.Sprintf("SALE-%s-0002", time.Now().Format("20060102"))
	assert.Equal(t, expected, resp.SaleNumber, "el seq 1 se quemó en la reversión")
}

// Stock insuficiente: error tipado con lo disponible y rollback completo.
func TestCreateSale_StockInsuficiente_RevierteTodo(t *testing.T) {
	f := newSaleFixture(t)

	_, err := f.uc.CreateSale(context.Background(), f.cashier, "", requestFor("prod-1", 10))
	require.Error(t, err)

	var insufficientErr *sales.InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, "Café Molido", insufficientErr.ProductName)
	assert.Equal(t, int64(5), insufficientErr.Available)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada quedó tocado.
	assert.Equal(t, int64(5), f.stock.quantities["prod-1"])
	assert.Equal(t, int64(5), f.products.products["prod-1"].Quantity)
	assert.Empty(t, f.salesDB.created)
	assert.Empty(t, f.sink.entries, "sin venta no hay auditoría")
}

// Registro de stock ausente cuenta como cero disponible.
func TestCreateSale_SinRegistroDeStock_CuentaComoCero(t *testing.T) {
	f := newSaleFixture(t)
	f.products.products["prod-2"] = &entity.Product{
		ID:    "prod-2",
		Name:  "Azúcar",
		Price: decimal.NewFromInt(50),
	}
	// prod-2 nunca tuvo registro en el libro de stock.

	_, err := f.uc.CreateSale(context.Background(), f.cashier, "", requestFor("prod-2", 1))
	require.Error(t, err)

	var insufficientErr *sales.InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, int64(0), insufficientErr.Available)
}

// Una referencia inexistente aborta TODO el checkout, incluso con líneas válidas.
func TestCreateSale_ProductoInexistente_AbortaTodo(t *testing.T) {
	f := newSaleFixture(t)
	in := dto.CreateSaleRequest{Items: []dto.SaleItemRequest{
		{Product: "prod-1", Quantity: 2},
		{Product: "no-existe", Quantity: 1},
	}}

	_, err := f.uc.CreateSale(context.Background(), f.cashier, "", in)
	require.Error(t, err)

	var notFoundErr *sales.ProductNotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "no-existe", notFoundErr.Ref)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, int64(5), f.stock.quantities["prod-1"], "la línea válida tampoco debe descontar")
	assert.Empty(t, f.salesDB.created)
}

// Validación de entrada.
func TestCreateSale_EntradaInvalida(t *testing.T) {
	f := newSaleFixture(t)
	ctx := context.Background()

	// Caso 1: sin items
	_, err := f.uc.CreateSale(ctx, f.cashier, "", dto.CreateSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Caso 2: cantidad cero
	_, err = f.uc.CreateSale(ctx, f.cashier, "", requestFor("prod-1", 0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Caso 3: tax negativo
	in := requestFor("prod-1", 1)
	in.Tax = decimal.NewFromInt(-1)
	_, err = f.uc.CreateSale(ctx, f.cashier, "", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Caso 4: método de pago fuera de la enumeración
	in = requestFor("prod-1", 1)
	in.PaymentMethod = "bitcoin"
	_, err = f.uc.CreateSale(ctx, f.cashier, "", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Caso 5: descuento mayor que subtotal + tax → total negativo
	in = requestFor("prod-1", 1)
	in.Discount = decimal.NewFromInt(500)
	_, err = f.uc.CreateSale(ctx, f.cashier, "", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Ninguna validación fallida debe tocar el estado.
	assert.Equal(t, int64(5), f.stock.quantities["prod-1"])
	assert.Empty(t, f.salesDB.created)
}

// Dos checkouts seguidos obtienen consecutivos distintos.
func TestCreateSale_ConsecutivosDistintos(t *testing.T) {
	f := newSaleFixture(t)

	first, err := f.uc.CreateSale(context.Background(), f.cashier, "", requestFor("prod-1", 1))
	require.NoError(t, err)
	second, err := f.uc.CreateSale(context.Background(), f.cashier, "", requestFor("prod-1", 1))
	require.NoError(t, err)

	assert.NotEqual(t, first.SaleNumber, second.SaleNumber)
	assert.Equal(t, int64(3), f.stock.quantities["prod-1"])
}
