package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/audit"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

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
func (r *fakeStockRepo) List() ([]*entity.StockRecord, error) {
	out := make([]*entity.StockRecord, 0, len(r.quantities))
	for id, q := range r.quantities {
		out = append(out, &entity.StockRecord{ProductID: id, Quantity: q, Status: entity.DeriveStockStatus(q)})
	}
	return out, nil
}
func (r *fakeStockRepo) Upsert(record *entity.StockRecord) error {
	r.quantities[record.ProductID] = record.Quantity
	return nil
}
func (r *fakeStockRepo) Add(productID string, amount int64) error {
	r.quantities[productID] += amount
	return nil
}
func (r *fakeStockRepo) DecrementIfAvailable(productID string, amount int64) (int64, bool, error) {
	available := r.quantities[productID]
	if available < amount {
		return available, false, nil
	}
	r.quantities[productID] = available - amount
	return r.quantities[productID], true, nil
}
func (r *fakeStockRepo) Delete(productID string) error {
	delete(r.quantities, productID)
	return nil
}

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
func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error)  { return nil, nil }
func (r *fakeProductRepo) Count() (int64, error)                              { return 0, nil }
func (r *fakeProductRepo) Search(query string) ([]*entity.Product, error)     { return nil, nil }
func (r *fakeProductRepo) TopByQuantity(limit int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Delete(id string) error                             { delete(r.products, id); return nil }

// fakeTxRunner restaura el estado si fn falla (rollback simulado).
type fakeTxRunner struct {
	stockRepo   *fakeStockRepo
	productRepo *fakeProductRepo
}

func (tr *fakeTxRunner) Run(ctx context.Context, fn func(
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
	if err := fn(tr.stockRepo, tr.productRepo); err != nil {
		tr.stockRepo.quantities = stockSnapshot
		for k, q := range productQty {
			tr.productRepo.products[k].Quantity = q
		}
		return err
	}
	return nil
}

type fakeSink struct {
	entries []audit.Entry
}

func (s *fakeSink) Record(e audit.Entry) { s.entries = append(s.entries, e) }

type inventoryFixture struct {
	uc       *inventory.UseCase
	stock    *fakeStockRepo
	products *fakeProductRepo
	sink     *fakeSink
	actor    *entity.User
}

// newInventoryFixture deja un producto con 8 unidades en el libro.
func newInventoryFixture(t *testing.T) *inventoryFixture {
	t.Helper()
	stock := &fakeStockRepo{quantities: map[string]int64{"prod-1": 8}}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-1": {ID: "prod-1", Name: "Harina", Price: decimal.NewFromInt(20), Quantity: 8},
	}}
	sink := &fakeSink{}
	tx := &fakeTxRunner{stockRepo: stock, productRepo: products}
	return &inventoryFixture{
		uc:       inventory.NewUseCase(tx, stock, products, sink),
		stock:    stock,
		products: products,
		sink:     sink,
		actor:    &entity.User{ID: "user-1", Role: entity.RoleManager},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustQuantity_EntradaSumaSinCondicion(t *testing.T) {
	f := newInventoryFixture(t)

	product, err := f.uc.AdjustQuantity(context.Background(), f.actor, "127.0.0.1", "prod-1",
		dto.UpdateQuantityRequest{Quantity: 5, Type: inventory.AdjustmentIn})
	require.NoError(t, err)

	assert.Equal(t, int64(13), f.stock.quantities["prod-1"])
	assert.Equal(t, int64(13), product.Quantity)
	require.Len(t, f.sink.entries, 1)
	assert.Equal(t, "Update Product Quantity", f.sink.entries[0].Action)
}

func TestAdjustQuantity_SalidaDescuentaSiAlcanza(t *testing.T) {
	f := newInventoryFixture(t)

	product, err := f.uc.AdjustQuantity(context.Background(), f.actor, "", "prod-1",
		dto.UpdateQuantityRequest{Quantity: 3, Type: inventory.AdjustmentOut})
	require.NoError(t, err)

	assert.Equal(t, int64(5), f.stock.quantities["prod-1"])
	assert.Equal(t, int64(5), product.Quantity)
}

// Salida mayor que lo disponible: falla con ErrInsufficientStock y no muta nada.
func TestAdjustQuantity_SalidaInsuficiente_NoMuta(t *testing.T) {
	f := newInventoryFixture(t)

	_, err := f.uc.AdjustQuantity(context.Background(), f.actor, "", "prod-1",
		dto.UpdateQuantityRequest{Quantity: 20, Type: inventory.AdjustmentOut})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(8), f.stock.quantities["prod-1"])
	assert.Equal(t, int64(8), f.products.products["prod-1"].Quantity)
	assert.Empty(t, f.sink.entries)
}

func TestAdjustQuantity_ValidaEntrada(t *testing.T) {
	f := newInventoryFixture(t)
	ctx := context.Background()

	// Caso 1: cantidad cero
	_, err := f.uc.AdjustQuantity(ctx, f.actor, "", "prod-1",
		dto.UpdateQuantityRequest{Quantity: 0, Type: inventory.AdjustmentIn})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Caso 2: tipo desconocido
	_, err = f.uc.AdjustQuantity(ctx, f.actor, "", "prod-1",
		dto.UpdateQuantityRequest{Quantity: 1, Type: "sideways"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Caso 3: producto inexistente
	_, err = f.uc.AdjustQuantity(ctx, f.actor, "", "no-existe",
		dto.UpdateQuantityRequest{Quantity: 1, Type: inventory.AdjustmentIn})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Registro ausente equivale a cero unidades con status "Agotado".
func TestGetByProduct_AusenteEquivaleACero(t *testing.T) {
	f := newInventoryFixture(t)

	record, err := f.uc.GetByProduct(context.Background(), "sin-registro")
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, int64(0), record.Quantity)
	assert.Equal(t, entity.StockStatusOut, record.Status)
}

func TestUpsert_FijaCantidadYDerivaStatus(t *testing.T) {
	f := newInventoryFixture(t)

	record, err := f.uc.Upsert(context.Background(), f.actor, "", dto.UpsertInventoryRequest{
		Product:  "prod-1",
		Quantity: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), record.Quantity)
	assert.Equal(t, entity.StockStatusLow, record.Status)
	assert.Equal(t, int64(3), f.stock.quantities["prod-1"])
}

func TestUpsert_ProductoInexistente(t *testing.T) {
	f := newInventoryFixture(t)

	_, err := f.uc.Upsert(context.Background(), f.actor, "", dto.UpsertInventoryRequest{
		Product:  "no-existe",
		Quantity: 3,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_EliminaRegistroExistente(t *testing.T) {
	f := newInventoryFixture(t)

	err := f.uc.Delete(context.Background(), f.actor, "", "prod-1")
	require.NoError(t, err)

	_, exists := f.stock.quantities["prod-1"]
	assert.False(t, exists)
}

func TestDelete_RegistroAusente(t *testing.T) {
	f := newInventoryFixture(t)

	err := f.uc.Delete(context.Background(), f.actor, "", "sin-registro")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
