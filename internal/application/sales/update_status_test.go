package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

type statusFixture struct {
	uc      *sales.StatusUseCase
	salesDB *fakeSaleRepo
	sink    *fakeSink
	actor   *entity.User
}

// newStatusFixture deja una venta completada y pagada lista para transicionar.
func newStatusFixture(t *testing.T) *statusFixture {
	t.Helper()
	salesDB := &fakeSaleRepo{created: []*entity.Sale{{
		ID:            "sale-1",
		SaleNumber:    "SALE-20260901-0001",
		Total:         decimal.NewFromInt(100),
		PaymentMethod: entity.PaymentCash,
		PaymentStatus: entity.PaymentStatusPaid,
		Status:        entity.SaleStatusCompleted,
		CashierID:     "user-1",
	}}}
	sink := &fakeSink{}
	return &statusFixture{
		uc:      sales.NewStatusUseCase(salesDB, sink),
		salesDB: salesDB,
		sink:    sink,
		actor:   &entity.User{ID: "user-2", Role: entity.RoleManager},
	}
}

// Cancelar una venta: ambos estados transicionan y queda auditado.
func TestUpdateStatus_CancelaVenta(t *testing.T) {
	f := newStatusFixture(t)

	resp, err := f.uc.UpdateStatus(context.Background(), f.actor, "127.0.0.1", "sale-1",
		dto.UpdateSaleStatusRequest{
			Status:        entity.SaleStatusCancelled,
			PaymentStatus: entity.PaymentStatusRefunded,
		})
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusCancelled, resp.Status)
	assert.Equal(t, entity.PaymentStatusRefunded, resp.PaymentStatus)
	assert.Equal(t, entity.SaleStatusCancelled, f.salesDB.created[0].Status)

	require.Len(t, f.sink.entries, 1)
	assert.Equal(t, "Update Sale Status", f.sink.entries[0].Action)
	assert.Equal(t, "sale-1", f.sink.entries[0].EntityID)
}

// Un campo vacío conserva el valor actual.
func TestUpdateStatus_CampoVacioConservaElActual(t *testing.T) {
	f := newStatusFixture(t)

	resp, err := f.uc.UpdateStatus(context.Background(), f.actor, "", "sale-1",
		dto.UpdateSaleStatusRequest{PaymentStatus: entity.PaymentStatusRefunded})
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusCompleted, resp.Status, "status sin tocar")
	assert.Equal(t, entity.PaymentStatusRefunded, resp.PaymentStatus)
}

func TestUpdateStatus_EntradaInvalida(t *testing.T) {
	f := newStatusFixture(t)
	ctx := context.Background()

	// Caso 1: ambos campos vacíos
	_, err := f.uc.UpdateStatus(ctx, f.actor, "", "sale-1", dto.UpdateSaleStatusRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Caso 2: status fuera de la enumeración
	_, err = f.uc.UpdateStatus(ctx, f.actor, "", "sale-1",
		dto.UpdateSaleStatusRequest{Status: "shipped"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Caso 3: paymentStatus fuera de la enumeración
	_, err = f.uc.UpdateStatus(ctx, f.actor, "", "sale-1",
		dto.UpdateSaleStatusRequest{PaymentStatus: "partial"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, entity.SaleStatusCompleted, f.salesDB.created[0].Status, "nada debe mutar")
	assert.Empty(t, f.sink.entries)
}

func TestUpdateStatus_VentaInexistente(t *testing.T) {
	f := newStatusFixture(t)

	_, err := f.uc.UpdateStatus(context.Background(), f.actor, "", "no-existe",
		dto.UpdateSaleStatusRequest{Status: entity.SaleStatusCancelled})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
