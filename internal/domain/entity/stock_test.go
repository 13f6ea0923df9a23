package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// La clasificación se deriva siempre de la cantidad; los bordes importan:
// 0 y negativos agotan, el umbral (10) todavía es bajo, 11 ya es stock normal.
func TestDeriveStockStatus_Bordes(t *testing.T) {
	cases := []struct {
		name     string
		quantity int64
		want     string
	}{
		{"negativo es agotado", -1, entity.StockStatusOut},
		{"cero es agotado", 0, entity.StockStatusOut},
		{"uno es bajo", 1, entity.StockStatusLow},
		{"umbral exacto es bajo", entity.LowStockThreshold, entity.StockStatusLow},
		{"sobre el umbral es normal", entity.LowStockThreshold + 1, entity.StockStatusIn},
		{"cantidad grande es normal", 5000, entity.StockStatusIn},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, entity.DeriveStockStatus(tc.quantity))
		})
	}
}

func TestValidRole_EnumeracionCerrada(t *testing.T) {
	assert.True(t, entity.ValidRole(entity.RoleAdmin))
	assert.True(t, entity.ValidRole(entity.RoleManager))
	assert.True(t, entity.ValidRole(entity.RoleStaff))

	assert.False(t, entity.ValidRole(""))
	assert.False(t, entity.ValidRole("superadmin"))
	assert.False(t, entity.ValidRole("Admin"), "los roles distinguen mayúsculas")
}

func TestValidPaymentMethod_EnumeracionCerrada(t *testing.T) {
	assert.True(t, entity.ValidPaymentMethod(entity.PaymentCash))
	assert.True(t, entity.ValidPaymentMethod(entity.PaymentCard))
	assert.True(t, entity.ValidPaymentMethod(entity.PaymentMobile))
	assert.True(t, entity.ValidPaymentMethod(entity.PaymentBank))

	assert.False(t, entity.ValidPaymentMethod(""))
	assert.False(t, entity.ValidPaymentMethod("crypto"))
}

func TestValidSaleStatus_EnumeracionCerrada(t *testing.T) {
	assert.True(t, entity.ValidSaleStatus(entity.SaleStatusCompleted))
	assert.True(t, entity.ValidSaleStatus(entity.SaleStatusPending))
	assert.True(t, entity.ValidSaleStatus(entity.SaleStatusCancelled))

	assert.False(t, entity.ValidSaleStatus(""))
	assert.False(t, entity.ValidSaleStatus("shipped"))
}

func TestValidPaymentStatus_EnumeracionCerrada(t *testing.T) {
	assert.True(t, entity.ValidPaymentStatus(entity.PaymentStatusPending))
	assert.True(t, entity.ValidPaymentStatus(entity.PaymentStatusPaid))
	assert.True(t, entity.ValidPaymentStatus(entity.PaymentStatusRefunded))
	assert.True(t, entity.ValidPaymentStatus(entity.PaymentStatusCancelled))

	assert.False(t, entity.ValidPaymentStatus(""))
	assert.False(t, entity.ValidPaymentStatus("partial"))
}
