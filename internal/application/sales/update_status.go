package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-api/internal/application/audit"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// StatusUseCase transiciones de estado sobre una venta ya persistida.
// Status y PaymentStatus son lo único mutable de una venta; el resto
// (items, totales, consecutivo) queda congelado al crearla.
type StatusUseCase struct {
	saleRepo repository.SaleRepository
	recorder audit.Sink
}

// NewStatusUseCase construye el caso de uso.
func NewStatusUseCase(saleRepo repository.SaleRepository, recorder audit.Sink) *StatusUseCase {
	return &StatusUseCase{saleRepo: saleRepo, recorder: recorder}
}

// UpdateStatus aplica la transición. Un campo vacío conserva el valor actual;
// un valor fuera de la enumeración falla con ErrInvalidInput.
func (uc *StatusUseCase) UpdateStatus(ctx context.Context, actor *entity.User, ip, saleID string, in dto.UpdateSaleStatusRequest) (*dto.SaleResponse, error) {
	if in.Status == "" && in.PaymentStatus == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Status != "" && !entity.ValidSaleStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentStatus != "" && !entity.ValidPaymentStatus(in.PaymentStatus) {
		return nil, domain.ErrInvalidInput
	}

	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}

	status := sale.Status
	if in.Status != "" {
		status = in.Status
	}
	paymentStatus := sale.PaymentStatus
	if in.PaymentStatus != "" {
		paymentStatus = in.PaymentStatus
	}
	if err := uc.saleRepo.UpdateStatus(saleID, status, paymentStatus); err != nil {
		return nil, err
	}
	sale.Status = status
	sale.PaymentStatus = paymentStatus

	uc.recorder.Record(audit.Entry{
		Action:      "Update Sale Status",
		Description: fmt.Sprintf("Venta %s: estado %s, pago %s", sale.SaleNumber, status, paymentStatus),
		Entity:      "sale",
		EntityID:    sale.ID,
		UserID:      actor.ID,
		IPAddress:   ip,
	})

	return buildSaleResponse(sale, nil, nil), nil
}
