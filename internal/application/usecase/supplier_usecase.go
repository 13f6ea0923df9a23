package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-api/internal/application/audit"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// SupplierUseCase CRUD de proveedores.
type SupplierUseCase struct {
	repo     repository.SupplierRepository
	recorder audit.Sink
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, recorder audit.Sink) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, recorder: recorder}
}

// Create crea un proveedor.
func (uc *SupplierUseCase) Create(actor *entity.User, ip string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	uc.recorder.Record(audit.Entry{
		Action:      "Add Supplier",
		Description: fmt.Sprintf("Proveedor %s creado", supplier.Name),
		Entity:      "supplier",
		EntityID:    supplier.ID,
		UserID:      actor.ID,
		IPAddress:   ip,
	})
	return toSupplierResponse(supplier), nil
}

// List devuelve todos los proveedores.
func (uc *SupplierUseCase) List() ([]dto.SupplierResponse, error) {
	suppliers, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

// Update actualiza un proveedor.
func (uc *SupplierUseCase) Update(actor *entity.User, ip, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		supplier.Name = in.Name
	}
	supplier.Email = in.Email
	supplier.Phone = in.Phone
	if err := uc.repo.Update(supplier); err != nil {
		return nil, err
	}
	uc.recorder.Record(audit.Entry{
		Action:      "Update Supplier",
		Description: fmt.Sprintf("Proveedor %s actualizado", supplier.Name),
		Entity:      "supplier",
		EntityID:    supplier.ID,
		UserID:      actor.ID,
		IPAddress:   ip,
	})
	return toSupplierResponse(supplier), nil
}

// Delete elimina un proveedor.
func (uc *SupplierUseCase) Delete(actor *entity.User, ip, id string) error {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.recorder.Record(audit.Entry{
		Action:      "Delete Supplier",
		Description: fmt.Sprintf("Proveedor %s eliminado", supplier.Name),
		Entity:      "supplier",
		EntityID:    supplier.ID,
		UserID:      actor.ID,
		IPAddress:   ip,
	})
	return nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{ID: s.ID, Name: s.Name, Email: s.Email, Phone: s.Phone, CreatedAt: s.CreatedAt}
}
