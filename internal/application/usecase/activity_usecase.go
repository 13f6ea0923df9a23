package usecase

import (
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ActivityUseCase lectura del registro de actividad para vistas de reporte.
// El flujo principal solo escribe (vía el recorder asíncrono); aquí solo se lee.
type ActivityUseCase struct {
	repo repository.ActivityRepository
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(repo repository.ActivityRepository) *ActivityUseCase {
	return &ActivityUseCase{repo: repo}
}

// ListRecent devuelve las entradas más recientes (por defecto 50, máximo 200).
func (uc *ActivityUseCase) ListRecent(limit int) (*dto.ActivityListResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	entries, err := uc.repo.ListRecent(limit)
	if err != nil {
		return nil, err
	}
	resp := &dto.ActivityListResponse{
		Success:    true,
		Activities: make([]dto.ActivityEntryResponse, 0, len(entries)),
		Total:      len(entries),
	}
	for _, e := range entries {
		resp.Activities = append(resp.Activities, dto.ActivityEntryResponse{
			ID:          e.ID,
			Action:      e.Action,
			Description: e.Description,
			Entity:      e.Entity,
			EntityID:    e.EntityID,
			UserID:      e.UserID,
			IPAddress:   e.IPAddress,
			CreatedAt:   e.CreatedAt,
		})
	}
	return resp, nil
}
