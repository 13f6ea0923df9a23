package repository

import "github.com/jhoicas/pos-api/internal/domain/entity"

// ActivityRepository puerto append-only del registro de actividad.
type ActivityRepository interface {
	Create(entry *entity.ActivityLogEntry) error
	ListRecent(limit int) ([]*entity.ActivityLogEntry, error)
}
