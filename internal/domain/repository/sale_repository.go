package repository

import (
	"time"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// SaleFilter filtros de listado de ventas (rango por fecha de creación + estado).
type SaleFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    string
	Limit     int
	Offset    int
}

// SaleRepository puerto de persistencia para Sale (cabecera + líneas embebidas).
type SaleRepository interface {
	// Create persiste cabecera y líneas. Una violación del único sale_number
	// se traduce a domain.ErrConflict (red de seguridad; el contador diario es el mecanismo primario).
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	List(filter SaleFilter) ([]*entity.Sale, error)
	Count(filter SaleFilter) (int64, error)
	// ListPaidCompletedBetween ventas completadas y pagadas en [start, end) — hoy/estadísticas.
	ListPaidCompletedBetween(start, end time.Time) ([]*entity.Sale, error)
	UpdateStatus(id, status, paymentStatus string) error
}

// SaleCounterRepository contador diario atómico para el consecutivo de venta.
type SaleCounterRepository interface {
	// Next incrementa y devuelve el consecutivo del día en una sola operación
	// (no count-then-format: dos checkouts concurrentes obtienen valores distintos).
	Next(day time.Time) (int64, error)
}
