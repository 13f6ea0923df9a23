package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.SaleCounterRepository = (*SaleCounterRepo)(nil)

// SaleCounterRepo contador diario de ventas sobre PostgreSQL (una fila por día).
type SaleCounterRepo struct {
	q Querier
}

// NewSaleCounterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleCounterRepository(q Querier) *SaleCounterRepo {
	return &SaleCounterRepo{q: q}
}

// Next incrementa y devuelve el consecutivo del día en una sola sentencia.
// El upsert atómico garantiza valores distintos para checkouts concurrentes;
// no hay count-then-format.
func (r *SaleCounterRepo) Next(day time.Time) (int64, error) {
	query := `
		INSERT INTO sale_counters (day, seq)
		VALUES ($1, 1)
		ON CONFLICT (day)
		DO UPDATE SET seq = sale_counters.seq + 1
		RETURNING seq`
	var seq int64
	err := r.q.QueryRow(context.Background(), query, day.Format("2006-01-02")).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sale counter: %w", err)
	}
	return seq, nil
}
