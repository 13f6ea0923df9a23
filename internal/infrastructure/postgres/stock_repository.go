package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetByProduct obtiene el registro de stock de un producto. Registro ausente
// devuelve (nil, nil); el caso de uso decide si eso equivale a cero unidades
// o a un not-found.
func (r *StockRepo) GetByProduct(productID string) (*entity.StockRecord, error) {
	query := `
		SELECT product_id, quantity, status, updated_at
		FROM stock_records WHERE product_id = $1`
	var s entity.StockRecord
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&s.ProductID, &s.Quantity, &s.Status, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock record: %w", err)
	}
	return &s, nil
}

// List lista todos los registros de stock ordenados por fecha de actualización descendente.
func (r *StockRepo) List() ([]*entity.StockRecord, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT product_id, quantity, status, updated_at FROM stock_records ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list stock records: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockRecord
	for rows.Next() {
		var s entity.StockRecord
		if err := rows.Scan(&s.ProductID, &s.Quantity, &s.Status, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock record: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Upsert inserta o reemplaza la cantidad de un producto. El status se recalcula
// siempre desde la cantidad; nunca se persiste lo que traiga el registro.
func (r *StockRepo) Upsert(record *entity.StockRecord) error {
	status := entity.DeriveStockStatus(record.Quantity)
	query := `
		INSERT INTO stock_records (product_id, quantity, status, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, status = EXCLUDED.status, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, record.ProductID, record.Quantity, status)
	if err != nil {
		return fmt.Errorf("upsert stock record: %w", err)
	}
	record.Status = status
	return nil
}

// Add suma amount sin condición, creando el registro si no existe.
func (r *StockRepo) Add(productID string, amount int64) error {
	query := `
		INSERT INTO stock_records (product_id, quantity, status, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id)
		DO UPDATE SET quantity = stock_records.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING quantity`
	var quantity int64
	err := r.q.QueryRow(context.Background(), query,
		productID, amount, entity.DeriveStockStatus(amount),
	).Scan(&quantity)
	if err != nil {
		return fmt.Errorf("add stock: %w", err)
	}
	return r.setStatus(productID, quantity)
}

// DecrementIfAvailable resta amount en una sola operación condicional:
// el WHERE exige quantity >= amount, así que o descuenta o no toca la fila.
// Dos checkouts concurrentes sobre la última unidad: solo uno pasa el WHERE.
func (r *StockRepo) DecrementIfAvailable(productID string, amount int64) (int64, bool, error) {
	query := `
		UPDATE stock_records
		SET quantity = quantity - $2, updated_at = now()
		WHERE product_id = $1 AND quantity >= $2
		RETURNING quantity`
	var remaining int64
	err := r.q.QueryRow(context.Background(), query, productID, amount).Scan(&remaining)
	if err == nil {
		if err := r.setStatus(productID, remaining); err != nil {
			return 0, false, err
		}
		return remaining, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, fmt.Errorf("decrement stock: %w", err)
	}

	// No alcanzó (o el registro no existe): reportar lo disponible sin mutar nada.
	var available int64
	err = r.q.QueryRow(context.Background(),
		`SELECT quantity FROM stock_records WHERE product_id = $1`, productID,
	).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("read stock after failed decrement: %w", err)
	}
	return available, false, nil
}

// Delete elimina el registro de stock de un producto.
func (r *StockRepo) Delete(productID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_records WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete stock record: %w", err)
	}
	return nil
}

// setStatus recalcula y persiste el status derivado tras una escritura de cantidad.
// La derivación vive en entity.DeriveStockStatus, no duplicada en SQL.
func (r *StockRepo) setStatus(productID string, quantity int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE stock_records SET status = $2 WHERE product_id = $1`,
		productID, entity.DeriveStockStatus(quantity),
	)
	if err != nil {
		return fmt.Errorf("update stock status: %w", err)
	}
	return nil
}
