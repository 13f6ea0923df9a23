package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
// Las líneas viven en sale_items, ordenadas por posición dentro de la venta.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, sale_number, customer_name, customer_phone, customer_email,
	       subtotal, tax, discount, total, payment_method, payment_status, status,
	       cashier_id, notes, created_at`

// Create persiste cabecera y líneas. La violación del único sale_number se
// traduce a domain.ErrConflict; el contador diario hace que no ocurra en la práctica.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, sale_number, customer_name, customer_phone, customer_email,
			subtotal, tax, discount, total, payment_method, payment_status, status,
			cashier_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.SaleNumber,
		sale.Customer.Name, sale.Customer.Phone, sale.Customer.Email,
		sale.Subtotal, sale.Tax, sale.Discount, sale.Total,
		sale.PaymentMethod, sale.PaymentStatus, sale.Status,
		sale.CashierID, sale.Notes, sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	for i, item := range sale.Items {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO sale_items (sale_id, position, product_id, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			sale.ID, i, item.ProductID, item.Quantity, item.UnitPrice, item.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una venta completa (cabecera + líneas) por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.SaleNumber, &s.Customer.Name, &s.Customer.Phone, &s.Customer.Email,
		&s.Subtotal, &s.Tax, &s.Discount, &s.Total,
		&s.PaymentMethod, &s.PaymentStatus, &s.Status,
		&s.CashierID, &s.Notes, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	items, err := r.itemsBySale(s.ID)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return &s, nil
}

// List lista ventas según el filtro, ordenadas por fecha de creación descendente.
func (r *SaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, error) {
	where, args := buildSaleFilter(filter)
	query := `SELECT ` + saleColumns + ` FROM sales` + where + ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return r.querySales(query, args...)
}

// Count cuenta ventas según el filtro (mismos criterios que List, sin paginación).
func (r *SaleRepo) Count(filter repository.SaleFilter) (int64, error) {
	where, args := buildSaleFilter(filter)
	var total int64
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM sales`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return total, nil
}

// ListPaidCompletedBetween lista ventas completadas y pagadas con created_at en [start, end).
func (r *SaleRepo) ListPaidCompletedBetween(start, end time.Time) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + `
		FROM sales
		WHERE status = $1 AND payment_status = $2 AND created_at >= $3 AND created_at < $4
		ORDER BY created_at DESC`
	return r.querySales(query, entity.SaleStatusCompleted, entity.PaymentStatusPaid, start, end)
}

// UpdateStatus transiciona el estado de la venta y del pago. La venta es
// estructuralmente inmutable: ningún otro campo se actualiza jamás.
func (r *SaleRepo) UpdateStatus(id, status, paymentStatus string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE sales SET status = $2, payment_status = $3 WHERE id = $1`,
		id, status, paymentStatus,
	)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SaleRepo) querySales(query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.SaleNumber, &s.Customer.Name, &s.Customer.Phone, &s.Customer.Email,
			&s.Subtotal, &s.Tax, &s.Discount, &s.Total,
			&s.PaymentMethod, &s.PaymentStatus, &s.Status,
			&s.CashierID, &s.Notes, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range list {
		items, err := r.itemsBySale(s.ID)
		if err != nil {
			return nil, err
		}
		s.Items = items
	}
	return list, nil
}

func (r *SaleRepo) itemsBySale(saleID string) ([]entity.SaleItem, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT product_id, quantity, unit_price, line_total
		FROM sale_items WHERE sale_id = $1 ORDER BY position`,
		saleID,
	)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var items []entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// buildSaleFilter arma la cláusula WHERE con placeholders posicionales.
func buildSaleFilter(filter repository.SaleFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conds = append(conds, fmt.Sprintf("created_at < $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
