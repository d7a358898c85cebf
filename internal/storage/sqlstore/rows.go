package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
)

const (
	productColumns = `id, sku, name, category, unit_price_cents, tax_rate_bp, stock_quantity,
		reorder_level, notes, created_at, updated_at`
	saleColumns = `id, sale_number, ts, customer_name, subtotal_cents, discount_cents, tax_cents,
		total_cents, payment_method, status, note`
	saleLineColumns = `sale_id, product_id, product_name, sku, quantity, unit_price_cents, tax_rate_bp,
		subtotal_cents, discount_cents, tax_cents, line_total_cents`
	movementColumns = `id, product_id, delta, reason, ref, occurred_at`
)

// querier: общее подмножество *sql.DB и *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

// Время хранится как unix-миллисекунды в UTC.
func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p                    domain.Product
		createdAt, updatedAt int64
	)
	if err := row.Scan(
		&p.ID,
		&p.SKU,
		&p.Name,
		&p.Category,
		&p.UnitPriceCents,
		&p.TaxRateBasisPoints,
		&p.StockQuantity,
		&p.ReorderLevel,
		&p.Notes,
		&createdAt,
		&updatedAt,
	); err != nil {
		return domain.Product{}, err
	}
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updatedAt)
	return p, nil
}

func scanSale(row rowScanner) (domain.Sale, error) {
	var (
		s             domain.Sale
		ts            int64
		method, state string
	)
	if err := row.Scan(
		&s.ID,
		&s.SaleNumber,
		&ts,
		&s.CustomerName,
		&s.SubtotalCents,
		&s.DiscountCents,
		&s.TaxCents,
		&s.TotalCents,
		&method,
		&state,
		&s.Note,
	); err != nil {
		return domain.Sale{}, err
	}
	s.Timestamp = fromMillis(ts)
	s.PaymentMethod = domain.PaymentMethod(method)
	s.Status = domain.SaleStatus(state)
	if !s.Status.Valid() {
		return domain.Sale{}, fmt.Errorf("invalid sale status %q for sale %d", state, s.ID)
	}
	return s, nil
}

func scanMovement(row rowScanner) (domain.StockMovement, error) {
	var (
		m  domain.StockMovement
		at int64
	)
	if err := row.Scan(&m.ID, &m.ProductID, &m.Delta, &m.Reason, &m.Ref, &at); err != nil {
		return domain.StockMovement{}, err
	}
	m.OccurredAt = fromMillis(at)
	return m, nil
}

// loadLines читает позиции сразу для набора продаж одним запросом.
func loadLines(ctx context.Context, q querier, dialect Dialect, saleIDs []int64) (map[int64][]domain.SaleLine, error) {
	result := make(map[int64][]domain.SaleLine, len(saleIDs))
	if len(saleIDs) == 0 {
		return result, nil
	}

	args := make([]any, 0, len(saleIDs))
	for _, id := range saleIDs {
		args = append(args, id)
	}
	rows, err := q.QueryContext(ctx, `
		SELECT `+saleLineColumns+`
		FROM sale_items
		WHERE sale_id IN (`+placeholders(len(saleIDs))+`)
		ORDER BY sale_id, id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("query sale items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			saleID int64
			line   domain.SaleLine
		)
		if err := rows.Scan(
			&saleID,
			&line.ProductID,
			&line.ProductName,
			&line.SKU,
			&line.Quantity,
			&line.UnitPriceCents,
			&line.TaxRateBasisPoints,
			&line.SubtotalCents,
			&line.DiscountCents,
			&line.TaxCents,
			&line.LineTotalCents,
		); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		result[saleID] = append(result[saleID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sale items: %w", err)
	}
	return result, nil
}
