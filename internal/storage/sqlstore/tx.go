package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
)

// ledgerTx реализует domain.Tx поверх bun.Tx.
type ledgerTx struct {
	tx      bun.Tx
	dialect Dialect
	now     func() time.Time
}

func (t *ledgerTx) LookupProduct(ctx context.Context, id int64) (domain.Product, error) {
	return lookupProduct(ctx, t.tx, t.dialect, id, true)
}

// DebitStock списывает остаток условным UPDATE: строка меняется, только если остатка хватает.
func (t *ledgerTx) DebitStock(ctx context.Context, id, qty int64) (domain.Product, error) {
	product, err := scanProduct(t.tx.QueryRowContext(ctx, `
		UPDATE products
		SET stock_quantity = stock_quantity - ?,
		    updated_at = ?
		WHERE id = ? AND stock_quantity >= ?
		RETURNING `+productColumns,
		qty, toMillis(t.now()), id, qty,
	))
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("debit stock: %w", err)
	}

	current, lookupErr := lookupProduct(ctx, t.tx, t.dialect, id, false)
	if lookupErr != nil {
		return domain.Product{}, lookupErr
	}
	return domain.Product{}, fmt.Errorf("%w: product %d has %d, requested %d",
		domain.ErrInsufficientStock, id, current.StockQuantity, qty)
}

func (t *ledgerTx) CreditStock(ctx context.Context, id, qty int64) (domain.Product, error) {
	product, err := scanProduct(t.tx.QueryRowContext(ctx, `
		UPDATE products
		SET stock_quantity = stock_quantity + ?,
		    updated_at = ?
		WHERE id = ?
		RETURNING `+productColumns,
		qty, toMillis(t.now()), id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
		}
		return domain.Product{}, fmt.Errorf("credit stock: %w", err)
	}
	return product, nil
}

// InsertSale сохраняет продажу. Пустой номер выводится из назначенного ID:
// строка вставляется с временным уникальным номером и сразу получает итоговый.
func (t *ledgerTx) InsertSale(ctx context.Context, sale domain.Sale) (domain.Sale, error) {
	if sale.Timestamp.IsZero() {
		sale.Timestamp = t.now()
	}
	sale.Timestamp = sale.Timestamp.UTC().Truncate(time.Millisecond)

	derived := sale.SaleNumber == ""
	number := sale.SaleNumber
	if derived {
		number = pendingSaleNumberPrefix + uuid.NewString()
	}

	err := t.tx.QueryRowContext(ctx, `
		INSERT INTO sales (
			sale_number, ts, customer_name, subtotal_cents, discount_cents, tax_cents,
			total_cents, payment_method, status, note
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`,
		number,
		toMillis(sale.Timestamp),
		sale.CustomerName,
		sale.SubtotalCents,
		sale.DiscountCents,
		sale.TaxCents,
		sale.TotalCents,
		string(sale.PaymentMethod),
		string(sale.Status),
		sale.Note,
	).Scan(&sale.ID)
	if err != nil {
		if t.dialect.isUniqueViolation(err) {
			return domain.Sale{}, fmt.Errorf("sale number %q: %w", sale.SaleNumber, domain.ErrDuplicateSaleNumber)
		}
		return domain.Sale{}, fmt.Errorf("insert sale: %w", err)
	}

	if derived {
		sale.SaleNumber = domain.SaleNumberFor(sale.Timestamp, sale.ID)
		if _, err := t.tx.ExecContext(ctx, `UPDATE sales SET sale_number = ? WHERE id = ?`, sale.SaleNumber, sale.ID); err != nil {
			if t.dialect.isUniqueViolation(err) {
				return domain.Sale{}, fmt.Errorf("sale number %q: %w", sale.SaleNumber, domain.ErrDuplicateSaleNumber)
			}
			return domain.Sale{}, fmt.Errorf("assign sale number: %w", err)
		}
	}

	insertLine := `
		INSERT INTO sale_items (` + saleLineColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, line := range sale.Lines {
		if _, err := t.tx.ExecContext(ctx, insertLine,
			sale.ID,
			line.ProductID,
			line.ProductName,
			line.SKU,
			line.Quantity,
			line.UnitPriceCents,
			line.TaxRateBasisPoints,
			line.SubtotalCents,
			line.DiscountCents,
			line.TaxCents,
			line.LineTotalCents,
		); err != nil {
			return domain.Sale{}, fmt.Errorf("insert sale item %d: %w", i, err)
		}
	}

	sale.Lines = append([]domain.SaleLine(nil), sale.Lines...)
	return sale, nil
}

func (t *ledgerTx) LookupSale(ctx context.Context, id int64) (domain.Sale, error) {
	return lookupSale(ctx, t.tx, t.dialect, id, true)
}

func (t *ledgerTx) UpdateSaleStatus(ctx context.Context, id int64, status domain.SaleStatus, note string) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE sales
		SET status = ?, note = ?
		WHERE id = ?
	`, string(status), note, id)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sale rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("sale %d: %w", id, domain.ErrSaleNotFound)
	}
	return nil
}

func (t *ledgerTx) AppendMovement(ctx context.Context, movement domain.StockMovement) error {
	if movement.OccurredAt.IsZero() {
		movement.OccurredAt = t.now()
	}
	if _, err := t.tx.ExecContext(ctx, `
		INSERT INTO stock_movements (product_id, delta, reason, ref, occurred_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		movement.ProductID,
		movement.Delta,
		movement.Reason,
		movement.Ref,
		toMillis(movement.OccurredAt),
	); err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

func (t *ledgerTx) EnqueueOutbox(ctx context.Context, msg domain.OutboxMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	now := t.now()
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = now
	}

	if _, err := t.tx.ExecContext(ctx, `
		INSERT INTO outbox_messages (
			id, aggregate_type, aggregate_id, event_type, payload,
			status, attempt_count, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?)
	`,
		msg.ID,
		msg.AggregateType,
		msg.AggregateID,
		msg.EventType,
		msg.Payload,
		outboxStatusPending,
		toMillis(msg.CreatedAt),
		toMillis(now),
	); err != nil {
		return fmt.Errorf("enqueue outbox message: %w", err)
	}
	return nil
}

// pendingSaleNumberPrefix помечает строку, которой номер ещё не назначен.
const pendingSaleNumberPrefix = "PENDING-"

var _ domain.Tx = (*ledgerTx)(nil)
