package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
)

const (
	opTimeout = 5 * time.Second
	txTimeout = 10 * time.Second
)

// Store: LedgerStore поверх bun.DB.
type Store struct {
	db      *bun.DB
	dialect Dialect
	now     func() time.Time
}

// New оборачивает открытое подключение. Схема должна быть уже применена.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{
		db:      bun.NewDB(db, dialect.Bun),
		dialect: dialect,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// DB возвращает raw SQL DB, когда нужен низкоуровневый доступ.
func (s *Store) DB() *sql.DB {
	return s.db.DB
}

// Bun возвращает обёртку bun над тем же подключением.
func (s *Store) Bun() *bun.DB {
	return s.db
}

// Dialect возвращает диалект хранилища.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Outbox возвращает outbox, в который пишут транзакции ledger.
func (s *Store) Outbox() *OutboxRepository {
	return NewOutboxRepository(s.db, s.dialect)
}

// Idempotency возвращает хранилище ключей идемпотентности в той же базе.
func (s *Store) Idempotency() *IdempotencyRepository {
	return NewIdempotencyRepository(s.db, s.dialect)
}

// Ping проверяет доступность подключения.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("%s store is not initialized", s.dialectName())
	}

	pingCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return s.db.PingContext(pingCtx)
}

// Close закрывает подключение к БД.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) dialectName() string {
	if s == nil || s.dialect.Name == "" {
		return "sql"
	}
	return s.dialect.Name
}

// WithinTx выполняет fn в одной транзакции БД. Любая ошибка fn откатывает транзакцию.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx domain.Tx) error) (err error) {
	ctx, cancel := context.WithTimeout(ctx, txTimeout)
	defer cancel()

	bunTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = bunTx.Rollback()
		}
	}()

	if err = fn(ctx, &ledgerTx{tx: bunTx, dialect: s.dialect, now: s.now}); err != nil {
		return err
	}
	if err = bunTx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Store) GetSale(ctx context.Context, id int64) (domain.Sale, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return lookupSale(ctx, s.db, s.dialect, id, false)
}

// ListSales возвращает продажи по нормализованному фильтру, от новых к старым.
func (s *Store) ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var (
		where = []string{"ts >= ?", "ts <= ?"}
		args  = []any{toMillis(filter.From), toMillis(filter.To)}
	)
	if len(filter.PaymentMethods) > 0 {
		where = append(where, "payment_method IN ("+placeholders(len(filter.PaymentMethods))+")")
		for _, method := range filter.PaymentMethods {
			args = append(args, string(method))
		}
	}
	if len(filter.Statuses) > 0 {
		where = append(where, "status IN ("+placeholders(len(filter.Statuses))+")")
		for _, status := range filter.Statuses {
			args = append(args, string(status))
		}
	}
	if filter.CustomerQuery != "" {
		where = append(where, `LOWER(customer_name) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(strings.ToLower(filter.CustomerQuery))+"%")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = domain.DefaultSaleListLimit
	}
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+saleColumns+`
		FROM sales
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY ts DESC, id DESC
		LIMIT ? OFFSET ?
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	sales := make([]domain.Sale, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, sale)
		ids = append(ids, sale.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}

	lines, err := loadLines(ctx, s.db, s.dialect, ids)
	if err != nil {
		return nil, err
	}
	for i := range sales {
		sales[i].Lines = lines[sales[i].ID]
	}
	return sales, nil
}

func (s *Store) CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	now := s.now()
	product := domain.Product{
		SKU:                in.SKU,
		Name:               in.Name,
		Category:           in.Category,
		UnitPriceCents:     in.UnitPriceCents,
		TaxRateBasisPoints: in.TaxRateBasisPoints,
		StockQuantity:      in.StockQuantity,
		ReorderLevel:       in.ReorderLevel,
		Notes:              in.Notes,
		CreatedAt:          now.Truncate(time.Millisecond),
		UpdatedAt:          now.Truncate(time.Millisecond),
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO products (
			sku, name, category, unit_price_cents, tax_rate_bp, stock_quantity,
			reorder_level, notes, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`,
		product.SKU,
		product.Name,
		product.Category,
		product.UnitPriceCents,
		product.TaxRateBasisPoints,
		product.StockQuantity,
		product.ReorderLevel,
		product.Notes,
		toMillis(now),
		toMillis(now),
	).Scan(&product.ID)
	if err != nil {
		if s.dialect.isUniqueViolation(err) {
			return domain.Product{}, fmt.Errorf("sku %q: %w", in.SKU, domain.ErrDuplicateSKU)
		}
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return product, nil
}

func (s *Store) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return lookupProduct(ctx, s.db, s.dialect, id, false)
}

// UpdateProduct меняет редактируемые поля товара. Снимки в позициях продаж не затрагиваются.
func (s *Store) UpdateProduct(ctx context.Context, id int64, upd domain.ProductUpdate) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	product, err := scanProduct(s.db.QueryRowContext(ctx, `
		UPDATE products
		SET name = ?, category = ?, unit_price_cents = ?, tax_rate_bp = ?,
		    reorder_level = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+productColumns,
		upd.Name,
		upd.Category,
		upd.UnitPriceCents,
		upd.TaxRateBasisPoints,
		upd.ReorderLevel,
		toMillis(s.now()),
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
		}
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

// ListProducts возвращает товары, упорядоченные по названию.
func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (s *Store) CountLowStock(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var count int
	if err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM products
		WHERE reorder_level > 0 AND stock_quantity <= reorder_level
	`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return count, nil
}

// ListMovements возвращает движения товара от новых к старым.
func (s *Store) ListMovements(ctx context.Context, productID int64, limit int) ([]domain.StockMovement, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+movementColumns+`
		FROM stock_movements
		WHERE product_id = ?
		ORDER BY id DESC
		LIMIT ?
	`, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("query stock movements: %w", err)
	}
	defer rows.Close()

	movements := make([]domain.StockMovement, 0)
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		movements = append(movements, movement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stock movements: %w", err)
	}
	return movements, nil
}

func lookupProduct(ctx context.Context, q querier, dialect Dialect, id int64, lock bool) (domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	if lock {
		query = dialect.forUpdate(query)
	}
	product, err := scanProduct(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
		}
		return domain.Product{}, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

func lookupSale(ctx context.Context, q querier, dialect Dialect, id int64, lock bool) (domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = ?`
	if lock {
		query = dialect.forUpdate(query)
	}
	sale, err := scanSale(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Sale{}, fmt.Errorf("sale %d: %w", id, domain.ErrSaleNotFound)
		}
		return domain.Sale{}, fmt.Errorf("get sale: %w", err)
	}

	lines, err := loadLines(ctx, q, dialect, []int64{id})
	if err != nil {
		return domain.Sale{}, err
	}
	sale.Lines = lines[id]
	return sale, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var _ domain.LedgerStore = (*Store)(nil)
