package domain

import (
	"context"
	"time"
)

// ProductCatalog: операции с товарами внутри транзакции.
type ProductCatalog interface {
	// LookupProduct читает товар и блокирует его строку до конца транзакции.
	LookupProduct(ctx context.Context, id int64) (Product, error)
	// DebitStock уменьшает остаток; ErrInsufficientStock, если остаток ушёл бы в минус.
	DebitStock(ctx context.Context, id, qty int64) (Product, error)
	// CreditStock увеличивает остаток.
	CreditStock(ctx context.Context, id, qty int64) (Product, error)
}

// SaleStore: операции с продажами внутри транзакции.
type SaleStore interface {
	// InsertSale сохраняет продажу и назначает ID; ErrDuplicateSaleNumber при повторе номера.
	InsertSale(ctx context.Context, sale Sale) (Sale, error)
	// LookupSale читает продажу с блокировкой строки.
	LookupSale(ctx context.Context, id int64) (Sale, error)
	// UpdateSaleStatus меняет статус и заметку.
	UpdateSaleStatus(ctx context.Context, id int64, status SaleStatus, note string) error
}

// StockJournal: журнал движения остатков.
type StockJournal interface {
	AppendMovement(ctx context.Context, movement StockMovement) error
}

// OutboxWriter кладёт событие в transactional outbox в той же транзакции.
type OutboxWriter interface {
	EnqueueOutbox(ctx context.Context, msg OutboxMessage) error
}

// Tx объединяет всё, что должно фиксироваться атомарно.
type Tx interface {
	ProductCatalog
	SaleStore
	StockJournal
	OutboxWriter
}

// TxRunner выполняет fn в одной транзакции. Ошибка fn откатывает все изменения.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// SaleReader: чтение продаж вне транзакции.
type SaleReader interface {
	GetSale(ctx context.Context, id int64) (Sale, error)
	// ListSales ожидает нормализованный фильтр, сортирует от новых к старым.
	ListSales(ctx context.Context, filter SaleFilter) ([]Sale, error)
}

// ProductRepository: обслуживание каталога и запросы по остаткам.
type ProductRepository interface {
	CreateProduct(ctx context.Context, in ProductInput) (Product, error)
	GetProduct(ctx context.Context, id int64) (Product, error)
	// UpdateProduct меняет редактируемые поля; ErrProductNotFound, если товара нет.
	UpdateProduct(ctx context.Context, id int64, upd ProductUpdate) (Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
	// CountLowStock считает товары с reorder_level > 0 AND stock_quantity <= reorder_level.
	CountLowStock(ctx context.Context) (int, error)
	ListMovements(ctx context.Context, productID int64, limit int) ([]StockMovement, error)
}

// LedgerStore: полный контракт хранилища, который нужен ledger.
type LedgerStore interface {
	TxRunner
	SaleReader
	ProductRepository
}

// OutboxPublisher публикует события из transactional outbox.
type OutboxPublisher interface {
	// Publish передаёт событие наружу; должен быть идемпотентным.
	Publish(event OutboxMessage) error
}

// OutboxRepository: сторона чтения outbox для воркера публикации.
type OutboxRepository interface {
	PullPending(ctx context.Context, limit int) ([]OutboxMessage, error)
	Stats(ctx context.Context) (OutboxStats, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) error
}

// IdempotencyRepository хранит состояние обработки запросов по idempotency-key.
type IdempotencyRepository interface {
	CreateProcessing(ctx context.Context, key, requestHash string, ttlAt time.Time) (IdempotencyRecord, error)
	Get(ctx context.Context, key string) (IdempotencyRecord, error)
	MarkDone(ctx context.Context, key string, responseBody []byte, httpStatus int) error
	MarkFailed(ctx context.Context, key string, responseBody []byte, httpStatus int) error
	DeleteExpired(ctx context.Context, before time.Time, limit int) (int, error)
}

// OutboxMessage хранит данные для публикуемого события.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
}

// OutboxStats описывает текущее состояние backlog transactional outbox.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}
