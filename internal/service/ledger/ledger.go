// Package ledger проводит продажи и переводит их по жизненному циклу
// Completed -> Refunded | Voided синхронно с остатками товаров.
package ledger

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
	"github.com/vladislavdragonenkov/posledger/internal/metrics"
	"github.com/vladislavdragonenkov/posledger/internal/service/lowstock"
)

// VoidPolicy определяет, возвращается ли товар на склад при аннулировании.
type VoidPolicy string

const (
	// VoidRestock: аннулирование возвращает остатки, как и возврат.
	VoidRestock VoidPolicy = "restock"
	// VoidKeepStock: аннулирование меняет только статус и заметку.
	VoidKeepStock VoidPolicy = "keep-stock"
)

// ParseVoidPolicy разбирает значение из конфигурации; пустая строка даёт VoidRestock.
func ParseVoidPolicy(text string) (VoidPolicy, error) {
	switch VoidPolicy(text) {
	case "", VoidRestock:
		return VoidRestock, nil
	case VoidKeepStock:
		return VoidKeepStock, nil
	default:
		return "", fmt.Errorf("unknown void policy %q", text)
	}
}

const (
	defaultMovementsLimit = 50
	maxMovementsLimit     = 500
)

// Ledger: транзакционная машина состояний продаж.
type Ledger struct {
	store      domain.LedgerStore
	monitor    *lowstock.Monitor
	metrics    *metrics.LedgerMetrics
	logger     *log.Entry
	voidPolicy VoidPolicy
	now        func() time.Time
}

// Option настраивает Ledger.
type Option func(*Ledger)

// WithLogger задаёт логгер.
func WithLogger(logger *log.Entry) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithMetrics включает prometheus-метрики.
func WithMetrics(m *metrics.LedgerMetrics) Option {
	return func(l *Ledger) {
		l.metrics = m
	}
}

// WithMonitor подменяет монитор остатков (по умолчанию строится поверх store).
func WithMonitor(m *lowstock.Monitor) Option {
	return func(l *Ledger) {
		if m != nil {
			l.monitor = m
		}
	}
}

// WithVoidPolicy задаёт поведение остатков при аннулировании.
func WithVoidPolicy(policy VoidPolicy) Option {
	return func(l *Ledger) {
		if policy != "" {
			l.voidPolicy = policy
		}
	}
}

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// New создаёт Ledger поверх транзакционного хранилища.
func New(store domain.LedgerStore, opts ...Option) *Ledger {
	l := &Ledger{
		store:      store,
		logger:     log.New().WithField("component", "ledger"),
		voidPolicy: VoidRestock,
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	if l.monitor == nil {
		l.monitor = lowstock.NewMonitor(store,
			lowstock.WithGauge(l.metrics),
			lowstock.WithLogger(l.logger.WithField("component", "lowstock")),
		)
	}
	return l
}

// VoidPolicy возвращает действующую политику аннулирования.
func (l *Ledger) VoidPolicy() VoidPolicy {
	return l.voidPolicy
}

// FetchSale возвращает продажу по ID или ErrSaleNotFound.
func (l *Ledger) FetchSale(ctx context.Context, id int64) (domain.Sale, error) {
	sale, err := l.store.GetSale(ctx, id)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("fetch sale %d: %w", id, err)
	}
	return sale, nil
}

// ListSales возвращает продажи по нормализованному фильтру, новые первыми.
func (l *Ledger) ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	sales, err := l.store.ListSales(ctx, filter.Normalize(l.now()))
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return sales, nil
}

// LowStockCount: свежий подсчёт товаров на пороге дозаказа.
func (l *Ledger) LowStockCount(ctx context.Context) (int, error) {
	return l.monitor.Count(ctx)
}

// finish фиксирует метрики и логирует исход операции.
func (l *Ledger) finish(operation string, started time.Time, err error, fields log.Fields) {
	l.metrics.RecordCommitDuration(operation, l.now().Sub(started))
	entry := l.logger.WithFields(fields).WithField("operation", operation)
	if err == nil {
		entry.Info("ledger operation committed")
		return
	}

	kind := domain.KindOf(err)
	l.metrics.RecordFailure(operation, string(kind))
	if kind == domain.KindInternal {
		entry.WithError(err).Error("ledger operation failed")
		return
	}
	entry.WithError(err).WithField("kind", kind).Warn("ledger operation rejected")
}
