// Package lowstock считает товары, остаток которых опустился до порога дозаказа.
package lowstock

import (
	"context"
	"fmt"
	"io"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Counter: источник свежего количества товаров ниже порога.
type Counter interface {
	CountLowStock(ctx context.Context) (int, error)
}

// Gauge принимает последнее посчитанное значение (метрика prometheus).
type Gauge interface {
	SetLowStock(count int)
}

// Monitor пересчитывает количество при каждом обращении, значение не кешируется.
type Monitor struct {
	counter Counter
	gauge   Gauge
	logger  *log.Entry

	// mu защищает только last, по которому логируется рост.
	mu   sync.Mutex
	last int
}

// Option настраивает Monitor.
type Option func(*Monitor)

// WithLogger задаёт логгер.
func WithLogger(logger *log.Entry) Option {
	return func(m *Monitor) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithGauge задаёт получателя значения для метрик.
func WithGauge(g Gauge) Option {
	return func(m *Monitor) {
		m.gauge = g
	}
}

// NewMonitor создаёт монитор поверх счётчика хранилища.
func NewMonitor(counter Counter, opts ...Option) *Monitor {
	discard := log.New()
	discard.SetOutput(io.Discard)

	m := &Monitor{
		counter: counter,
		logger:  log.NewEntry(discard),
		last:    -1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Count возвращает свежее количество товаров с reorder_level > 0 и остатком не выше него.
func (m *Monitor) Count(ctx context.Context) (int, error) {
	count, err := m.counter.CountLowStock(ctx)
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	m.observe(count, "query")
	return count, nil
}

// Refresh пересчитывает значение после операции с остатками. Ошибка только логируется.
func (m *Monitor) Refresh(ctx context.Context, cause string) {
	count, err := m.counter.CountLowStock(ctx)
	if err != nil {
		m.logger.WithError(err).WithField("cause", cause).Warn("failed to recount low stock products")
		return
	}
	m.observe(count, cause)
}

func (m *Monitor) observe(count int, cause string) {
	if m.gauge != nil {
		m.gauge.SetLowStock(count)
	}

	m.mu.Lock()
	prev := m.last
	m.last = count
	m.mu.Unlock()

	if prev >= 0 && count > prev {
		m.logger.WithFields(log.Fields{
			"cause":     cause,
			"low_stock": count,
			"previous":  prev,
		}).Warn("products dropped to reorder level")
	}
}
