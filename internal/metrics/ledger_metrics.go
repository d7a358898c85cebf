package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Операции ledger, которые размечаются в метриках.
const (
	OperationCreate = "create"
	OperationRefund = "refund"
	OperationVoid   = "void"
	OperationAdjust = "adjust"
)

// LedgerMetrics содержит метрики операций с продажами и остатками.
// Все методы безопасно вызывать на nil.
type LedgerMetrics struct {
	salesCreated     *prometheus.CounterVec
	salesRefunded    prometheus.Counter
	salesVoided      prometheus.Counter
	failures         *prometheus.CounterVec
	revenueCents     prometheus.Counter
	commitDuration   *prometheus.HistogramVec
	stockAdjustments prometheus.Counter
	lowStock         prometheus.Gauge
}

// NewLedgerMetrics регистрирует метрики в prometheus.DefaultRegisterer.
func NewLedgerMetrics() *LedgerMetrics {
	return NewLedgerMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewLedgerMetricsWithRegisterer регистрирует метрики в указанном реестре (в тестах обычно изолированный).
func NewLedgerMetricsWithRegisterer(registerer prometheus.Registerer) *LedgerMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &LedgerMetrics{
		salesCreated: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_sales_created_total",
			Help: "Total number of completed sales by payment method",
		}, []string{"payment_method"})),
		salesRefunded: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_sales_refunded_total",
			Help: "Total number of refunded sales",
		})),
		salesVoided: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_sales_voided_total",
			Help: "Total number of voided sales",
		})),
		failures: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_ledger_failures_total",
			Help: "Total number of rejected ledger operations by error kind",
		}, []string{"operation", "kind"})),
		revenueCents: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_sales_revenue_cents_total",
			Help: "Sum of completed sale totals in minor currency units",
		})),
		commitDuration: register(registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pos_ledger_commit_duration_seconds",
			Help:    "Duration of ledger transactions in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		}, []string{"operation"})),
		stockAdjustments: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_stock_adjustments_total",
			Help: "Total number of manual stock adjustments",
		})),
		lowStock: register(registerer, prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pos_low_stock_products",
			Help: "Number of products at or below their reorder level",
		})),
	}
}

// register возвращает уже зарегистрированный коллектор того же типа вместо паники.
func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) C {
	err := registerer.Register(collector)
	if err == nil {
		return collector
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		existing, ok := already.ExistingCollector.(C)
		if !ok {
			panic(fmt.Sprintf("collector already registered with unexpected type %T", already.ExistingCollector))
		}
		return existing
	}
	panic(fmt.Sprintf("register collector: %v", err))
}

// RecordSaleCreated учитывает проведённую продажу и её сумму.
func (m *LedgerMetrics) RecordSaleCreated(paymentMethod string, totalCents int64) {
	if m == nil {
		return
	}
	m.salesCreated.WithLabelValues(paymentMethod).Inc()
	if totalCents > 0 {
		m.revenueCents.Add(float64(totalCents))
	}
}

func (m *LedgerMetrics) RecordSaleRefunded() {
	if m == nil {
		return
	}
	m.salesRefunded.Inc()
}

func (m *LedgerMetrics) RecordSaleVoided() {
	if m == nil {
		return
	}
	m.salesVoided.Inc()
}

func (m *LedgerMetrics) RecordStockAdjusted() {
	if m == nil {
		return
	}
	m.stockAdjustments.Inc()
}

// RecordFailure учитывает отклонённую операцию с категорией ошибки.
func (m *LedgerMetrics) RecordFailure(operation, kind string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(operation, kind).Inc()
}

// RecordCommitDuration записывает длительность транзакции операции.
func (m *LedgerMetrics) RecordCommitDuration(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.commitDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetLowStock публикует последнее посчитанное число товаров ниже порога.
func (m *LedgerMetrics) SetLowStock(count int) {
	if m == nil {
		return
	}
	m.lowStock.Set(float64(count))
}
