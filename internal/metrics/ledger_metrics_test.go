package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestLedgerMetricsRecordSaleCreated(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLedgerMetricsWithRegisterer(reg)

	m.RecordSaleCreated("Cash", 2400)
	m.RecordSaleCreated("Cash", 100)
	m.RecordSaleCreated("Card", 0)

	if got := counterValue(t, m.salesCreated.WithLabelValues("Cash")); got != 2 {
		t.Fatalf("expected 2 cash sales, got %v", got)
	}
	if got := counterValue(t, m.salesCreated.WithLabelValues("Card")); got != 1 {
		t.Fatalf("expected 1 card sale, got %v", got)
	}
	if got := counterValue(t, m.revenueCents); got != 2500 {
		t.Fatalf("expected revenue 2500, got %v", got)
	}
}

func TestLedgerMetricsLifecycleCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLedgerMetricsWithRegisterer(reg)

	m.RecordSaleRefunded()
	m.RecordSaleVoided()
	m.RecordSaleVoided()
	m.RecordStockAdjusted()
	m.RecordFailure(OperationRefund, "InvalidStateTransition")
	m.SetLowStock(3)
	m.RecordCommitDuration(OperationCreate, 15*time.Millisecond)

	if got := counterValue(t, m.salesRefunded); got != 1 {
		t.Fatalf("expected 1 refund, got %v", got)
	}
	if got := counterValue(t, m.salesVoided); got != 2 {
		t.Fatalf("expected 2 voids, got %v", got)
	}
	if got := counterValue(t, m.stockAdjustments); got != 1 {
		t.Fatalf("expected 1 adjustment, got %v", got)
	}
	if got := counterValue(t, m.failures.WithLabelValues(OperationRefund, "InvalidStateTransition")); got != 1 {
		t.Fatalf("expected 1 failure, got %v", got)
	}

	var gauge dto.Metric
	if err := m.lowStock.Write(&gauge); err != nil {
		t.Fatalf("write gauge: %v", err)
	}
	if gauge.GetGauge().GetValue() != 3 {
		t.Fatalf("expected low stock gauge 3, got %v", gauge.GetGauge().GetValue())
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, family := range families {
		if family.GetName() == "pos_ledger_commit_duration_seconds" {
			found = family.GetMetric()[0].GetHistogram().GetSampleCount() == 1
		}
	}
	if !found {
		t.Fatal("expected one commit duration sample")
	}
}

func TestLedgerMetricsReuseRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewLedgerMetricsWithRegisterer(reg)
	second := NewLedgerMetricsWithRegisterer(reg)

	first.RecordSaleRefunded()

	if got := counterValue(t, second.salesRefunded); got != 1 {
		t.Fatalf("expected shared collector, got %v", got)
	}
}

func TestLedgerMetricsNilReceiver(t *testing.T) {
	var m *LedgerMetrics
	m.RecordSaleCreated("Cash", 100)
	m.RecordFailure(OperationCreate, "Internal")
	m.SetLowStock(1)
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("write counter: %v", err)
	}
	return metric.GetCounter().GetValue()
}
