package lowstock

import (
	"context"
	"errors"
	"sync"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type stubCounter struct {
	mu     sync.Mutex
	values []int
	calls  int
	err    error
}

func (s *stubCounter) CountLowStock(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	v := s.values[0]
	if len(s.values) > 1 {
		s.values = s.values[1:]
	}
	return v, nil
}

type recordingGauge struct {
	values []int
}

func (g *recordingGauge) SetLowStock(count int) {
	g.values = append(g.values, count)
}

func TestMonitorCountIsAlwaysFresh(t *testing.T) {
	counter := &stubCounter{values: []int{1, 3, 0}}
	gauge := &recordingGauge{}
	m := NewMonitor(counter, WithGauge(gauge))

	for _, want := range []int{1, 3, 0} {
		got, err := m.Count(context.Background())
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if got != want {
			t.Fatalf("expected %d, got %d", want, got)
		}
	}
	if counter.calls != 3 {
		t.Fatalf("expected every Count to hit the store, got %d calls", counter.calls)
	}
	if len(gauge.values) != 3 || gauge.values[2] != 0 {
		t.Fatalf("unexpected gauge updates: %v", gauge.values)
	}
}

func TestMonitorCountPropagatesError(t *testing.T) {
	boom := errors.New("db down")
	m := NewMonitor(&stubCounter{err: boom})

	if _, err := m.Count(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestMonitorRefreshLogsGrowthAndSwallowsErrors(t *testing.T) {
	logger, hook := test.NewNullLogger()
	counter := &stubCounter{values: []int{0, 2}}
	m := NewMonitor(counter, WithLogger(log.NewEntry(logger)))

	m.Refresh(context.Background(), "create")
	m.Refresh(context.Background(), "create")

	if len(hook.Entries) != 1 || hook.LastEntry().Level != log.WarnLevel {
		t.Fatalf("expected a single growth warning, got %d entries", len(hook.Entries))
	}
	if hook.LastEntry().Data["low_stock"] != 2 {
		t.Fatalf("unexpected log fields: %v", hook.LastEntry().Data)
	}
	if got := hook.LastEntry().Message; got != "products dropped to reorder level" {
		t.Fatalf("unexpected growth message %q", got)
	}

	counter.err = errors.New("timeout")
	m.Refresh(context.Background(), "adjust")
	if hook.LastEntry().Data["cause"] != "adjust" {
		t.Fatalf("expected failure to be logged with cause, got %v", hook.LastEntry().Data)
	}
	if got := hook.LastEntry().Message; got != "failed to recount low stock products" {
		t.Fatalf("unexpected failure message %q", got)
	}
}
