package health

import (
	"context"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
)

// DefaultOutboxMaxAge: возраст pending-события, после которого relay считается отстающим.
const DefaultOutboxMaxAge = 5 * time.Minute

// BacklogSource отдаёт размер backlog outbox.
type BacklogSource interface {
	Stats(ctx context.Context) (domain.OutboxStats, error)
}

// OutboxChecker помечает ledger degraded, если события продаж застряли в outbox.
// Продажи при этом продолжают приниматься, поэтому readiness не снимается.
type OutboxChecker struct {
	source BacklogSource
	maxAge time.Duration
	now    func() time.Time
}

func NewOutboxChecker(source BacklogSource, maxAge time.Duration) *OutboxChecker {
	if maxAge <= 0 {
		maxAge = DefaultOutboxMaxAge
	}
	return &OutboxChecker{source: source, maxAge: maxAge, now: time.Now}
}

func (c *OutboxChecker) Check(ctx context.Context) Check {
	started := c.now()
	check := Check{Name: "outbox", Status: StatusHealthy}

	stats, err := c.source.Stats(ctx)
	switch {
	case err != nil:
		check.Status = StatusUnhealthy
		check.Message = err.Error()
	case stats.PendingCount > 0 && !stats.OldestPendingAt.IsZero():
		if age := started.Sub(stats.OldestPendingAt); age > c.maxAge {
			check.Status = StatusDegraded
			check.Message = fmt.Sprintf("%d pending events, oldest %s", stats.PendingCount, age.Truncate(time.Second))
		}
	}
	check.DurationMs = c.now().Sub(started).Milliseconds()
	return check
}
