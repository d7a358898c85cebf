// Package idempotency удаляет просроченные ключи идемпотентности ledger.
package idempotency

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/posledger/internal/metrics"
)

// ExpiredDeleter: часть domain.IdempotencyRepository, нужная очистке.
type ExpiredDeleter interface {
	DeleteExpired(ctx context.Context, before time.Time, limit int) (int, error)
}

// SweeperConfig задаёт расписание очистки. Нулевые поля заменяются значениями по умолчанию.
type SweeperConfig struct {
	Interval  time.Duration
	BatchSize int
	// MaxBatches ограничивает число DELETE за один проход; остаток уйдёт на следующий тик.
	MaxBatches int
	Logger     *log.Entry
	Metrics    *metrics.IdempotencyMetrics
}

func (c SweeperConfig) withDefaults() SweeperConfig {
	if c.Interval <= 0 {
		c.Interval = time.Minute
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 500
	}
	if c.MaxBatches <= 0 {
		c.MaxBatches = 20
	}
	if c.Logger == nil {
		c.Logger = log.WithField("component", "idempotency-sweeper")
	}
	return c
}

// Sweeper периодически удаляет ключи с наступившим TTL.
type Sweeper struct {
	repo ExpiredDeleter
	cfg  SweeperConfig
	now  func() time.Time
}

func NewSweeper(repo ExpiredDeleter, cfg SweeperConfig) *Sweeper {
	return &Sweeper{
		repo: repo,
		cfg:  cfg.withDefaults(),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Run делает проход сразу и затем раз в Interval, пока ctx не отменён.
func (s *Sweeper) Run(ctx context.Context) {
	if s.repo == nil {
		s.cfg.Logger.Warn("idempotency sweeper disabled: no repository")
		return
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		s.tick(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Sweeper) tick(ctx context.Context) {
	deleted, err := s.Sweep(ctx)
	switch {
	case errors.Is(err, context.Canceled):
		return
	case err != nil:
		s.cfg.Metrics.RecordCleanupRun("error", deleted)
		s.cfg.Logger.WithError(err).WithField("deleted", deleted).Warn("idempotency sweep failed")
	default:
		s.cfg.Metrics.RecordCleanupRun("ok", deleted)
		if deleted > 0 {
			s.cfg.Logger.WithField("deleted", deleted).Info("expired idempotency keys removed")
		}
	}
}

// Sweep удаляет ключи, истёкшие к текущему моменту, пачками по BatchSize.
// Проход заканчивается на неполной пачке или после MaxBatches пачек.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	cutoff := s.now()
	total := 0
	for batch := 0; batch < s.cfg.MaxBatches; batch++ {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := s.repo.DeleteExpired(ctx, cutoff, s.cfg.BatchSize)
		if err != nil {
			return total, err
		}
		total += n
		s.cfg.Metrics.AddDeleted(n)
		if n < s.cfg.BatchSize {
			break
		}
	}
	return total, nil
}
