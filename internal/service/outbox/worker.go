// Package outbox доставляет события продаж и остатков из transactional outbox в брокер.
package outbox

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
	"github.com/vladislavdragonenkov/posledger/internal/metrics"
)

// Config задаёт параметры Worker. Нулевые значения заменяются значениями по умолчанию.
type Config struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
	// RetryBaseDelay удваивается с каждой попыткой, но не превышает MaxRetryDelay.
	// Отрицательное значение отключает паузы между попытками.
	RetryBaseDelay time.Duration
	MaxRetryDelay  time.Duration
	// DLQ получает событие после исчерпания попыток; nil отключает DLQ.
	DLQ     domain.OutboxPublisher
	Logger  *log.Entry
	Metrics *metrics.OutboxMetrics
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = time.Second
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.RetryBaseDelay == 0 {
		c.RetryBaseDelay = 50 * time.Millisecond
	}
	if c.MaxRetryDelay <= 0 {
		c.MaxRetryDelay = 5 * time.Second
	}
	if c.Logger == nil {
		c.Logger = log.WithField("component", "outbox-worker")
	}
	return c
}

// Worker публикует pending-события продаж и остатков из outbox.
type Worker struct {
	repo      domain.OutboxRepository
	publisher domain.OutboxPublisher
	cfg       Config
	now       func() time.Time
}

func NewWorker(repo domain.OutboxRepository, publisher domain.OutboxPublisher, cfg Config) *Worker {
	return &Worker{
		repo:      repo,
		publisher: publisher,
		cfg:       cfg.withDefaults(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run опрашивает outbox сразу и затем раз в PollInterval, пока ctx не отменён.
func (w *Worker) Run(ctx context.Context) {
	if w.repo == nil || w.publisher == nil {
		w.cfg.Logger.Warn("outbox worker disabled: repository or publisher missing")
		return
	}

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		w.ProcessOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// ProcessOnce разбирает одну пачку pending-событий и возвращает число доставленных.
// Сообщение, не доставленное за MaxAttempts, уходит в DLQ и помечается failed.
func (w *Worker) ProcessOnce(ctx context.Context) int {
	if ctx.Err() != nil {
		return 0
	}
	defer w.refreshBacklog(ctx)

	batch, err := w.repo.PullPending(ctx, w.cfg.BatchSize)
	if err != nil {
		w.cfg.Logger.WithError(err).Warn("pull pending outbox messages")
		return 0
	}

	sent := 0
	for _, event := range batch {
		if ctx.Err() != nil {
			break
		}
		if w.deliver(ctx, event) {
			sent++
		}
	}
	return sent
}

func (w *Worker) deliver(ctx context.Context, event domain.OutboxMessage) bool {
	logger := w.cfg.Logger.WithFields(log.Fields{
		"outbox_id":    event.ID,
		"event_type":   event.EventType,
		"aggregate_id": event.AggregateID,
	})

	publishErr := w.publishWithRetry(ctx, event)
	if publishErr == nil {
		if err := w.repo.MarkSent(ctx, event.ID); err != nil {
			logger.WithError(err).Warn("outbox event published but not marked sent")
			return false
		}
		return true
	}
	if ctx.Err() != nil {
		// сообщение остаётся pending и будет взято после рестарта
		return false
	}

	logger.WithError(publishErr).Error("outbox event exhausted publish attempts")
	w.cfg.Metrics.RecordPublish(metrics.PublishFailed)
	if err := w.sendToDLQ(event, publishErr); err != nil {
		logger.WithError(err).Warn("dead letter not delivered")
		w.cfg.Metrics.RecordPublish(metrics.PublishDLQFailed)
	}
	if err := w.repo.MarkFailed(ctx, event.ID); err != nil {
		logger.WithError(err).Warn("outbox event not marked failed")
	}
	return false
}

func (w *Worker) publishWithRetry(ctx context.Context, event domain.OutboxMessage) error {
	var err error
	for attempt := 1; ; attempt++ {
		if err = w.publisher.Publish(event); err == nil {
			w.cfg.Metrics.RecordPublish(metrics.PublishSent)
			return nil
		}
		w.cfg.Metrics.RecordPublish(metrics.PublishRetryError)
		if attempt == w.cfg.MaxAttempts {
			return fmt.Errorf("publish %s after %d attempts: %w", event.EventType, attempt, err)
		}

		delay := w.backoff(attempt)
		if delay <= 0 {
			continue
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// backoff возвращает паузу после attempt-й неудачной попытки.
func (w *Worker) backoff(attempt int) time.Duration {
	delay := w.cfg.RetryBaseDelay
	if delay <= 0 {
		return 0
	}
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= w.cfg.MaxRetryDelay {
			return w.cfg.MaxRetryDelay
		}
	}
	return min(delay, w.cfg.MaxRetryDelay)
}

func (w *Worker) sendToDLQ(event domain.OutboxMessage, publishErr error) error {
	if w.cfg.DLQ == nil {
		return nil
	}
	msg, err := NewDeadLetter(event, publishErr, w.now()).Message(event.CreatedAt)
	if err != nil {
		return err
	}
	if err := w.cfg.DLQ.Publish(msg); err != nil {
		return fmt.Errorf("publish dead letter: %w", err)
	}
	return nil
}

func (w *Worker) refreshBacklog(ctx context.Context) {
	if w.cfg.Metrics == nil || ctx.Err() != nil {
		return
	}
	stats, err := w.repo.Stats(ctx)
	if err != nil {
		w.cfg.Logger.WithError(err).Warn("collect outbox backlog stats")
		return
	}
	var age time.Duration
	if stats.PendingCount > 0 && !stats.OldestPendingAt.IsZero() {
		age = w.now().Sub(stats.OldestPendingAt)
	}
	w.cfg.Metrics.SetBacklog(stats.PendingCount, age)
}
