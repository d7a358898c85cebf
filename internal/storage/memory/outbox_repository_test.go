package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
)

func TestOutboxRepository_EnqueueAndPullInOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewOutboxRepository()

	first := repo.Enqueue(domain.OutboxMessage{AggregateType: domain.AggregateSale, AggregateID: "1", EventType: domain.EventSaleCreated})
	second := repo.Enqueue(domain.OutboxMessage{AggregateType: domain.AggregateSale, AggregateID: "1", EventType: domain.EventSaleRefunded})
	if first.ID == "" || second.ID == "" {
		t.Fatal("expected generated ids")
	}

	pending, err := repo.PullPending(ctx, 10)
	if err != nil {
		t.Fatalf("PullPending failed: %v", err)
	}
	if len(pending) != 2 || pending[0].ID != first.ID || pending[1].ID != second.ID {
		t.Fatalf("unexpected pending order: %+v", pending)
	}

	limited, _ := repo.PullPending(ctx, 1)
	if len(limited) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(limited))
	}

	stats, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.PendingCount != 2 || !stats.OldestPendingAt.Equal(first.CreatedAt) {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestOutboxRepository_MarkSentAndFailed(t *testing.T) {
	ctx := context.Background()
	repo := NewOutboxRepository()

	sent := repo.Enqueue(domain.OutboxMessage{AggregateType: domain.AggregateSale})
	failed := repo.Enqueue(domain.OutboxMessage{AggregateType: domain.AggregateProduct})

	if err := repo.MarkSent(ctx, sent.ID); err != nil {
		t.Fatalf("mark sent failed: %v", err)
	}
	if err := repo.MarkFailed(ctx, failed.ID); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	if len(repo.AllPending()) != 0 {
		t.Fatal("expected no pending messages")
	}
	if err := repo.MarkFailed(ctx, "missing"); !errors.Is(err, domain.ErrOutboxMessageNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
