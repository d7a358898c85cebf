package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/posledger/internal/storage/sqlstore"
)

func TestMigrator_PostgresLifecycle(t *testing.T) {
	store := openLedgerStore(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	expectStatus := func(stage string, want sqlstore.MigrationStatus) {
		t.Helper()
		got, err := store.MigrationStatus(ctx)
		if err != nil {
			t.Fatalf("migration status %s: %v", stage, err)
		}
		if got != want {
			t.Fatalf("unexpected status %s: got %+v, want %+v", stage, got, want)
		}
	}

	if err := store.MigrateDown(ctx, 100); err != nil {
		t.Fatalf("migrate down reset: %v", err)
	}
	expectStatus("after reset", sqlstore.MigrationStatus{})

	if err := store.MigrateUp(ctx, 1); err != nil {
		t.Fatalf("migrate up one step: %v", err)
	}
	expectStatus("after up 1", sqlstore.MigrationStatus{Version: 1, Applied: 1})

	if err := store.MigrateUp(ctx, 0); err != nil {
		t.Fatalf("migrate up all: %v", err)
	}
	expectStatus("after up all", sqlstore.MigrationStatus{Version: 2, Applied: 2})

	if err := store.MigrateUp(ctx, 0); err != nil {
		t.Fatalf("idempotent migrate up: %v", err)
	}
	expectStatus("after idempotent up", sqlstore.MigrationStatus{Version: 2, Applied: 2})

	if err := store.MigrateDown(ctx, 0); err != nil {
		t.Fatalf("migrate down default step: %v", err)
	}
	expectStatus("after down default", sqlstore.MigrationStatus{Version: 1, Applied: 1})

	if err := store.MigrateDown(ctx, 5); err != nil {
		t.Fatalf("migrate down rest: %v", err)
	}
	expectStatus("after down rest", sqlstore.MigrationStatus{})

	if err := store.MigrateDown(ctx, 1); err != nil {
		t.Fatalf("migrate down on empty should be no-op: %v", err)
	}

	if err := store.MigrateUp(ctx, 0); err != nil {
		t.Fatalf("restore schema: %v", err)
	}
}
