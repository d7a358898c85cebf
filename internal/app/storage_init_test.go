package app

import (
	"context"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/posledger/internal/health"
)

func TestInitRuntimeDependencies_Memory(t *testing.T) {
	t.Parallel()

	deps, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: StorageDriverMemory,
	}, log.WithField("test", "memory-storage"))
	if err != nil {
		t.Fatalf("initRuntimeDependencies(memory) failed: %v", err)
	}
	if deps.store == nil {
		t.Fatal("store should not be nil for memory storage")
	}
	if deps.outboxRepo == nil {
		t.Fatal("outboxRepo should not be nil for memory storage")
	}
	if deps.idempotencyRepo == nil {
		t.Fatal("idempotencyRepo should not be nil for memory storage")
	}
	if deps.closeFn != nil {
		t.Error("memory storage has nothing to close")
	}
	if check := deps.storageChecker.Check(context.Background()); check.Status != healthcheck.StatusHealthy {
		t.Errorf("expected healthy memory storage, got %+v", check)
	}
}

func TestInitRuntimeDependencies_SQLite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ledger.db")
	deps, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: StorageDriverSQLite,
		SQLitePath:    path,
		AutoMigrate:   true,
	}, log.WithField("test", "sqlite-storage"))
	if err != nil {
		t.Fatalf("initRuntimeDependencies(sqlite) failed: %v", err)
	}
	defer func() { _ = deps.closeFn() }()

	if check := deps.storageChecker.Check(context.Background()); check.Status != healthcheck.StatusHealthy {
		t.Fatalf("expected healthy sqlite storage, got %+v", check)
	}

	ctx := context.Background()
	product, err := deps.store.CreateProduct(ctx, domain.ProductInput{
		SKU:                "TEA-01",
		Name:               "Green tea",
		UnitPriceCents:     450,
		TaxRateBasisPoints: 700,
		StockQuantity:      12,
		ReorderLevel:       4,
	})
	if err != nil {
		t.Fatalf("create product on migrated schema: %v", err)
	}
	if product.ID == 0 {
		t.Error("expected generated product id")
	}

	stats, err := deps.outboxRepo.Stats(ctx)
	if err != nil {
		t.Fatalf("outbox stats: %v", err)
	}
	if stats.PendingCount < 0 {
		t.Errorf("unexpected outbox stats: %+v", stats)
	}
}

func TestInitRuntimeDependencies_SQLiteRequiresPath(t *testing.T) {
	t.Parallel()

	_, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: StorageDriverSQLite,
	}, log.WithField("test", "sqlite-missing-path"))
	if err == nil {
		t.Fatal("expected error when sqlite driver is selected without path")
	}
}

func TestInitRuntimeDependencies_PostgresRequiresDSN(t *testing.T) {
	t.Parallel()

	_, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: StorageDriverPostgres,
	}, log.WithField("test", "postgres-missing-dsn"))
	if err == nil {
		t.Fatal("expected error when postgres driver is selected without DSN")
	}
}

func TestInitRuntimeDependencies_UnsupportedDriver(t *testing.T) {
	t.Parallel()

	_, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: "mongo",
	}, log.WithField("test", "unsupported-driver"))
	if err == nil {
		t.Fatal("expected error for unsupported storage driver")
	}
}
