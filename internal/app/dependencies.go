package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/posledger/internal/health"
	"github.com/vladislavdragonenkov/posledger/internal/storage/memory"
	"github.com/vladislavdragonenkov/posledger/internal/storage/postgres"
	"github.com/vladislavdragonenkov/posledger/internal/storage/sqlite"
)

// runtimeDependencies: хранилища, общие для ledger, транспорта и воркеров.
type runtimeDependencies struct {
	store           domain.LedgerStore
	outboxRepo      domain.OutboxRepository
	idempotencyRepo domain.IdempotencyRepository
	storageChecker  healthcheck.Checker
	closeFn         func() error
}

func (d runtimeDependencies) close(logger *log.Entry) {
	if d.closeFn == nil {
		return
	}
	if err := d.closeFn(); err != nil {
		logger.WithError(err).Warn("failed to close storage")
	}
}

// initRuntimeDependencies открывает хранилище по cfg.StorageDriver. Для SQL-хранилищ
// outbox и ключи идемпотентности живут в той же базе, что и продажи.
func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (runtimeDependencies, error) {
	switch cfg.StorageDriver {
	case StorageDriverMemory:
		store := memory.NewStore()
		logger.Info("using in-memory storage")
		return runtimeDependencies{
			store:           store,
			outboxRepo:      store.Outbox(),
			idempotencyRepo: memory.NewIdempotencyRepository(),
			storageChecker:  healthcheck.NewStorageChecker("storage", store),
		}, nil

	case StorageDriverPostgres:
		if cfg.PostgresDSN == "" {
			return runtimeDependencies{}, fmt.Errorf("postgres_dsn is required for %s storage", cfg.StorageDriver)
		}
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return runtimeDependencies{}, err
		}
		if cfg.AutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return runtimeDependencies{}, fmt.Errorf("apply postgres migrations: %w", err)
			}
		}
		logger.Info("using postgres storage")
		return runtimeDependencies{
			store:           store,
			outboxRepo:      store.Outbox(),
			idempotencyRepo: store.Idempotency(),
			storageChecker:  healthcheck.NewStorageChecker("postgres", store),
			closeFn:         store.Close,
		}, nil

	case StorageDriverSQLite:
		if cfg.SQLitePath == "" {
			return runtimeDependencies{}, fmt.Errorf("sqlite_path is required for %s storage", cfg.StorageDriver)
		}
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return runtimeDependencies{}, err
		}
		if cfg.AutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return runtimeDependencies{}, fmt.Errorf("apply sqlite migrations: %w", err)
			}
		}
		logger.WithField("path", cfg.SQLitePath).Info("using sqlite storage")
		return runtimeDependencies{
			store:           store,
			outboxRepo:      store.Outbox(),
			idempotencyRepo: store.Idempotency(),
			storageChecker:  healthcheck.NewStorageChecker("sqlite", store),
			closeFn:         store.Close,
		}, nil

	default:
		return runtimeDependencies{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
