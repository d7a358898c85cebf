// Package postgres подключает sqlstore к PostgreSQL через pgx.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/vladislavdragonenkov/posledger/internal/storage/sqlstore"
)

const (
	defaultConnTimeout     = 5 * time.Second
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 25
	defaultConnMaxLifetime = 30 * time.Minute
	defaultConnMaxIdleTime = 5 * time.Minute

	migrationLockKey = int64(10824702)
	uniqueViolation  = "23505"
)

var (
	//go:embed sql/migrations/*.sql
	migrationsFS embed.FS

	errNotInitialized = errors.New("postgres store is not initialized")
)

// Dialect: особенности PostgreSQL для sqlstore.
var Dialect = sqlstore.Dialect{
	Name:            "postgres",
	Bun:             pgdialect.New(),
	LockSuffix:      "FOR UPDATE",
	UniqueViolation: isUniqueViolation,
	LockMigrations:  advisoryLock,
}

// Store: LedgerStore поверх PostgreSQL.
type Store struct {
	*sqlstore.Store
	migrator *sqlstore.Migrator
}

// Open открывает подключение к PostgreSQL и проверяет доступность базы.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)
	db.SetConnMaxIdleTime(defaultConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	migrations, err := fs.Sub(migrationsFS, "sql/migrations")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	store := sqlstore.New(db, Dialect)
	return &Store{
		Store:    store,
		migrator: sqlstore.NewMigrator(store.Bun(), Dialect, migrations),
	}, nil
}

// Ping проверяет доступность подключения.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.Store == nil {
		return errNotInitialized
	}
	return s.Store.Ping(ctx)
}

// Close закрывает подключение к БД.
func (s *Store) Close() error {
	if s == nil || s.Store == nil {
		return nil
	}
	return s.Store.Close()
}

// MigrateUp применяет up-миграции; при steps=0 применяются все доступные.
func (s *Store) MigrateUp(ctx context.Context, steps int) error {
	if s == nil || s.migrator == nil {
		return errNotInitialized
	}
	return s.migrator.Up(ctx, steps)
}

// MigrateDown откатывает steps миграций (минимум одну).
func (s *Store) MigrateDown(ctx context.Context, steps int) error {
	if s == nil || s.migrator == nil {
		return errNotInitialized
	}
	return s.migrator.Down(ctx, steps)
}

// MigrationStatus возвращает текущую версию схемы.
func (s *Store) MigrationStatus(ctx context.Context) (sqlstore.MigrationStatus, error) {
	if s == nil || s.migrator == nil {
		return sqlstore.MigrationStatus{}, errNotInitialized
	}
	return s.migrator.Status(ctx)
}

// EnsureSchema применяет все up-миграции.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return s.MigrateUp(ctx, 0)
}

// advisoryLock не даёт двум экземплярам мигрировать одновременно.
func advisoryLock(ctx context.Context, conn *sql.Conn) (func(), error) {
	if _, err := conn.ExecContext(ctx, "SELECT pg_advisory_lock($1)", migrationLockKey); err != nil {
		return nil, err
	}
	return func() {
		_, _ = conn.ExecContext(context.Background(), "SELECT pg_advisory_unlock($1)", migrationLockKey)
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return false
}
