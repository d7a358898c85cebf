// Package sqlite подключает sqlstore к встроенной SQLite (modernc, без cgo).
// Режим для одной кассы: одна запись в момент времени, BEGIN IMMEDIATE.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/uptrace/bun/dialect/sqlitedialect"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/vladislavdragonenkov/posledger/internal/storage/sqlstore"
)

const (
	defaultConnTimeout = 5 * time.Second
	memoryPath         = ":memory:"
)

var (
	//go:embed sql/migrations/*.sql
	migrationsFS embed.FS

	errNotInitialized = errors.New("sqlite store is not initialized")
)

// Dialect: особенности SQLite для sqlstore. Блокировку строк заменяет BEGIN IMMEDIATE.
var Dialect = sqlstore.Dialect{
	Name:            "sqlite",
	Bun:             sqlitedialect.New(),
	UniqueViolation: isUniqueViolation,
}

// Store: LedgerStore поверх файла SQLite.
type Store struct {
	*sqlstore.Store
	migrator *sqlstore.Migrator
}

// Open открывает (или создаёт) базу по пути к файлу либо `:memory:`.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// Один писатель: транзакции сериализуются пулом, а не SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
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

// DSN собирает строку подключения modernc с нужными pragma.
func DSN(path string) string {
	pragmas := "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_txlock=immediate"
	if path == memoryPath {
		return "file::memory:?" + pragmas
	}
	return "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&" + pragmas
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

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	// Без расширенных кодов остаётся только текст ошибки.
	return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT &&
		strings.Contains(sqliteErr.Error(), "UNIQUE constraint failed")
}
