package postgres

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// ledgerTables перечислены от зависимых к родительским.
var ledgerTables = []string{
	"idempotency_keys",
	"outbox_messages",
	"stock_movements",
	"sale_items",
	"sales",
	"products",
}

// postgresTestDSN берёт DSN из POSLEDGER_POSTGRES_TEST_DSN; без него тест пропускается.
func postgresTestDSN(t *testing.T) string {
	t.Helper()
	dsn := strings.TrimSpace(os.Getenv("POSLEDGER_POSTGRES_TEST_DSN"))
	if dsn == "" {
		t.Skip("POSLEDGER_POSTGRES_TEST_DSN is not set")
	}
	return dsn
}

// openLedgerStore открывает хранилище без миграций; недоступный сервер пропускает тест.
func openLedgerStore(t *testing.T) *Store {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	store, err := Open(ctx, postgresTestDSN(t))
	if err != nil {
		t.Skipf("postgres is not reachable: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// openMigratedLedgerStore дополнительно накатывает схему и очищает таблицы ledger.
func openMigratedLedgerStore(t *testing.T) *Store {
	t.Helper()
	store := openLedgerStore(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, store.MigrateUp(ctx, 0), "migrate up")
	_, err := store.DB().ExecContext(ctx,
		"TRUNCATE TABLE "+strings.Join(ledgerTables, ", ")+" RESTART IDENTITY CASCADE")
	require.NoError(t, err, "reset ledger tables")
	return store
}
