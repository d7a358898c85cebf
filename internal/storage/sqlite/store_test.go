package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
	"github.com/vladislavdragonenkov/posledger/internal/storage/sqlstore"
	"github.com/vladislavdragonenkov/posledger/internal/storage/storagetest"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := Open(ctx, filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.MigrateUp(ctx, 0))
	return store
}

func TestStore_LedgerContract(t *testing.T) {
	storagetest.RunLedgerStoreContract(t, func(t *testing.T) storagetest.Backend {
		store := openTestStore(t)
		return storagetest.Backend{Store: store, Outbox: store.Outbox()}
	})
}

func TestStore_IdempotencyContract(t *testing.T) {
	storagetest.RunIdempotencyContract(t, func(t *testing.T) domain.IdempotencyRepository {
		return openTestStore(t).Idempotency()
	})
}

func TestStore_MigrationLifecycle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	status, err := store.MigrationStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, sqlstore.MigrationStatus{Version: 2, Applied: 2}, status)

	require.NoError(t, store.MigrateDown(ctx, 0))
	status, err = store.MigrationStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, sqlstore.MigrationStatus{Version: 1, Applied: 1}, status)

	require.NoError(t, store.MigrateDown(ctx, 10))
	status, err = store.MigrationStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, sqlstore.MigrationStatus{}, status)

	_, err = store.ListProducts(ctx)
	require.Error(t, err, "tables must be gone after full rollback")

	require.NoError(t, store.EnsureSchema(ctx))
	_, err = store.ListProducts(ctx)
	require.NoError(t, err)
}

func TestStore_InMemory(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.EnsureSchema(ctx))
	require.NoError(t, store.Ping(ctx))

	product := storagetest.SeedProduct(t, store, "MEM-1", 100, 3, 1)
	got, err := store.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.StockQuantity)
}

func TestStore_NilGuards(t *testing.T) {
	var store *Store
	ctx := context.Background()

	assert.Error(t, store.Ping(ctx))
	assert.NoError(t, store.Close())
	assert.Error(t, store.MigrateUp(ctx, 0))
	assert.Error(t, store.MigrateDown(ctx, 1))
	_, err := store.MigrationStatus(ctx)
	assert.Error(t, err)

	_, err = Open(ctx, "  ")
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	assert.Equal(t,
		"file::memory:?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_txlock=immediate",
		DSN(":memory:"))
	assert.Contains(t, DSN("/var/lib/pos/ledger.db"), "file:/var/lib/pos/ledger.db?_pragma=journal_mode(WAL)")
}

func TestIsUniqueViolation_PlainError(t *testing.T) {
	assert.False(t, isUniqueViolation(errors.New("UNIQUE constraint failed: sales.sale_number")))
	assert.False(t, isUniqueViolation(nil))
}
