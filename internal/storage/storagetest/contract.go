// Package storagetest содержит общий набор проверок контракта LedgerStore,
// который прогоняется для каждого хранилища.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
)

// Backend: хранилище под тестом и его outbox.
type Backend struct {
	Store  domain.LedgerStore
	Outbox domain.OutboxRepository
}

// Factory создаёт пустое хранилище для одного подтеста.
type Factory func(t *testing.T) Backend

var errAbort = errors.New("abort transaction")

// RunLedgerStoreContract прогоняет проверки транзакционного контракта.
func RunLedgerStoreContract(t *testing.T, factory Factory) {
	t.Run("products", func(t *testing.T) { testProducts(t, factory(t)) })
	t.Run("commit", func(t *testing.T) { testCommit(t, factory(t)) })
	t.Run("rollback", func(t *testing.T) { testRollback(t, factory(t)) })
	t.Run("insufficient stock", func(t *testing.T) { testInsufficientStock(t, factory(t)) })
	t.Run("duplicate sale number", func(t *testing.T) { testDuplicateSaleNumber(t, factory(t)) })
	t.Run("derived sale number", func(t *testing.T) { testDerivedSaleNumber(t, factory(t)) })
	t.Run("update product", func(t *testing.T) { testUpdateProduct(t, factory(t)) })
	t.Run("status update", func(t *testing.T) { testStatusUpdate(t, factory(t)) })
	t.Run("list sales", func(t *testing.T) { testListSales(t, factory(t)) })
	t.Run("low stock", func(t *testing.T) { testLowStock(t, factory(t)) })
	t.Run("concurrent debit", func(t *testing.T) { testConcurrentDebit(t, factory(t)) })
	t.Run("outbox", func(t *testing.T) { testOutbox(t, factory(t)) })
}

// SeedProduct заводит товар с указанным остатком и порогом.
func SeedProduct(t *testing.T, store domain.ProductRepository, sku string, priceCents, stock, reorder int64) domain.Product {
	t.Helper()
	product, err := store.CreateProduct(context.Background(), domain.ProductInput{
		SKU:                sku,
		Name:               "Item " + sku,
		Category:           "General",
		UnitPriceCents:     priceCents,
		TaxRateBasisPoints: 500,
		StockQuantity:      stock,
		ReorderLevel:       reorder,
	})
	require.NoError(t, err)
	return product
}

func sampleSale(number string, product domain.Product, qty int64, at time.Time) domain.Sale {
	amounts := domain.ComputeLine(product.UnitPriceCents, qty, 0, product.TaxRateBasisPoints)
	return domain.Sale{
		SaleNumber:    number,
		Timestamp:     at.UTC().Truncate(time.Millisecond),
		CustomerName:  "Walk-in " + number,
		SubtotalCents: amounts.SubtotalCents,
		TaxCents:      amounts.TaxCents,
		TotalCents:    amounts.SubtotalCents + amounts.TaxCents,
		PaymentMethod: domain.PaymentMethodCash,
		Status:        domain.SaleStatusCompleted,
		Lines: []domain.SaleLine{{
			ProductID:          product.ID,
			ProductName:        product.Name,
			SKU:                product.SKU,
			Quantity:           qty,
			UnitPriceCents:     product.UnitPriceCents,
			TaxRateBasisPoints: product.TaxRateBasisPoints,
			SubtotalCents:      amounts.SubtotalCents,
			TaxCents:           amounts.TaxCents,
			LineTotalCents:     amounts.TotalCents,
		}},
	}
}

func recordSale(ctx context.Context, tx domain.Tx, sale domain.Sale) (domain.Sale, error) {
	saved, err := tx.InsertSale(ctx, sale)
	if err != nil {
		return domain.Sale{}, err
	}
	for _, line := range saved.Lines {
		if _, err := tx.DebitStock(ctx, line.ProductID, line.Quantity); err != nil {
			return domain.Sale{}, err
		}
		if err := tx.AppendMovement(ctx, domain.StockMovement{
			ProductID: line.ProductID,
			Delta:     -line.Quantity,
			Reason:    domain.MovementReasonSale,
			Ref:       saved.SaleNumber,
		}); err != nil {
			return domain.Sale{}, err
		}
	}
	err = tx.EnqueueOutbox(ctx, domain.OutboxMessage{
		AggregateType: domain.AggregateSale,
		AggregateID:   fmt.Sprint(saved.ID),
		EventType:     domain.EventSaleCreated,
		Payload:       []byte(`{}`),
	})
	return saved, err
}

func testProducts(t *testing.T, b Backend) {
	ctx := context.Background()
	product := SeedProduct(t, b.Store, "SKU-1", 1000, 5, 2)
	assert.NotZero(t, product.ID)

	got, err := b.Store.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "SKU-1", got.SKU)
	assert.Equal(t, int64(5), got.StockQuantity)

	_, err = b.Store.CreateProduct(ctx, domain.ProductInput{SKU: "SKU-1", Name: "Dup"})
	require.ErrorIs(t, err, domain.ErrDuplicateSKU)

	_, err = b.Store.GetProduct(ctx, product.ID+100)
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	SeedProduct(t, b.Store, "SKU-0", 10, 1, 0)
	all, err := b.Store.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "SKU-0", all[0].SKU)
}

func testCommit(t *testing.T, b Backend) {
	ctx := context.Background()
	product := SeedProduct(t, b.Store, "SKU-C", 250, 10, 0)

	var saved domain.Sale
	err := b.Store.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		locked, err := tx.LookupProduct(ctx, product.ID)
		if err != nil {
			return err
		}
		saved, err = recordSale(ctx, tx, sampleSale("INV-C-1", locked, 3, time.Now()))
		return err
	})
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	got, err := b.Store.GetSale(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-C-1", got.SaleNumber)
	assert.Equal(t, domain.SaleStatusCompleted, got.Status)
	assert.Equal(t, saved.Timestamp, got.Timestamp)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, saved.Lines[0], got.Lines[0])
	assert.Empty(t, got.ValidateInvariants())

	after, err := b.Store.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), after.StockQuantity)

	movements, err := b.Store.ListMovements(ctx, product.ID, 10)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, int64(-3), movements[0].Delta)
	assert.Equal(t, domain.MovementReasonSale, movements[0].Reason)
	assert.Equal(t, "INV-C-1", movements[0].Ref)

	pending, err := b.Outbox.PullPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, domain.EventSaleCreated, pending[0].EventType)
	require.NoError(t, b.Outbox.MarkSent(ctx, pending[0].ID))

	stats, err := b.Outbox.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.PendingCount)
}

func testRollback(t *testing.T, b Backend) {
	ctx := context.Background()
	product := SeedProduct(t, b.Store, "SKU-R", 100, 4, 0)

	err := b.Store.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		if _, err := recordSale(ctx, tx, sampleSale("INV-R-1", product, 2, time.Now())); err != nil {
			return err
		}
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	after, err := b.Store.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), after.StockQuantity)

	sales, err := b.Store.ListSales(ctx, domain.SaleFilter{}.Normalize(time.Now()))
	require.NoError(t, err)
	assert.Empty(t, sales)

	movements, err := b.Store.ListMovements(ctx, product.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, movements)

	pending, err := b.Outbox.PullPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func testInsufficientStock(t *testing.T, b Backend) {
	ctx := context.Background()
	product := SeedProduct(t, b.Store, "SKU-I", 100, 1, 0)

	err := b.Store.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		_, err := tx.DebitStock(ctx, product.ID, 2)
		return err
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	err = b.Store.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		_, err := tx.DebitStock(ctx, product.ID+99, 1)
		return err
	})
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	after, err := b.Store.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), after.StockQuantity)
}

func testDuplicateSaleNumber(t *testing.T, b Backend) {
	ctx := context.Background()
	product := SeedProduct(t, b.Store, "SKU-D", 100, 10, 0)

	create := func() error {
		return b.Store.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
			_, err := recordSale(ctx, tx, sampleSale("INV-DUP", product, 1, time.Now()))
			return err
		})
	}
	require.NoError(t, create())
	require.ErrorIs(t, create(), domain.ErrDuplicateSaleNumber)

	after, err := b.Store.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(9), after.StockQuantity, "failed insert must roll back the debit")
}

func testDerivedSaleNumber(t *testing.T, b Backend) {
	ctx := context.Background()
	product := SeedProduct(t, b.Store, "SKU-N", 100, 10, 0)
	at := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

	create := func() domain.Sale {
		var saved domain.Sale
		err := b.Store.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
			var err error
			saved, err = recordSale(ctx, tx, sampleSale("", product, 1, at))
			return err
		})
		require.NoError(t, err)
		return saved
	}
	first, second := create(), create()

	assert.Equal(t, domain.SaleNumberFor(at, first.ID), first.SaleNumber)
	assert.Equal(t, domain.SaleNumberFor(at, second.ID), second.SaleNumber)
	assert.NotEqual(t, first.SaleNumber, second.SaleNumber)

	got, err := b.Store.GetSale(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.SaleNumber, got.SaleNumber)

	movements, err := b.Store.ListMovements(ctx, product.ID, 10)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, second.SaleNumber, movements[0].Ref)
}

func testUpdateProduct(t *testing.T, b Backend) {
	ctx := context.Background()
	product := SeedProduct(t, b.Store, "SKU-U", 1000, 5, 0)

	var sold domain.Sale
	err := b.Store.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		var err error
		sold, err = recordSale(ctx, tx, sampleSale("INV-U-1", product, 1, time.Now()))
		return err
	})
	require.NoError(t, err)

	updated, err := b.Store.UpdateProduct(ctx, product.ID, domain.ProductUpdate{
		Name:               "Renamed",
		Category:           "Office",
		UnitPriceCents:     1500,
		TaxRateBasisPoints: 1200,
		ReorderLevel:       4,
	})
	require.NoError(t, err)
	assert.Equal(t, "SKU-U", updated.SKU)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, int64(1500), updated.UnitPriceCents)
	assert.Equal(t, int64(4), updated.StockQuantity)
	assert.True(t, updated.IsLowStock())

	got, err := b.Store.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.UnitPriceCents, got.UnitPriceCents)
	assert.Equal(t, int64(1200), got.TaxRateBasisPoints)

	sale, err := b.Store.GetSale(ctx, sold.ID)
	require.NoError(t, err)
	require.Len(t, sale.Lines, 1)
	assert.Equal(t, product.Name, sale.Lines[0].ProductName)
	assert.Equal(t, int64(1000), sale.Lines[0].UnitPriceCents)

	_, err = b.Store.UpdateProduct(ctx, product.ID+100, domain.ProductUpdate{Name: "Ghost"})
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func testStatusUpdate(t *testing.T, b Backend) {
	ctx := context.Background()
	product := SeedProduct(t, b.Store, "SKU-S", 100, 10, 0)

	var saved domain.Sale
	require.NoError(t, b.Store.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		var err error
		saved, err = recordSale(ctx, tx, sampleSale("INV-S-1", product, 1, time.Now()))
		return err
	}))

	require.NoError(t, b.Store.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		sale, err := tx.LookupSale(ctx, saved.ID)
		if err != nil {
			return err
		}
		if sale.Status != domain.SaleStatusCompleted {
			return fmt.Errorf("unexpected status %s", sale.Status)
		}
		return tx.UpdateSaleStatus(ctx, saved.ID, domain.SaleStatusVoided, "wrong customer")
	}))

	got, err := b.Store.GetSale(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SaleStatusVoided, got.Status)
	assert.Equal(t, "wrong customer", got.Note)

	err = b.Store.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		_, err := tx.LookupSale(ctx, saved.ID+100)
		return err
	})
	require.ErrorIs(t, err, domain.ErrSaleNotFound)

	_, err = b.Store.GetSale(ctx, saved.ID+100)
	require.ErrorIs(t, err, domain.ErrSaleNotFound)
}

func testListSales(t *testing.T, b Backend) {
	ctx := context.Background()
	product := SeedProduct(t, b.Store, "SKU-L", 100, 100, 0)
	now := time.Now().UTC().Truncate(time.Millisecond)

	seeds := []struct {
		number string
		age    time.Duration
		method domain.PaymentMethod
		name   string
	}{
		{"INV-L-1", 3 * time.Hour, domain.PaymentMethodCash, "Meera Iyer"},
		{"INV-L-2", 2 * time.Hour, domain.PaymentMethodCard, "Rahul Das"},
		{"INV-L-3", time.Hour, domain.PaymentMethodWallet, "meera k"},
		{"INV-L-OLD", 40 * 24 * time.Hour, domain.PaymentMethodCash, "Old"},
	}
	for _, seed := range seeds {
		sale := sampleSale(seed.number, product, 1, now.Add(-seed.age))
		sale.PaymentMethod = seed.method
		sale.CustomerName = seed.name
		require.NoError(t, b.Store.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
			_, err := recordSale(ctx, tx, sale)
			return err
		}))
	}

	all, err := b.Store.ListSales(ctx, domain.SaleFilter{}.Normalize(now))
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"INV-L-3", "INV-L-2", "INV-L-1"}, saleNumbers(all))
	require.Len(t, all[0].Lines, 1)

	byMethod, err := b.Store.ListSales(ctx, domain.SaleFilter{
		PaymentMethods: []domain.PaymentMethod{domain.PaymentMethodCash, domain.PaymentMethodWallet},
	}.Normalize(now))
	require.NoError(t, err)
	assert.Equal(t, []string{"INV-L-3", "INV-L-1"}, saleNumbers(byMethod))

	byCustomer, err := b.Store.ListSales(ctx, domain.SaleFilter{CustomerQuery: "MEERA"}.Normalize(now))
	require.NoError(t, err)
	assert.Equal(t, []string{"INV-L-3", "INV-L-1"}, saleNumbers(byCustomer))

	byStatus, err := b.Store.ListSales(ctx, domain.SaleFilter{
		Statuses: []domain.SaleStatus{domain.SaleStatusRefunded},
	}.Normalize(now))
	require.NoError(t, err)
	assert.Empty(t, byStatus)

	page, err := b.Store.ListSales(ctx, domain.SaleFilter{Limit: 1, Offset: 1}.Normalize(now))
	require.NoError(t, err)
	assert.Equal(t, []string{"INV-L-2"}, saleNumbers(page))

	old, err := b.Store.ListSales(ctx, domain.SaleFilter{From: now.Add(-50 * 24 * time.Hour), To: now.Add(-39 * 24 * time.Hour)}.Normalize(now))
	require.NoError(t, err)
	assert.Equal(t, []string{"INV-L-OLD"}, saleNumbers(old))
}

func testLowStock(t *testing.T, b Backend) {
	ctx := context.Background()
	low := SeedProduct(t, b.Store, "SKU-LOW", 100, 2, 2)
	SeedProduct(t, b.Store, "SKU-OK", 100, 10, 2)
	SeedProduct(t, b.Store, "SKU-NOLEVEL", 100, 0, 0)

	count, err := b.Store.CountLowStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, b.Store.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		_, err := tx.CreditStock(ctx, low.ID, 5)
		return err
	}))

	count, err = b.Store.CountLowStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func testConcurrentDebit(t *testing.T, b Backend) {
	ctx := context.Background()
	product := SeedProduct(t, b.Store, "SKU-RACE", 100, 1, 0)

	const workers = 2
	errs := make([]error, workers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = b.Store.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
				locked, err := tx.LookupProduct(ctx, product.ID)
				if err != nil {
					return err
				}
				if locked.StockQuantity < 1 {
					return fmt.Errorf("%w: product %d", domain.ErrInsufficientStock, product.ID)
				}
				_, err = recordSale(ctx, tx, sampleSale(fmt.Sprintf("INV-RACE-%d", i), locked, 1, time.Now()))
				return err
			})
		}(i)
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, domain.ErrInsufficientStock)
	}
	assert.Equal(t, 1, succeeded)

	after, err := b.Store.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), after.StockQuantity)
}

func saleNumbers(sales []domain.Sale) []string {
	out := make([]string, 0, len(sales))
	for _, s := range sales {
		out = append(out, s.SaleNumber)
	}
	return out
}

func testOutbox(t *testing.T, b Backend) {
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Minute).Truncate(time.Millisecond)

	require.NoError(t, b.Store.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		for i, event := range []string{domain.EventSaleCreated, domain.EventSaleRefunded, domain.EventStockAdjusted} {
			if err := tx.EnqueueOutbox(ctx, domain.OutboxMessage{
				ID:            fmt.Sprintf("evt-%d", i),
				AggregateType: domain.AggregateSale,
				AggregateID:   "1",
				EventType:     event,
				Payload:       []byte(`{"n":` + fmt.Sprint(i) + `}`),
				CreatedAt:     base.Add(time.Duration(i) * time.Second),
			}); err != nil {
				return err
			}
		}
		return nil
	}))

	pending, err := b.Outbox.PullPending(ctx, 2)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "evt-0", pending[0].ID)
	assert.Equal(t, "evt-1", pending[1].ID)
	assert.JSONEq(t, `{"n":0}`, string(pending[0].Payload))

	stats, err := b.Outbox.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.PendingCount)
	assert.True(t, stats.OldestPendingAt.Equal(base), "oldest pending: %s", stats.OldestPendingAt)

	require.NoError(t, b.Outbox.MarkSent(ctx, "evt-0"))
	require.NoError(t, b.Outbox.MarkFailed(ctx, "evt-1"))
	require.ErrorIs(t, b.Outbox.MarkSent(ctx, "missing"), domain.ErrOutboxMessageNotFound)

	pending, err = b.Outbox.PullPending(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, domain.EventStockAdjusted, pending[0].EventType)
}

// IdempotencyFactory создаёт пустое хранилище ключей для одного подтеста.
type IdempotencyFactory func(t *testing.T) domain.IdempotencyRepository

// RunIdempotencyContract прогоняет общие проверки хранилища ключей идемпотентности.
func RunIdempotencyContract(t *testing.T, factory IdempotencyFactory) {
	t.Run("create get done", func(t *testing.T) {
		repo := factory(t)
		ctx := context.Background()
		ttl := time.Now().UTC().Add(2 * time.Hour).Truncate(time.Second)

		created, err := repo.CreateProcessing(ctx, " key-done ", "hash-1", ttl)
		require.NoError(t, err)
		assert.Equal(t, "key-done", created.Key)
		assert.Equal(t, domain.IdempotencyStatusProcessing, created.Status)

		require.NoError(t, repo.MarkDone(ctx, "key-done", []byte(`{"ok":true}`), 201))

		got, err := repo.Get(ctx, "key-done")
		require.NoError(t, err)
		assert.Equal(t, "hash-1", got.RequestHash)
		assert.Equal(t, domain.IdempotencyStatusDone, got.Status)
		assert.Equal(t, 201, got.HTTPStatus)
		assert.JSONEq(t, `{"ok":true}`, string(got.ResponseBody))
		assert.True(t, got.TTLAt.Equal(ttl), "ttl mismatch: expected %s, got %s", ttl, got.TTLAt)
	})

	t.Run("conflict and hash mismatch", func(t *testing.T) {
		repo := factory(t)
		ctx := context.Background()
		ttl := time.Now().UTC().Add(time.Hour)

		_, err := repo.CreateProcessing(ctx, "key-conflict", "hash-a", ttl)
		require.NoError(t, err)

		existing, err := repo.CreateProcessing(ctx, "key-conflict", "hash-a", ttl)
		require.ErrorIs(t, err, domain.ErrIdempotencyKeyAlreadyExists)
		assert.Equal(t, domain.IdempotencyStatusProcessing, existing.Status)

		_, err = repo.CreateProcessing(ctx, "key-conflict", "hash-b", ttl)
		require.ErrorIs(t, err, domain.ErrIdempotencyHashMismatch)
	})

	t.Run("validation and missing keys", func(t *testing.T) {
		repo := factory(t)
		ctx := context.Background()

		_, err := repo.CreateProcessing(ctx, " ", "hash", time.Time{})
		require.ErrorIs(t, err, domain.ErrIdempotencyKeyRequired)
		_, err = repo.CreateProcessing(ctx, "key", "", time.Time{})
		require.ErrorIs(t, err, domain.ErrIdempotencyRequestHashRequired)
		_, err = repo.Get(ctx, "absent")
		require.ErrorIs(t, err, domain.ErrIdempotencyKeyNotFound)
		require.ErrorIs(t, repo.MarkFailed(ctx, "absent", nil, 500), domain.ErrIdempotencyKeyNotFound)
	})

	t.Run("expired keys", func(t *testing.T) {
		repo := factory(t)
		ctx := context.Background()
		now := time.Now().UTC()

		for i, age := range []time.Duration{5 * time.Minute, 4 * time.Minute, 3 * time.Minute} {
			_, err := repo.CreateProcessing(ctx, fmt.Sprintf("expired-%d", i), "h", now.Add(-age))
			require.NoError(t, err)
		}
		_, err := repo.CreateProcessing(ctx, "active", "h", now.Add(time.Hour))
		require.NoError(t, err)

		_, err = repo.Get(ctx, "expired-0")
		require.ErrorIs(t, err, domain.ErrIdempotencyKeyNotFound)

		// Просроченный ключ можно занять заново.
		_, err = repo.CreateProcessing(ctx, "expired-2", "h-new", now.Add(time.Hour))
		require.NoError(t, err)

		removed, err := repo.DeleteExpired(ctx, now, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, removed)

		removed, err = repo.DeleteExpired(ctx, now, 10)
		require.NoError(t, err)
		assert.Equal(t, 1, removed)

		_, err = repo.Get(ctx, "active")
		require.NoError(t, err)
		got, err := repo.Get(ctx, "expired-2")
		require.NoError(t, err)
		assert.Equal(t, "h-new", got.RequestHash)
	})
}
