package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
	"github.com/vladislavdragonenkov/posledger/internal/metrics"
	"github.com/vladislavdragonenkov/posledger/internal/storage/memory"
)

var fixedNow = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

type fixture struct {
	ledger *Ledger
	store  *memory.Store
	pen    domain.Product
	ink    domain.Product
}

func newFixture(t *testing.T, opts ...Option) fixture {
	t.Helper()
	store := memory.NewStore()
	logger, _ := test.NewNullLogger()
	opts = append([]Option{
		WithClock(func() time.Time { return fixedNow }),
		WithLogger(log.NewEntry(logger)),
	}, opts...)
	l := New(store, opts...)

	pen, err := l.CreateProduct(context.Background(), domain.ProductInput{
		SKU: "PEN-01", Name: "Gel Pen", UnitPriceCents: 1000, TaxRateBasisPoints: 500, StockQuantity: 10, ReorderLevel: 3,
	})
	require.NoError(t, err)
	ink, err := l.CreateProduct(context.Background(), domain.ProductInput{
		SKU: "INK-01", Name: "Ink Refill", UnitPriceCents: 500, StockQuantity: 4,
	})
	require.NoError(t, err)

	return fixture{ledger: l, store: store, pen: pen, ink: ink}
}

func (f fixture) request(t *testing.T, number string, discount string, lines ...domain.CartLine) domain.CreateSaleRequest {
	t.Helper()
	req, err := domain.BuildCreateSaleRequest(domain.Draft{
		SaleNumber:        number,
		CustomerName:      " Kavya ",
		PaymentMethod:     "Card",
		OrderDiscountText: discount,
		Lines:             lines,
	})
	require.NoError(t, err)
	return req
}

func (f fixture) stock(t *testing.T, id int64) int64 {
	t.Helper()
	product, err := f.store.GetProduct(context.Background(), id)
	require.NoError(t, err)
	return product.StockQuantity
}

func TestCreateSaleComputesTotalsAndDebitsStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sale, err := f.ledger.CreateSale(ctx, f.request(t, "INV-1", "2.00",
		domain.CartLine{ProductID: f.pen.ID, UnitPriceCents: 1000, TaxRateBasisPoints: 500, Quantity: 2},
		domain.CartLine{ProductID: f.ink.ID, UnitPriceCents: 500, Quantity: 1, LineDiscountCents: 100},
	))
	require.NoError(t, err)

	assert.NotZero(t, sale.ID)
	assert.Equal(t, domain.SaleStatusCompleted, sale.Status)
	assert.Equal(t, "Kavya", sale.CustomerName)
	assert.Equal(t, int64(2500), sale.SubtotalCents)
	assert.Equal(t, int64(200), sale.DiscountCents)
	assert.Equal(t, int64(100), sale.TaxCents)
	assert.Equal(t, int64(2400), sale.TotalCents)
	assert.Equal(t, fixedNow, sale.Timestamp)
	assert.Empty(t, sale.ValidateInvariants())
	require.Len(t, sale.Lines, 2)
	assert.Equal(t, "Gel Pen", sale.Lines[0].ProductName)
	assert.Equal(t, int64(100), sale.Lines[0].TaxCents)
	assert.Equal(t, int64(100), sale.Lines[1].DiscountCents)

	assert.Equal(t, int64(8), f.stock(t, f.pen.ID))
	assert.Equal(t, int64(3), f.stock(t, f.ink.ID))

	movements, err := f.ledger.ListMovements(ctx, f.pen.ID, 0)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, domain.StockMovement{ID: movements[0].ID, ProductID: f.pen.ID, Delta: -2, Reason: "Sale", Ref: "INV-1", OccurredAt: fixedNow}, movements[0])

	pending := f.store.Outbox().AllPending()
	require.Len(t, pending, 1)
	assert.Equal(t, domain.EventSaleCreated, pending[0].EventType)
	assert.Equal(t, fmt.Sprint(sale.ID), pending[0].AggregateID)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(pending[0].Payload, &payload))
	assert.EqualValues(t, 2400, payload["total_cents"])

	fetched, err := f.ledger.FetchSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale, fetched)
}

func TestCreateSaleRepricesFromCurrentProduct(t *testing.T) {
	f := newFixture(t)

	// корзина видела старую цену и ставку
	sale, err := f.ledger.CreateSale(context.Background(), f.request(t, "INV-2", "",
		domain.CartLine{ProductID: f.pen.ID, UnitPriceCents: 700, TaxRateBasisPoints: 0, Quantity: 1, LineDiscountCents: 900},
	))
	require.NoError(t, err)

	require.Len(t, sale.Lines, 1)
	line := sale.Lines[0]
	assert.Equal(t, int64(1000), line.UnitPriceCents)
	// скидка была ограничена по цене корзины (700) и остаётся в пределах текущей суммы
	assert.Equal(t, int64(700), line.DiscountCents)
	assert.Equal(t, int64(15), line.TaxCents)
	assert.Equal(t, int64(1015), sale.TotalCents)
}

func TestCreateSaleZeroQuantityLinesFailValidation(t *testing.T) {
	f := newFixture(t)

	_, err := domain.BuildCreateSaleRequest(domain.Draft{
		PaymentMethod: "Cash",
		Lines:         []domain.CartLine{{ProductID: f.pen.ID, Quantity: 0}},
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.ledger.CreateSale(context.Background(), domain.CreateSaleRequest{})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	assert.Equal(t, int64(10), f.stock(t, f.pen.ID))
	assert.Empty(t, f.store.Outbox().AllPending())
}

func TestCreateSaleFailuresLeaveNoSideEffects(t *testing.T) {
	tests := []struct {
		name  string
		lines func(f fixture) []domain.CartLine
		kind  domain.ErrorKind
	}{
		{
			name: "unknown product",
			lines: func(f fixture) []domain.CartLine {
				return []domain.CartLine{{ProductID: f.pen.ID, Quantity: 1}, {ProductID: 999, Quantity: 1}}
			},
			kind: domain.KindNotFound,
		},
		{
			name: "insufficient stock",
			lines: func(f fixture) []domain.CartLine {
				return []domain.CartLine{{ProductID: f.pen.ID, Quantity: 1}, {ProductID: f.ink.ID, Quantity: 5}}
			},
			kind: domain.KindInsufficientStock,
		},
		{
			name: "repeated product exceeds stock",
			lines: func(f fixture) []domain.CartLine {
				return []domain.CartLine{{ProductID: f.ink.ID, Quantity: 3}, {ProductID: f.ink.ID, Quantity: 2}}
			},
			kind: domain.KindInsufficientStock,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.ledger.CreateSale(context.Background(), f.request(t, "INV-X", "", tc.lines(f)...))
			require.Error(t, err)
			assert.Equal(t, tc.kind, domain.KindOf(err))

			assert.Equal(t, int64(10), f.stock(t, f.pen.ID))
			assert.Equal(t, int64(4), f.stock(t, f.ink.ID))
			assert.Empty(t, f.store.Outbox().AllPending())
			sales, err := f.ledger.ListSales(context.Background(), domain.SaleFilter{})
			require.NoError(t, err)
			assert.Empty(t, sales)
		})
	}
}

func TestCreateSaleDuplicateNumber(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	line := domain.CartLine{ProductID: f.pen.ID, UnitPriceCents: 1000, Quantity: 1}

	_, err := f.ledger.CreateSale(ctx, f.request(t, "INV-DUP", "", line))
	require.NoError(t, err)

	_, err = f.ledger.CreateSale(ctx, f.request(t, "INV-DUP", "", line))
	require.ErrorIs(t, err, domain.ErrDuplicateSaleNumber)
	assert.Equal(t, domain.KindDuplicateIdentifier, domain.KindOf(err))
	assert.Equal(t, int64(9), f.stock(t, f.pen.ID))
}

func TestCreateSaleWithoutNumberInSameSecond(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	line := domain.CartLine{ProductID: f.pen.ID, Quantity: 1}

	first, err := f.ledger.CreateSale(ctx, f.request(t, "", "", line))
	require.NoError(t, err)
	second, err := f.ledger.CreateSale(ctx, f.request(t, "", "", line))
	require.NoError(t, err)

	assert.Equal(t, fixedNow, first.Timestamp)
	assert.Equal(t, first.Timestamp, second.Timestamp)
	assert.Equal(t, "INV-20261016-000001", first.SaleNumber)
	assert.Equal(t, "INV-20261016-000002", second.SaleNumber)
	assert.Equal(t, int64(8), f.stock(t, f.pen.ID))

	movements, err := f.ledger.ListMovements(ctx, f.pen.ID, 10)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, second.SaleNumber, movements[0].Ref)
	assert.Equal(t, first.SaleNumber, movements[1].Ref)
}

func TestConcurrentCreatesForLastUnit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	last, err := f.ledger.CreateProduct(ctx, domain.ProductInput{SKU: "LAST-1", Name: "Last One", UnitPriceCents: 100, StockQuantity: 1})
	require.NoError(t, err)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		req := f.request(t, fmt.Sprintf("INV-RACE-%d", i), "", domain.CartLine{ProductID: last.ID, UnitPriceCents: 100, Quantity: 1})
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.ledger.CreateSale(ctx, req)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.Equal(t, domain.KindInsufficientStock, domain.KindOf(err))
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, int64(0), f.stock(t, last.ID))
}

func TestRefundSale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sale, err := f.ledger.CreateSale(ctx, f.request(t, "INV-R", "", domain.CartLine{ProductID: f.ink.ID, Quantity: 3}))
	require.NoError(t, err)
	require.Equal(t, int64(1), f.stock(t, f.ink.ID))

	require.NoError(t, f.ledger.RefundSale(ctx, sale.ID))

	refunded, err := f.ledger.FetchSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SaleStatusRefunded, refunded.Status)
	assert.Equal(t, int64(4), f.stock(t, f.ink.ID))

	err = f.ledger.RefundSale(ctx, sale.ID)
	require.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	assert.Equal(t, int64(4), f.stock(t, f.ink.ID), "second refund must not credit again")

	err = f.ledger.VoidSale(ctx, sale.ID, "late void")
	assert.Equal(t, domain.KindInvalidStateTransition, domain.KindOf(err))

	err = f.ledger.RefundSale(ctx, 12345)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	movements, err := f.ledger.ListMovements(ctx, f.ink.ID, 10)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, domain.MovementReasonRefund, movements[0].Reason)
	assert.Equal(t, int64(3), movements[0].Delta)

	events := f.store.Outbox().AllPending()
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventSaleRefunded, events[1].EventType)
}

func TestRefundOfVoidedSaleFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sale, err := f.ledger.CreateSale(ctx, f.request(t, "INV-V", "", domain.CartLine{ProductID: f.pen.ID, Quantity: 1}))
	require.NoError(t, err)
	require.NoError(t, f.ledger.VoidSale(ctx, sale.ID, "  keyed twice "))

	err = f.ledger.RefundSale(ctx, sale.ID)
	require.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	voided, err := f.ledger.FetchSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SaleStatusVoided, voided.Status)
	assert.Equal(t, "keyed twice", voided.Note)
}

func TestVoidPolicy(t *testing.T) {
	tests := []struct {
		name      string
		policy    VoidPolicy
		wantStock int64
		wantMoves int
	}{
		{name: "restock", policy: VoidRestock, wantStock: 10, wantMoves: 2},
		{name: "keep stock", policy: VoidKeepStock, wantStock: 8, wantMoves: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, WithVoidPolicy(tc.policy))
			ctx := context.Background()

			sale, err := f.ledger.CreateSale(ctx, f.request(t, "INV-P", "", domain.CartLine{ProductID: f.pen.ID, Quantity: 2}))
			require.NoError(t, err)
			require.NoError(t, f.ledger.VoidSale(ctx, sale.ID, "cashier error"))

			assert.Equal(t, tc.wantStock, f.stock(t, f.pen.ID))
			movements, err := f.ledger.ListMovements(ctx, f.pen.ID, 10)
			require.NoError(t, err)
			assert.Len(t, movements, tc.wantMoves)
		})
	}
}

func TestVoidWithEmptyNoteKeepsCreationNote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := domain.BuildCreateSaleRequest(domain.Draft{
		SaleNumber:    "INV-N",
		PaymentMethod: "Cash",
		Note:          "gift wrap",
		Lines:         []domain.CartLine{{ProductID: f.pen.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	sale, err := f.ledger.CreateSale(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "gift wrap", sale.Note)

	require.NoError(t, f.ledger.VoidSale(ctx, sale.ID, "   "))

	voided, err := f.ledger.FetchSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SaleStatusVoided, voided.Status)
	assert.Equal(t, "gift wrap", voided.Note)
}

func TestParseVoidPolicy(t *testing.T) {
	p, err := ParseVoidPolicy("")
	require.NoError(t, err)
	assert.Equal(t, VoidRestock, p)

	p, err = ParseVoidPolicy("keep-stock")
	require.NoError(t, err)
	assert.Equal(t, VoidKeepStock, p)

	_, err = ParseVoidPolicy("maybe")
	assert.Error(t, err)
}

func TestAdjustStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	product, err := f.ledger.AdjustStock(ctx, domain.StockAdjustment{ProductID: f.pen.ID, Delta: -8, Reason: "Damaged", Ref: "AUD-7"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), product.StockQuantity)
	assert.True(t, product.IsLowStock())

	_, err = f.ledger.AdjustStock(ctx, domain.StockAdjustment{ProductID: f.pen.ID, Delta: -3, Reason: "Lost"})
	assert.Equal(t, domain.KindInsufficientStock, domain.KindOf(err))
	assert.Equal(t, int64(2), f.stock(t, f.pen.ID))

	_, err = f.ledger.AdjustStock(ctx, domain.StockAdjustment{ProductID: f.pen.ID, Delta: 0, Reason: "noop"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = f.ledger.AdjustStock(ctx, domain.StockAdjustment{ProductID: f.pen.ID, Delta: 1, Reason: "  "})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = f.ledger.AdjustStock(ctx, domain.StockAdjustment{ProductID: 404, Delta: 1, Reason: "Found"})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	product, err = f.ledger.AdjustStock(ctx, domain.StockAdjustment{ProductID: f.pen.ID, Delta: 5, Reason: "Restock"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), product.StockQuantity)

	events := f.store.Outbox().AllPending()
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventStockAdjusted, events[0].EventType)
}

func TestLowStockCountFollowsStockChanges(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewLedgerMetricsWithRegisterer(reg)
	f := newFixture(t, WithMetrics(m))
	ctx := context.Background()

	count, err := f.ledger.LowStockCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	sale, err := f.ledger.CreateSale(ctx, f.request(t, "INV-LOW", "", domain.CartLine{ProductID: f.pen.ID, Quantity: 7}))
	require.NoError(t, err)

	count, err = f.ledger.LowStockCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, float64(1), gaugeValue(t, reg, "pos_low_stock_products"))

	require.NoError(t, f.ledger.RefundSale(ctx, sale.ID))
	count, err = f.ledger.LowStockCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestListSalesAppliesFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.ledger.CreateSale(ctx, f.request(t, "INV-A", "", domain.CartLine{ProductID: f.pen.ID, Quantity: 1}))
	require.NoError(t, err)
	second, err := f.ledger.CreateSale(ctx, f.request(t, "INV-B", "", domain.CartLine{ProductID: f.pen.ID, Quantity: 1}))
	require.NoError(t, err)
	require.NoError(t, f.ledger.RefundSale(ctx, first.ID))

	all, err := f.ledger.ListSales(ctx, domain.SaleFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)

	refunded, err := f.ledger.ListSales(ctx, domain.SaleFilter{Statuses: []domain.SaleStatus{domain.SaleStatusRefunded}})
	require.NoError(t, err)
	require.Len(t, refunded, 1)
	assert.Equal(t, first.ID, refunded[0].ID)

	cash, err := f.ledger.ListSales(ctx, domain.SaleFilter{PaymentMethods: []domain.PaymentMethod{domain.PaymentMethodCash}})
	require.NoError(t, err)
	assert.Empty(t, cash)
}

func TestCreateProductValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.CreateProduct(context.Background(), domain.ProductInput{SKU: " ", Name: "x", UnitPriceCents: -1})
	require.ErrorIs(t, err, domain.ErrSKURequired)
	require.ErrorIs(t, err, domain.ErrNegativeAmount)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = f.ledger.CreateProduct(context.Background(), domain.ProductInput{SKU: "PEN-01", Name: "Another"})
	assert.Equal(t, domain.KindDuplicateIdentifier, domain.KindOf(err))
}

func TestUpdateProductRepricesOnlyLaterSales(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	before, err := f.ledger.CreateSale(ctx, f.request(t, "INV-OLD", "", domain.CartLine{ProductID: f.pen.ID, Quantity: 1}))
	require.NoError(t, err)

	updated, err := f.ledger.UpdateProduct(ctx, f.pen.ID, domain.ProductUpdate{
		Name:               " Gel Pen Pro ",
		UnitPriceCents:     1500,
		TaxRateBasisPoints: 1000,
		ReorderLevel:       9,
	})
	require.NoError(t, err)
	assert.Equal(t, "Gel Pen Pro", updated.Name)
	assert.Equal(t, int64(9), updated.StockQuantity, "stock is not editable")

	count, err := f.ledger.LowStockCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	fetched, err := f.ledger.FetchSale(ctx, before.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Lines, fetched.Lines)
	assert.Equal(t, before.TotalCents, fetched.TotalCents)
	assert.Equal(t, int64(1000), fetched.Lines[0].UnitPriceCents)
	assert.Equal(t, "Gel Pen", fetched.Lines[0].ProductName)

	after, err := f.ledger.CreateSale(ctx, f.request(t, "INV-NEW", "", domain.CartLine{ProductID: f.pen.ID, UnitPriceCents: 1000, Quantity: 1}))
	require.NoError(t, err)
	require.Len(t, after.Lines, 1)
	assert.Equal(t, int64(1500), after.Lines[0].UnitPriceCents)
	assert.Equal(t, int64(1000), after.Lines[0].TaxRateBasisPoints)
	assert.Equal(t, int64(150), after.TaxCents)
	assert.Equal(t, int64(1650), after.TotalCents)
	assert.Equal(t, "Gel Pen Pro", after.Lines[0].ProductName)

	_, err = f.ledger.UpdateProduct(ctx, f.pen.ID, domain.ProductUpdate{Name: "", UnitPriceCents: -1})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	_, err = f.ledger.UpdateProduct(ctx, 999, domain.ProductUpdate{Name: "Ghost"})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestFailuresAreCountedByKind(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewLedgerMetricsWithRegisterer(reg)
	f := newFixture(t, WithMetrics(m))

	_ = f.ledger.RefundSale(context.Background(), 77)

	assert.Equal(t, 1, testutil.CollectAndCount(reg, "pos_ledger_failures_total"))
}

func gaugeValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() == name {
			return family.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}
