package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
	grpcsvc "github.com/vladislavdragonenkov/posledger/internal/service/grpc"
	"github.com/vladislavdragonenkov/posledger/internal/service/httpapi"
	"github.com/vladislavdragonenkov/posledger/internal/service/ledger"
	"github.com/vladislavdragonenkov/posledger/internal/service/outbox"
	"github.com/vladislavdragonenkov/posledger/internal/storage/memory"
	posledgerv1 "github.com/vladislavdragonenkov/posledger/proto/posledger/v1"
)

// LedgerLifecycleTestSuite гоняет продажи через HTTP и gRPC поверх одного хранилища.
type LedgerLifecycleTestSuite struct {
	suite.Suite
	store     *memory.Store
	ledger    *ledger.Ledger
	http      *httptest.Server
	grpc      posledgerv1.SaleLedgerClient
	conn      *grpc.ClientConn
	server    *grpc.Server
	publisher *capturePublisher
	worker    *outbox.Worker
}

func (s *LedgerLifecycleTestSuite) SetupTest() {
	baseLogger := log.New()
	baseLogger.SetLevel(log.WarnLevel)
	logger := baseLogger.WithField("component", "integration-test")

	s.store = memory.NewStore()
	s.ledger = ledger.New(s.store, ledger.WithLogger(logger))
	idem := memory.NewIdempotencyRepository()

	handler := httpapi.NewHandler(s.ledger,
		httpapi.WithLogger(logger),
		httpapi.WithIdempotency(idem, time.Hour),
	)
	s.http = httptest.NewServer(httpapi.NewRouter(handler, logger))

	lis := bufconn.Listen(1 << 20)
	s.server = grpc.NewServer()
	posledgerv1.RegisterSaleLedgerServer(s.server, grpcsvc.NewSaleLedgerService(s.ledger, idem, logger))
	go func() { _ = s.server.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	s.conn = conn
	s.grpc = posledgerv1.NewSaleLedgerClient(conn)

	s.publisher = &capturePublisher{}
	s.worker = outbox.NewWorker(s.store.Outbox(), s.publisher, outbox.Config{RetryBaseDelay: -1, Logger: logger})
}

func (s *LedgerLifecycleTestSuite) TearDownTest() {
	_ = s.conn.Close()
	s.server.Stop()
	s.http.Close()
}

func (s *LedgerLifecycleTestSuite) TestSaleRefundOverHTTP() {
	product := s.createProduct("MUG-1", 1250, 1000, 5, 1)

	sale := s.postSale("sale-1", map[string]any{
		"sale_number":    "INV-100",
		"customer_name":  "Anna",
		"payment_method": "Cash",
		"lines": []map[string]any{{
			"product_id":            product,
			"unit_price_cents":      1250,
			"tax_rate_basis_points": 1000,
			"quantity":              2,
		}},
	}, http.StatusCreated)
	s.Equal("COMPLETED", sale.Status)
	s.Equal(int64(2500), sale.SubtotalCents)
	s.Equal(int64(250), sale.TaxCents)
	s.Equal(int64(2750), sale.TotalCents)
	s.Equal(int64(3), s.stockOf(product))

	// Повтор с тем же ключом отдаёт ту же продажу и не списывает остаток второй раз.
	replayed := s.postSale("sale-1", map[string]any{
		"sale_number":    "INV-100",
		"customer_name":  "Anna",
		"payment_method": "Cash",
		"lines": []map[string]any{{
			"product_id":            product,
			"unit_price_cents":      1250,
			"tax_rate_basis_points": 1000,
			"quantity":              2,
		}},
	}, http.StatusCreated)
	s.Equal(sale.ID, replayed.ID)
	s.Equal(int64(3), s.stockOf(product))

	var refunded saleView
	status := s.do(http.MethodPost, fmt.Sprintf("/api/v1/sales/%d/refund", sale.ID), nil, "refund-1", &refunded)
	s.Equal(http.StatusOK, status)
	s.Equal("REFUNDED", refunded.Status)
	s.Equal(int64(5), s.stockOf(product))

	var failed envelope[json.RawMessage]
	status = s.do(http.MethodPost, fmt.Sprintf("/api/v1/sales/%d/refund", sale.ID), nil, "refund-2", &failed)
	s.Equal(http.StatusUnprocessableEntity, status)
	s.Equal("InvalidStateTransition", failed.Error.Kind)

	var movements []struct {
		Delta  int64  `json:"delta"`
		Reason string `json:"reason"`
	}
	s.Equal(http.StatusOK, s.do(http.MethodGet, fmt.Sprintf("/api/v1/products/%d/movements", product), nil, "", &movements))
	deltas := map[string]int64{}
	for _, m := range movements {
		deltas[m.Reason] += m.Delta
	}
	s.Equal(int64(-2), deltas[domain.MovementReasonSale])
	s.Equal(int64(2), deltas[domain.MovementReasonRefund])
}

func (s *LedgerLifecycleTestSuite) TestVoidOverGRPC() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	product := s.createProduct("PEN-1", 300, 0, 10, 2)

	created, err := s.grpc.CreateSale(grpcsvc.WithIdempotencyKey(ctx, "grpc-sale-1"), &posledgerv1.CreateSaleRequest{
		SaleNumber:    "INV-200",
		PaymentMethod: "Card",
		OrderDiscount: "1.00",
		Lines:         []*posledgerv1.CartLine{{ProductId: product, UnitPriceCents: 300, Quantity: 4}},
	})
	s.Require().NoError(err)
	s.Equal(int64(1100), created.Sale.TotalCents)
	s.Equal(int64(6), s.stockOf(product))

	voided, err := s.grpc.VoidSale(ctx, &posledgerv1.VoidSaleRequest{SaleId: created.Sale.Id, Note: "wrong till"})
	s.Require().NoError(err)
	s.Equal(posledgerv1.SaleStatus_SALE_STATUS_VOIDED, voided.Sale.Status)
	s.Equal("wrong till", voided.Sale.Note)
	s.Equal(int64(10), s.stockOf(product))

	_, err = s.grpc.VoidSale(ctx, &posledgerv1.VoidSaleRequest{SaleId: created.Sale.Id})
	s.Equal(codes.FailedPrecondition, status.Code(err))

	// Тот же номер продажи после аннулирования снова занят.
	_, err = s.grpc.CreateSale(ctx, &posledgerv1.CreateSaleRequest{
		SaleNumber:    "INV-200",
		PaymentMethod: "Card",
		Lines:         []*posledgerv1.CartLine{{ProductId: product, UnitPriceCents: 300, Quantity: 1}},
	})
	s.Equal(codes.AlreadyExists, status.Code(err))

	fetched, err := s.grpc.GetSale(ctx, &posledgerv1.GetSaleRequest{SaleId: created.Sale.Id})
	s.Require().NoError(err)
	s.Equal(posledgerv1.SaleStatus_SALE_STATUS_VOIDED, fetched.Sale.Status)
}

func (s *LedgerLifecycleTestSuite) TestInsufficientStockLeavesNoTrace() {
	product := s.createProduct("LAMP-1", 5000, 0, 1, 0)

	var failed envelope[json.RawMessage]
	status := s.do(http.MethodPost, "/api/v1/sales", map[string]any{
		"sale_number":    "INV-300",
		"payment_method": "Wallet/UPI",
		"lines":          []map[string]any{{"product_id": product, "unit_price_cents": 5000, "quantity": 3}},
	}, "", &failed)
	s.Equal(http.StatusConflict, status)
	s.Equal("InsufficientStock", failed.Error.Kind)
	s.Equal(int64(1), s.stockOf(product))

	sales, err := s.ledger.ListSales(context.Background(), domain.SaleFilter{})
	s.Require().NoError(err)
	s.Empty(sales)

	s.Zero(s.worker.ProcessOnce(context.Background()))
	s.Empty(s.publisher.eventTypes())
}

func (s *LedgerLifecycleTestSuite) TestOutboxPublishesLifecycleEvents() {
	ctx := context.Background()
	product := s.createProduct("BAG-1", 900, 0, 3, 0)

	sale := s.postSale("", map[string]any{
		"sale_number":    "INV-400",
		"payment_method": "Cash",
		"lines":          []map[string]any{{"product_id": product, "unit_price_cents": 900, "quantity": 1}},
	}, http.StatusCreated)
	s.Require().NoError(s.ledger.RefundSale(ctx, sale.ID))

	s.Equal(2, s.worker.ProcessOnce(ctx))
	s.Equal([]string{domain.EventSaleCreated, domain.EventSaleRefunded}, s.publisher.eventTypes())
	for _, event := range s.publisher.all() {
		s.Equal(domain.AggregateSale, event.AggregateType)
		var payload map[string]any
		s.Require().NoError(json.Unmarshal(event.Payload, &payload))
		s.Equal("INV-400", payload["sale_number"])
	}

	s.Zero(s.worker.ProcessOnce(ctx), "published events must not be delivered twice")
}

func (s *LedgerLifecycleTestSuite) TestLowStockAgreesAcrossTransports() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.createProduct("A", 100, 0, 10, 2)
	low := s.createProduct("B", 100, 0, 3, 2)

	_, err := s.grpc.AdjustStock(ctx, &posledgerv1.AdjustStockRequest{ProductId: low, Delta: -1, Reason: "damaged"})
	s.Require().NoError(err)

	var httpCount struct {
		Count int `json:"count"`
	}
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/inventory/low-stock", nil, "", &httpCount))
	grpcCount, err := s.grpc.LowStockCount(ctx, &posledgerv1.LowStockCountRequest{})
	s.Require().NoError(err)

	s.Equal(1, httpCount.Count)
	s.Equal(int64(httpCount.Count), grpcCount.Count)
}

func (s *LedgerLifecycleTestSuite) createProduct(sku string, price, taxBP, stock, reorder int64) int64 {
	var created struct {
		ID int64 `json:"id"`
	}
	status := s.do(http.MethodPost, "/api/v1/products", map[string]any{
		"sku":                   sku,
		"name":                  "Product " + sku,
		"unit_price_cents":      price,
		"tax_rate_basis_points": taxBP,
		"stock_quantity":        stock,
		"reorder_level":         reorder,
	}, "", &created)
	s.Require().Equal(http.StatusCreated, status)
	s.Require().NotZero(created.ID)
	return created.ID
}

func (s *LedgerLifecycleTestSuite) postSale(key string, body map[string]any, wantStatus int) saleView {
	var sale saleView
	status := s.do(http.MethodPost, "/api/v1/sales", body, key, &sale)
	s.Require().Equal(wantStatus, status)
	return sale
}

func (s *LedgerLifecycleTestSuite) stockOf(productID int64) int64 {
	product, err := s.ledger.GetProduct(context.Background(), productID)
	s.Require().NoError(err)
	return product.StockQuantity
}

// do отправляет запрос и раскладывает data из успешного ответа в out.
// Для ответов с ошибкой out должен быть *envelope.
func (s *LedgerLifecycleTestSuite) do(method, path string, body any, idemKey string, out any) int {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, s.http.URL+path, reader)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idemKey != "" {
		req.Header.Set(httpapi.IdempotencyKeyHeader, idemKey)
	}

	resp, err := s.http.Client().Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	if env, ok := out.(*envelope[json.RawMessage]); ok {
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(env))
		return resp.StatusCode
	}

	var env envelope[json.RawMessage]
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&env))
	if out != nil && env.OK {
		s.Require().NoError(json.Unmarshal(env.Data, out))
	}
	return resp.StatusCode
}

type envelope[T any] struct {
	OK    bool `json:"ok"`
	Data  T    `json:"data"`
	Error *struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

type saleView struct {
	ID            int64  `json:"id"`
	SaleNumber    string `json:"sale_number"`
	Status        string `json:"status"`
	SubtotalCents int64  `json:"subtotal_cents"`
	TaxCents      int64  `json:"tax_cents"`
	TotalCents    int64  `json:"total_cents"`
}

type capturePublisher struct {
	mu     sync.Mutex
	events []domain.OutboxMessage
}

func (p *capturePublisher) Publish(event domain.OutboxMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) all() []domain.OutboxMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.OutboxMessage(nil), p.events...)
}

func (p *capturePublisher) eventTypes() []string {
	var types []string
	for _, event := range p.all() {
		types = append(types, event.EventType)
	}
	return types
}

func TestLedgerLifecycleTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerLifecycleTestSuite))
}

func TestConcurrentSalesNeverOversell(t *testing.T) {
	store := memory.NewStore()
	svc := ledger.New(store)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, domain.ProductInput{SKU: "HOT-1", Name: "Hot item", UnitPriceCents: 100, StockQuantity: 10})
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req, err := domain.BuildCreateSaleRequest(domain.Draft{
				SaleNumber:    fmt.Sprintf("HOT-%02d", i),
				PaymentMethod: "Cash",
				Lines:         []domain.CartLine{{ProductID: product.ID, UnitPriceCents: 100, Quantity: 1}},
			})
			if err != nil {
				return
			}
			if _, err := svc.CreateSale(ctx, req); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, 10, accepted)
	after, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Zero(t, after.StockQuantity)
}
