// Package httpapi отдаёт операции ledger по HTTP (gin) под префиксом /api/v1.
// Тела ответов, JSON-форма domain.Result.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
	"github.com/vladislavdragonenkov/posledger/internal/metrics"
)

// Ledger: операции, которые нужны HTTP слою.
type Ledger interface {
	CreateSale(ctx context.Context, req domain.CreateSaleRequest) (domain.Sale, error)
	FetchSale(ctx context.Context, id int64) (domain.Sale, error)
	ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error)
	RefundSale(ctx context.Context, id int64) error
	VoidSale(ctx context.Context, id int64, note string) error
	AdjustStock(ctx context.Context, adj domain.StockAdjustment) (domain.Product, error)
	CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, upd domain.ProductUpdate) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListMovements(ctx context.Context, productID int64, limit int) ([]domain.StockMovement, error)
	LowStockCount(ctx context.Context) (int, error)
}

// Handler содержит обработчики маршрутов.
type Handler struct {
	ledger  Ledger
	idem    domain.IdempotencyRepository
	metrics *metrics.IdempotencyMetrics
	logger  *log.Entry
	now     func() time.Time
	ttl     time.Duration
}

// Option настраивает Handler.
type Option func(*Handler)

// WithLogger задаёт логгер.
func WithLogger(logger *log.Entry) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithIdempotency включает обработку заголовка Idempotency-Key для POST-мутаций продаж.
func WithIdempotency(repo domain.IdempotencyRepository, ttl time.Duration) Option {
	return func(h *Handler) {
		h.idem = repo
		if ttl > 0 {
			h.ttl = ttl
		}
	}
}

// WithIdempotencyMetrics включает метрики повторов.
func WithIdempotencyMetrics(m *metrics.IdempotencyMetrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

// WithClock подменяет источник времени окна выборки продаж.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// NewHandler собирает обработчики поверх ledger.
func NewHandler(ledger Ledger, opts ...Option) *Handler {
	h := &Handler{
		ledger: ledger,
		logger: log.New().WithField("component", "http-api"),
		now:    func() time.Time { return time.Now().UTC() },
		ttl:    domain.DefaultIdempotencyTTL,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register вешает маршруты на группу (обычно /api/v1).
func (h *Handler) Register(group *gin.RouterGroup) {
	sales := group.Group("/sales")
	{
		sales.POST("/preview", h.previewSale)
		sales.POST("", h.idempotent(), h.createSale)
		sales.GET("", h.listSales)
		sales.GET("/:id", h.getSale)
		sales.POST("/:id/refund", h.idempotent(), h.refundSale)
		sales.POST("/:id/void", h.idempotent(), h.voidSale)
	}

	products := group.Group("/products")
	{
		products.GET("", h.listProducts)
		products.POST("", h.createProduct)
		products.GET("/:id", h.getProduct)
		products.PUT("/:id", h.updateProduct)
		products.POST("/:id/adjustments", h.adjustStock)
		products.GET("/:id/movements", h.listMovements)
	}

	group.GET("/inventory/low-stock", h.lowStock)
}

func (h *Handler) previewSale(c *gin.Context) {
	var body draftDTO
	if !bindJSON(c, &body) {
		return
	}
	totals := domain.CalculateTotals(body.totalsLines(), domain.ParseMoney(body.OrderDiscount))
	respond(c, http.StatusOK, domain.Ok(totalsFromDomain(totals)))
}

func (h *Handler) createSale(c *gin.Context) {
	var body draftDTO
	if !bindJSON(c, &body) {
		return
	}
	req, err := domain.BuildCreateSaleRequest(body.toDomain())
	if err != nil {
		fail[saleDTO](c, err)
		return
	}
	sale, err := h.ledger.CreateSale(c.Request.Context(), req)
	if err != nil {
		h.logFailure(c, "create sale", err)
		fail[saleDTO](c, err)
		return
	}
	respond(c, http.StatusCreated, domain.Ok(saleFromDomain(sale)))
}

func (h *Handler) getSale(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	sale, err := h.ledger.FetchSale(c.Request.Context(), id)
	if err != nil {
		fail[saleDTO](c, err)
		return
	}
	respond(c, http.StatusOK, domain.Ok(saleFromDomain(sale)))
}

func (h *Handler) listSales(c *gin.Context) {
	filter, err := parseSaleFilter(c)
	if err != nil {
		fail[salesPageDTO](c, err)
		return
	}
	filter = filter.Normalize(h.now())

	sales, err := h.ledger.ListSales(c.Request.Context(), filter)
	if err != nil {
		h.logFailure(c, "list sales", err)
		fail[salesPageDTO](c, err)
		return
	}
	page := salesPageDTO{Items: make([]saleDTO, 0, len(sales)), Limit: filter.Limit, Offset: filter.Offset}
	for _, sale := range sales {
		page.Items = append(page.Items, saleFromDomain(sale))
	}
	respond(c, http.StatusOK, domain.Ok(page))
}

func (h *Handler) refundSale(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.ledger.RefundSale(c.Request.Context(), id); err != nil {
		h.logFailure(c, "refund sale", err)
		fail[saleDTO](c, err)
		return
	}
	h.respondSale(c, id)
}

func (h *Handler) voidSale(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body voidDTO
	if c.Request.ContentLength != 0 && !bindJSON(c, &body) {
		return
	}
	if err := h.ledger.VoidSale(c.Request.Context(), id, body.Note); err != nil {
		h.logFailure(c, "void sale", err)
		fail[saleDTO](c, err)
		return
	}
	h.respondSale(c, id)
}

// respondSale отдаёт продажу после перехода статуса.
func (h *Handler) respondSale(c *gin.Context, id int64) {
	sale, err := h.ledger.FetchSale(c.Request.Context(), id)
	if err != nil {
		fail[saleDTO](c, err)
		return
	}
	respond(c, http.StatusOK, domain.Ok(saleFromDomain(sale)))
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.ledger.ListProducts(c.Request.Context())
	if err != nil {
		fail[[]productDTO](c, err)
		return
	}
	out := make([]productDTO, 0, len(products))
	for _, p := range products {
		out = append(out, productFromDomain(p))
	}
	respond(c, http.StatusOK, domain.Ok(out))
}

func (h *Handler) createProduct(c *gin.Context) {
	var body productInputDTO
	if !bindJSON(c, &body) {
		return
	}
	product, err := h.ledger.CreateProduct(c.Request.Context(), body.toDomain())
	if err != nil {
		fail[productDTO](c, err)
		return
	}
	respond(c, http.StatusCreated, domain.Ok(productFromDomain(product)))
}

func (h *Handler) getProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	product, err := h.ledger.GetProduct(c.Request.Context(), id)
	if err != nil {
		fail[productDTO](c, err)
		return
	}
	respond(c, http.StatusOK, domain.Ok(productFromDomain(product)))
}

func (h *Handler) updateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body productUpdateDTO
	if !bindJSON(c, &body) {
		return
	}
	product, err := h.ledger.UpdateProduct(c.Request.Context(), id, body.toDomain())
	if err != nil {
		h.logFailure(c, "update product", err)
		fail[productDTO](c, err)
		return
	}
	respond(c, http.StatusOK, domain.Ok(productFromDomain(product)))
}

func (h *Handler) adjustStock(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body adjustmentDTO
	if !bindJSON(c, &body) {
		return
	}
	product, err := h.ledger.AdjustStock(c.Request.Context(), domain.StockAdjustment{
		ProductID: id,
		Delta:     body.Delta,
		Reason:    body.Reason,
		Ref:       body.Ref,
	})
	if err != nil {
		h.logFailure(c, "adjust stock", err)
		fail[productDTO](c, err)
		return
	}
	respond(c, http.StatusOK, domain.Ok(productFromDomain(product)))
}

func (h *Handler) listMovements(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	limit, err := intQuery(c, "limit")
	if err != nil {
		fail[[]movementDTO](c, err)
		return
	}
	movements, err := h.ledger.ListMovements(c.Request.Context(), id, limit)
	if err != nil {
		fail[[]movementDTO](c, err)
		return
	}
	out := make([]movementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, movementFromDomain(m))
	}
	respond(c, http.StatusOK, domain.Ok(out))
}

func (h *Handler) lowStock(c *gin.Context) {
	count, err := h.ledger.LowStockCount(c.Request.Context())
	if err != nil {
		fail[lowStockDTO](c, err)
		return
	}
	respond(c, http.StatusOK, domain.Ok(lowStockDTO{Count: count}))
}

func (h *Handler) logFailure(c *gin.Context, operation string, err error) {
	if domain.KindOf(err) != domain.KindInternal {
		return
	}
	h.logger.WithError(err).WithFields(log.Fields{
		"operation": operation,
		"path":      c.FullPath(),
	}).Error("request failed")
}

// StatusFor переводит категорию ошибки в HTTP статус.
func StatusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindDuplicateIdentifier:
		return http.StatusConflict
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInsufficientStock:
		return http.StatusConflict
	case domain.KindInvalidStateTransition:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respond[T any](c *gin.Context, status int, result domain.Result[T]) {
	c.JSON(status, result)
}

// fail отдаёт ошибку как Result. Текст внутренних ошибок клиенту не уходит,
// он прикрепляется к контексту и попадает в access log.
func fail[T any](c *gin.Context, err error) {
	result := domain.Fail[T](err)
	if result.Kind() == domain.KindInternal {
		_ = c.Error(err)
	}
	c.JSON(StatusFor(result.Kind()), result)
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail[struct{}](c, fmt.Errorf("%w: malformed request body: %v", domain.ErrValidation, err))
		return false
	}
	return true
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		fail[struct{}](c, fmt.Errorf("%w: invalid id %q", domain.ErrValidation, c.Param("id")))
		return 0, false
	}
	return id, true
}

func intQuery(c *gin.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrValidation, name)
	}
	return v, nil
}

func parseSaleFilter(c *gin.Context) (domain.SaleFilter, error) {
	var filter domain.SaleFilter
	var err error

	if filter.From, err = timeQuery(c, "from"); err != nil {
		return filter, err
	}
	if filter.To, err = timeQuery(c, "to"); err != nil {
		return filter, err
	}
	for _, raw := range c.QueryArray("payment_method") {
		method, err := domain.ParsePaymentMethod(raw)
		if err != nil {
			return filter, fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}
		filter.PaymentMethods = append(filter.PaymentMethods, method)
	}
	for _, raw := range c.QueryArray("status") {
		st := domain.SaleStatus(strings.ToUpper(strings.TrimSpace(raw)))
		if !st.Valid() {
			return filter, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, raw)
		}
		filter.Statuses = append(filter.Statuses, st)
	}
	filter.CustomerQuery = c.Query("q")
	if filter.Limit, err = intQuery(c, "limit"); err != nil {
		return filter, err
	}
	if filter.Offset, err = intQuery(c, "offset"); err != nil {
		return filter, err
	}
	return filter, nil
}

func timeQuery(c *gin.Context, name string) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be RFC3339", domain.ErrValidation, name)
	}
	return t.UTC(), nil
}

var errPanicRecovered = errors.New("internal error")
