package grpcsvc

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
	posledgerv1 "github.com/vladislavdragonenkov/posledger/proto/posledger/v1"
)

// Ledger: операции ledger, которые отдаёт gRPC сервис.
type Ledger interface {
	CreateSale(ctx context.Context, req domain.CreateSaleRequest) (domain.Sale, error)
	FetchSale(ctx context.Context, id int64) (domain.Sale, error)
	ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error)
	RefundSale(ctx context.Context, id int64) error
	VoidSale(ctx context.Context, id int64, note string) error
	AdjustStock(ctx context.Context, adj domain.StockAdjustment) (domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, upd domain.ProductUpdate) (domain.Product, error)
	LowStockCount(ctx context.Context) (int, error)
}

// SaleLedgerService реализует posledgerv1.SaleLedgerServer поверх ledger.
type SaleLedgerService struct {
	posledgerv1.UnimplementedSaleLedgerServer

	ledger   Ledger
	idemRepo domain.IdempotencyRepository
	logger   *log.Entry
	now      func() time.Time
}

// NewSaleLedgerService конструирует сервис. idemRepo может быть nil: тогда
// метаданные idempotency-key игнорируются.
func NewSaleLedgerService(ledger Ledger, idemRepo domain.IdempotencyRepository, logger *log.Entry) *SaleLedgerService {
	if logger == nil {
		logger = log.New().WithField("component", "sale-ledger-grpc")
	}
	return &SaleLedgerService{
		ledger:   ledger,
		idemRepo: idemRepo,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateSale проводит продажу.
func (s *SaleLedgerService) CreateSale(ctx context.Context, req *posledgerv1.CreateSaleRequest) (*posledgerv1.SaleResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	return withIdempotency(s, ctx, posledgerv1.SaleLedger_CreateSale_FullMethodName, req, newSaleResponse,
		func(ctx context.Context) (*posledgerv1.SaleResponse, error) {
			built, err := domain.BuildCreateSaleRequest(draftFromProto(req))
			if err != nil {
				return nil, s.toStatus(err, "create sale")
			}
			sale, err := s.ledger.CreateSale(ctx, built)
			if err != nil {
				return nil, s.toStatus(err, "create sale")
			}
			return &posledgerv1.SaleResponse{Sale: toProtoSale(sale)}, nil
		})
}

func (s *SaleLedgerService) GetSale(ctx context.Context, req *posledgerv1.GetSaleRequest) (*posledgerv1.SaleResponse, error) {
	if req.GetSaleId() <= 0 {
		return nil, status.Error(codes.InvalidArgument, "sale id is required")
	}
	return s.loadSale(ctx, req.GetSaleId(), "get sale")
}

// ListSales отдаёт историю продаж, новые первыми.
func (s *SaleLedgerService) ListSales(ctx context.Context, req *posledgerv1.ListSalesRequest) (*posledgerv1.ListSalesResponse, error) {
	filter := domain.SaleFilter{
		From:          fromUnixMillis(req.GetFromUnixMs()),
		To:            fromUnixMillis(req.GetToUnixMs()),
		CustomerQuery: req.GetCustomerQuery(),
		Limit:         int(req.GetLimit()),
		Offset:        int(req.GetOffset()),
	}
	for _, raw := range req.GetPaymentMethods() {
		method, err := domain.ParsePaymentMethod(raw)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		filter.PaymentMethods = append(filter.PaymentMethods, method)
	}
	for _, raw := range req.GetStatuses() {
		st, err := fromProtoStatus(raw)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		filter.Statuses = append(filter.Statuses, st)
	}

	sales, err := s.ledger.ListSales(ctx, filter)
	if err != nil {
		return nil, s.toStatus(err, "list sales")
	}
	resp := &posledgerv1.ListSalesResponse{Sales: make([]*posledgerv1.Sale, 0, len(sales))}
	for _, sale := range sales {
		resp.Sales = append(resp.Sales, toProtoSale(sale))
	}
	return resp, nil
}

// RefundSale возвращает продажу и восстанавливает остатки.
func (s *SaleLedgerService) RefundSale(ctx context.Context, req *posledgerv1.RefundSaleRequest) (*posledgerv1.SaleResponse, error) {
	if req.GetSaleId() <= 0 {
		return nil, status.Error(codes.InvalidArgument, "sale id is required")
	}
	return withIdempotency(s, ctx, posledgerv1.SaleLedger_RefundSale_FullMethodName, req, newSaleResponse,
		func(ctx context.Context) (*posledgerv1.SaleResponse, error) {
			if err := s.ledger.RefundSale(ctx, req.GetSaleId()); err != nil {
				return nil, s.toStatus(err, "refund sale")
			}
			return s.loadSale(ctx, req.GetSaleId(), "refund sale")
		})
}

// VoidSale аннулирует продажу. Пустая заметка оставляет заметку продажи как есть.
func (s *SaleLedgerService) VoidSale(ctx context.Context, req *posledgerv1.VoidSaleRequest) (*posledgerv1.SaleResponse, error) {
	if req.GetSaleId() <= 0 {
		return nil, status.Error(codes.InvalidArgument, "sale id is required")
	}
	return withIdempotency(s, ctx, posledgerv1.SaleLedger_VoidSale_FullMethodName, req, newSaleResponse,
		func(ctx context.Context) (*posledgerv1.SaleResponse, error) {
			if err := s.ledger.VoidSale(ctx, req.GetSaleId(), req.GetNote()); err != nil {
				return nil, s.toStatus(err, "void sale")
			}
			return s.loadSale(ctx, req.GetSaleId(), "void sale")
		})
}

func (s *SaleLedgerService) AdjustStock(ctx context.Context, req *posledgerv1.AdjustStockRequest) (*posledgerv1.ProductResponse, error) {
	if req.GetProductId() <= 0 {
		return nil, status.Error(codes.InvalidArgument, "product id is required")
	}
	product, err := s.ledger.AdjustStock(ctx, domain.StockAdjustment{
		ProductID: req.GetProductId(),
		Delta:     req.GetDelta(),
		Reason:    req.GetReason(),
		Ref:       req.GetRef(),
	})
	if err != nil {
		return nil, s.toStatus(err, "adjust stock")
	}
	return &posledgerv1.ProductResponse{Product: toProtoProduct(product)}, nil
}

// UpdateProduct меняет цену, налог и порог товара. Проведённые продажи хранят свой снимок.
func (s *SaleLedgerService) UpdateProduct(ctx context.Context, req *posledgerv1.UpdateProductRequest) (*posledgerv1.ProductResponse, error) {
	if req.GetProductId() <= 0 {
		return nil, status.Error(codes.InvalidArgument, "product id is required")
	}
	product, err := s.ledger.UpdateProduct(ctx, req.GetProductId(), productUpdateFromProto(req))
	if err != nil {
		return nil, s.toStatus(err, "update product")
	}
	return &posledgerv1.ProductResponse{Product: toProtoProduct(product)}, nil
}

func (s *SaleLedgerService) LowStockCount(ctx context.Context, _ *posledgerv1.LowStockCountRequest) (*posledgerv1.LowStockCountResponse, error) {
	count, err := s.ledger.LowStockCount(ctx)
	if err != nil {
		return nil, s.toStatus(err, "low stock count")
	}
	return &posledgerv1.LowStockCountResponse{Count: int64(count)}, nil
}

func (s *SaleLedgerService) loadSale(ctx context.Context, id int64, operation string) (*posledgerv1.SaleResponse, error) {
	sale, err := s.ledger.FetchSale(ctx, id)
	if err != nil {
		return nil, s.toStatus(err, operation)
	}
	return &posledgerv1.SaleResponse{Sale: toProtoSale(sale)}, nil
}

func newSaleResponse() *posledgerv1.SaleResponse { return &posledgerv1.SaleResponse{} }

// toStatus переводит доменную ошибку в gRPC статус; внутренние ошибки логируются и скрываются.
func (s *SaleLedgerService) toStatus(err error, operation string) error {
	kind := domain.KindOf(err)
	if kind == domain.KindInternal {
		s.logger.WithError(err).WithField("operation", operation).Error("grpc request failed")
		return StatusError(kind, fmt.Sprintf("failed to %s", operation))
	}
	return StatusError(kind, err.Error())
}
