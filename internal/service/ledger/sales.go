package ledger

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
	"github.com/vladislavdragonenkov/posledger/internal/metrics"
)

// CreateSale проводит продажу одной транзакцией: блокирует товары, пересчитывает цены
// по текущим условиям, сохраняет продажу, списывает остатки, пишет журнал движения
// и событие outbox. Любая ошибка откатывает всё. Без номера в запросе продажа
// получает номер, выведенный хранилищем из её ID.
func (l *Ledger) CreateSale(ctx context.Context, req domain.CreateSaleRequest) (domain.Sale, error) {
	started := l.now()
	fields := log.Fields{}
	if req.SaleNumber() != "" {
		fields["sale_number"] = req.SaleNumber()
	}

	if err := validateRequest(req); err != nil {
		l.finish(metrics.OperationCreate, started, err, fields)
		return domain.Sale{}, err
	}

	var created domain.Sale
	err := l.store.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		products, err := lockProducts(ctx, tx, req.Lines())
		if err != nil {
			return err
		}
		if err := checkStock(req.Lines(), products); err != nil {
			return err
		}

		saved, err := tx.InsertSale(ctx, priceSale(req, products, started))
		if err != nil {
			return err
		}
		for _, line := range saved.Lines {
			if _, err := tx.DebitStock(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
			if err := tx.AppendMovement(ctx, domain.StockMovement{
				ProductID:  line.ProductID,
				Delta:      -line.Quantity,
				Reason:     domain.MovementReasonSale,
				Ref:        saved.SaleNumber,
				OccurredAt: saved.Timestamp,
			}); err != nil {
				return fmt.Errorf("append movement: %w", err)
			}
		}
		if err := enqueueSaleEvent(ctx, tx, domain.EventSaleCreated, saved); err != nil {
			return err
		}
		created = saved
		return nil
	})
	if err != nil {
		err = fmt.Errorf("create sale %q: %w", req.SaleNumber(), err)
		l.finish(metrics.OperationCreate, started, err, fields)
		return domain.Sale{}, err
	}

	fields["sale_id"] = created.ID
	fields["sale_number"] = created.SaleNumber
	fields["total"] = domain.FormatMoney(created.TotalCents)
	l.finish(metrics.OperationCreate, started, nil, fields)
	l.metrics.RecordSaleCreated(string(created.PaymentMethod), created.TotalCents)
	l.monitor.Refresh(ctx, metrics.OperationCreate)
	return created, nil
}

func validateRequest(req domain.CreateSaleRequest) error {
	lines := req.Lines()
	if len(lines) == 0 {
		return fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrLinesRequired)
	}
	if !req.PaymentMethod().Valid() {
		return fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrPaymentMethodInvalid)
	}
	for i, line := range lines {
		if line.Quantity <= 0 || line.ProductID <= 0 {
			return fmt.Errorf("%w: line %d: product and positive quantity are required", domain.ErrValidation, i)
		}
	}
	return nil
}

// lockProducts читает товары в порядке возрастания ID, чтобы конкурирующие
// транзакции брали блокировки в одном порядке.
func lockProducts(ctx context.Context, tx domain.ProductCatalog, lines []domain.RequestLine) (map[int64]domain.Product, error) {
	ids := make([]int64, 0, len(lines))
	seen := make(map[int64]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	products := make(map[int64]domain.Product, len(ids))
	for _, id := range ids {
		product, err := tx.LookupProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		products[id] = product
	}
	return products, nil
}

// checkStock сверяет суммарное количество по каждому товару с остатком.
func checkStock(lines []domain.RequestLine, products map[int64]domain.Product) error {
	requested := make(map[int64]int64, len(products))
	for _, line := range lines {
		requested[line.ProductID] += line.Quantity
	}

	ids := make([]int64, 0, len(requested))
	for id := range requested {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		product := products[id]
		if requested[id] > product.StockQuantity {
			return fmt.Errorf("%w: %s (%s) has %d, requested %d",
				domain.ErrInsufficientStock, product.Name, product.SKU, product.StockQuantity, requested[id])
		}
	}
	return nil
}

// priceSale строит снимок продажи по текущим ценам и ставкам товаров.
func priceSale(req domain.CreateSaleRequest, products map[int64]domain.Product, at time.Time) domain.Sale {
	reqLines := req.Lines()
	lines := make([]domain.SaleLine, 0, len(reqLines))
	totalsLines := make([]domain.TotalsLine, 0, len(reqLines))

	for _, reqLine := range reqLines {
		product := products[reqLine.ProductID]
		amounts := domain.ComputeLine(product.UnitPriceCents, reqLine.Quantity, reqLine.DiscountCents, product.TaxRateBasisPoints)
		lines = append(lines, domain.SaleLine{
			ProductID:          product.ID,
			ProductName:        product.Name,
			SKU:                product.SKU,
			Quantity:           reqLine.Quantity,
			UnitPriceCents:     product.UnitPriceCents,
			TaxRateBasisPoints: product.TaxRateBasisPoints,
			SubtotalCents:      amounts.SubtotalCents,
			DiscountCents:      amounts.DiscountCents,
			TaxCents:           amounts.TaxCents,
			LineTotalCents:     amounts.TotalCents,
		})
		totalsLines = append(totalsLines, domain.TotalsLine{
			UnitPriceCents:     product.UnitPriceCents,
			Quantity:           reqLine.Quantity,
			LineDiscountCents:  amounts.DiscountCents,
			TaxRateBasisPoints: product.TaxRateBasisPoints,
		})
	}

	totals := domain.CalculateTotals(totalsLines, req.OrderDiscountCents())
	return domain.Sale{
		SaleNumber:    req.SaleNumber(),
		Timestamp:     at.UTC().Truncate(time.Millisecond),
		CustomerName:  req.CustomerName(),
		SubtotalCents: totals.SubtotalCents,
		DiscountCents: totals.OrderDiscountCents,
		TaxCents:      totals.TaxCents,
		TotalCents:    totals.TotalCents,
		PaymentMethod: req.PaymentMethod(),
		Status:        domain.SaleStatusCompleted,
		Note:          req.Note(),
		Lines:         lines,
	}
}

func saleAggregateID(id int64) string {
	return strconv.FormatInt(id, 10)
}
