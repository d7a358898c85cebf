package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
	"github.com/vladislavdragonenkov/posledger/internal/metrics"
)

// AdjustStock применяет ручную корректировку остатка. Результат не может уйти в минус.
func (l *Ledger) AdjustStock(ctx context.Context, adj domain.StockAdjustment) (domain.Product, error) {
	started := l.now()
	adj.Reason = strings.TrimSpace(adj.Reason)
	adj.Ref = strings.TrimSpace(adj.Ref)
	fields := log.Fields{"product_id": adj.ProductID, "delta": adj.Delta, "reason": adj.Reason}

	if err := adj.Validate(); err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrValidation, err)
		l.finish(metrics.OperationAdjust, started, err, fields)
		return domain.Product{}, err
	}

	var updated domain.Product
	err := l.store.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		product, err := tx.LookupProduct(ctx, adj.ProductID)
		if err != nil {
			return err
		}
		if product.StockQuantity+adj.Delta < 0 {
			return fmt.Errorf("%w: %s has %d, adjustment %d would go negative",
				domain.ErrInsufficientStock, product.SKU, product.StockQuantity, adj.Delta)
		}

		if adj.Delta < 0 {
			updated, err = tx.DebitStock(ctx, adj.ProductID, -adj.Delta)
		} else {
			updated, err = tx.CreditStock(ctx, adj.ProductID, adj.Delta)
		}
		if err != nil {
			return err
		}

		if err := tx.AppendMovement(ctx, domain.StockMovement{
			ProductID:  adj.ProductID,
			Delta:      adj.Delta,
			Reason:     adj.Reason,
			Ref:        adj.Ref,
			OccurredAt: started,
		}); err != nil {
			return fmt.Errorf("append movement: %w", err)
		}
		return enqueueStockEvent(ctx, tx, adj, updated)
	})
	if err != nil {
		err = fmt.Errorf("adjust stock of product %d: %w", adj.ProductID, err)
		l.finish(metrics.OperationAdjust, started, err, fields)
		return domain.Product{}, err
	}

	fields["stock"] = updated.StockQuantity
	l.finish(metrics.OperationAdjust, started, nil, fields)
	l.metrics.RecordStockAdjusted()
	l.monitor.Refresh(ctx, metrics.OperationAdjust)
	return updated, nil
}

// CreateProduct заводит товар в каталоге.
func (l *Ledger) CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	in = in.Normalize()
	if errs := in.Validate(); len(errs) > 0 {
		return domain.Product{}, fmt.Errorf("%w: %w", domain.ErrValidation, errors.Join(errs...))
	}

	product, err := l.store.CreateProduct(ctx, in)
	if err != nil {
		return domain.Product{}, fmt.Errorf("create product %s: %w", in.SKU, err)
	}

	l.logger.WithFields(log.Fields{
		"product_id": product.ID,
		"sku":        product.SKU,
		"stock":      product.StockQuantity,
	}).Info("product created")
	l.monitor.Refresh(ctx, "product")
	return product, nil
}

// UpdateProduct меняет цену, ставку налога, порог и описание товара. Проведённые
// продажи хранят свой снимок и не меняются; новая цена действует со следующей продажи.
func (l *Ledger) UpdateProduct(ctx context.Context, id int64, upd domain.ProductUpdate) (domain.Product, error) {
	upd = upd.Normalize()
	if errs := upd.Validate(); len(errs) > 0 {
		return domain.Product{}, fmt.Errorf("%w: %w", domain.ErrValidation, errors.Join(errs...))
	}

	product, err := l.store.UpdateProduct(ctx, id, upd)
	if err != nil {
		return domain.Product{}, fmt.Errorf("update product %d: %w", id, err)
	}

	l.logger.WithFields(log.Fields{
		"product_id":    product.ID,
		"sku":           product.SKU,
		"price":         domain.FormatMoney(product.UnitPriceCents),
		"tax_bp":        product.TaxRateBasisPoints,
		"reorder_level": product.ReorderLevel,
	}).Info("product updated")
	l.monitor.Refresh(ctx, "product")
	return product, nil
}

func (l *Ledger) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	product, err := l.store.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return product, nil
}

func (l *Ledger) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := l.store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// ListMovements возвращает журнал движения товара, новые записи первыми.
func (l *Ledger) ListMovements(ctx context.Context, productID int64, limit int) ([]domain.StockMovement, error) {
	if limit <= 0 || limit > maxMovementsLimit {
		limit = defaultMovementsLimit
	}
	if _, err := l.store.GetProduct(ctx, productID); err != nil {
		return nil, fmt.Errorf("list movements of product %d: %w", productID, err)
	}
	movements, err := l.store.ListMovements(ctx, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("list movements of product %d: %w", productID, err)
	}
	return movements, nil
}
