package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
)

func enqueueSaleEvent(ctx context.Context, tx domain.OutboxWriter, eventType string, sale domain.Sale) error {
	lines := make([]map[string]interface{}, 0, len(sale.Lines))
	for _, line := range sale.Lines {
		lines = append(lines, map[string]interface{}{
			"product_id":  line.ProductID,
			"sku":         line.SKU,
			"quantity":    line.Quantity,
			"total_cents": line.LineTotalCents,
		})
	}

	payload := map[string]interface{}{
		"sale_id":        sale.ID,
		"sale_number":    sale.SaleNumber,
		"status":         sale.Status,
		"payment_method": sale.PaymentMethod,
		"customer_name":  sale.CustomerName,
		"subtotal_cents": sale.SubtotalCents,
		"discount_cents": sale.DiscountCents,
		"tax_cents":      sale.TaxCents,
		"total_cents":    sale.TotalCents,
		"lines":          lines,
		"ts":             time.Now().UTC().Format(time.RFC3339Nano),
	}
	if sale.Note != "" {
		payload["note"] = sale.Note
	}
	return enqueue(ctx, tx, domain.AggregateSale, saleAggregateID(sale.ID), eventType, payload)
}

func enqueueStockEvent(ctx context.Context, tx domain.OutboxWriter, adj domain.StockAdjustment, product domain.Product) error {
	payload := map[string]interface{}{
		"product_id": product.ID,
		"sku":        product.SKU,
		"delta":      adj.Delta,
		"reason":     adj.Reason,
		"ref":        adj.Ref,
		"stock":      product.StockQuantity,
		"low_stock":  product.IsLowStock(),
		"ts":         time.Now().UTC().Format(time.RFC3339Nano),
	}
	return enqueue(ctx, tx, domain.AggregateProduct, strconv.FormatInt(product.ID, 10), domain.EventStockAdjusted, payload)
}

func enqueue(ctx context.Context, tx domain.OutboxWriter, aggregateType, aggregateID, eventType string, payload map[string]interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	if err := tx.EnqueueOutbox(ctx, domain.OutboxMessage{
		ID:            uuid.NewString(),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Payload:       body,
		CreatedAt:     time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("enqueue %s: %w", eventType, err)
	}
	return nil
}
