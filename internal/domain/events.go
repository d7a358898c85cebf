package domain

// Типы событий, которые ledger кладёт в outbox.
const (
	EventSaleCreated   = "sale.created"
	EventSaleRefunded  = "sale.refunded"
	EventSaleVoided    = "sale.voided"
	EventStockAdjusted = "stock.adjusted"
)

// Типы агрегатов outbox.
const (
	AggregateSale    = "sale"
	AggregateProduct = "product"
)
