package httpapi

import (
	"time"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
)

// Все денежные поля передаются целыми центами, ставки налога, базисными пунктами.

type cartLineDTO struct {
	ProductID          int64 `json:"product_id"`
	UnitPriceCents     int64 `json:"unit_price_cents"`
	TaxRateBasisPoints int64 `json:"tax_rate_basis_points"`
	Quantity           int64 `json:"quantity"`
	LineDiscountCents  int64 `json:"line_discount_cents"`
}

type draftDTO struct {
	SaleNumber    string        `json:"sale_number"`
	CustomerName  string        `json:"customer_name"`
	PaymentMethod string        `json:"payment_method"`
	OrderDiscount string        `json:"order_discount"`
	Note          string        `json:"note"`
	Lines         []cartLineDTO `json:"lines"`
}

func (d draftDTO) toDomain() domain.Draft {
	lines := make([]domain.CartLine, 0, len(d.Lines))
	for _, line := range d.Lines {
		lines = append(lines, domain.CartLine{
			ProductID:          line.ProductID,
			UnitPriceCents:     line.UnitPriceCents,
			TaxRateBasisPoints: line.TaxRateBasisPoints,
			Quantity:           line.Quantity,
			LineDiscountCents:  line.LineDiscountCents,
		})
	}
	return domain.Draft{
		SaleNumber:        d.SaleNumber,
		CustomerName:      d.CustomerName,
		PaymentMethod:     d.PaymentMethod,
		OrderDiscountText: d.OrderDiscount,
		Note:              d.Note,
		Lines:             lines,
	}
}

func (d draftDTO) totalsLines() []domain.TotalsLine {
	lines := make([]domain.TotalsLine, 0, len(d.Lines))
	for _, line := range d.Lines {
		lines = append(lines, domain.TotalsLine{
			UnitPriceCents:     line.UnitPriceCents,
			Quantity:           line.Quantity,
			LineDiscountCents:  line.LineDiscountCents,
			TaxRateBasisPoints: line.TaxRateBasisPoints,
		})
	}
	return lines
}

type totalsDTO struct {
	SubtotalCents      int64  `json:"subtotal_cents"`
	OrderDiscountCents int64  `json:"order_discount_cents"`
	TaxCents           int64  `json:"tax_cents"`
	TotalCents         int64  `json:"total_cents"`
	Total              string `json:"total"`
}

func totalsFromDomain(t domain.Totals) totalsDTO {
	return totalsDTO{
		SubtotalCents:      t.SubtotalCents,
		OrderDiscountCents: t.OrderDiscountCents,
		TaxCents:           t.TaxCents,
		TotalCents:         t.TotalCents,
		Total:              domain.FormatMoney(t.TotalCents),
	}
}

type saleLineDTO struct {
	ProductID          int64  `json:"product_id"`
	ProductName        string `json:"product_name"`
	SKU                string `json:"sku"`
	Quantity           int64  `json:"quantity"`
	UnitPriceCents     int64  `json:"unit_price_cents"`
	TaxRateBasisPoints int64  `json:"tax_rate_basis_points"`
	SubtotalCents      int64  `json:"subtotal_cents"`
	DiscountCents      int64  `json:"discount_cents"`
	TaxCents           int64  `json:"tax_cents"`
	LineTotalCents     int64  `json:"line_total_cents"`
}

// saleDTO: представление продажи в ответах API.
type saleDTO struct {
	ID            int64         `json:"id"`
	SaleNumber    string        `json:"sale_number"`
	Timestamp     time.Time     `json:"timestamp"`
	CustomerName  string        `json:"customer_name,omitempty"`
	SubtotalCents int64         `json:"subtotal_cents"`
	DiscountCents int64         `json:"discount_cents"`
	TaxCents      int64         `json:"tax_cents"`
	TotalCents    int64         `json:"total_cents"`
	PaymentMethod string        `json:"payment_method"`
	Status        string        `json:"status"`
	Note          string        `json:"note,omitempty"`
	Lines         []saleLineDTO `json:"lines"`
}

// saleFromDomain переводит продажу в DTO.
func saleFromDomain(s domain.Sale) saleDTO {
	lines := make([]saleLineDTO, 0, len(s.Lines))
	for _, line := range s.Lines {
		lines = append(lines, saleLineDTO{
			ProductID:          line.ProductID,
			ProductName:        line.ProductName,
			SKU:                line.SKU,
			Quantity:           line.Quantity,
			UnitPriceCents:     line.UnitPriceCents,
			TaxRateBasisPoints: line.TaxRateBasisPoints,
			SubtotalCents:      line.SubtotalCents,
			DiscountCents:      line.DiscountCents,
			TaxCents:           line.TaxCents,
			LineTotalCents:     line.LineTotalCents,
		})
	}
	return saleDTO{
		ID:            s.ID,
		SaleNumber:    s.SaleNumber,
		Timestamp:     s.Timestamp.UTC(),
		CustomerName:  s.CustomerName,
		SubtotalCents: s.SubtotalCents,
		DiscountCents: s.DiscountCents,
		TaxCents:      s.TaxCents,
		TotalCents:    s.TotalCents,
		PaymentMethod: string(s.PaymentMethod),
		Status:        string(s.Status),
		Note:          s.Note,
		Lines:         lines,
	}
}

type salesPageDTO struct {
	Items  []saleDTO `json:"items"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

type voidDTO struct {
	Note string `json:"note"`
}

type productInputDTO struct {
	SKU                string `json:"sku"`
	Name               string `json:"name"`
	Category           string `json:"category"`
	UnitPriceCents     int64  `json:"unit_price_cents"`
	TaxRateBasisPoints int64  `json:"tax_rate_basis_points"`
	StockQuantity      int64  `json:"stock_quantity"`
	ReorderLevel       int64  `json:"reorder_level"`
	Notes              string `json:"notes"`
}

func (in productInputDTO) toDomain() domain.ProductInput {
	return domain.ProductInput{
		SKU:                in.SKU,
		Name:               in.Name,
		Category:           in.Category,
		UnitPriceCents:     in.UnitPriceCents,
		TaxRateBasisPoints: in.TaxRateBasisPoints,
		StockQuantity:      in.StockQuantity,
		ReorderLevel:       in.ReorderLevel,
		Notes:              in.Notes,
	}
}

type productUpdateDTO struct {
	Name               string `json:"name"`
	Category           string `json:"category"`
	UnitPriceCents     int64  `json:"unit_price_cents"`
	TaxRateBasisPoints int64  `json:"tax_rate_basis_points"`
	ReorderLevel       int64  `json:"reorder_level"`
}

func (in productUpdateDTO) toDomain() domain.ProductUpdate {
	return domain.ProductUpdate{
		Name:               in.Name,
		Category:           in.Category,
		UnitPriceCents:     in.UnitPriceCents,
		TaxRateBasisPoints: in.TaxRateBasisPoints,
		ReorderLevel:       in.ReorderLevel,
	}
}

// productDTO: представление товара.
type productDTO struct {
	ID                 int64     `json:"id"`
	SKU                string    `json:"sku"`
	Name               string    `json:"name"`
	Category           string    `json:"category,omitempty"`
	UnitPriceCents     int64     `json:"unit_price_cents"`
	TaxRateBasisPoints int64     `json:"tax_rate_basis_points"`
	StockQuantity      int64     `json:"stock_quantity"`
	ReorderLevel       int64     `json:"reorder_level"`
	LowStock           bool      `json:"low_stock"`
	Notes              string    `json:"notes,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// productFromDomain переводит товар в DTO.
func productFromDomain(p domain.Product) productDTO {
	return productDTO{
		ID:                 p.ID,
		SKU:                p.SKU,
		Name:               p.Name,
		Category:           p.Category,
		UnitPriceCents:     p.UnitPriceCents,
		TaxRateBasisPoints: p.TaxRateBasisPoints,
		StockQuantity:      p.StockQuantity,
		ReorderLevel:       p.ReorderLevel,
		LowStock:           p.IsLowStock(),
		Notes:              p.Notes,
		CreatedAt:          p.CreatedAt.UTC(),
		UpdatedAt:          p.UpdatedAt.UTC(),
	}
}

type adjustmentDTO struct {
	Delta  int64  `json:"delta"`
	Reason string `json:"reason"`
	Ref    string `json:"ref"`
}

type movementDTO struct {
	ID         int64     `json:"id"`
	ProductID  int64     `json:"product_id"`
	Delta      int64     `json:"delta"`
	Reason     string    `json:"reason"`
	Ref        string    `json:"ref,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func movementFromDomain(m domain.StockMovement) movementDTO {
	return movementDTO{
		ID:         m.ID,
		ProductID:  m.ProductID,
		Delta:      m.Delta,
		Reason:     m.Reason,
		Ref:        m.Ref,
		OccurredAt: m.OccurredAt.UTC(),
	}
}

type lowStockDTO struct {
	Count int `json:"count"`
}
