package grpcsvc

import (
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
	posledgerv1 "github.com/vladislavdragonenkov/posledger/proto/posledger/v1"
)

func draftFromProto(req *posledgerv1.CreateSaleRequest) domain.Draft {
	lines := make([]domain.CartLine, 0, len(req.GetLines()))
	for _, line := range req.GetLines() {
		lines = append(lines, domain.CartLine{
			ProductID:          line.GetProductId(),
			UnitPriceCents:     line.GetUnitPriceCents(),
			TaxRateBasisPoints: line.GetTaxRateBasisPoints(),
			Quantity:           line.GetQuantity(),
			LineDiscountCents:  line.GetLineDiscountCents(),
		})
	}
	return domain.Draft{
		SaleNumber:        req.GetSaleNumber(),
		CustomerName:      req.GetCustomerName(),
		PaymentMethod:     req.GetPaymentMethod(),
		OrderDiscountText: req.GetOrderDiscount(),
		Note:              req.GetNote(),
		Lines:             lines,
	}
}

func productUpdateFromProto(req *posledgerv1.UpdateProductRequest) domain.ProductUpdate {
	return domain.ProductUpdate{
		Name:               req.GetName(),
		Category:           req.GetCategory(),
		UnitPriceCents:     req.GetUnitPriceCents(),
		TaxRateBasisPoints: req.GetTaxRateBasisPoints(),
		ReorderLevel:       req.GetReorderLevel(),
	}
}

func toProtoSale(s domain.Sale) *posledgerv1.Sale {
	lines := make([]*posledgerv1.SaleLine, 0, len(s.Lines))
	for _, line := range s.Lines {
		lines = append(lines, &posledgerv1.SaleLine{
			ProductId:          line.ProductID,
			ProductName:        line.ProductName,
			Sku:                line.SKU,
			Quantity:           line.Quantity,
			UnitPriceCents:     line.UnitPriceCents,
			TaxRateBasisPoints: line.TaxRateBasisPoints,
			SubtotalCents:      line.SubtotalCents,
			DiscountCents:      line.DiscountCents,
			TaxCents:           line.TaxCents,
			LineTotalCents:     line.LineTotalCents,
		})
	}
	return &posledgerv1.Sale{
		Id:              s.ID,
		SaleNumber:      s.SaleNumber,
		TimestampUnixMs: s.Timestamp.UnixMilli(),
		CustomerName:    s.CustomerName,
		SubtotalCents:   s.SubtotalCents,
		DiscountCents:   s.DiscountCents,
		TaxCents:        s.TaxCents,
		TotalCents:      s.TotalCents,
		PaymentMethod:   string(s.PaymentMethod),
		Status:          toProtoStatus(s.Status),
		Note:            s.Note,
		Lines:           lines,
	}
}

func toProtoProduct(p domain.Product) *posledgerv1.Product {
	return &posledgerv1.Product{
		Id:                 p.ID,
		Sku:                p.SKU,
		Name:               p.Name,
		Category:           p.Category,
		UnitPriceCents:     p.UnitPriceCents,
		TaxRateBasisPoints: p.TaxRateBasisPoints,
		StockQuantity:      p.StockQuantity,
		ReorderLevel:       p.ReorderLevel,
		LowStock:           p.IsLowStock(),
	}
}

func toProtoStatus(st domain.SaleStatus) posledgerv1.SaleStatus {
	switch st {
	case domain.SaleStatusCompleted:
		return posledgerv1.SaleStatus_SALE_STATUS_COMPLETED
	case domain.SaleStatusRefunded:
		return posledgerv1.SaleStatus_SALE_STATUS_REFUNDED
	case domain.SaleStatusVoided:
		return posledgerv1.SaleStatus_SALE_STATUS_VOIDED
	default:
		return posledgerv1.SaleStatus_SALE_STATUS_UNSPECIFIED
	}
}

func fromProtoStatus(st posledgerv1.SaleStatus) (domain.SaleStatus, error) {
	switch st {
	case posledgerv1.SaleStatus_SALE_STATUS_COMPLETED:
		return domain.SaleStatusCompleted, nil
	case posledgerv1.SaleStatus_SALE_STATUS_REFUNDED:
		return domain.SaleStatusRefunded, nil
	case posledgerv1.SaleStatus_SALE_STATUS_VOIDED:
		return domain.SaleStatusVoided, nil
	default:
		return "", fmt.Errorf("unknown sale status %s", st)
	}
}

// fromUnixMillis: ноль означает "граница не задана".
func fromUnixMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
