package domain

import (
	"fmt"
	"strings"
)

// CartLine: позиция черновика корзины. Цена и ставка берутся из снимка, который видел кассир,
// при проведении продажи они пересчитываются по текущему товару.
type CartLine struct {
	ProductID          int64
	UnitPriceCents     int64
	TaxRateBasisPoints int64
	Quantity           int64
	LineDiscountCents  int64
}

// Draft: черновик продажи, как его собрал POS.
type Draft struct {
	SaleNumber        string
	CustomerName      string
	PaymentMethod     string
	OrderDiscountText string
	Note              string
	Lines             []CartLine
}

// RequestLine: позиция запроса на создание продажи.
type RequestLine struct {
	ProductID     int64
	Quantity      int64
	DiscountCents int64
}

// CreateSaleRequest: проверенный неизменяемый запрос на создание продажи.
type CreateSaleRequest struct {
	saleNumber         string
	customerName       string
	paymentMethod      PaymentMethod
	orderDiscountCents int64
	note               string
	lines              []RequestLine
}

func (r CreateSaleRequest) SaleNumber() string { return r.saleNumber }
func (r CreateSaleRequest) CustomerName() string { return r.customerName }
func (r CreateSaleRequest) PaymentMethod() PaymentMethod { return r.paymentMethod }
func (r CreateSaleRequest) OrderDiscountCents() int64 { return r.orderDiscountCents }
func (r CreateSaleRequest) Note() string { return r.note }

// Lines возвращает копию позиций.
func (r CreateSaleRequest) Lines() []RequestLine {
	out := make([]RequestLine, len(r.lines))
	copy(out, r.lines)
	return out
}

// BuildCreateSaleRequest собирает запрос из черновика: отбрасывает позиции с количеством <= 0,
// заново ограничивает скидки и проверяет способ оплаты. Пустой номер остаётся пустым:
// хранилище выведет его из ID продажи.
func BuildCreateSaleRequest(draft Draft) (CreateSaleRequest, error) {
	method, err := ParsePaymentMethod(strings.TrimSpace(draft.PaymentMethod))
	if err != nil {
		return CreateSaleRequest{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	lines := make([]RequestLine, 0, len(draft.Lines))
	totalsLines := make([]TotalsLine, 0, len(draft.Lines))
	for i, line := range draft.Lines {
		if line.Quantity <= 0 {
			continue
		}
		if line.ProductID <= 0 {
			return CreateSaleRequest{}, fmt.Errorf("%w: line %d: product id is required", ErrValidation, i)
		}
		amounts := ComputeLine(line.UnitPriceCents, line.Quantity, line.LineDiscountCents, line.TaxRateBasisPoints)
		lines = append(lines, RequestLine{
			ProductID:     line.ProductID,
			Quantity:      line.Quantity,
			DiscountCents: amounts.DiscountCents,
		})
		totalsLines = append(totalsLines, TotalsLine{
			UnitPriceCents:     line.UnitPriceCents,
			Quantity:           line.Quantity,
			LineDiscountCents:  amounts.DiscountCents,
			TaxRateBasisPoints: line.TaxRateBasisPoints,
		})
	}
	if len(lines) == 0 {
		return CreateSaleRequest{}, fmt.Errorf("%w: %w", ErrValidation, ErrLinesRequired)
	}

	totals := CalculateTotals(totalsLines, ParseMoney(draft.OrderDiscountText))

	return CreateSaleRequest{
		saleNumber:         strings.TrimSpace(draft.SaleNumber),
		customerName:       strings.TrimSpace(draft.CustomerName),
		paymentMethod:      method,
		orderDiscountCents: totals.OrderDiscountCents,
		note:               strings.TrimSpace(draft.Note),
		lines:              lines,
	}, nil
}
