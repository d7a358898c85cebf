package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// basisPointsPerUnit: знаменатель ставки налога: 500 bp = 5%.
const basisPointsPerUnit = 10000

// TotalsLine: входные данные одной позиции для расчёта итогов.
type TotalsLine struct {
	UnitPriceCents     int64
	Quantity           int64
	LineDiscountCents  int64
	TaxRateBasisPoints int64
}

// Totals: агрегированные итоги корзины или продажи.
type Totals struct {
	SubtotalCents      int64
	OrderDiscountCents int64
	TaxCents           int64
	TotalCents         int64
}

// LineAmounts: разбивка одной позиции после ограничения скидки.
type LineAmounts struct {
	SubtotalCents int64
	DiscountCents int64
	TaxCents      int64
	TotalCents    int64
}

// ComputeLine считает сумму, скидку и налог позиции. Скидка ограничивается [0, subtotal].
func ComputeLine(unitPriceCents, quantity, lineDiscountCents, taxRateBasisPoints int64) LineAmounts {
	subtotal := unitPriceCents * quantity
	discount := clamp(lineDiscountCents, 0, subtotal)
	tax := ComputeTax(subtotal-discount, taxRateBasisPoints)
	return LineAmounts{
		SubtotalCents: subtotal,
		DiscountCents: discount,
		TaxCents:      tax,
		TotalCents:    subtotal - discount + tax,
	}
}

// ComputeTax возвращает налог с базы по ставке в базисных пунктах,
// округляя половину от нуля.
func ComputeTax(baseCents, taxRateBasisPoints int64) int64 {
	if baseCents == 0 || taxRateBasisPoints <= 0 {
		return 0
	}
	return decimal.NewFromInt(baseCents).
		Mul(decimal.NewFromInt(taxRateBasisPoints)).
		Div(decimal.NewFromInt(basisPointsPerUnit)).
		Round(0).
		IntPart()
}

// CalculateTotals считает предварительные итоги. Позиции с количеством <= 0 пропускаются,
// скидки ограничиваются, ошибок нет.
func CalculateTotals(lines []TotalsLine, orderDiscountCents int64) Totals {
	var subtotal, tax int64
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		amounts := ComputeLine(line.UnitPriceCents, line.Quantity, line.LineDiscountCents, line.TaxRateBasisPoints)
		subtotal += amounts.SubtotalCents
		tax += amounts.TaxCents
	}

	discount := clamp(orderDiscountCents, 0, subtotal)
	return Totals{
		SubtotalCents:      subtotal,
		OrderDiscountCents: discount,
		TaxCents:           tax,
		TotalCents:         subtotal - discount + tax,
	}
}

// ParseMoney переводит десятичный текст в центы. Непарсируемый ввод даёт 0.
func ParseMoney(text string) int64 {
	value, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return 0
	}
	return value.Shift(2).Round(0).IntPart()
}

// FormatMoney печатает центы как "10.50".
func FormatMoney(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// ParseTaxRate переводит процент ("7.25") в базисные пункты (725).
func ParseTaxRate(text string) int64 {
	value, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil || value.IsNegative() {
		return 0
	}
	return value.Shift(2).Round(0).IntPart()
}

func clamp(v, lo, hi int64) int64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
