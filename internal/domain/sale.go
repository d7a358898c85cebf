package domain

import (
	"fmt"
	"time"
)

// SaleStatus описывает жизненный цикл продажи.
type SaleStatus string

const (
	// SaleStatusCompleted: продажа проведена, остатки списаны.
	SaleStatusCompleted SaleStatus = "COMPLETED"
	// SaleStatusRefunded: продажа возвращена, остатки восстановлены. Терминальный статус.
	SaleStatusRefunded SaleStatus = "REFUNDED"
	// SaleStatusVoided: продажа аннулирована. Терминальный статус.
	SaleStatusVoided SaleStatus = "VOIDED"
)

// Valid проверяет, что статус относится к поддерживаемым значениям.
func (s SaleStatus) Valid() bool {
	switch s {
	case SaleStatusCompleted, SaleStatusRefunded, SaleStatusVoided:
		return true
	default:
		return false
	}
}

// Terminal сообщает, что из статуса нет переходов.
func (s SaleStatus) Terminal() bool {
	return s == SaleStatusRefunded || s == SaleStatusVoided
}

// CanTransitionTo разрешает только Completed -> Refunded | Voided.
func (s SaleStatus) CanTransitionTo(next SaleStatus) bool {
	return s == SaleStatusCompleted && next.Terminal()
}

// PaymentMethod: способ оплаты из фиксированного набора.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "Cash"
	PaymentMethodCard   PaymentMethod = "Card"
	PaymentMethodWallet PaymentMethod = "Wallet/UPI"
)

// PaymentMethods возвращает поддерживаемые способы оплаты в порядке отображения.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentMethodCash, PaymentMethodCard, PaymentMethodWallet}
}

// Valid проверяет принадлежность к фиксированному набору.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodWallet:
		return true
	default:
		return false
	}
}

// ParsePaymentMethod принимает точное название способа оплаты.
func ParsePaymentMethod(text string) (PaymentMethod, error) {
	m := PaymentMethod(text)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrPaymentMethodInvalid, text)
	}
	return m, nil
}

// SaleLine: снимок условий товара на момент продажи. После создания не меняется.
type SaleLine struct {
	ProductID          int64
	ProductName        string
	SKU                string
	Quantity           int64
	UnitPriceCents     int64
	TaxRateBasisPoints int64
	SubtotalCents      int64
	DiscountCents      int64
	TaxCents           int64
	LineTotalCents     int64
}

// Sale агрегирует проведённую продажу. Меняется только статус (и заметка при аннулировании).
type Sale struct {
	ID            int64
	SaleNumber    string
	Timestamp     time.Time
	CustomerName  string
	SubtotalCents int64
	// DiscountCents: применённая скидка на весь чек.
	DiscountCents int64
	TaxCents      int64
	TotalCents    int64
	PaymentMethod PaymentMethod
	Status        SaleStatus
	Note          string
	Lines         []SaleLine
}

// ValidateInvariants проверяет денежные инварианты продажи и возвращает список замечаний.
func (s *Sale) ValidateInvariants() []error {
	var errs []error

	if s.SaleNumber == "" {
		errs = append(errs, ErrSaleNumberRequired)
	}
	if len(s.Lines) == 0 {
		errs = append(errs, ErrLinesRequired)
	}
	if !s.PaymentMethod.Valid() {
		errs = append(errs, ErrPaymentMethodInvalid)
	}
	if !s.Status.Valid() {
		errs = append(errs, fmt.Errorf("unknown sale status %q", s.Status))
	}

	var subtotal, tax int64
	for i, line := range s.Lines {
		if line.Quantity <= 0 {
			errs = append(errs, fmt.Errorf("line %d: quantity must be greater than zero", i))
		}
		lineSubtotal := line.UnitPriceCents * line.Quantity
		if line.SubtotalCents != lineSubtotal {
			errs = append(errs, fmt.Errorf("line %d: subtotal %d != %d", i, line.SubtotalCents, lineSubtotal))
		}
		if line.DiscountCents < 0 || line.DiscountCents > lineSubtotal {
			errs = append(errs, fmt.Errorf("line %d: discount %d out of range", i, line.DiscountCents))
		}
		subtotal += lineSubtotal
		tax += line.TaxCents
	}

	if s.SubtotalCents != subtotal {
		errs = append(errs, fmt.Errorf("subtotal %d does not match lines sum %d", s.SubtotalCents, subtotal))
	}
	if s.TaxCents != tax {
		errs = append(errs, fmt.Errorf("tax %d does not match lines sum %d", s.TaxCents, tax))
	}
	if s.DiscountCents < 0 || s.DiscountCents > s.SubtotalCents {
		errs = append(errs, fmt.Errorf("order discount %d out of range", s.DiscountCents))
	}
	if s.TotalCents != s.SubtotalCents-s.DiscountCents+s.TaxCents {
		errs = append(errs, fmt.Errorf("total %d does not match subtotal - discount + tax", s.TotalCents))
	}

	return errs
}

// SaleNumberFor формирует отображаемый номер INV-YYYYMMDD-NNNNNN из даты продажи (UTC)
// и её ID. Уникальность номера следует из уникальности ID.
func SaleNumberFor(t time.Time, id int64) string {
	return fmt.Sprintf("INV-%s-%06d", t.UTC().Format("20060102"), id)
}
