package domain

import (
	"strings"
	"time"
)

const (
	defaultSaleWindow = 30 * 24 * time.Hour
	// DefaultSaleListLimit применяется, когда лимит не задан или вне диапазона.
	DefaultSaleListLimit = 200
	// MaxSaleListLimit: верхняя граница размера страницы.
	MaxSaleListLimit = 500
)

// SaleFilter: критерии выборки истории продаж. Пустые множества означают «все».
type SaleFilter struct {
	From           time.Time
	To             time.Time
	PaymentMethods []PaymentMethod
	Statuses       []SaleStatus
	CustomerQuery  string
	Limit          int
	Offset         int
}

// Normalize подставляет окно по умолчанию (30 дней до To) и ограничивает пагинацию.
func (f SaleFilter) Normalize(now time.Time) SaleFilter {
	if f.To.IsZero() {
		f.To = now
	}
	if f.From.IsZero() || f.From.After(f.To) {
		f.From = f.To.Add(-defaultSaleWindow)
	}
	if f.Limit <= 0 || f.Limit > MaxSaleListLimit {
		f.Limit = DefaultSaleListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	f.CustomerQuery = strings.TrimSpace(f.CustomerQuery)
	return f
}

// Matches проверяет продажу на соответствие фильтру без учёта пагинации.
// Границы окна включительные.
func (f SaleFilter) Matches(s Sale) bool {
	if s.Timestamp.Before(f.From) || s.Timestamp.After(f.To) {
		return false
	}
	if len(f.PaymentMethods) > 0 && !contains(f.PaymentMethods, s.PaymentMethod) {
		return false
	}
	if len(f.Statuses) > 0 && !contains(f.Statuses, s.Status) {
		return false
	}
	if f.CustomerQuery != "" &&
		!strings.Contains(strings.ToLower(s.CustomerName), strings.ToLower(f.CustomerQuery)) {
		return false
	}
	return true
}

func contains[T comparable](set []T, v T) bool {
	for _, item := range set {
		if item == v {
			return true
		}
	}
	return false
}
