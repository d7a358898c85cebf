package domain

import (
	"strings"
	"time"
)

// Product: товар каталога. Остаток никогда не бывает отрицательным.
type Product struct {
	ID                 int64
	SKU                string
	Name               string
	Category           string
	UnitPriceCents     int64
	TaxRateBasisPoints int64
	StockQuantity      int64
	ReorderLevel       int64
	Notes              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsLowStock: порог задан и остаток до него опустился.
func (p Product) IsLowStock() bool {
	return p.ReorderLevel > 0 && p.StockQuantity <= p.ReorderLevel
}

// ProductInput: данные для заведения товара.
type ProductInput struct {
	SKU                string
	Name               string
	Category           string
	UnitPriceCents     int64
	TaxRateBasisPoints int64
	StockQuantity      int64
	ReorderLevel       int64
	Notes              string
}

// Normalize обрезает пробелы в текстовых полях.
func (in ProductInput) Normalize() ProductInput {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Notes = strings.TrimSpace(in.Notes)
	return in
}

// Validate проверяет обязательные поля и неотрицательность чисел.
func (in ProductInput) Validate() []error {
	var errs []error
	if strings.TrimSpace(in.SKU) == "" {
		errs = append(errs, ErrSKURequired)
	}
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if in.UnitPriceCents < 0 || in.TaxRateBasisPoints < 0 || in.StockQuantity < 0 || in.ReorderLevel < 0 {
		errs = append(errs, ErrNegativeAmount)
	}
	return errs
}

// ProductUpdate: редактируемые поля товара. SKU и остаток не меняются:
// остаток двигает только корректировка с записью в журнал.
type ProductUpdate struct {
	Name               string
	Category           string
	UnitPriceCents     int64
	TaxRateBasisPoints int64
	ReorderLevel       int64
}

// Normalize обрезает пробелы в текстовых полях.
func (u ProductUpdate) Normalize() ProductUpdate {
	u.Name = strings.TrimSpace(u.Name)
	u.Category = strings.TrimSpace(u.Category)
	return u
}

func (u ProductUpdate) Validate() []error {
	var errs []error
	if strings.TrimSpace(u.Name) == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if u.UnitPriceCents < 0 || u.TaxRateBasisPoints < 0 || u.ReorderLevel < 0 {
		errs = append(errs, ErrNegativeAmount)
	}
	return errs
}

// Apply возвращает товар с новыми значениями редактируемых полей.
func (u ProductUpdate) Apply(p Product, at time.Time) Product {
	p.Name = u.Name
	p.Category = u.Category
	p.UnitPriceCents = u.UnitPriceCents
	p.TaxRateBasisPoints = u.TaxRateBasisPoints
	p.ReorderLevel = u.ReorderLevel
	p.UpdatedAt = at
	return p
}
