package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductUpdateValidate(t *testing.T) {
	upd := ProductUpdate{Name: "  Gel Pen ", Category: " Office ", UnitPriceCents: 1200}.Normalize()
	assert.Equal(t, "Gel Pen", upd.Name)
	assert.Equal(t, "Office", upd.Category)
	assert.Empty(t, upd.Validate())

	errs := ProductUpdate{Name: " ", ReorderLevel: -1}.Validate()
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], ErrProductNameRequired)
	assert.ErrorIs(t, errs[1], ErrNegativeAmount)
}

func TestProductUpdateApplyKeepsStockAndSKU(t *testing.T) {
	at := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	product := Product{ID: 3, SKU: "PEN-01", Name: "Pen", UnitPriceCents: 1000, StockQuantity: 7, ReorderLevel: 2}

	got := ProductUpdate{Name: "Gel Pen", UnitPriceCents: 1250, TaxRateBasisPoints: 500, ReorderLevel: 7}.Apply(product, at)

	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, "PEN-01", got.SKU)
	assert.Equal(t, int64(7), got.StockQuantity)
	assert.Equal(t, int64(1250), got.UnitPriceCents)
	assert.Equal(t, at, got.UpdatedAt)
	assert.True(t, got.IsLowStock())
}
