package domain

import (
	"strings"
	"time"
)

// Причины движения остатка, которые пишет сам ledger.
const (
	MovementReasonSale   = "Sale"
	MovementReasonRefund = "Refund"
	MovementReasonVoid   = "Void"
)

// StockMovement: запись журнала движения остатка.
type StockMovement struct {
	ID         int64
	ProductID  int64
	Delta      int64
	Reason     string
	Ref        string
	OccurredAt time.Time
}

// StockAdjustment: ручная корректировка остатка в обход жизненного цикла продажи.
type StockAdjustment struct {
	ProductID int64
	Delta     int64
	Reason    string
	Ref       string
}

// Validate возвращает первую найденную ошибку.
func (a StockAdjustment) Validate() error {
	if a.Delta == 0 {
		return ErrAdjustmentDeltaZero
	}
	if strings.TrimSpace(a.Reason) == "" {
		return ErrAdjustmentReasonRequired
	}
	return nil
}
