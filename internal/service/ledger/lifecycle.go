package ledger

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
	"github.com/vladislavdragonenkov/posledger/internal/metrics"
)

// transition описывает переход продажи из Completed в терминальный статус.
type transition struct {
	operation string
	target    domain.SaleStatus
	event     string
	reason    string
	restock   bool
	// note == nil сохраняет текущую заметку продажи.
	note *string
}

// RefundSale возвращает продажу и кредитует остатки по всем позициям.
func (l *Ledger) RefundSale(ctx context.Context, id int64) error {
	err := l.transition(ctx, id, transition{
		operation: metrics.OperationRefund,
		target:    domain.SaleStatusRefunded,
		event:     domain.EventSaleRefunded,
		reason:    domain.MovementReasonRefund,
		restock:   true,
	})
	if err == nil {
		l.metrics.RecordSaleRefunded()
	}
	return err
}

// VoidSale аннулирует продажу и сохраняет непустую заметку. Остатки возвращаются
// только при политике VoidRestock.
func (l *Ledger) VoidSale(ctx context.Context, id int64, note string) error {
	tr := transition{
		operation: metrics.OperationVoid,
		target:    domain.SaleStatusVoided,
		event:     domain.EventSaleVoided,
		reason:    domain.MovementReasonVoid,
		restock:   l.voidPolicy == VoidRestock,
	}
	// Пустая заметка не затирает заметку, сохраненную при создании.
	if note = strings.TrimSpace(note); note != "" {
		tr.note = &note
	}
	err := l.transition(ctx, id, tr)
	if err == nil {
		l.metrics.RecordSaleVoided()
	}
	return err
}

func (l *Ledger) transition(ctx context.Context, id int64, tr transition) error {
	started := l.now()
	fields := log.Fields{"sale_id": id, "target": tr.target}

	err := l.store.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		sale, err := tx.LookupSale(ctx, id)
		if err != nil {
			return err
		}
		if !sale.Status.CanTransitionTo(tr.target) {
			return fmt.Errorf("%w: sale %s is %s", domain.ErrInvalidStateTransition, sale.SaleNumber, sale.Status)
		}

		if tr.restock {
			for _, line := range sale.Lines {
				if _, err := tx.CreditStock(ctx, line.ProductID, line.Quantity); err != nil {
					return err
				}
				if err := tx.AppendMovement(ctx, domain.StockMovement{
					ProductID:  line.ProductID,
					Delta:      line.Quantity,
					Reason:     tr.reason,
					Ref:        sale.SaleNumber,
					OccurredAt: started,
				}); err != nil {
					return fmt.Errorf("append movement: %w", err)
				}
			}
		}

		note := sale.Note
		if tr.note != nil {
			note = *tr.note
		}
		if err := tx.UpdateSaleStatus(ctx, id, tr.target, note); err != nil {
			return err
		}

		sale.Status = tr.target
		sale.Note = note
		return enqueueSaleEvent(ctx, tx, tr.event, sale)
	})
	if err != nil {
		err = fmt.Errorf("%s sale %d: %w", tr.operation, id, err)
	}
	fields["restock"] = tr.restock
	l.finish(tr.operation, started, err, fields)
	if err != nil {
		return err
	}

	if tr.restock {
		l.monitor.Refresh(ctx, tr.operation)
	}
	return nil
}
