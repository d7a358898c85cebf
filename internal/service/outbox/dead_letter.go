package outbox

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
)

// DeadLetter: тело сообщения в pos.dlq: исходное событие плюс причина отказа.
// dlq-reprocess читает эту же структуру при повторной отправке.
type DeadLetter struct {
	OutboxID       string          `json:"outbox_id"`
	AggregateType  string          `json:"aggregate_type"`
	AggregateID    string          `json:"aggregate_id"`
	EventType      string          `json:"event_type"`
	Payload        json.RawMessage `json:"payload"`
	PublishError   string          `json:"publish_error"`
	DLQPublishedAt string          `json:"dlq_published_at"`
}

// NewDeadLetter упаковывает событие, которое не удалось опубликовать.
func NewDeadLetter(event domain.OutboxMessage, publishErr error, at time.Time) DeadLetter {
	letter := DeadLetter{
		OutboxID:       event.ID,
		AggregateType:  event.AggregateType,
		AggregateID:    event.AggregateID,
		EventType:      event.EventType,
		Payload:        json.RawMessage(event.Payload),
		DLQPublishedAt: at.UTC().Format(time.RFC3339Nano),
	}
	if publishErr != nil {
		letter.PublishError = publishErr.Error()
	}
	if !json.Valid(letter.Payload) {
		letter.Payload = nil
	}
	return letter
}

// Message строит outbox-сообщение для публикации в DLQ.
func (d DeadLetter) Message(createdAt time.Time) (domain.OutboxMessage, error) {
	body, err := json.Marshal(d)
	if err != nil {
		return domain.OutboxMessage{}, fmt.Errorf("marshal dead letter: %w", err)
	}
	return domain.OutboxMessage{
		ID:            d.OutboxID,
		AggregateType: d.AggregateType,
		AggregateID:   d.AggregateID,
		EventType:     d.EventType,
		Payload:       body,
		CreatedAt:     createdAt,
	}, nil
}
