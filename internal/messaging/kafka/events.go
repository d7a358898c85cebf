package kafka

import (
	"encoding/json"
	"time"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
)

// Topics для Kafka
const (
	TopicSaleEvents      = "pos.sale.events"
	TopicDeadLetterQueue = "pos.dlq"
)

// Kafka headers
const (
	HeaderEventType     = "x-event-type"
	HeaderAggregateType = "x-aggregate-type"
	HeaderOutboxID      = "x-outbox-id"
)

// Envelope: формат сообщения в топике: метаданные outbox плюс исходный payload.
type Envelope struct {
	ID            string          `json:"id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     string          `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
	PublishedAt   time.Time       `json:"published_at"`
}

// NewEnvelope упаковывает outbox-сообщение. Пустой payload становится `null`.
func NewEnvelope(event domain.OutboxMessage, publishedAt time.Time) Envelope {
	payload := json.RawMessage(event.Payload)
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	return Envelope{
		ID:            event.ID,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		EventType:     event.EventType,
		Payload:       payload,
		OccurredAt:    event.CreatedAt.UTC(),
		PublishedAt:   publishedAt.UTC(),
	}
}

// PartitionKey: события одной продажи попадают в одну партицию.
func PartitionKey(event domain.OutboxMessage) string {
	if event.AggregateID == "" {
		return event.ID
	}
	return event.AggregateType + ":" + event.AggregateID
}
