package app

import (
	"testing"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/posledger/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/posledger/internal/service/outbox"
)

func TestInitKafkaProducer_EmptyBrokers(t *testing.T) {
	logger := log.WithField("test", "kafka")

	producer, err := initKafkaProducer(DefaultConfig(), logger)
	if err != nil {
		t.Errorf("expected no error for empty brokers, got %v", err)
	}
	if producer != nil {
		t.Error("expected nil producer for empty brokers")
	}
}

func TestInitKafkaProducer_BlankBrokers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KafkaBrokers = " , "

	producer, err := initKafkaProducer(cfg, log.WithField("test", "kafka"))
	if err != nil || producer != nil {
		t.Errorf("expected kafka to stay disabled, got producer=%v err=%v", producer, err)
	}
}

func TestInitKafkaProducer_UnreachableBrokers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KafkaBrokers = "127.0.0.1:1, 127.0.0.1:2"

	producer, err := initKafkaProducer(cfg, log.WithField("test", "kafka"))
	if err == nil {
		t.Error("expected error for unreachable brokers")
	}
	if producer != nil {
		t.Error("expected nil producer on error")
	}
}

func TestNewOutboxPublishers_WithoutKafka(t *testing.T) {
	publisher, dlq := newOutboxPublishers(nil, log.WithField("test", "kafka"))

	if _, ok := publisher.(*outbox.LogPublisher); !ok {
		t.Errorf("expected log publisher, got %T", publisher)
	}
	if dlq != nil {
		t.Errorf("expected no dlq without kafka, got %T", dlq)
	}
}

func TestNewOutboxPublishers_WithKafka(t *testing.T) {
	producer := kafka.NewProducerFromSync(nil, nil)

	publisher, dlq := newOutboxPublishers(producer, log.WithField("test", "kafka"))

	main, ok := publisher.(*kafka.OutboxTopicPublisher)
	if !ok || main.Topic() != kafka.TopicSaleEvents {
		t.Errorf("expected publisher for %s, got %#v", kafka.TopicSaleEvents, publisher)
	}
	dead, ok := dlq.(*kafka.OutboxTopicPublisher)
	if !ok || dead.Topic() != kafka.TopicDeadLetterQueue {
		t.Errorf("expected dlq publisher for %s, got %#v", kafka.TopicDeadLetterQueue, dlq)
	}
}

func TestCloseKafkaProducer_NilProducer(_ *testing.T) {
	// Не должно паниковать
	closeKafkaProducer(nil, log.WithField("test", "kafka"))
}
