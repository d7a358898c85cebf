package kafka

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"
)

var errNoBrokers = errors.New("kafka brokers are not configured")

// Record: одно сообщение для SyncProducer.
type Record struct {
	Topic   string
	Key     string
	Value   []byte
	Headers map[string]string
}

// Delivery: куда брокер записал сообщение.
type Delivery struct {
	Topic     string
	Partition int32
	Offset    int64
}

// Producer синхронно пишет события ledger в Kafka.
type Producer struct {
	sync   sarama.SyncProducer
	logger *log.Entry
	now    func() time.Time
}

// newSaramaConfig: acks=all и idempotent producer, чтобы повторы outbox не плодили дубли в партиции.
func newSaramaConfig(clientID string) *sarama.Config {
	cfg := sarama.NewConfig()
	if clientID != "" {
		cfg.ClientID = clientID
	}
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Return.Successes = true
	cfg.Producer.Compression = sarama.CompressionSnappy
	cfg.Net.MaxOpenRequests = 1
	return cfg
}

// NewProducer подключается к brokers.
func NewProducer(brokers []string, clientID string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, errNoBrokers
	}
	sync, err := sarama.NewSyncProducer(brokers, newSaramaConfig(clientID))
	if err != nil {
		return nil, fmt.Errorf("connect kafka producer to %v: %w", brokers, err)
	}
	return NewProducerFromSync(sync, nil), nil
}

// NewProducerFromSync оборачивает готовый SyncProducer, например из sarama/mocks.
func NewProducerFromSync(sync sarama.SyncProducer, logger *log.Entry) *Producer {
	if logger == nil {
		logger = log.WithField("component", "kafka-producer")
	}
	return &Producer{sync: sync, logger: logger, now: time.Now}
}

// Send отправляет запись и ждёт подтверждения всех реплик.
func (p *Producer) Send(rec Record) (Delivery, error) {
	if p == nil || p.sync == nil {
		return Delivery{}, errors.New("kafka producer is closed")
	}

	msg := &sarama.ProducerMessage{
		Topic:     rec.Topic,
		Key:       sarama.StringEncoder(rec.Key),
		Value:     sarama.ByteEncoder(rec.Value),
		Headers:   recordHeaders(rec.Headers),
		Timestamp: p.now(),
	}
	fields := log.Fields{"topic": rec.Topic, "key": rec.Key}

	partition, offset, err := p.sync.SendMessage(msg)
	if err != nil {
		p.logger.WithError(err).WithFields(fields).Warn("kafka send failed")
		return Delivery{}, fmt.Errorf("send to %s: %w", rec.Topic, err)
	}

	fields["partition"], fields["offset"] = partition, offset
	p.logger.WithFields(fields).Debug("kafka record acknowledged")
	return Delivery{Topic: rec.Topic, Partition: partition, Offset: offset}, nil
}

// PublishEvent кодирует event в JSON и отправляет через Send.
func (p *Producer) PublishEvent(topic, key string, event any, headers map[string]string) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %T for %s: %w", event, topic, err)
	}
	_, err = p.Send(Record{Topic: topic, Key: key, Value: value, Headers: headers})
	return err
}

func (p *Producer) Close() error {
	if p == nil || p.sync == nil {
		return nil
	}
	if err := p.sync.Close(); err != nil {
		return fmt.Errorf("close kafka producer: %w", err)
	}
	return nil
}

// recordHeaders сортирует заголовки по имени, чтобы порядок не зависел от map.
func recordHeaders(headers map[string]string) []sarama.RecordHeader {
	if len(headers) == 0 {
		return nil
	}
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]sarama.RecordHeader, 0, len(names))
	for _, name := range names {
		out = append(out, sarama.RecordHeader{Key: []byte(name), Value: []byte(headers[name])})
	}
	return out
}
