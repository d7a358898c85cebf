package domain

import (
	"strings"
	"time"
)

// DefaultIdempotencyTTL: срок жизни ключа, если вызывающий не указал свой.
const DefaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStatus: стадия обработки мутирующего запроса к ledger.
type IdempotencyStatus string

const (
	IdempotencyStatusProcessing IdempotencyStatus = "processing"
	IdempotencyStatusDone       IdempotencyStatus = "done"
	IdempotencyStatusFailed     IdempotencyStatus = "failed"
)

// Valid сообщает, известен ли статус хранилищам.
func (s IdempotencyStatus) Valid() bool {
	return s == IdempotencyStatusProcessing || s.Terminal()
}

// Terminal истинно, когда ответ сохранён и запрос можно воспроизвести.
func (s IdempotencyStatus) Terminal() bool {
	return s == IdempotencyStatusDone || s == IdempotencyStatusFailed
}

// IdempotencyRecord связывает Idempotency-Key продажи, возврата или
// корректировки остатка с хешем запроса и сохранённым ответом.
type IdempotencyRecord struct {
	Key          string
	RequestHash  string
	ResponseBody []byte
	HTTPStatus   int
	Status       IdempotencyStatus
	TTLAt        time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewProcessingRecord нормализует ключ и хеш и открывает запись в статусе
// processing. Нулевой ttlAt заменяется на now+DefaultIdempotencyTTL.
func NewProcessingRecord(key, requestHash string, ttlAt, now time.Time) (IdempotencyRecord, error) {
	key = strings.TrimSpace(key)
	requestHash = strings.TrimSpace(requestHash)
	switch {
	case key == "":
		return IdempotencyRecord{}, ErrIdempotencyKeyRequired
	case requestHash == "":
		return IdempotencyRecord{}, ErrIdempotencyRequestHashRequired
	}
	if ttlAt.IsZero() {
		ttlAt = now.Add(DefaultIdempotencyTTL)
	}
	return IdempotencyRecord{
		Key:         key,
		RequestHash: requestHash,
		Status:      IdempotencyStatusProcessing,
		TTLAt:       ttlAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Expired истинно, когда TTL наступил не позже now.
func (r IdempotencyRecord) Expired(now time.Time) bool {
	return !r.TTLAt.After(now)
}

// Conflicts сообщает, что ключ переиспользован с другим телом запроса.
func (r IdempotencyRecord) Conflicts(requestHash string) bool {
	return r.RequestHash != strings.TrimSpace(requestHash)
}

// ReplayStatus возвращает HTTP-статус для повтора; 200, если он не сохранён.
func (r IdempotencyRecord) ReplayStatus() int {
	if r.HTTPStatus == 0 {
		return 200
	}
	return r.HTTPStatus
}
