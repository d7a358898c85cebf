package httpapi

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
)

const (
	// IdempotencyKeyHeader: заголовок с ключом идемпотентности.
	IdempotencyKeyHeader = "Idempotency-Key"
	// ReplayedHeader выставляется на ответах, восстановленных из хранилища ключей.
	ReplayedHeader = "Idempotent-Replayed"
	// RequestIDHeader: сквозной идентификатор запроса.
	RequestIDHeader = "X-Request-ID"

	maxIdempotentBody = 1 << 20
)

// Исходы запросов с ключом идемпотентности для метрик.
const (
	idempotencyOutcomeNew      = "new"
	idempotencyOutcomeReplayed = "replayed"
	idempotencyOutcomeConflict = "conflict"
	idempotencyOutcomeMismatch = "mismatch"
)

var errIdempotencyInFlight = fmt.Errorf("%w: request is still processing", domain.ErrIdempotencyKeyAlreadyExists)

// AccessLog пишет строку лога на каждый запрос и проставляет X-Request-ID.
func AccessLog(logger *log.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		c.Next()

		entry := logger.WithFields(log.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(started).Milliseconds(),
			"client_ip":  c.ClientIP(),
		})
		if last := c.Errors.Last(); last != nil {
			entry = entry.WithField("error", last.Err.Error())
		}
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("http request")
		case status >= http.StatusBadRequest:
			entry.Warn("http request")
		default:
			entry.Info("http request")
		}
	}
}

// recordingWriter копирует тело ответа, чтобы сохранить его под ключом идемпотентности.
type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// idempotent оборачивает мутацию: первый запрос с ключом выполняется и его ответ сохраняется,
// повтор с тем же телом получает сохранённый ответ.
func (h *Handler) idempotent() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if h.idem == nil || key == "" {
			c.Next()
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxIdempotentBody))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				abort(c, http.StatusRequestEntityTooLarge,
					fmt.Errorf("%w: request body exceeds %d bytes", domain.ErrValidation, tooLarge.Limit))
				return
			}
			abort(c, http.StatusBadRequest, fmt.Errorf("%w: read request body: %v", domain.ErrValidation, err))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		ctx := c.Request.Context()
		hash := requestHash(c.Request.Method, c.Request.URL.Path, body)
		record, err := h.idem.CreateProcessing(ctx, key, hash, h.now().Add(h.ttl))
		if err != nil {
			h.replay(c, record, err)
			return
		}
		h.metrics.RecordRequest(idempotencyOutcomeNew)

		writer := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		// ответ уже отдан, сохраняем его даже если клиент отключился
		ctx = context.WithoutCancel(ctx)
		status := writer.Status()
		logger := h.logger.WithField("idempotency_key", key)
		if status >= http.StatusOK && status < http.StatusMultipleChoices {
			if err := h.idem.MarkDone(ctx, key, writer.body.Bytes(), status); err != nil {
				logger.WithError(err).Warn("failed to store idempotent response")
			}
			return
		}
		if err := h.idem.MarkFailed(ctx, key, writer.body.Bytes(), status); err != nil {
			logger.WithError(err).Warn("failed to store idempotent failure")
		}
	}
}

func (h *Handler) replay(c *gin.Context, record domain.IdempotencyRecord, createErr error) {
	switch {
	case errors.Is(createErr, domain.ErrIdempotencyHashMismatch):
		h.metrics.RecordRequest(idempotencyOutcomeMismatch)
		abort(c, http.StatusUnprocessableEntity, createErr)
	case errors.Is(createErr, domain.ErrIdempotencyKeyAlreadyExists):
		if !record.Status.Terminal() {
			h.metrics.RecordRequest(idempotencyOutcomeConflict)
			abort(c, http.StatusConflict, errIdempotencyInFlight)
			return
		}
		h.metrics.RecordRequest(idempotencyOutcomeReplayed)
		c.Header(ReplayedHeader, "true")
		c.Data(record.ReplayStatus(), "application/json; charset=utf-8", record.ResponseBody)
		c.Abort()
	default:
		h.logger.WithError(createErr).Warn("failed to register idempotency key")
		abort(c, StatusFor(domain.KindOf(createErr)), createErr)
	}
}

func abort(c *gin.Context, status int, err error) {
	if domain.KindOf(err) == domain.KindInternal {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, domain.Fail[struct{}](err))
}

// requestHash: SHA-256 от метода, пути и тела запроса.
func requestHash(method, path string, body []byte) string {
	sum := sha256.New()
	sum.Write([]byte(method))
	sum.Write([]byte{0})
	sum.Write([]byte(path))
	sum.Write([]byte{0})
	sum.Write(body)
	return hex.EncodeToString(sum.Sum(nil))
}
