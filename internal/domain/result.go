package domain

import (
	"encoding/json"
	"errors"
)

var errEmptyFailure = errors.New("failure without error")

// InternalErrorMessage заменяет текст внутренних ошибок в JSON: подробности остаются в логах.
const InternalErrorMessage = "internal error"

// Result: либо значение, либо ошибка с категорией. Нулевое значение не является успехом.
type Result[T any] struct {
	value T
	err   error
	kind  ErrorKind
	ok    bool
}

// Ok оборачивает успешное значение.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Fail оборачивает ошибку. nil трактуется как внутренняя ошибка.
func Fail[T any](err error) Result[T] {
	if err == nil {
		return Result[T]{err: errEmptyFailure, kind: KindInternal}
	}
	return Result[T]{err: err, kind: KindOf(err)}
}

// ResultOf строит Result из привычной пары (значение, ошибка).
func ResultOf[T any](v T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}
	return Ok(v)
}

func (r Result[T]) IsOk() bool { return r.ok }

// Value возвращает значение и признак успеха.
func (r Result[T]) Value() (T, bool) { return r.value, r.ok }

func (r Result[T]) Err() error { return r.err }

func (r Result[T]) Kind() ErrorKind { return r.kind }

type resultError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

type resultJSON[T any] struct {
	OK    bool         `json:"ok"`
	Data  *T           `json:"data,omitempty"`
	Error *resultError `json:"error,omitempty"`
}

// MarshalJSON отдаёт {"ok":true,"data":...} либо {"ok":false,"error":{...}}.
// Для KindInternal вместо текста ошибки пишется InternalErrorMessage.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.ok {
		v := r.value
		return json.Marshal(resultJSON[T]{OK: true, Data: &v})
	}
	return json.Marshal(resultJSON[T]{Error: &resultError{Kind: r.kind, Message: r.publicMessage()}})
}

func (r Result[T]) publicMessage() string {
	if r.err == nil || r.kind == KindInternal {
		return InternalErrorMessage
	}
	return r.err.Error()
}
