package domain

import "errors"

var (
	// ErrValidation: запрос не прошёл проверку (пустая продажа, неверный способ оплаты и т.п.).
	ErrValidation = errors.New("validation failed")
	// Ошибка продажи без единой позиции после фильтрации.
	ErrLinesRequired = errors.New("sale must contain at least one line with positive quantity")
	// Ошибка неизвестного способа оплаты.
	ErrPaymentMethodInvalid = errors.New("payment method is not supported")
	// Ошибка пустого номера продажи.
	ErrSaleNumberRequired = errors.New("sale number is required")
	// Ошибка отсутствующего SKU товара.
	ErrSKURequired = errors.New("product sku is required")
	// Ошибка отсутствующего названия товара.
	ErrProductNameRequired = errors.New("product name is required")
	// Ошибка отрицательной цены, ставки налога, остатка или порога.
	ErrNegativeAmount = errors.New("amount must be non-negative")
	// Ошибка нулевой корректировки остатка.
	ErrAdjustmentDeltaZero = errors.New("stock adjustment delta must not be zero")
	// Ошибка корректировки без причины.
	ErrAdjustmentReasonRequired = errors.New("stock adjustment reason is required")

	// ErrDuplicateSaleNumber возвращается хранилищем при повторе номера продажи.
	ErrDuplicateSaleNumber = errors.New("sale number already exists")
	// ErrDuplicateSKU возвращается хранилищем при повторе SKU.
	ErrDuplicateSKU = errors.New("product sku already exists")
	// ErrInsufficientStock: остатка товара не хватает для списания.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrSaleNotFound возвращается, если продажа не найдена.
	ErrSaleNotFound = errors.New("sale not found")
	// ErrProductNotFound возвращается, если товар не найден.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidStateTransition: переход статуса продажи запрещён.
	ErrInvalidStateTransition = errors.New("invalid sale state transition")

	// ErrOutboxPublish: ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
	// ErrOutboxMessageNotFound: сообщение outbox не найдено.
	ErrOutboxMessageNotFound = errors.New("outbox message not found")

	// ErrIdempotencyKeyRequired: пустой ключ идемпотентности.
	ErrIdempotencyKeyRequired = errors.New("idempotency key is required")
	// ErrIdempotencyRequestHashRequired: пустой хеш запроса.
	ErrIdempotencyRequestHashRequired = errors.New("idempotency request hash is required")
	// ErrIdempotencyKeyAlreadyExists: ключ уже зарегистрирован.
	ErrIdempotencyKeyAlreadyExists = errors.New("idempotency key already exists")
	// ErrIdempotencyKeyNotFound: ключ не найден.
	ErrIdempotencyKeyNotFound = errors.New("idempotency key not found")
	// ErrIdempotencyHashMismatch: ключ переиспользован с другим телом запроса.
	ErrIdempotencyHashMismatch = errors.New("idempotency key reused with different request")
)

// ErrorKind: категория ошибки, которую видит вызывающая сторона.
type ErrorKind string

const (
	KindValidation             ErrorKind = "ValidationError"
	KindDuplicateIdentifier    ErrorKind = "DuplicateIdentifier"
	KindInsufficientStock      ErrorKind = "InsufficientStock"
	KindNotFound               ErrorKind = "NotFound"
	KindInvalidStateTransition ErrorKind = "InvalidStateTransition"
	KindInternal               ErrorKind = "Internal"
)

// KindOf классифицирует ошибку по цепочке обёрток. nil даёт пустую категорию.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrLinesRequired),
		errors.Is(err, ErrPaymentMethodInvalid),
		errors.Is(err, ErrSaleNumberRequired),
		errors.Is(err, ErrSKURequired),
		errors.Is(err, ErrProductNameRequired),
		errors.Is(err, ErrNegativeAmount),
		errors.Is(err, ErrAdjustmentDeltaZero),
		errors.Is(err, ErrAdjustmentReasonRequired),
		errors.Is(err, ErrIdempotencyKeyRequired),
		errors.Is(err, ErrIdempotencyRequestHashRequired),
		errors.Is(err, ErrIdempotencyHashMismatch):
		return KindValidation
	case errors.Is(err, ErrDuplicateSaleNumber),
		errors.Is(err, ErrDuplicateSKU),
		errors.Is(err, ErrIdempotencyKeyAlreadyExists):
		return KindDuplicateIdentifier
	case errors.Is(err, ErrInsufficientStock):
		return KindInsufficientStock
	case errors.Is(err, ErrSaleNotFound), errors.Is(err, ErrProductNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidStateTransition):
		return KindInvalidStateTransition
	default:
		return KindInternal
	}
}
