package grpcsvc

import (
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
)

// errorDomain: значение ErrorInfo.Domain в деталях статуса.
const errorDomain = "posledger"

// CodeFor переводит категорию ошибки в gRPC код.
func CodeFor(kind domain.ErrorKind) codes.Code {
	switch kind {
	case domain.KindValidation:
		return codes.InvalidArgument
	case domain.KindDuplicateIdentifier:
		return codes.AlreadyExists
	case domain.KindNotFound:
		return codes.NotFound
	case domain.KindInsufficientStock:
		return codes.ResourceExhausted
	case domain.KindInvalidStateTransition:
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}

// StatusError строит статус с категорией в ErrorInfo.Reason, чтобы клиент мог её восстановить.
func StatusError(kind domain.ErrorKind, message string) error {
	if kind == "" {
		kind = domain.KindInternal
	}
	st := status.New(CodeFor(kind), message)
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{Reason: string(kind), Domain: errorDomain})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

// KindFromError восстанавливает категорию ошибки из gRPC статуса.
func KindFromError(err error) domain.ErrorKind {
	if err == nil {
		return ""
	}
	st, ok := status.FromError(err)
	if !ok {
		return domain.KindInternal
	}
	for _, detail := range st.Details() {
		info, ok := detail.(*errdetails.ErrorInfo)
		if ok && info.GetDomain() == errorDomain {
			return domain.ErrorKind(info.GetReason())
		}
	}
	return kindForCode(st.Code())
}

func kindForCode(code codes.Code) domain.ErrorKind {
	switch code {
	case codes.InvalidArgument:
		return domain.KindValidation
	case codes.AlreadyExists:
		return domain.KindDuplicateIdentifier
	case codes.NotFound:
		return domain.KindNotFound
	case codes.ResourceExhausted:
		return domain.KindInsufficientStock
	case codes.FailedPrecondition:
		return domain.KindInvalidStateTransition
	default:
		return domain.KindInternal
	}
}

var errIdempotencyInFlight = errors.New("request with the same idempotency key is already processing")
