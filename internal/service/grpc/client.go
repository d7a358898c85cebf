package grpcsvc

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// WithIdempotencyKey кладёт ключ идемпотентности в исходящие метаданные
// для вызовов posledgerv1.SaleLedgerClient.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, idempotencyKeyHeader, key)
}
