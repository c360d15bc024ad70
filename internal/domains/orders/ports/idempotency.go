package ports

import (
	"context"
	"time"

	sharederrors "github.com/Apurer/go-gin-delivery-api/internal/shared/errors"
)

// ErrIdempotencyConflict is returned when a key is reused with a different payload.
var ErrIdempotencyConflict = sharederrors.New(sharederrors.KindConflict, "idempotency key reused with a different request")

// IdempotencyRecord binds a client key to the order it produced.
type IdempotencyRecord struct {
	Key         string
	UserID      int64
	RequestHash string
	OrderID     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IdempotencyStore persists placement keys. Get returns nil, nil when the key is unknown.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	Save(ctx context.Context, record IdempotencyRecord) (*IdempotencyRecord, error)
}
