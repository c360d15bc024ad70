package ports

import (
	"context"
	"time"
)

// SessionStore tracks issued tokens so that logout and expiry revoke them server-side.
type SessionStore interface {
	Save(ctx context.Context, userID int64, tokenID string, expiresAt time.Time) error
	Active(ctx context.Context, tokenID string) (bool, error)
	Delete(ctx context.Context, userID int64) error
}

// NoopSessionStore trusts token expiry alone.
var NoopSessionStore SessionStore = noopSessionStore{}

type noopSessionStore struct{}

func (noopSessionStore) Save(context.Context, int64, string, time.Time) error { return nil }
func (noopSessionStore) Active(context.Context, string) (bool, error)         { return true, nil }
func (noopSessionStore) Delete(context.Context, int64) error                  { return nil }
