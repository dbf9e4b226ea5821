package ports

import (
	"context"
	"time"
)

// SessionStore maps opaque login tokens to user ids.
type SessionStore interface {
	Create(ctx context.Context, token string, userID int64, ttl time.Duration) error
	Lookup(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
}

// JobSubmitter hands work to the background pool without blocking.
type JobSubmitter interface {
	SubmitAnalysis(url, path string)
}
