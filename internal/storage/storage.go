package storage

import (
	"context"
	"errors"
	"time"
)

// Store is keyed durable storage for visitor state. Cart and session
// state share one Store under distinct keys; there is no transactional
// coupling between them.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

var ErrNotFound = errors.New("key not found")
