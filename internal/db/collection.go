package db

import (
	"context"
	"errors"
)

// ErrNilCollection is returned when a backend was built without its handle.
var ErrNilCollection = errors.New("mongo collection is nil")

// KV defines the flat key-value operations the local store is built on.
// Values are opaque serialized bytes; a write replaces the previous value.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}
