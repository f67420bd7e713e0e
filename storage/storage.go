package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key holds no value.
	ErrNotFound = errors.New("storage: key not found")
	// ErrUnavailable wraps failures to reach the storage medium.
	ErrUnavailable = errors.New("storage: unavailable")
)

// Storage is a minimal byte-oriented key/value store.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
