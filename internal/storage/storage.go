package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: key not found")

// Store is a per-namespace string key-value store. A namespace holds the data
// of one device, the way localStorage holds the data of one browser origin.
type Store interface {
	Get(ctx context.Context, namespace, key string) (string, error)
	Set(ctx context.Context, namespace, key, value string) error
	Clear(ctx context.Context, namespace string) error
	Ping(ctx context.Context) error
}
