package storage

import (
	"context"

	"github.com/geocoder89/opay/internal/cache"
)

// Cached answers reads from a short-lived local cache filled from the
// wrapped store. It is only coherent within one process.
type Cached struct {
	next  Store
	cache *cache.Cache
}

func NewCached(next Store, c *cache.Cache) *Cached {
	return &Cached{next: next, cache: c}
}

func (s *Cached) Get(ctx context.Context, namespace, key string) (string, error) {
	if v, ok := s.cache.Get(namespace, key); ok {
		return v, nil
	}

	token := s.cache.Token()

	v, err := s.next.Get(ctx, namespace, key)
	if err != nil {
		return "", err
	}

	s.cache.SetIfUnchanged(namespace, key, v, token)
	return v, nil
}

// Set invalidates the cached entry instead of filling it.
func (s *Cached) Set(ctx context.Context, namespace, key, value string) error {
	err := s.next.Set(ctx, namespace, key, value)
	s.cache.Delete(namespace, key)
	return err
}

func (s *Cached) Clear(ctx context.Context, namespace string) error {
	// before and after: a read in flight during the clear must not refill
	s.cache.DropNamespace(namespace)
	err := s.next.Clear(ctx, namespace)
	s.cache.DropNamespace(namespace)
	return err
}

func (s *Cached) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}
