package storage

import (
	"context"
	"errors"
)

// Observer records the outcome of one logical storage operation.
type Observer interface {
	ObserveStore(op string, fn func() error) error
}

// Instrumented reports every operation of the wrapped store to an Observer.
type Instrumented struct {
	next Store
	obs  Observer
}

func NewInstrumented(next Store, obs Observer) *Instrumented {
	return &Instrumented{next: next, obs: obs}
}

func (s *Instrumented) Get(ctx context.Context, namespace, key string) (string, error) {
	var val string
	var notFound bool

	err := s.obs.ObserveStore("get", func() error {
		v, err := s.next.Get(ctx, namespace, key)
		if errors.Is(err, ErrNotFound) {
			// a miss is a normal outcome, not a storage error
			notFound = true
			return nil
		}
		val = v
		return err
	})

	if notFound {
		return "", ErrNotFound
	}

	return val, err
}

func (s *Instrumented) Set(ctx context.Context, namespace, key, value string) error {
	return s.obs.ObserveStore("set", func() error {
		return s.next.Set(ctx, namespace, key, value)
	})
}

func (s *Instrumented) Clear(ctx context.Context, namespace string) error {
	return s.obs.ObserveStore("clear", func() error {
		return s.next.Clear(ctx, namespace)
	})
}

func (s *Instrumented) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}
