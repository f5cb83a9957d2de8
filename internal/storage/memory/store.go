package memory

import (
	"context"
	"sync"

	"github.com/geocoder89/opay/internal/storage"
)

type Store struct {
	mu sync.RWMutex
	m  map[string]map[string]string
}

func New() *Store {
	return &Store{
		m: make(map[string]map[string]string),
	}
}

func (s *Store) Get(_ context.Context, namespace, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.m[namespace][key]
	if !ok {
		return "", storage.ErrNotFound
	}

	return v, nil
}

func (s *Store) Set(_ context.Context, namespace, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ns, ok := s.m[namespace]
	if !ok {
		ns = make(map[string]string)
		s.m[namespace] = ns
	}
	ns[key] = value

	return nil
}

func (s *Store) Clear(_ context.Context, namespace string) error {
	s.mu.Lock()
	delete(s.m, namespace)
	s.mu.Unlock()

	return nil
}

func (s *Store) Ping(context.Context) error {
	return nil
}
