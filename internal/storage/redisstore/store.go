package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/geocoder89/opay/internal/storage"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "opay:storage:"

type Config struct {
	Addr     string
	Password string
	DB       int
}

// Store keeps each namespace in one redis hash.
type Store struct {
	redisdb *redis.Client
}

func New(cfg Config) *Store {
	redisdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	return &Store{redisdb: redisdb}
}

func hashKey(namespace string) string {
	return keyPrefix + namespace
}

func (s *Store) Get(ctx context.Context, namespace, key string) (string, error) {
	v, err := s.redisdb.HGet(ctx, hashKey(namespace), key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", storage.ErrNotFound
		}
		return "", err
	}

	return v, nil
}

func (s *Store) Set(ctx context.Context, namespace, key, value string) error {
	return s.redisdb.HSet(ctx, hashKey(namespace), key, value).Err()
}

func (s *Store) Clear(ctx context.Context, namespace string) error {
	return s.redisdb.Del(ctx, hashKey(namespace)).Err()
}

// Ping checks redis connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.redisdb.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.redisdb.Close()
}
