package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/opay/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS device_storage (
	namespace  TEXT        NOT NULL,
	key        TEXT        NOT NULL,
	value      TEXT        NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (namespace, key)
)`

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	return err
}

func (s *Store) Get(ctx context.Context, namespace, key string) (string, error) {
	var v string

	err := s.pool.QueryRow(
		ctx,
		`SELECT value
         FROM device_storage
         WHERE namespace = $1 AND key = $2`,
		namespace, key,
	).Scan(&v)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", storage.ErrNotFound
		}
		return "", err
	}

	return v, nil
}

func (s *Store) Set(ctx context.Context, namespace, key, value string) error {
	_, err := s.pool.Exec(
		ctx,
		`INSERT INTO device_storage (namespace, key, value, updated_at)
         VALUES ($1, $2, $3, now())
         ON CONFLICT (namespace, key)
         DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		namespace, key, value,
	)
	return err
}

func (s *Store) Clear(ctx context.Context, namespace string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM device_storage WHERE namespace = $1`, namespace)
	return err
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
