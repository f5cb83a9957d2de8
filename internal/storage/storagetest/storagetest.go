// Package storagetest holds the behaviour every storage.Store backend shares.
package storagetest

import (
	"context"
	"testing"

	"github.com/geocoder89/opay/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Run(t *testing.T, s storage.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := s.Get(ctx, uuid.NewString(), "opayUser")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("set then get overwrites", func(t *testing.T) {
		ns := uuid.NewString()

		require.NoError(t, s.Set(ctx, ns, "k", "v1"))
		require.NoError(t, s.Set(ctx, ns, "k", "v2"))

		got, err := s.Get(ctx, ns, "k")
		require.NoError(t, err)
		assert.Equal(t, "v2", got)
	})

	t.Run("namespaces are isolated", func(t *testing.T) {
		a, b := uuid.NewString(), uuid.NewString()

		require.NoError(t, s.Set(ctx, a, "k", "from-a"))

		_, err := s.Get(ctx, b, "k")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("clear drops the namespace only", func(t *testing.T) {
		a, b := uuid.NewString(), uuid.NewString()

		require.NoError(t, s.Set(ctx, a, "k", "1"))
		require.NoError(t, s.Set(ctx, b, "k", "2"))
		require.NoError(t, s.Clear(ctx, a))

		_, err := s.Get(ctx, a, "k")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		got, err := s.Get(ctx, b, "k")
		require.NoError(t, err)
		assert.Equal(t, "2", got)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, s.Ping(ctx))
	})
}
