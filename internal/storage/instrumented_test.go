package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/geocoder89/opay/internal/storage"
	"github.com/geocoder89/opay/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	ops  []string
	errs []error
}

func (o *recordingObserver) ObserveStore(op string, fn func() error) error {
	err := fn()
	o.ops = append(o.ops, op)
	o.errs = append(o.errs, err)
	return err
}

type failingStore struct {
	storage.Store
	err error
}

func (f failingStore) Set(context.Context, string, string, string) error {
	return f.err
}

func TestInstrumented_MissIsNotAnError(t *testing.T) {
	obs := &recordingObserver{}
	s := storage.NewInstrumented(memory.New(), obs)

	_, err := s.Get(context.Background(), "dev", "k")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.Len(t, obs.errs, 1)
	assert.NoError(t, obs.errs[0])
}

func TestInstrumented_ReportsOpsAndFailures(t *testing.T) {
	boom := errors.New("connection refused")
	obs := &recordingObserver{}
	s := storage.NewInstrumented(failingStore{Store: memory.New(), err: boom}, obs)
	ctx := context.Background()

	assert.ErrorIs(t, s.Set(ctx, "dev", "k", "v"), boom)
	assert.NoError(t, s.Clear(ctx, "dev"))

	assert.Equal(t, []string{"set", "clear"}, obs.ops)
	assert.ErrorIs(t, obs.errs[0], boom)
}
