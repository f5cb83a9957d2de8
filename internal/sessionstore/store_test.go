package sessionstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/geocoder89/opay/internal/domain/session"
	"github.com/geocoder89/opay/internal/storage"
	"github.com/geocoder89/opay/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(t *testing.T) session.Record {
	t.Helper()

	rec, err := session.NewRecord(session.NewRecordInput{
		FirstName:   "Ada",
		LastName:    "Obi",
		Email:       "ada@opay.ng",
		CountryCode: "+234",
		Phone:       "8031234567",
		Gender:      session.GenderFemale,
	}, time.Date(2026, 1, 2, 3, 4, 5, 6_000_000, time.UTC))
	require.NoError(t, err)

	return rec
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New(memory.New())
	want := sampleRecord(t)

	require.NoError(t, s.Save(ctx, "device-1", want))

	got, ok, err := s.Load(ctx, "device-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestSave_OverwritesPreviousRecord(t *testing.T) {
	ctx := context.Background()
	s := New(memory.New())

	first := sampleRecord(t)
	second := first
	second.FirstName = "Chidi"
	second.Gender = session.GenderMale

	require.NoError(t, s.Save(ctx, "device-1", first))
	require.NoError(t, s.Save(ctx, "device-1", second))

	got, ok, err := s.Load(ctx, "device-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, second, got)
}

func TestLoad_MissingOrMalformedIsAbsent(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	s := New(kv)

	_, ok, err := s.Load(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, ok)

	for _, raw := range []string{"{not json", "null", "42"} {
		require.NoError(t, kv.Set(ctx, "device-2", Key, raw))

		_, ok, err := s.Load(ctx, "device-2")
		require.NoError(t, err, raw)
		assert.False(t, ok, raw)
	}
}

type brokenStore struct{ storage.Store }

func (brokenStore) Get(context.Context, string, string) (string, error) {
	return "", errors.New("dial tcp: connection refused")
}

func TestLoad_StorageFailureIsAnError(t *testing.T) {
	s := New(brokenStore{Store: memory.New()})

	_, ok, err := s.Load(context.Background(), "device-1")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := New(memory.New())

	require.NoError(t, s.Save(ctx, "device-1", sampleRecord(t)))
	require.NoError(t, s.Clear(ctx, "device-1"))

	_, ok, err := s.Load(ctx, "device-1")
	require.NoError(t, err)
	assert.False(t, ok)
}
