package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/geocoder89/opay/internal/domain/session"
	"github.com/geocoder89/opay/internal/storage"
)

// Key is the single storage key holding the session record of a device.
const Key = "opayUser"

// Store persists at most one session record per device namespace.
type Store struct {
	kv storage.Store
}

func New(kv storage.Store) *Store {
	return &Store{kv: kv}
}

func (s *Store) Save(ctx context.Context, device string, rec session.Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}

	if err := s.kv.Set(ctx, device, Key, string(b)); err != nil {
		return fmt.Errorf("save session record: %w", err)
	}

	return nil
}

// Load reports ok=false when no record is stored or the stored value cannot
// be decoded. Only storage failures are returned as errors.
func (s *Store) Load(ctx context.Context, device string) (session.Record, bool, error) {
	raw, err := s.kv.Get(ctx, device, Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return session.Record{}, false, nil
		}
		return session.Record{}, false, fmt.Errorf("load session record: %w", err)
	}

	var rec session.Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return session.Record{}, false, nil
	}

	// "null" decodes cleanly into the zero record
	if rec == (session.Record{}) {
		return session.Record{}, false, nil
	}

	return rec, true, nil
}

func (s *Store) Clear(ctx context.Context, device string) error {
	if err := s.kv.Clear(ctx, device); err != nil {
		return fmt.Errorf("clear device storage: %w", err)
	}
	return nil
}
