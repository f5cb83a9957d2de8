package session

import (
	"fmt"
	"time"

	"github.com/geocoder89/opay/internal/validation"
)

// NewRecord builds the record created on signup. Input is expected to have
// passed form validation already; only the invariants of the record itself
// are checked here.
func NewRecord(in NewRecordInput, now time.Time) (Record, error) {
	first := validation.TrimSpace(in.FirstName)
	last := validation.TrimSpace(in.LastName)

	if first == "" || last == "" {
		return Record{}, fmt.Errorf("%w: name is required", ErrInvalidRecord)
	}

	if !in.Gender.IsValid() {
		return Record{}, fmt.Errorf("%w: gender %q", ErrInvalidRecord, in.Gender)
	}

	return Record{
		FirstName: first,
		LastName:  last,
		Email:     in.Email,
		Phone:     validation.TrimSpace(in.CountryCode) + in.Phone,
		Gender:    in.Gender,
		Balance:   DefaultBalance,
		Joined:    NewTimestamp(now),
	}, nil
}
