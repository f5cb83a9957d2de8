package pages

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/geocoder89/opay/internal/dom"
	"github.com/geocoder89/opay/internal/domain/session"
	"github.com/geocoder89/opay/internal/sessionstore"
	"github.com/geocoder89/opay/internal/storage/memory"
	"github.com/stretchr/testify/require"
)

const testDevice = "device-test"

// manualScheduler records tasks so tests can fire them deterministically.
type manualScheduler struct {
	periods []time.Duration
	tasks   []func()
}

func (s *manualScheduler) Every(period time.Duration, task func()) {
	s.periods = append(s.periods, period)
	s.tasks = append(s.tasks, task)
}

func (s *manualScheduler) fire() {
	for _, task := range s.tasks {
		task()
	}
}

type fixture struct {
	sessions  *sessionstore.Store
	scheduler *manualScheduler
	now       time.Time
}

func newFixture() *fixture {
	return &fixture{
		sessions:  sessionstore.New(memory.New()),
		scheduler: &manualScheduler{},
		now:       time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) deps() Deps {
	return Deps{
		Device:    testDevice,
		Sessions:  f.sessions,
		Scheduler: f.scheduler,
		Clock:     func() time.Time { return f.now },
		Location:  time.UTC,
	}
}

func (f *fixture) open(t *testing.T, page Page) (*dom.Document, dom.Effects) {
	t.Helper()

	doc, fx, err := Open(context.Background(), page, f.deps())
	require.NoError(t, err)

	return doc, fx
}

func (f *fixture) seed(t *testing.T, gender session.Gender) session.Record {
	t.Helper()

	rec, err := session.NewRecord(session.NewRecordInput{
		FirstName:   "Ada",
		LastName:    "Obi",
		Email:       "ada@opay.ng",
		CountryCode: DefaultCountryCode,
		Phone:       "8031234567",
		Gender:      gender,
	}, f.now)
	require.NoError(t, err)
	require.NoError(t, f.sessions.Save(context.Background(), testDevice, rec))

	return rec
}

func click(t *testing.T, doc *dom.Document, id string) dom.Effects {
	t.Helper()

	fx, err := doc.Dispatch(context.Background(), dom.Event{Type: dom.EventClick, Target: id})
	require.NoError(t, err)

	return fx
}

func submit(t *testing.T, doc *dom.Document, form string, values map[string]string) dom.Effects {
	t.Helper()

	fx, err := doc.Dispatch(context.Background(), dom.Event{Type: dom.EventSubmit, Target: form, Values: values})
	require.NoError(t, err)

	return fx
}

func el(t *testing.T, doc *dom.Document, id string) *dom.Element {
	t.Helper()

	e, err := doc.GetElementByID(id)
	require.NoError(t, err)

	return e
}

type failingSessions struct{}

func (failingSessions) Save(context.Context, string, session.Record) error {
	return errStorageDown
}

func (failingSessions) Load(context.Context, string) (session.Record, bool, error) {
	return session.Record{}, false, errStorageDown
}

var errStorageDown = errors.New("storage down")
