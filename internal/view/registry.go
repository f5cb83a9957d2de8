package view

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/geocoder89/opay/internal/pages"
	"github.com/geocoder89/opay/internal/validation"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("view not found")

type Metrics interface {
	pages.Metrics
	ViewOpened(page string)
	ViewClosed(page string)
}

type Config struct {
	Sessions       pages.Sessions
	Validator      *validation.Validator
	Metrics        Metrics
	Logger         *slog.Logger
	Clock          func() time.Time
	CarouselPeriod time.Duration
}

// Registry owns every open view, keyed by id and scoped to the device that
// opened it.
type Registry struct {
	cfg Config

	mu    sync.RWMutex
	views map[string]*View
}

func NewRegistry(cfg Config) *Registry {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Validator == nil {
		cfg.Validator = validation.New()
	}

	return &Registry{
		cfg:   cfg,
		views: make(map[string]*View),
	}
}

// OpenOptions carry what the client knows about the device.
type OpenOptions struct {
	// Location is the device's time zone. Nil means the server zone.
	Location *time.Location
}

// Open creates a view of page for device and runs the page controller on it.
func (r *Registry) Open(ctx context.Context, device string, page pages.Page, opts OpenOptions) (Result, error) {
	if !page.IsValid() {
		return Result{}, pages.ErrUnknownPage
	}

	v := newView(uuid.NewString(), device, page, r.cfg.Clock)

	deps := pages.Deps{
		Device:         device,
		Sessions:       r.cfg.Sessions,
		Validator:      r.cfg.Validator,
		Scheduler:      v,
		Logger:         r.cfg.Logger,
		Clock:          r.cfg.Clock,
		Location:       opts.Location,
		CarouselPeriod: r.cfg.CarouselPeriod,
	}
	if r.cfg.Metrics != nil {
		deps.Metrics = r.cfg.Metrics
	}

	// hold the view lock so scheduled tasks cannot run before init finishes
	v.mu.Lock()
	doc, fx, err := pages.Open(ctx, page, deps)
	if err != nil {
		v.mu.Unlock()
		v.teardown()
		return Result{}, err
	}
	v.doc = doc
	snap := v.snapshotLocked()
	v.mu.Unlock()

	r.mu.Lock()
	r.views[v.id] = v
	r.mu.Unlock()

	if r.cfg.Metrics != nil {
		r.cfg.Metrics.ViewOpened(string(page))
	}

	r.cfg.Logger.DebugContext(ctx, "view_opened", "view_id", v.id, "page", page)

	return Result{Effects: fx, Snapshot: snap}, nil
}

// Get returns the view only to the device that opened it.
func (r *Registry) Get(device, id string) (*View, error) {
	r.mu.RLock()
	v, ok := r.views[id]
	r.mu.RUnlock()

	if !ok || v.device != device {
		return nil, ErrNotFound
	}

	return v, nil
}

func (r *Registry) Close(device, id string) error {
	r.mu.Lock()
	v, ok := r.views[id]
	if !ok || v.device != device {
		r.mu.Unlock()
		return ErrNotFound
	}
	delete(r.views, id)
	r.mu.Unlock()

	r.closeView(v)
	return nil
}

// ReapIdle tears down views not touched since now-ttl and reports how many.
func (r *Registry) ReapIdle(now time.Time, ttl time.Duration) int {
	cutoff := now.Add(-ttl)

	var stale []*View

	r.mu.Lock()
	for id, v := range r.views {
		if v.idleSince().Before(cutoff) {
			stale = append(stale, v)
			delete(r.views, id)
		}
	}
	r.mu.Unlock()

	for _, v := range stale {
		r.closeView(v)
	}

	return len(stale)
}

// CloseAll tears down every view, used on shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	all := make([]*View, 0, len(r.views))
	for id, v := range r.views {
		all = append(all, v)
		delete(r.views, id)
	}
	r.mu.Unlock()

	for _, v := range all {
		r.closeView(v)
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}

func (r *Registry) closeView(v *View) {
	v.teardown()

	if r.cfg.Metrics != nil {
		r.cfg.Metrics.ViewClosed(string(v.page))
	}

	r.cfg.Logger.Debug("view_closed", "view_id", v.id, "page", v.page)
}
