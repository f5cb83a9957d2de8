package view

import (
	"context"
	"sync"
	"time"

	"github.com/geocoder89/opay/internal/dom"
	"github.com/geocoder89/opay/internal/pages"
)

type Snapshot struct {
	ID       string        `json:"id"`
	Page     pages.Page    `json:"page"`
	Version  uint64        `json:"version"`
	Elements []dom.Element `json:"elements"`
}

// Result is what one event (or opening the view) produced.
type Result struct {
	Effects  dom.Effects `json:"effects"`
	Snapshot Snapshot    `json:"view"`
}

// View is one open page. Every handler and every scheduled task runs under
// mu, so controllers see the same run-to-completion order a browser gives them.
type View struct {
	id     string
	device string
	page   pages.Page
	clock  func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	doc      *dom.Document
	version  uint64
	lastSeen time.Time
	closed   bool
	subs     map[chan Snapshot]struct{}
}

func newView(id, device string, page pages.Page, clock func() time.Time) *View {
	ctx, cancel := context.WithCancel(context.Background())

	return &View{
		id:       id,
		device:   device,
		page:     page,
		clock:    clock,
		ctx:      ctx,
		cancel:   cancel,
		lastSeen: clock(),
		subs:     make(map[chan Snapshot]struct{}),
	}
}

func (v *View) ID() string { return v.id }

func (v *View) Page() pages.Page { return v.page }

// Every implements pages.Scheduler. The task stops when the view is torn down.
func (v *View) Every(period time.Duration, task func()) {
	v.wg.Add(1)

	go func() {
		defer v.wg.Done()

		ticker := time.NewTicker(period)
		defer ticker.Stop()

		for {
			select {
			case <-v.ctx.Done():
				return
			case <-ticker.C:
				v.mu.Lock()
				if v.closed {
					v.mu.Unlock()
					return
				}
				task()
				v.version++
				v.publishLocked()
				v.mu.Unlock()
			}
		}
	}()
}

func (v *View) Dispatch(ctx context.Context, ev dom.Event) (Result, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return Result{}, ErrNotFound
	}

	v.lastSeen = v.clock()

	fx, err := v.doc.Dispatch(ctx, ev)
	if err != nil {
		return Result{}, err
	}

	v.version++
	v.publishLocked()

	return Result{Effects: fx, Snapshot: v.snapshotLocked()}, nil
}

func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.lastSeen = v.clock()
	return v.snapshotLocked()
}

// Subscribe returns a channel receiving the latest snapshot after every
// change. Slow readers only see the most recent one. The channel is closed
// on teardown.
func (v *View) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	v.subs[ch] = struct{}{}
	v.mu.Unlock()

	unsubscribe := func() {
		v.mu.Lock()
		defer v.mu.Unlock()

		if _, ok := v.subs[ch]; ok {
			delete(v.subs, ch)
			close(ch)
		}
	}

	return ch, unsubscribe
}

func (v *View) idleSince() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeen
}

// teardown cancels scheduled tasks and waits for them to exit.
func (v *View) teardown() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	for ch := range v.subs {
		delete(v.subs, ch)
		close(ch)
	}
	v.mu.Unlock()

	v.cancel()
	v.wg.Wait()
}

func (v *View) snapshotLocked() Snapshot {
	return Snapshot{
		ID:       v.id,
		Page:     v.page,
		Version:  v.version,
		Elements: v.doc.Snapshot(),
	}
}

func (v *View) publishLocked() {
	if len(v.subs) == 0 {
		return
	}

	snap := v.snapshotLocked()
	for ch := range v.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
