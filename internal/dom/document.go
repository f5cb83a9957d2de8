package dom

import (
	"context"
	"errors"
	"fmt"
)

var ErrElementNotFound = errors.New("element not found")

const (
	EventClick  = "click"
	EventSubmit = "submit"
)

type Event struct {
	Type   string            `json:"type"`
	Target string            `json:"target"`
	Values map[string]string `json:"values,omitempty"`
}

// Effects are what a handler asks the hosting shell to do once the event has
// been processed. They replace full-page navigation and window.alert.
type Effects struct {
	Navigate string `json:"navigate,omitempty"`
	Alert    string `json:"alert,omitempty"`
}

type Handler func(ctx context.Context, ev Event, fx *Effects) error

type listenerKey struct {
	target string
	typ    string
}

// Document is the element tree of one view plus its bound listeners.
// It is not safe for concurrent use; the view that owns it serializes access.
type Document struct {
	order     []*Element
	byID      map[string]*Element
	listeners map[listenerKey][]Handler
}

func NewDocument(elements ...Element) *Document {
	d := &Document{
		byID:      make(map[string]*Element, len(elements)),
		listeners: make(map[listenerKey][]Handler),
	}
	for _, el := range elements {
		d.Append(el)
	}
	return d
}

func (d *Document) Append(el Element) *Element {
	e := el
	d.order = append(d.order, &e)
	if e.ID != "" {
		d.byID[e.ID] = &e
	}
	return &e
}

// GetElementByID fails with ErrElementNotFound when the markup does not carry id.
func (d *Document) GetElementByID(id string) (*Element, error) {
	el, ok := d.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, id)
	}
	return el, nil
}

func (d *Document) Lookup(id string) (*Element, bool) {
	el, ok := d.byID[id]
	return el, ok
}

// ElementsByClass returns matches in document order.
func (d *Document) ElementsByClass(class string) []*Element {
	var out []*Element
	for _, el := range d.order {
		if el.HasClass(class) {
			out = append(out, el)
		}
	}
	return out
}

func (d *Document) On(target, typ string, h Handler) {
	k := listenerKey{target: target, typ: typ}
	d.listeners[k] = append(d.listeners[k], h)
}

// Dispatch delivers ev to the listeners bound on its target. Submitted values
// are written into the matching input elements first, the way a browser form
// already holds what the user typed.
func (d *Document) Dispatch(ctx context.Context, ev Event) (Effects, error) {
	var fx Effects

	if _, err := d.GetElementByID(ev.Target); err != nil {
		return fx, err
	}

	// resolve every id before writing so a bad id leaves the tree untouched
	targets := make(map[*Element]string, len(ev.Values))
	for id, v := range ev.Values {
		el, err := d.GetElementByID(id)
		if err != nil {
			return fx, err
		}
		targets[el] = v
	}
	for el, v := range targets {
		el.Value = v
	}

	for _, h := range d.listeners[listenerKey{target: ev.Target, typ: ev.Type}] {
		if err := h(ctx, ev, &fx); err != nil {
			return fx, err
		}
	}

	return fx, nil
}

// Snapshot returns a deep copy of every element in document order.
func (d *Document) Snapshot() []Element {
	out := make([]Element, 0, len(d.order))
	for _, el := range d.order {
		out = append(out, el.clone())
	}
	return out
}
