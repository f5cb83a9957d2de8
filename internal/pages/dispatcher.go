package pages

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/geocoder89/opay/internal/dom"
	"github.com/geocoder89/opay/internal/domain/session"
	"github.com/geocoder89/opay/internal/validation"
)

type Page string

const (
	PageNone      Page = ""
	PageSignup    Page = "signup"
	PageLogin     Page = "login"
	PageDashboard Page = "dashboard"
)

func (p Page) IsValid() bool {
	switch p {
	case PageSignup, PageLogin, PageDashboard:
		return true
	}
	return false
}

var ErrUnknownPage = errors.New("unknown page")

// DefaultCarouselPeriod is how long each ad stays active.
const DefaultCarouselPeriod = 5 * time.Second

// Sessions is the part of the session store the controllers use.
type Sessions interface {
	Save(ctx context.Context, device string, rec session.Record) error
	Load(ctx context.Context, device string) (session.Record, bool, error)
}

// Scheduler runs task every period until the owning view is torn down.
type Scheduler interface {
	Every(period time.Duration, task func())
}

type Metrics interface {
	SignupSubmitted(ok bool)
	ValidationFailed(flag string)
	LoginSubmitted(outcome string)
	CarouselTick()
}

type Deps struct {
	Device    string
	Sessions  Sessions
	Validator *validation.Validator
	Scheduler Scheduler
	Metrics   Metrics
	Logger    *slog.Logger
	Clock     func() time.Time
	// Location is the device's time zone; the server zone when nil.
	Location       *time.Location
	CarouselPeriod time.Duration
}

func (d Deps) withDefaults() Deps {
	if d.Validator == nil {
		d.Validator = validation.New()
	}
	if d.Metrics == nil {
		d.Metrics = noopMetrics{}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.Location == nil {
		d.Location = time.Local
	}
	if d.CarouselPeriod <= 0 {
		d.CarouselPeriod = DefaultCarouselPeriod
	}
	return d
}

// Markup returns the initial elements of page.
func Markup(page Page) ([]dom.Element, error) {
	switch page {
	case PageSignup:
		return SignupMarkup(), nil
	case PageLogin:
		return LoginMarkup(), nil
	case PageDashboard:
		return DashboardMarkup(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPage, page)
	}
}

// DetectPage looks for the root element of each page in priority order.
// Documents with none of them yield PageNone.
func DetectPage(doc *dom.Document) Page {
	switch {
	case has(doc, IDSignupForm):
		return PageSignup
	case has(doc, IDLoginForm):
		return PageLogin
	case has(doc, IDDashboardContainer):
		return PageDashboard
	default:
		return PageNone
	}
}

func has(doc *dom.Document, id string) bool {
	_, ok := doc.Lookup(id)
	return ok
}

// Open builds the markup of page and runs its controller on it.
func Open(ctx context.Context, page Page, deps Deps) (*dom.Document, dom.Effects, error) {
	elements, err := Markup(page)
	if err != nil {
		return nil, dom.Effects{}, err
	}

	doc := dom.NewDocument(elements...)

	fx, err := Init(ctx, page, doc, deps)
	if err != nil {
		return nil, dom.Effects{}, err
	}

	return doc, fx, nil
}

// Init invokes exactly one controller initializer for page. PageNone is a
// no-op so documents without a known root are left alone.
func Init(ctx context.Context, page Page, doc *dom.Document, deps Deps) (dom.Effects, error) {
	deps = deps.withDefaults()

	switch page {
	case PageNone:
		return dom.Effects{}, nil
	case PageSignup:
		return dom.Effects{}, initSignup(doc, deps)
	case PageLogin:
		return dom.Effects{}, initLogin(doc, deps)
	case PageDashboard:
		return initDashboard(ctx, doc, deps)
	default:
		return dom.Effects{}, fmt.Errorf("%w: %q", ErrUnknownPage, page)
	}
}

// lookupAll resolves every id or fails on the first missing one.
func lookupAll(doc *dom.Document, ids ...string) ([]*dom.Element, error) {
	out := make([]*dom.Element, 0, len(ids))
	for _, id := range ids {
		el, err := doc.GetElementByID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, el)
	}
	return out, nil
}

// TogglePasswordVisibility flips the masking of field and the icon state.
func TogglePasswordVisibility(field, icon *dom.Element) {
	if field.Type == "password" {
		field.Type = "text"
		icon.ReplaceClass(IconEye, IconEyeSlash)
		return
	}

	field.Type = "password"
	icon.ReplaceClass(IconEyeSlash, IconEye)
}

func bindPasswordToggle(doc *dom.Document, toggleID string, field, icon *dom.Element) {
	doc.On(toggleID, dom.EventClick, func(context.Context, dom.Event, *dom.Effects) error {
		TogglePasswordVisibility(field, icon)
		return nil
	})
}

type noopMetrics struct{}

func (noopMetrics) SignupSubmitted(bool)    {}
func (noopMetrics) ValidationFailed(string) {}
func (noopMetrics) LoginSubmitted(string)   {}
func (noopMetrics) CarouselTick()           {}
