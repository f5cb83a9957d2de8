package pages

import (
	"context"
	"fmt"

	"github.com/geocoder89/opay/internal/dom"
	"github.com/geocoder89/opay/internal/domain/session"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type profileStyle struct {
	icon     string
	gradient string
}

var profileStyles = map[session.Gender]profileStyle{
	session.GenderMale: {
		icon:     `<i class="fas fa-male"></i>`,
		gradient: "linear-gradient(135deg, #3560f6, #1d3a8a)",
	},
	session.GenderFemale: {
		icon:     `<i class="fas fa-female"></i>`,
		gradient: "linear-gradient(135deg, #ec4899, #8b5cf6)",
	},
}

var balancePrinter = message.NewPrinter(language.English)

// FormatBalance renders amount in naira with digit grouping.
func FormatBalance(amount float64) string {
	return balancePrinter.Sprintf("₦%.2f", amount)
}

type dashboardController struct {
	doc  *dom.Document
	deps Deps

	userName, userEmail, profilePic, greeting *dom.Element
	balance, toggleBalance                    *dom.Element
	carousel                                  *Carousel
}

func initDashboard(ctx context.Context, doc *dom.Document, deps Deps) (dom.Effects, error) {
	els, err := lookupAll(doc,
		IDDashboardContainer,
		"user-name", "user-email", "profile-pic", "greeting",
		"balance-amount", IDToggleBalance,
	)
	if err != nil {
		return dom.Effects{}, fmt.Errorf("init dashboard: %w", err)
	}

	c := &dashboardController{
		doc:           doc,
		deps:          deps,
		userName:      els[1],
		userEmail:     els[2],
		profilePic:    els[3],
		greeting:      els[4],
		balance:       els[5],
		toggleBalance: els[6],
	}

	rec, ok, err := deps.Sessions.Load(ctx, deps.Device)
	if err != nil {
		return dom.Effects{}, err
	}

	// without a session the dashboard sends the user to login, same as any
	// other page that needs an account
	if !ok {
		return dom.Effects{Navigate: string(PageLogin)}, nil
	}

	c.renderIdentity(rec)
	c.updateGreeting()
	c.bindBalanceToggle()
	c.initAdCarousel()
	c.bindNavHighlight()

	return dom.Effects{}, nil
}

func (c *dashboardController) renderIdentity(rec session.Record) {
	c.userName.Text = rec.FullName()
	c.userEmail.Text = rec.Email
	c.balance.Text = FormatBalance(rec.Balance)

	style, ok := profileStyles[rec.Gender]
	if !ok {
		return
	}
	c.profilePic.HTML = style.icon
	c.profilePic.SetStyle("background", style.gradient)
}

// updateGreeting reads the rendered user name, so it runs after renderIdentity.
// The band follows the wall clock of the device, not of the server.
func (c *dashboardController) updateGreeting() {
	hour := c.deps.Clock().In(c.deps.Location).Hour()
	c.greeting.Text = Greeting(hour) + ", " + c.userName.Text
}

// Greeting maps a local hour to its greeting band.
func Greeting(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Good Morning"
	case hour >= 12 && hour < 17:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}

func (c *dashboardController) bindBalanceToggle() {
	c.doc.On(IDToggleBalance, dom.EventClick, func(context.Context, dom.Event, *dom.Effects) error {
		c.balance.ToggleClass(ClassHidden)

		if c.toggleBalance.HasClass(IconEyeSlash) {
			c.toggleBalance.ReplaceClass(IconEyeSlash, IconEye)
		} else {
			c.toggleBalance.ReplaceClass(IconEye, IconEyeSlash)
		}
		return nil
	})
}

func (c *dashboardController) initAdCarousel() {
	c.carousel = NewCarousel(c.doc.ElementsByClass(ClassAdItem))

	if c.carousel.Len() == 0 || c.deps.Scheduler == nil {
		return
	}

	c.deps.Scheduler.Every(c.deps.CarouselPeriod, func() {
		c.carousel.Advance()
		c.deps.Metrics.CarouselTick()
	})
}

func (c *dashboardController) bindNavHighlight() {
	items := c.doc.ElementsByClass(ClassNavItem)

	for _, item := range items {
		clicked := item
		c.doc.On(clicked.ID, dom.EventClick, func(context.Context, dom.Event, *dom.Effects) error {
			for _, i := range items {
				i.RemoveClass(ClassActive)
			}
			clicked.AddClass(ClassActive)
			return nil
		})
	}
}
