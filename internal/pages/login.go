package pages

import (
	"context"
	"fmt"

	"github.com/geocoder89/opay/internal/dom"
)

const NoAccountNotice = "No account found. Please sign up first."

type loginController struct {
	doc  *dom.Document
	deps Deps
}

func initLogin(doc *dom.Document, deps Deps) error {
	els, err := lookupAll(doc, IDLoginForm, "login-password", IDToggleLoginPassword)
	if err != nil {
		return fmt.Errorf("init login: %w", err)
	}

	c := &loginController{doc: doc, deps: deps}

	bindPasswordToggle(doc, IDToggleLoginPassword, els[1], els[2])
	doc.On(IDLoginForm, dom.EventSubmit, c.onSubmit)

	return nil
}

// onSubmit only checks that a session record exists; credentials are not
// compared.
func (c *loginController) onSubmit(ctx context.Context, _ dom.Event, fx *dom.Effects) error {
	ctx, span := tracer.Start(ctx, "login.submit")
	defer span.End()

	_, ok, err := c.deps.Sessions.Load(ctx, c.deps.Device)
	if err != nil {
		c.deps.Metrics.LoginSubmitted("error")
		return err
	}

	if !ok {
		c.deps.Metrics.LoginSubmitted("no_account")
		fx.Alert = NoAccountNotice
		return nil
	}

	c.deps.Metrics.LoginSubmitted("ok")
	fx.Navigate = string(PageDashboard)
	return nil
}
