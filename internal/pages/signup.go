package pages

import (
	"context"
	"fmt"

	"github.com/geocoder89/opay/internal/dom"
	"github.com/geocoder89/opay/internal/domain/session"
	"github.com/geocoder89/opay/internal/validation"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("github.com/geocoder89/opay/internal/pages")

type signupController struct {
	doc  *dom.Document
	deps Deps

	firstName, lastName, email, countryCode, phone *dom.Element
	male, female                                   *dom.Element
	password, confirm                              *dom.Element
	togglePassword, toggleConfirm                  *dom.Element
}

func initSignup(doc *dom.Document, deps Deps) error {
	els, err := lookupAll(doc,
		IDSignupForm,
		"first-name", "last-name", "email", "country-code", "phone",
		"male-option", "female-option",
		"password", "confirm-password",
		IDTogglePassword, IDToggleConfirm,
	)
	if err != nil {
		return fmt.Errorf("init signup: %w", err)
	}

	c := &signupController{
		doc:            doc,
		deps:           deps,
		firstName:      els[1],
		lastName:       els[2],
		email:          els[3],
		countryCode:    els[4],
		phone:          els[5],
		male:           els[6],
		female:         els[7],
		password:       els[8],
		confirm:        els[9],
		togglePassword: els[10],
		toggleConfirm:  els[11],
	}

	c.bindToggles()
	c.bindGenderSelection()
	doc.On(IDSignupForm, dom.EventSubmit, c.onSubmit)

	return nil
}

func (c *signupController) bindToggles() {
	bindPasswordToggle(c.doc, IDTogglePassword, c.password, c.togglePassword)
	bindPasswordToggle(c.doc, IDToggleConfirm, c.confirm, c.toggleConfirm)
}

func (c *signupController) bindGenderSelection() {
	pick := func(selected, other *dom.Element) dom.Handler {
		return func(context.Context, dom.Event, *dom.Effects) error {
			selected.AddClass(ClassSelected)
			other.RemoveClass(ClassSelected)
			validation.HideError(c.doc, validation.FlagGender)
			return nil
		}
	}

	c.doc.On(c.male.ID, dom.EventClick, pick(c.male, c.female))
	c.doc.On(c.female.ID, dom.EventClick, pick(c.female, c.male))
}

func (c *signupController) onSubmit(ctx context.Context, _ dom.Event, fx *dom.Effects) error {
	ctx, span := tracer.Start(ctx, "signup.submit")
	defer span.End()

	ok, err := c.validateSignupForm()
	if err != nil {
		return err
	}

	span.SetAttributes(attribute.Bool("signup.valid", ok))
	c.deps.Metrics.SignupSubmitted(ok)

	if !ok {
		return nil
	}

	rec, err := session.NewRecord(session.NewRecordInput{
		FirstName:   c.firstName.Value,
		LastName:    c.lastName.Value,
		Email:       c.email.Value,
		CountryCode: c.countryCode.Text,
		Phone:       c.phone.Value,
		Gender:      c.selectedGender(),
	}, c.deps.Clock())
	if err != nil {
		return err
	}

	if err := c.deps.Sessions.Save(ctx, c.deps.Device, rec); err != nil {
		return err
	}

	c.deps.Logger.InfoContext(ctx, "session_created", "device", c.deps.Device, "gender", rec.Gender)

	fx.Navigate = string(PageDashboard)
	return nil
}

func (c *signupController) selectedGender() session.Gender {
	return session.Gender(validation.SelectedGender(
		c.male.HasClass(ClassSelected),
		c.female.HasClass(ClassSelected),
	))
}

func (c *signupController) form() validation.SignupForm {
	return validation.SignupForm{
		FirstName:       c.firstName.Value,
		LastName:        c.lastName.Value,
		Email:           c.email.Value,
		Phone:           c.phone.Value,
		Gender:          string(c.selectedGender()),
		Password:        c.password.Value,
		ConfirmPassword: c.confirm.Value,
	}
}

// validateSignupForm resets every flag, then shows the flag of each failing
// check. All checks run on every call.
func (c *signupController) validateSignupForm() (bool, error) {
	for _, flag := range validation.SignupFlags {
		validation.HideError(c.doc, flag)
	}

	res, err := c.deps.Validator.ValidateSignup(c.form())
	if err != nil {
		return false, err
	}

	for _, flag := range res.Failed {
		validation.ShowError(c.doc, flag)
		c.deps.Metrics.ValidationFailed(flag)
	}

	return res.OK(), nil
}
