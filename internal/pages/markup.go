package pages

import "github.com/geocoder89/opay/internal/dom"

// Element ids and classes the controllers depend on.
const (
	IDSignupForm          = "signup-form"
	IDLoginForm           = "login-form"
	IDDashboardContainer  = "dashboard-container"
	IDTogglePassword      = "toggle-password"
	IDToggleConfirm       = "toggle-confirm-password"
	IDToggleLoginPassword = "toggle-login-password"
	IDToggleBalance       = "toggle-balance"

	ClassAdItem   = "ad-item"
	ClassNavItem  = "nav-item"
	ClassSelected = "selected"
	ClassActive   = "active"
	ClassHidden   = "balance-hidden"

	IconEye      = "fa-eye"
	IconEyeSlash = "fa-eye-slash"

	// DefaultCountryCode is the prefix shown next to the phone input.
	DefaultCountryCode = "+234"
)

func input(id, typ string) dom.Element {
	return dom.Element{ID: id, Tag: "input", Type: typ}
}

func errorFlag(id string) dom.Element {
	return dom.Element{
		ID:      id,
		Tag:     "div",
		Classes: []string{"error-message"},
		Style:   map[string]string{"display": "none"},
	}
}

func eyeIcon(id string) dom.Element {
	return dom.Element{ID: id, Tag: "i", Classes: []string{"fas", IconEye, "password-toggle"}}
}

func SignupMarkup() []dom.Element {
	return []dom.Element{
		{ID: IDSignupForm, Tag: "form"},
		input("first-name", "text"),
		errorFlag("first-name-error"),
		input("last-name", "text"),
		errorFlag("last-name-error"),
		input("email", "email"),
		errorFlag("email-error"),
		{ID: "country-code", Tag: "span", Text: DefaultCountryCode},
		input("phone", "tel"),
		errorFlag("phone-error"),
		{ID: "male-option", Tag: "div", Classes: []string{"gender-option"}},
		{ID: "female-option", Tag: "div", Classes: []string{"gender-option"}},
		errorFlag("gender-error"),
		input("password", "password"),
		eyeIcon(IDTogglePassword),
		errorFlag("password-error"),
		input("confirm-password", "password"),
		eyeIcon(IDToggleConfirm),
		errorFlag("confirm-password-error"),
	}
}

func LoginMarkup() []dom.Element {
	return []dom.Element{
		{ID: IDLoginForm, Tag: "form"},
		input("login-email", "email"),
		input("login-password", "password"),
		eyeIcon(IDToggleLoginPassword),
	}
}

func DashboardMarkup() []dom.Element {
	return []dom.Element{
		{ID: IDDashboardContainer, Tag: "div"},
		{ID: "greeting", Tag: "h2", Text: "Good Morning"},
		{ID: "profile-pic", Tag: "div", HTML: `<i class="fas fa-user"></i>`},
		{ID: "user-name", Tag: "span", Text: "User"},
		{ID: "user-email", Tag: "span"},
		{ID: "balance-amount", Tag: "span", Text: "₦0.00"},
		{ID: IDToggleBalance, Tag: "i", Classes: []string{"fas", IconEye}},
		{ID: "ad-1", Tag: "div", Classes: []string{ClassAdItem}, Text: "Get 20% cashback on airtime"},
		{ID: "ad-2", Tag: "div", Classes: []string{ClassAdItem}, Text: "Zero transfer fees this weekend"},
		{ID: "ad-3", Tag: "div", Classes: []string{ClassAdItem}, Text: "Earn daily interest on savings"},
		{ID: "myChart", Tag: "canvas"},
		{ID: "nav-home", Tag: "a", Classes: []string{ClassNavItem, ClassActive}, Text: "Home"},
		{ID: "nav-rewards", Tag: "a", Classes: []string{ClassNavItem}, Text: "Rewards"},
		{ID: "nav-finance", Tag: "a", Classes: []string{ClassNavItem}, Text: "Finance"},
		{ID: "nav-cards", Tag: "a", Classes: []string{ClassNavItem}, Text: "Cards"},
		{ID: "nav-me", Tag: "a", Classes: []string{ClassNavItem}, Text: "Me"},
	}
}
