package pages

import (
	"testing"

	"github.com/geocoder89/opay/internal/domain/session"
	"github.com/stretchr/testify/assert"
)

func TestLogin_NoAccountAlerts(t *testing.T) {
	f := newFixture()
	doc, _ := f.open(t, PageLogin)

	fx := submit(t, doc, IDLoginForm, map[string]string{"login-email": "x@y.z", "login-password": "whatever"})

	assert.Equal(t, NoAccountNotice, fx.Alert)
	assert.Empty(t, fx.Navigate)
}

func TestLogin_ExistingSessionNavigates(t *testing.T) {
	f := newFixture()
	f.seed(t, session.GenderFemale)
	doc, _ := f.open(t, PageLogin)

	// credentials are not compared
	fx := submit(t, doc, IDLoginForm, map[string]string{"login-email": "other@x.y", "login-password": "wrong"})

	assert.Equal(t, string(PageDashboard), fx.Navigate)
	assert.Empty(t, fx.Alert)
}

func TestLogin_PasswordToggle(t *testing.T) {
	f := newFixture()
	doc, _ := f.open(t, PageLogin)

	click(t, doc, IDToggleLoginPassword)
	assert.Equal(t, "text", el(t, doc, "login-password").Type)

	click(t, doc, IDToggleLoginPassword)
	assert.Equal(t, "password", el(t, doc, "login-password").Type)
	assert.True(t, el(t, doc, IDToggleLoginPassword).HasClass(IconEye))
}
