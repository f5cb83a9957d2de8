package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/geocoder89/opay/internal/config"
	apphttp "github.com/geocoder89/opay/internal/http"
	"github.com/geocoder89/opay/internal/http/middlewares"
	"github.com/geocoder89/opay/internal/pages"
	"github.com/geocoder89/opay/internal/storage/memory"
	"github.com/geocoder89/opay/internal/view"
	"github.com/gin-gonic/gin"
)

func testConfig() config.Config {
	return config.Config{
		Env:                "test",
		StoreDriver:        config.StoreMemory,
		JWTSecret:          "test-secret-key",
		DeviceTTLDays:      1,
		CarouselPeriod:     time.Hour,
		ViewIdleTTL:        time.Minute,
		RateLimitPerMinute: 1000,
		CORSOrigins:        []string{"http://localhost:3000"},
		MaxBodyBytes:       64 << 10,
	}
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := testConfig()

	deps := apphttp.BuildDeps(cfg, memory.New(), logger)
	t.Cleanup(deps.Views.CloseAll)

	return apphttp.NewRouter(logger, cfg, deps)
}

// client carries the device token between requests like a browser would.
type client struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func (c *client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(middlewares.DeviceTokenHeader, c.token)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	if tok := w.Header().Get(middlewares.DeviceTokenHeader); tok != "" {
		c.token = tok
	}

	return w
}

func (c *client) result(w *httptest.ResponseRecorder, wantStatus int) view.Result {
	c.t.Helper()

	if w.Code != wantStatus {
		c.t.Fatalf("got status %d, want %d, body=%s", w.Code, wantStatus, w.Body.String())
	}

	var res view.Result
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		c.t.Fatalf("decode: %v body=%s", err, w.Body.String())
	}
	return res
}

func (c *client) open(page pages.Page) view.Result {
	c.t.Helper()
	return c.result(c.do(http.MethodPost, "/views", map[string]string{"page": string(page)}), http.StatusCreated)
}

func (c *client) event(id string, ev map[string]interface{}) view.Result {
	c.t.Helper()
	return c.result(c.do(http.MethodPost, "/views/"+id+"/events", ev), http.StatusOK)
}

func findText(snap view.Snapshot, id string) string {
	for _, e := range snap.Elements {
		if e.ID == id {
			return e.Text
		}
	}
	return ""
}

func TestSignupLoginDashboardJourney(t *testing.T) {
	c := &client{t: t, router: setupRouter(t)}

	login := c.open(pages.PageLogin)
	if c.token == "" {
		t.Fatalf("first request should mint a device token")
	}

	res := c.event(login.Snapshot.ID, map[string]interface{}{"type": "submit", "target": "login-form"})
	if res.Effects.Alert != pages.NoAccountNotice {
		t.Fatalf("expected no-account alert, got %+v", res.Effects)
	}

	signup := c.open(pages.PageSignup)
	c.event(signup.Snapshot.ID, map[string]interface{}{"type": "click", "target": "male-option"})
	res = c.event(signup.Snapshot.ID, map[string]interface{}{
		"type":   "submit",
		"target": "signup-form",
		"values": map[string]string{
			"first-name":       "Chidi",
			"last-name":        "Okeke",
			"email":            "chidi@opay.ng",
			"phone":            "8012345678",
			"password":         "hunter22",
			"confirm-password": "hunter22",
		},
	})
	if res.Effects.Navigate != string(pages.PageDashboard) {
		t.Fatalf("expected navigate to dashboard, got %+v", res.Effects)
	}

	res = c.event(login.Snapshot.ID, map[string]interface{}{"type": "submit", "target": "login-form"})
	if res.Effects.Navigate != string(pages.PageDashboard) {
		t.Fatalf("login should now navigate, got %+v", res.Effects)
	}

	dash := c.open(pages.PageDashboard)
	if got := findText(dash.Snapshot, "user-name"); got != "Chidi Okeke" {
		t.Fatalf("user-name = %q", got)
	}
	if got := findText(dash.Snapshot, "balance-amount"); got != "₦125,800.50" {
		t.Fatalf("balance-amount = %q", got)
	}
	if got := findText(dash.Snapshot, "greeting"); !strings.HasSuffix(got, ", Chidi Okeke") {
		t.Fatalf("greeting = %q", got)
	}

	// a different browser has its own storage
	other := &client{t: t, router: c.router}
	if nav := other.open(pages.PageDashboard).Effects.Navigate; nav != string(pages.PageLogin) {
		t.Fatalf("fresh device should be sent to login, got %q", nav)
	}
}

func TestEventsRequireJSON(t *testing.T) {
	c := &client{t: t, router: setupRouter(t)}
	v := c.open(pages.PageLogin)

	req := httptest.NewRequest(http.MethodPost, "/views/"+v.Snapshot.ID+"/events", strings.NewReader("type=click"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(middlewares.DeviceTokenHeader, c.token)

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("got status %d, want 415", w.Code)
	}
}

func TestOperationalEndpoints(t *testing.T) {
	r := setupRouter(t)

	for _, path := range []string{"/healthz", "/readyz", "/dashboard/chart"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: got status %d", path, w.Code)
		}
	}

	c := &client{t: t, router: r}
	c.open(pages.PageSignup)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("/metrics: got status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "opay_views_open") {
		t.Fatalf("expected the open views gauge in /metrics output")
	}
}
