package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/geocoder89/opay/internal/auth"
	"github.com/gin-gonic/gin"
)

func limitedRouter(ip *RateLimiter, tokens DeviceTokens) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestID())
	r.POST("/views",
		ip.RateLimiterMiddleware(KeyByIP),
		NewDeviceMiddleware(tokens, false).EnsureDevice(),
		func(c *gin.Context) { c.Status(http.StatusCreated) },
	)

	return r
}

func TestRateLimiter_FreshDeviceDoesNotResetIPLimit(t *testing.T) {
	r := limitedRouter(NewRateLimiter(2, time.Minute), auth.NewManager("secret", time.Hour))

	var codes []int
	for i := 0; i < 3; i++ {
		// no token: every request mints a new device
		req := httptest.NewRequest(http.MethodPost, "/views", nil)
		req.RemoteAddr = "203.0.113.7:5000"

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)

		if w.Code == http.StatusTooManyRequests && w.Header().Get("Retry-After") == "" {
			t.Fatalf("429 without Retry-After")
		}
	}

	want := []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("request %d: got %d, want %d", i, codes[i], want[i])
		}
	}

	// another address is unaffected
	req := httptest.NewRequest(http.MethodPost, "/views", nil)
	req.RemoteAddr = "198.51.100.1:5000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("other client got %d", w.Code)
	}
}

func TestRateLimiter_WindowResetsAndPrunes(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	rl := NewRateLimiter(1, time.Minute)
	rl.now = func() time.Time { return now }

	for _, key := range []string{"ip:a", "ip:b", "ip:c"} {
		if ok, _ := rl.allow(key); !ok {
			t.Fatalf("first request for %s refused", key)
		}
	}

	ok, retry := rl.allow("ip:a")
	if ok || retry != time.Minute {
		t.Fatalf("second request in window: ok=%v retry=%v", ok, retry)
	}

	now = now.Add(time.Minute)

	if ok, _ := rl.allow("ip:a"); !ok {
		t.Fatalf("new window should allow again")
	}
	if got := rl.tracked(); got != 1 {
		t.Fatalf("finished windows should be pruned, %d keys tracked", got)
	}
}

func TestRateLimiter_ZeroLimitDisables(t *testing.T) {
	r := limitedRouter(NewRateLimiter(0, time.Minute), auth.NewManager("secret", time.Hour))

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/views", nil))
		if w.Code != http.StatusCreated {
			t.Fatalf("request %d: got %d", i, w.Code)
		}
	}
}
