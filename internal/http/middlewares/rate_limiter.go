package middlewares

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a fixed-window counter per key.
type RateLimiter struct {
	mu        sync.Mutex
	window    time.Duration
	limit     int
	now       func() time.Time
	nextPrune time.Time
	clients   map[string]*clientBucket
}

type clientBucket struct {
	count     int
	windowEnd time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		clients: make(map[string]*clientBucket),
	}
}

// RateLimiterMiddleware enforces the limit for the key keyFn derives,
// falling back to the client IP. A limit of zero or less disables it.
func (rl *RateLimiter) RateLimiterMiddleware(keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit <= 0 {
			c.Next()
			return
		}

		key := keyFn(c)
		if key == "" {
			key = "ip:" + clientIP(c)
		}

		ok, retryAfter := rl.allow(key)
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			abortWithError(c, http.StatusTooManyRequests, "rate_limited", "Too many requests. Please try again shortly.")
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(key string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.pruneLocked(now)

	b, ok := rl.clients[key]
	if !ok || !now.Before(b.windowEnd) {
		rl.clients[key] = &clientBucket{count: 1, windowEnd: now.Add(rl.window)}
		return true, 0
	}

	if b.count >= rl.limit {
		return false, b.windowEnd.Sub(now)
	}

	b.count++
	return true, 0
}

// pruneLocked drops finished windows, at most once per window.
func (rl *RateLimiter) pruneLocked(now time.Time) {
	if now.Before(rl.nextPrune) {
		return
	}
	rl.nextPrune = now.Add(rl.window)

	for key, b := range rl.clients {
		if !now.Before(b.windowEnd) {
			delete(rl.clients, key)
		}
	}
}

// tracked reports how many keys hold a bucket.
func (rl *RateLimiter) tracked() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// KeyByIP limits by client address. It runs ahead of EnsureDevice so that
// discarding the device token does not reset the count.
func KeyByIP(c *gin.Context) string {
	return "ip:" + clientIP(c)
}

// KeyByDeviceOrIP limits by device once the device middleware has run.
func KeyByDeviceOrIP(c *gin.Context) string {
	if id, ok := DeviceIDFromContext(c); ok {
		return "device:" + id
	}

	return "ip:" + clientIP(c)
}

func clientIP(c *gin.Context) string {
	// Gin's ClientIP respects X-Forwarded-For / X-Real-IP if configured.
	ip := c.ClientIP()

	host, _, err := net.SplitHostPort(ip)
	if err == nil && host != "" {
		return host
	}

	return ip
}
