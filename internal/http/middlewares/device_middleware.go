package middlewares

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/geocoder89/opay/internal/actorctx"
	"github.com/geocoder89/opay/internal/auth"
	"github.com/gin-gonic/gin"
)

const (
	DeviceCookieName  = "device_token"
	DeviceTokenHeader = "X-Device-Token"
)

// Keep this small interface so tests can fake it easily.
type DeviceTokens interface {
	VerifyDeviceToken(token string) (*auth.Claims, error)
	IssueDeviceToken() (raw string, deviceID string, expiresAt time.Time, err error)
}

type DeviceMiddleware struct {
	tokens       DeviceTokens
	secureCookie bool
}

func NewDeviceMiddleware(tokens DeviceTokens, secureCookie bool) *DeviceMiddleware {
	return &DeviceMiddleware{tokens: tokens, secureCookie: secureCookie}
}

// EnsureDevice resolves the calling device from its token, minting a new
// device when the token is missing or no longer valid. A device is to this
// service what a browser profile is to localStorage.
func (m *DeviceMiddleware) EnsureDevice() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := presentedToken(c)

		if raw != "" {
			claims, err := m.tokens.VerifyDeviceToken(raw)
			if err == nil {
				setDevice(c, claims.DeviceID)
				c.Next()
				return
			}
			slog.Default().DebugContext(c.Request.Context(), "device token rejected", "err", err)
		}

		raw, deviceID, expiresAt, err := m.tokens.IssueDeviceToken()
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "internal_error", "Could not issue device token")
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(
			DeviceCookieName,
			raw,
			int(time.Until(expiresAt).Seconds()),
			"/",
			"",
			m.secureCookie,
			true, // HttpOnly.
		)
		c.Header(DeviceTokenHeader, raw)

		setDevice(c, deviceID)
		c.Next()
	}
}

func presentedToken(c *gin.Context) string {
	if v := strings.TrimSpace(c.GetHeader(DeviceTokenHeader)); v != "" {
		return v
	}

	v, err := c.Cookie(DeviceCookieName)
	if err != nil {
		return ""
	}
	return v
}

func setDevice(c *gin.Context, deviceID string) {
	c.Set(CtxDeviceID, deviceID)
	c.Request = c.Request.WithContext(actorctx.WithDeviceID(c.Request.Context(), deviceID))
}

// DeviceIDFromContext saves handlers from knowing the magic key.
func DeviceIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(CtxDeviceID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
