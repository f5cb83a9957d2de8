package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes caps request bodies. Reading past the cap fails with
// *http.MaxBytesError, which the JSON binder turns into a 413.
// A cap of zero or less leaves bodies unbounded.
func MaxBodyBytes(max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if max > 0 && c.Request.Body != nil && c.Request.Body != http.NoBody {
			if c.Request.ContentLength > max {
				abortWithError(c, http.StatusRequestEntityTooLarge, "payload_too_large", "Request body is too large")
				return
			}
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		}

		c.Next()
	}
}
