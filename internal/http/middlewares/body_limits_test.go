package middlewares

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type errorEnvelope struct {
	Error struct {
		Code      string `json:"code"`
		RequestID string `json:"requestId"`
	} `json:"error"`
}

func bodyRouter(max int64) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestID(), MaxBodyBytes(max))
	r.POST("/echo", RequireJSON(), func(c *gin.Context) {
		b, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.String(http.StatusOK, "%d", len(b))
	})
	r.GET("/echo", RequireJSON(), func(c *gin.Context) { c.Status(http.StatusOK) })

	return r
}

func TestRequireJSON(t *testing.T) {
	r := bodyRouter(0)

	cases := []struct {
		name        string
		method      string
		contentType string
		want        int
	}{
		{"json", http.MethodPost, "application/json", http.StatusOK},
		{"json with charset", http.MethodPost, "application/json; charset=utf-8", http.StatusOK},
		{"mixed case", http.MethodPost, "Application/JSON", http.StatusOK},
		{"form", http.MethodPost, "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType},
		{"json lookalike", http.MethodPost, "application/jsonp", http.StatusUnsupportedMediaType},
		{"missing", http.MethodPost, "", http.StatusUnsupportedMediaType},
		{"get is exempt", http.MethodGet, "", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/echo", bytes.NewBufferString("{}"))
			if tc.contentType != "" {
				req.Header.Set("Content-Type", tc.contentType)
			}
			req.Header.Set("X-Request-Id", "req-1")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Fatalf("got %d, want %d", w.Code, tc.want)
			}
			if tc.want != http.StatusUnsupportedMediaType {
				return
			}

			var env errorEnvelope
			if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
				t.Fatalf("bad body: %v", err)
			}
			if env.Error.Code != "unsupported_media_type" || env.Error.RequestID != "req-1" {
				t.Fatalf("unexpected envelope: %+v", env.Error)
			}
		})
	}
}

func TestMaxBodyBytes(t *testing.T) {
	big := bytes.Repeat([]byte("a"), 64)

	t.Run("declared length over cap is refused up front", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewReader(big))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		bodyRouter(16).ServeHTTP(w, req)

		if w.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("got %d", w.Code)
		}
		var env errorEnvelope
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil || env.Error.Code != "payload_too_large" {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
	})

	t.Run("unknown length is cut off while reading", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewReader(big))
		req.Header.Set("Content-Type", "application/json")
		req.ContentLength = -1

		w := httptest.NewRecorder()
		bodyRouter(16).ServeHTTP(w, req)

		if w.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("got %d", w.Code)
		}
	})

	t.Run("zero cap leaves bodies alone", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewReader(big))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		bodyRouter(0).ServeHTTP(w, req)

		if w.Code != http.StatusOK || w.Body.String() != "64" {
			t.Fatalf("got %d %q", w.Code, w.Body.String())
		}
	})
}
