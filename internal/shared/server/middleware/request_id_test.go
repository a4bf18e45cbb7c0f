package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name    string
		inbound string
		reuse   bool
	}{
		{name: "missing", inbound: "", reuse: false},
		{name: "well formed", inbound: "web-7f3a.42", reuse: true},
		{name: "control characters", inbound: "abc\tdef", reuse: false},
		{name: "too long", inbound: strings.Repeat("a", maxRequestIDLen+1), reuse: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var seen string
			router := gin.New()
			router.Use(RequestID())
			router.GET("/api/templates", func(c *gin.Context) {
				seen = RequestIDFromContext(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/templates", nil)
			if tc.inbound != "" {
				req.Header.Set(HeaderRequestID, tc.inbound)
			}
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			got := resp.Header().Get(HeaderRequestID)
			if got != seen {
				t.Fatalf("header %q != context %q", got, seen)
			}
			if tc.reuse {
				if got != tc.inbound {
					t.Fatalf("expected inbound id to be reused, got %q", got)
				}
				return
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Fatalf("expected a generated uuid, got %q", got)
			}
		})
	}
}
