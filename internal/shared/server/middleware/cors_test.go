package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func corsRouter(origins ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS(origins))
	router.GET("/api/resume/:id/render", func(c *gin.Context) {
		c.Header("ETag", `"abc"`)
		c.String(http.StatusOK, "<html></html>")
	})
	return router
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/resume/123/render", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp := httptest.NewRecorder()
	corsRouter("http://localhost:5173/").ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("Allow-Origin = %q", got)
	}
	if got := resp.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, "If-None-Match") {
		t.Fatalf("Allow-Headers = %q", got)
	}
	if got := resp.Header().Get("Access-Control-Max-Age"); got != "600" {
		t.Fatalf("Max-Age = %q", got)
	}
}

func TestCORSOrigins(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    string
	}{
		{name: "listed", allowed: []string{"https://app.test"}, origin: "https://app.test", want: "https://app.test"},
		{name: "unlisted", allowed: []string{"https://app.test"}, origin: "https://evil.test", want: ""},
		{name: "wildcard echoes origin", allowed: []string{"*"}, origin: "https://any.test", want: "https://any.test"},
		{name: "no origin header", allowed: []string{"*"}, origin: "", want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/resume/123/render", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			resp := httptest.NewRecorder()
			corsRouter(tc.allowed...).ServeHTTP(resp, req)

			if resp.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", resp.Code)
			}
			if got := resp.Header().Get("Access-Control-Allow-Origin"); got != tc.want {
				t.Fatalf("Allow-Origin = %q, want %q", got, tc.want)
			}
			if tc.want != "" {
				expose := resp.Header().Get("Access-Control-Expose-Headers")
				for _, h := range []string{"ETag", "Content-Disposition"} {
					if !strings.Contains(expose, h) {
						t.Fatalf("Expose-Headers %q missing %s", expose, h)
					}
				}
			}
		})
	}
}
