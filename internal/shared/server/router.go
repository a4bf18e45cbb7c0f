package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "resume-builder/internal/auth"
	"resume-builder/internal/resumes"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/users"
)

const authRateLimitGroup = "AUTH"

// RouterDeps carries the handlers mounted by NewRouter. Nil handlers are skipped.
type RouterDeps struct {
	Config        config.Config
	Verifier      middleware.TokenVerifier
	Health        *health.Service
	UserHandler   *users.Handler
	ResumeHandler *resumes.Handler
	GoogleAuth    *googleauth.GoogleService
	Limiter       *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				authRateLimitGroup: {Rate: deps.Config.AuthRateLimitRPS, Burst: deps.Config.AuthRateLimitBurst},
			},
			GroupFor: rateLimitGroup,
			Limiter:  deps.Limiter,
		}),
	)

	requireAuth := middleware.Auth(deps.Verifier)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}
		status := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !status.OK {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})

	authGroup := api.Group("/auth")
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(authGroup, requireAuth)
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(authGroup)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(api, requireAuth)
	}

	return r
}

// rateLimitGroup throttles the password endpoints, the only ones an
// unauthenticated caller can hammer to guess credentials.
func rateLimitGroup(c *gin.Context) string {
	switch c.FullPath() {
	case "/api/auth/login", "/api/auth/register":
		return authRateLimitGroup
	}
	return ""
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
