package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nessydroid1192/may-tejiarte/internal/assistant"
	"github.com/nessydroid1192/may-tejiarte/internal/community"
	"github.com/nessydroid1192/may-tejiarte/internal/culture"
	"github.com/nessydroid1192/may-tejiarte/internal/journal"
	"github.com/nessydroid1192/may-tejiarte/internal/library"
	"github.com/nessydroid1192/may-tejiarte/internal/services/health"
	"github.com/nessydroid1192/may-tejiarte/internal/session"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/config"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/metrics"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/server/middleware"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/server/respond"
)

const apiPrefix = "/api/v1"

// RouterDeps carries what the router needs to build handlers.
type RouterDeps struct {
	Config   config.Config
	Sessions *session.Registry
	Health   *health.Service
	// Limiter overrides the rate limiter clock in tests.
	Limiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.SessionID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group(apiPrefix)
	api.GET("/health", func(c *gin.Context) {
		report := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	})

	api.Use(
		middleware.RateLimit(analyzeRateLimit(deps)),
		session.Attach(deps.Sessions),
	)

	maxBytes := deps.Config.MaxUploadBytes
	session.NewHandler().RegisterRoutes(api)
	assistant.NewHandler(session.AssistantResolver).RegisterRoutes(api)
	culture.NewHandler(session.CultureResolver).RegisterRoutes(api)
	journal.NewHandler(session.JournalResolver, maxBytes).RegisterRoutes(api)
	library.NewHandler(session.LibraryResolver, maxBytes).RegisterRoutes(api)
	community.NewHandler().RegisterRoutes(api)

	return r
}

func analyzeRateLimit(deps RouterDeps) middleware.RateLimitConfig {
	cfg := deps.Config
	rules := map[string]middleware.RateLimitRule{}
	if cfg.AnalyzeRatePerMin > 0 && cfg.AnalyzeBurst > 0 {
		rules[middleware.AnalyzeRateLimitGroup] = middleware.RateLimitRule{
			Rate:  cfg.AnalyzeRatePerMin / 60,
			Burst: cfg.AnalyzeBurst,
		}
	}
	return middleware.RateLimitConfig{
		Rules: rules,
		GroupFor: middleware.GroupByRoute(map[string]string{
			"POST " + apiPrefix + "/assistant/analyze": middleware.AnalyzeRateLimitGroup,
			"POST " + apiPrefix + "/culture/validate":  middleware.AnalyzeRateLimitGroup,
			"POST " + apiPrefix + "/journal/entries":   middleware.AnalyzeRateLimitGroup,
		}),
		Limiter: deps.Limiter,
	}
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
