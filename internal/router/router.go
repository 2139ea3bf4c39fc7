package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/sitehub-api/internal/handler"
	"github.com/jwalitptl/sitehub-api/internal/middleware"
	"github.com/jwalitptl/sitehub-api/pkg/metrics"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine  *gin.Engine
	h       *handler.Handler
	health  Handler
	viewer  []Handler
	metrics *metrics.Metrics
}

type RouterConfig struct {
	Mode       string
	RateLimit  rate.Limit
	RateBurst  int
	Timeout    time.Duration
	SizeLimit  middleware.SizeLimitConfig
	CORSConfig middleware.CORSConfig
}

// NewRouter wires the middleware chain. Viewer handlers are mounted under
// /api/v1 behind the viewer middleware; health is public.
func NewRouter(h *handler.Handler, health Handler, viewer []Handler, m *metrics.Metrics, config RouterConfig) *Router {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}

	engine := gin.New()

	r := &Router{
		engine:  engine,
		h:       h,
		health:  health,
		viewer:  viewer,
		metrics: m,
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
	)
	if config.Timeout > 0 {
		engine.Use(middleware.Timeout(middleware.TimeoutConfig{Duration: config.Timeout}))
	}

	engine.Use(
		middleware.CORS(config.CORSConfig),
		middleware.SizeLimit(config.SizeLimit),
	)

	if config.RateLimit > 0 {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	root := r.engine.Group("")
	r.health.RegisterRoutes(root)
	root.GET("/metrics", r.h.MetricsHandler)

	api := r.engine.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})
	api.Use(middleware.Viewer())

	for _, vh := range r.viewer {
		vh.RegisterRoutes(api)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		if r.metrics == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		r.metrics.RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
		r.metrics.RequestTotal.WithLabelValues(c.Request.Method, route, status).Inc()
	}
}
