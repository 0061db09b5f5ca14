package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/resumehub/notify-api/internal/handler"
	applicationHandler "github.com/resumehub/notify-api/internal/handler/application"
	authHandler "github.com/resumehub/notify-api/internal/handler/auth"
	newsletterHandler "github.com/resumehub/notify-api/internal/handler/newsletter"
	notificationHandler "github.com/resumehub/notify-api/internal/handler/notification"
	settingsHandler "github.com/resumehub/notify-api/internal/handler/settings"
	"github.com/resumehub/notify-api/internal/middleware"
)

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	CORSConfig     middleware.CORSConfig
	MetricsPrefix  string
}

type Router struct {
	engine        *gin.Engine
	auth          *middleware.AuthMiddleware
	h             *handler.Handler
	authH         *authHandler.Handler
	notificationH *notificationHandler.Handler
	newsletterH   *newsletterHandler.Handler
	applicationH  *applicationHandler.Handler
	settingsH     *settingsHandler.Handler
	metrics       *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

func initRouterMetrics(prefix string) *routerMetrics {
	if prefix == "" {
		prefix = "notify_api"
	}

	m := &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_requests_total",
			Help: "HTTP requests processed",
		}, []string{"method", "path", "status"}),
		errorTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_errors_total",
			Help: "HTTP requests answered with 5xx",
		}, []string{"method", "path"}),
	}
	prometheus.MustRegister(m.requestDuration, m.requestTotal, m.errorTotal)
	return m
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	h *handler.Handler,
	authH *authHandler.Handler,
	notificationH *notificationHandler.Handler,
	newsletterH *newsletterHandler.Handler,
	applicationH *applicationHandler.Handler,
	settingsH *settingsHandler.Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:        engine,
		auth:          auth,
		h:             h,
		authH:         authH,
		notificationH: notificationH,
		newsletterH:   newsletterH,
		applicationH:  applicationH,
		settingsH:     settingsH,
		metrics:       initRouterMetrics(config.MetricsPrefix),
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.DefaultTimeoutConfig()),
		middleware.CORS(config.CORSConfig),
	)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   config.RateLimitRPS,
		Burst: config.RateLimitBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		if c.Writer.Status() >= 500 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path).Inc()
		}
	}
}

// Setup registers all routes
func (r *Router) Setup() {
	r.engine.GET("/health", r.h.Health)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")

	// Public
	r.authH.RegisterRoutes(api)
	r.newsletterH.RegisterPublicRoutes(api)

	// Authenticated session
	authed := api.Group("", r.auth.Authenticate())
	r.settingsH.RegisterRoutes(authed)

	// Admin only: everything that sends mail on behalf of the platform
	admin := api.Group("", r.auth.Authenticate(), r.auth.RequireAdmin())
	r.notificationH.RegisterRoutes(admin)
	r.newsletterH.RegisterRoutes(admin)
	r.applicationH.RegisterRoutes(admin)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
