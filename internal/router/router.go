package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clinicore/clinic-api/internal/handler"
	"github.com/clinicore/clinic-api/internal/middleware"
	"github.com/clinicore/clinic-api/internal/model"
)

// Handler is anything that can attach its routes to a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine        *gin.Engine
	auth          *middleware.AuthMiddleware
	authH         Handler
	patientH      patientHandler
	doctorH       doctorHandler
	appointmentH  Handler
	queueH        Handler
	messageH      Handler
	notificationH Handler
	statisticsH   Handler
	settingsH     settingsHandler
	auditH        Handler
	healthH       *handler.Handler
	metrics       *routerMetrics
}

// Handlers that split role-gated routes off the common set.
type (
	patientHandler interface {
		Handler
		RegisterClinicalRoutes(*gin.RouterGroup)
	}
	doctorHandler interface {
		Handler
		RegisterAdminRoutes(*gin.RouterGroup)
	}
	settingsHandler interface {
		Handler
		RegisterAdminRoutes(*gin.RouterGroup)
	}
)

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	CORS           middleware.CORSConfig
	MetricsPrefix  string
}

type Handlers struct {
	Auth         Handler
	Patient      patientHandler
	Doctor       doctorHandler
	Appointment  Handler
	Queue        Handler
	Message      Handler
	Notification Handler
	Statistics   Handler
	Settings     settingsHandler
	Audit        Handler
	Health       *handler.Handler
}

func NewRouter(auth *middleware.AuthMiddleware, h Handlers, config Config) *Router {
	gin.SetMode(gin.ReleaseMode)
	middleware.RegisterValidators()
	engine := gin.New()

	metrics := initRouterMetrics(config.MetricsPrefix)

	r := &Router{
		engine:        engine,
		auth:          auth,
		authH:         h.Auth,
		patientH:      h.Patient,
		doctorH:       h.Doctor,
		appointmentH:  h.Appointment,
		queueH:        h.Queue,
		messageH:      h.Message,
		notificationH: h.Notification,
		statisticsH:   h.Statistics,
		settingsH:     h.Settings,
		auditH:        h.Audit,
		healthH:       h.Health,
		metrics:       metrics,
	}

	engine.Use(
		gin.Recovery(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.RequestID(),
	)

	engine.Use(middleware.CORS(config.CORS))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   config.RateLimitRPS,
		Burst: config.RateLimitBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	r.engine.GET("/health", r.healthH.HealthCheck)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	// Every route sees the session user when one exists; auth.me reads
	// a possibly-absent user.
	api.Use(r.auth.Resolve())

	r.setupPublicRoutes(api)

	protected := api.Group("")
	protected.Use(r.auth.RequireSession())
	r.setupProtectedRoutes(protected)
}

func (r *Router) setupPublicRoutes(rg *gin.RouterGroup) {
	r.authH.RegisterRoutes(rg)
}

func (r *Router) setupProtectedRoutes(rg *gin.RouterGroup) {
	// Any signed-in user: own messages and notifications.
	r.messageH.RegisterRoutes(rg)
	r.notificationH.RegisterRoutes(rg)

	// Read side open to all signed-in users.
	r.doctorH.RegisterRoutes(rg)
	r.settingsH.RegisterRoutes(rg)

	// Front-desk and clinical staff.
	staff := rg.Group("", r.auth.RequireRole(model.StaffRoles...))
	r.patientH.RegisterRoutes(staff)
	r.appointmentH.RegisterRoutes(staff)
	r.queueH.RegisterRoutes(staff)
	r.statisticsH.RegisterRoutes(staff)

	// Medical record writes need a clinical role.
	clinical := rg.Group("", r.auth.RequireRole(model.UserRoleDoctor, model.UserRoleAdmin))
	r.patientH.RegisterClinicalRoutes(clinical)

	// Practice configuration is admin territory.
	admin := rg.Group("", r.auth.RequireRole(model.UserRoleAdmin))
	r.doctorH.RegisterAdminRoutes(admin)
	r.settingsH.RegisterAdminRoutes(admin)
	r.auditH.RegisterRoutes(admin)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	m := &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
	prometheus.MustRegister(m.requestDuration, m.requestTotal, m.errorTotal)
	return m
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
