package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/newyears/event-organizer/internal/api/handler"
	"github.com/newyears/event-organizer/internal/api/middleware"
	"github.com/newyears/event-organizer/internal/core/domain"
	"github.com/newyears/event-organizer/internal/core/ports"

	_ "github.com/newyears/event-organizer/docs"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Auth   ports.AuthService
	Users  ports.UserService
	Events ports.EventService
	Checks []handler.DependencyCheck
	Log    zerolog.Logger
	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// default Prometheus registry, which also holds the custom metrics.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(promMiddlewareConfig(deps.Registry)))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	eventHandler := handler.NewEventHandler(deps.Events)
	healthHandler := handler.NewHealthHandler(deps.Checks...)
	requireAuth := middleware.Auth(deps.Auth)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, requireAuth)

	users := auth.Group("/users", requireAuth, middleware.RequireRole(domain.RoleAdmin))
	users.GET("", userHandler.List)
	users.PATCH("/:id", userHandler.Update)

	// --- Event routes ---
	events := e.Group("/events")
	events.GET("", eventHandler.List)
	events.GET("/:id", eventHandler.Get)
	events.POST("", eventHandler.Create, requireAuth)
	events.PATCH("/:id", eventHandler.Update, requireAuth)
	events.DELETE("/:id", eventHandler.Delete, requireAuth)
	events.POST("/:id/participants", eventHandler.AddParticipant, requireAuth)
	events.DELETE("/:id/participants/:user_id", eventHandler.RemoveParticipant, requireAuth)
	events.PATCH("/:id/participants/:user_id/payment", eventHandler.UpdatePayment, requireAuth)

	// --- Health probes and tooling (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(promHandlerConfig(deps.Registry)))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger logs one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			switch {
			case v.Status >= 500:
				ev = log.Error().Err(v.Error)
			case v.Error != nil:
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

func promMiddlewareConfig(reg *prometheus.Registry) echoprometheus.MiddlewareConfig {
	cfg := echoprometheus.MiddlewareConfig{Subsystem: "event_organizer"}
	if reg != nil {
		cfg.Registerer = reg
	}
	return cfg
}

func promHandlerConfig(reg *prometheus.Registry) echoprometheus.HandlerConfig {
	var cfg echoprometheus.HandlerConfig
	if reg != nil {
		cfg.Gatherer = reg
	}
	return cfg
}
