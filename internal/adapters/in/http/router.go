package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const (
	APIPrefix             = "/api/v1"
	DefaultRequestTimeout = 10 * time.Second
)

type RouterConfig struct {
	// RequestTimeout bounds every request except the event stream.
	RequestTimeout time.Duration
	// ExposeInternalErrors puts the cause of 5xx replies into the body.
	ExposeInternalErrors bool
	// LogLevel is the level of echo's own logger: debug, info, warn, error or off.
	LogLevel string
}

// Readiness reports whether the service can take traffic.
type Readiness func(ctx context.Context) error

// NewRouter assembles the echo instance: public endpoints, then the
// authenticated and contract-validated API group.
func NewRouter(
	cfg RouterConfig,
	server *Server,
	auth *Authenticator,
	validator echo.MiddlewareFunc,
	ready Readiness,
	logger *slog.Logger,
) *echo.Echo {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(echoLogLevel(cfg.LogLevel))
	e.HTTPErrorHandler = NewErrorHandler(cfg.ExposeInternalErrors, logger)
	// event streams never go idle on their own
	e.Server.RegisterOnShutdown(server.hub.Close)

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == APIPrefix+"/events"
		},
		Timeout: cfg.RequestTimeout,
	}))

	e.GET("/health", func(c echo.Context) error {
		if ready != nil {
			if err := ready(c.Request().Context()); err != nil {
				return c.String(http.StatusServiceUnavailable, "Unhealthy")
			}
		}
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group(APIPrefix, auth.Middleware())
	if validator != nil {
		api.Use(validator)
	}

	api.POST("/orders", server.CreateOrder)
	api.GET("/orders", server.ListOrders)
	api.GET("/orders/:id", server.GetOrder)
	api.PATCH("/orders/:id", server.UpdateOrder)
	api.DELETE("/orders/:id", server.DeleteOrder)
	api.POST("/orders/:id/reactivate", server.ReactivateOrder)
	api.POST("/orders/:id/accept", server.AcceptProposal)
	api.POST("/orders/:id/reject", server.RejectProposal)

	api.GET("/notifications", server.ListNotifications)
	api.PATCH("/notifications/read-all", server.MarkAllNotificationsRead)
	api.PATCH("/notifications/:id/read", server.MarkNotificationRead)

	api.GET("/events", server.StreamEvents)

	return e
}

func echoLogLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
