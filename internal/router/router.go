package router

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"hijabstore/internal/auth"
	"hijabstore/internal/handler"
	appmw "hijabstore/internal/middleware"
	"hijabstore/internal/model"
)

// Handlers groups the HTTP handlers the router mounts.
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Product *handler.ProductHandler
	Seed    *handler.SeedHandler
	Health  *handler.HealthHandler
}

// Options controls optional router behaviour.
type Options struct {
	// RequireAPIKey turns on the X-API-Key check: any key for search, an
	// admin key for /api/admin.
	RequireAPIKey bool
	// Keys resolves API keys. Required when RequireAPIKey is set.
	Keys auth.KeyStoreInterface
	// Metrics mounts the Prometheus middleware and /metrics.
	Metrics bool
}

// echoprometheus registers its collectors on the default registry, which
// refuses duplicates.
var metricsMiddleware = sync.OnceValue(func() echo.MiddlewareFunc {
	return echoprometheus.NewMiddleware("hijab_store")
})

// Register wires middleware and routes.
func Register(e *echo.Echo, log zerolog.Logger, opts Options, h Handlers) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(log))
	e.Use(middleware.CORS())
	if opts.Metrics {
		e.Use(metricsMiddleware())
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	e.GET("/healthz", h.Health.Live)
	e.GET("/health/ready", h.Health.Ready)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	var searchMW, adminMW []echo.MiddlewareFunc
	if opts.RequireAPIKey {
		searchMW = append(searchMW, appmw.APIKey(opts.Keys))
		adminMW = append(adminMW, appmw.APIKey(opts.Keys), appmw.RBAC(model.RoleAdmin))
	}

	api := e.Group("/api")

	// Public routes
	api.POST("/register", h.Auth.Register)
	api.POST("/login", h.Auth.Login)
	api.GET("/hijab", h.Product.Search, searchMW...)

	// Admin routes
	admin := api.Group("/admin", adminMW...)
	admin.GET("/users", h.User.ListUsers)
	admin.DELETE("/users/:id", h.User.DeleteUser)
	admin.PUT("/users/:id", h.User.UpdateUser)
	admin.POST("/seed/products", h.Seed.SeedProducts)
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
