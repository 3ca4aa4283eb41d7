package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"hijabstore/internal/logger"
)

// Pinger is anything that can report its reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

// Ping calls f.
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler creates a health handler. db and cache may be nil.
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// ReadinessResponse reports each dependency.
type ReadinessResponse struct {
	Status string `json:"status"`
	MySQL  string `json:"mysql"`
	Redis  string `json:"redis"`
}

// Live answers as long as the process serves HTTP.
func (h *HealthHandler) Live(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Ready reports 503 when MySQL does not answer. Redis being down only
// degrades the service, which then runs uncached.
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	resp := ReadinessResponse{Status: "ok", MySQL: "ok", Redis: "ok"}
	status := http.StatusOK
	log := logger.Get()

	if err := ping(ctx, h.db); err != nil {
		log.Warn().Err(err).Msg("mysql not ready")
		resp.MySQL = err.Error()
		resp.Status = "unavailable"
		status = http.StatusServiceUnavailable
	}
	if err := ping(ctx, h.cache); err != nil {
		log.Warn().Err(err).Msg("redis not reachable")
		resp.Redis = err.Error()
		if status == http.StatusOK {
			resp.Status = "degraded"
		}
	}

	return c.JSON(status, resp)
}

func ping(ctx context.Context, p Pinger) error {
	if p == nil {
		return nil
	}
	return p.Ping(ctx)
}
