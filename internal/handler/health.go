package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/venue-booking/internal/middleware"
	"github.com/deppfellow/venue-booking/internal/server"
)

const (
	healthCheckTimeout = 5 * time.Second

	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

type dependencyStatus struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                      `json:"status"`
	Timestamp   time.Time                   `json:"timestamp"`
	Environment string                      `json:"environment"`
	Database    string                      `json:"database"`
	Checks      map[string]dependencyStatus `json:"checks"`
}

// HealthHandler reports whether the service and its dependencies are reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth pings the database and, when configured, Redis.
//
// The database decides the answer: 200 when it responds, 503 otherwise.
// Redis only backs the shared rate limiter, so its failure is reported
// without failing the check.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().Str("operation", "health_check").Logger()

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.checkTimeout())
	defer cancel()

	response := healthResponse{
		Status:      statusHealthy,
		Timestamp:   start.UTC(),
		Environment: h.server.Config.Primary.Env,
		Database:    h.server.DB.Driver,
		Checks:      make(map[string]dependencyStatus),
	}

	response.Checks["database"] = h.check(ctx, "database", h.server.DB.Ping)
	if response.Checks["database"].Status != statusHealthy {
		response.Status = statusUnhealthy
	}

	if h.server.Redis != nil {
		response.Checks["redis"] = h.check(ctx, "redis", func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
	}

	status := http.StatusOK
	if response.Status != statusHealthy {
		status = http.StatusServiceUnavailable
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
	}

	return c.JSON(status, response)
}

// check runs ping, logs failures and reports them to New Relic.
func (h *HealthHandler) check(ctx context.Context, name string, ping func(context.Context) error) dependencyStatus {
	start := time.Now()
	err := ping(ctx)
	elapsed := time.Since(start)

	if err == nil {
		return dependencyStatus{Status: statusHealthy, ResponseTime: elapsed.String()}
	}

	h.server.Logger.Error().
		Err(err).
		Str("check", name).
		Dur("response_time", elapsed).
		Msg("health check failed")

	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
			"check_type":       name,
			"operation":        "health_check",
			"error_type":       name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
	}

	return dependencyStatus{
		Status:       statusUnhealthy,
		ResponseTime: elapsed.String(),
		Error:        err.Error(),
	}
}

func (h *HealthHandler) checkTimeout() time.Duration {
	if obs := h.server.Config.Observability; obs != nil && obs.HealthChecks.Timeout > 0 {
		return obs.HealthChecks.Timeout
	}
	return healthCheckTimeout
}
