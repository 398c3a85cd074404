// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/venue-booking/internal/handler"
	"github.com/deppfellow/venue-booking/internal/middleware"
	"github.com/deppfellow/venue-booking/internal/server"
)

// NewRouter builds the Echo instance with the global middleware chain and
// every route registered.
//
// Order matters: the rate limiter rejects early, the request ID exists before
// tracing and the context logger read it, and Recover sits closest to the
// handlers so panics still pass through logging and the error handler.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.RateLimit.Limit(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerBookingRoutes(router, h)

	return router
}
