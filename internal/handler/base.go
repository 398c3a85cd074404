package handler

import (
	"reflect"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/deppfellow/venue-booking/internal/middleware"
	"github.com/deppfellow/venue-booking/internal/server"
	"github.com/deppfellow/venue-booking/internal/validation"
)

// Handler carries the application container. Concrete handlers embed it.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// logger returns the request-scoped logger set by the context middleware,
// falling back to the server logger when the route runs without it.
func (h Handler) logger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(middleware.LoggerKey).(*zerolog.Logger); ok && l != nil {
		return l
	}
	if h.server != nil && h.server.Logger != nil {
		return h.server.Logger
	}
	return middleware.GetLogger(c)
}

// HandlerFunc is a typed endpoint: it receives a bound, validated request
// and returns the response body.
//
// Req is a pointer to a payload struct (e.g. *model.VenuePayload). The value
// given to Handle is only a template; each request binds into a fresh one.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// HandlerFuncNoContent is a typed endpoint without a response body.
type HandlerFuncNoContent[Req validation.Validatable] func(c echo.Context, req Req) error

// responder writes a successful result.
type responder interface {
	write(c echo.Context, result any) error
	operation() string
}

type jsonResponder struct{ status int }

func (r jsonResponder) write(c echo.Context, result any) error { return c.JSON(r.status, result) }
func (r jsonResponder) operation() string                      { return "handler" }

type noContentResponder struct{ status int }

func (r noContentResponder) write(c echo.Context, _ any) error { return c.NoContent(r.status) }
func (r noContentResponder) operation() string                 { return "handler_no_content" }

// Handle adapts a typed endpoint into an echo.HandlerFunc that binds and
// validates the request, logs and traces each phase and writes the result
// as JSON with status.
//
//	venues.POST("", handler.Handle(h.Venue.Handler, h.Venue.CreateVenue, http.StatusCreated, &model.VenuePayload{}))
func Handle[Req validation.Validatable, Res any](
	h Handler,
	fn HandlerFunc[Req, Res],
	status int,
	template Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return run(c, h.logger(c), newRequest(template), func(c echo.Context, req Req) (any, error) {
			return fn(c, req)
		}, jsonResponder{status: status})
	}
}

// HandleNoContent is Handle for endpoints that answer without a body,
// such as deletes returning 204.
func HandleNoContent[Req validation.Validatable](
	h Handler,
	fn HandlerFuncNoContent[Req],
	status int,
	template Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return run(c, h.logger(c), newRequest(template), func(c echo.Context, req Req) (any, error) {
			return nil, fn(c, req)
		}, noContentResponder{status: status})
	}
}

// newRequest returns a zeroed payload of the same type as template, so each
// request binds into its own value. Non-pointer templates are returned as is.
func newRequest[Req validation.Validatable](template Req) Req {
	t := reflect.TypeOf(template)
	if t == nil || t.Kind() != reflect.Pointer {
		return template
	}
	return reflect.New(t.Elem()).Interface().(Req)
}

// run is the shared request pipeline: bind and validate, call the endpoint,
// write the response. Errors are returned untouched so GlobalErrorHandler
// shapes the response.
func run[Req validation.Validatable](
	c echo.Context,
	base *zerolog.Logger,
	req Req,
	endpoint func(c echo.Context, req Req) (any, error),
	resp responder,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := base.With().
		Str("operation", resp.operation()).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	validationStart := time.Now()
	err := validation.BindAndValidate(c, req)
	validationDuration := time.Since(validationStart)
	trace(txn, "validation", validationDuration, err)

	if err != nil {
		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")
		return err
	}

	endpointStart := time.Now()
	result, err := endpoint(c, req)
	endpointDuration := time.Since(endpointStart)
	trace(txn, "handler", endpointDuration, err)

	if err != nil {
		logFailure(logger, err).
			Dur("handler_duration", endpointDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")
		return err
	}

	if txn != nil {
		txn.AddAttribute("total.duration_ms", time.Since(start).Milliseconds())
	}

	logger.Info().
		Dur("validation_duration", validationDuration).
		Dur("handler_duration", endpointDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request completed successfully")

	return resp.write(c, result)
}

// trace records the outcome and duration of one pipeline phase on the
// current New Relic transaction, if any.
func trace(txn *newrelic.Transaction, phase string, elapsed time.Duration, err error) {
	if txn == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failed"
		txn.NoticeError(nrpkgerrors.Wrap(err))
	}

	txn.AddAttribute(phase+".status", status)
	txn.AddAttribute(phase+".duration_ms", elapsed.Milliseconds())
}

// logFailure logs expected client errors (4xx) as warnings and everything
// else as errors.
func logFailure(logger zerolog.Logger, err error) *zerolog.Event {
	if middleware.IsClientError(err) {
		return logger.Warn().Err(err)
	}
	return logger.Error().Err(err)
}
