package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/venue-booking/internal/config"
	"github.com/deppfellow/venue-booking/internal/errs"
	"github.com/deppfellow/venue-booking/internal/server"
)

func testServer(rateLimit config.RateLimitConfig) *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary:   config.Primary{Env: "test"},
			Server:    config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
			RateLimit: rateLimit,
		},
		Logger: &logger,
	}
}

func serve(e *echo.Echo, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	rec := serve(e, http.MethodGet, "/", http.Header{RequestIDHeader: {"abc-123"}})
	assert.Equal(t, "abc-123", rec.Body.String())
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	rec = serve(e, http.MethodGet, "/", nil)
	assert.Len(t, rec.Body.String(), 36)

	rec = serve(e, http.MethodGet, "/", http.Header{RequestIDHeader: {strings.Repeat("x", 500)}})
	assert.Len(t, rec.Body.String(), 36)

	rec = serve(e, http.MethodGet, "/", http.Header{RequestIDHeader: {"has space"}})
	assert.Len(t, rec.Body.String(), 36)
}

func TestGetLogger_FallsBackToNop(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.NotNil(t, GetLogger(c))
}

func TestGlobalErrorHandler(t *testing.T) {
	s := testServer(config.RateLimitConfig{Disabled: true})
	mw := NewMiddlewares(s)

	e := echo.New()
	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler
	e.GET("/missing", func(c echo.Context) error {
		return errs.NotFound("venue", 42)
	})
	e.GET("/invalid", func(c echo.Context) error {
		return errs.Invalid("artist", "Artist name is required", errs.FieldError{Field: "name", Error: "is required"})
	})
	e.GET("/dangling", func(c echo.Context) error {
		return errs.DanglingReference("venue", 1, "show", 2)
	})
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("boom")
	})

	tests := []struct {
		path   string
		status int
		code   string
	}{
		{"/missing", http.StatusNotFound, "VENUE_NOT_FOUND"},
		{"/invalid", http.StatusBadRequest, "ARTIST_INVALID"},
		{"/dangling", http.StatusInternalServerError, "INTEGRITY_ERROR"},
		{"/boom", http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{"/no-such-route", http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serve(e, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.status, rec.Code)

			var body errs.HTTPError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.status, body.Status)
		})
	}
}

func TestRateLimit_MemoryStore(t *testing.T) {
	s := testServer(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 2, ExpiresIn: time.Minute})
	mw := NewMiddlewares(s)

	e := echo.New()
	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler
	e.Use(mw.RateLimit.Limit())
	e.GET("/", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	assert.Equal(t, http.StatusNoContent, serve(e, http.MethodGet, "/", nil).Code)
	assert.Equal(t, http.StatusNoContent, serve(e, http.MethodGet, "/", nil).Code)

	rec := serve(e, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOO_MANY_REQUESTS")
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(errs.NotFound("venue", 1)))
	assert.True(t, IsClientError(errs.MissingReference("artist", 1)))
	assert.True(t, IsClientError(echo.ErrNotFound))
	assert.False(t, IsClientError(errs.DanglingReference("venue", 1, "show", 2)))
	assert.False(t, IsClientError(errors.New("boom")))
}

func TestRateLimit_Disabled(t *testing.T) {
	s := testServer(config.RateLimitConfig{Disabled: true, Burst: 1, RequestsPerSecond: 1})

	e := echo.New()
	e.Use(NewRateLimitMiddleware(s).Limit())
	e.GET("/", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	for range 5 {
		assert.Equal(t, http.StatusNoContent, serve(e, http.MethodGet, "/", nil).Code)
	}
}

type countingStore struct{ calls int }

func (s *countingStore) Allow(string) (bool, error) {
	s.calls++
	return true, nil
}

func TestRedisRateLimiterStore_FallsBackWhenUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 10 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	fallback := &countingStore{}
	logger := zerolog.Nop()
	store := NewRedisRateLimiterStore(client, 5, fallback, &logger)

	allowed, err := store.Allow("10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, fallback.calls)
}

func TestWindowKey(t *testing.T) {
	at := time.Date(2026, 3, 14, 18, 0, 0, 900_000_000, time.UTC)

	assert.Equal(t, windowKey("10.0.0.1", at), windowKey("10.0.0.1", at.Add(50*time.Millisecond)))
	assert.NotEqual(t, windowKey("10.0.0.1", at), windowKey("10.0.0.1", at.Add(200*time.Millisecond)))
	assert.True(t, strings.HasPrefix(windowKey("10.0.0.1", at), rateLimitKeyPrefix))
}
