package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/deppfellow/venue-booking/internal/config"
	"github.com/deppfellow/venue-booking/internal/errs"
	"github.com/deppfellow/venue-booking/internal/server"
)

const (
	rateLimitKeyPrefix = "booking:ratelimit:"
	rateLimitWindow    = time.Second
	redisAllowTimeout  = 50 * time.Millisecond
)

// RateLimitMiddleware limits requests per client IP. With Redis configured
// the count is shared across instances; otherwise each instance keeps its
// own in-memory token buckets.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit returns the enforcing middleware, or a pass-through when rate
// limiting is disabled.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	cfg := r.server.Config.RateLimit
	if cfg.Disabled {
		return passThrough
	}

	return echoMiddleware.RateLimiterWithConfig(echoMiddleware.RateLimiterConfig{
		Store: r.store(cfg),
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())

			GetLogger(c).Warn().
				Str("identifier", identifier).
				Str("path", c.Path()).
				Msg("rate limit exceeded")

			return errs.NewTooManyRequestsError("Rate limit exceeded")
		},
	})
}

func (r *RateLimitMiddleware) store(cfg config.RateLimitConfig) echoMiddleware.RateLimiterStore {
	memory := echoMiddleware.NewRateLimiterMemoryStoreWithConfig(echoMiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(cfg.RequestsPerSecond),
		Burst:     cfg.Burst,
		ExpiresIn: cfg.ExpiresIn,
	})

	if r.server.Redis == nil {
		return memory
	}

	return NewRedisRateLimiterStore(r.server.Redis, cfg.Burst, memory, r.server.Logger)
}

// RecordRateLimitHit records a RateLimitHit custom event in New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}

// RedisRateLimiterStore is a fixed one-second window counter in Redis. When
// Redis cannot be reached the decision is delegated to fallback, so an
// outage degrades to per-instance limiting instead of rejecting traffic.
type RedisRateLimiterStore struct {
	client   *redis.Client
	limit    int64
	fallback echoMiddleware.RateLimiterStore
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewRedisRateLimiterStore(
	client *redis.Client,
	limit int,
	fallback echoMiddleware.RateLimiterStore,
	logger *zerolog.Logger,
) *RedisRateLimiterStore {
	return &RedisRateLimiterStore{
		client:   client,
		limit:    int64(limit),
		fallback: fallback,
		logger:   logger,
		now:      time.Now,
	}
}

// Allow implements echo's RateLimiterStore.
func (s *RedisRateLimiterStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisAllowTimeout)
	defer cancel()

	key := windowKey(identifier, s.now())

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 2*rateLimitWindow)

	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Debug().Err(err).Msg("redis rate limiter unavailable, using in-memory store")
		return s.fallback.Allow(identifier)
	}

	return incr.Val() <= s.limit, nil
}

func windowKey(identifier string, at time.Time) string {
	return fmt.Sprintf("%s%s:%d", rateLimitKeyPrefix, identifier, at.Truncate(rateLimitWindow).Unix())
}
