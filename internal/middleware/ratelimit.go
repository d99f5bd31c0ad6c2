package middleware

import (
	"context"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// RateLimit caps requests per client IP over a fixed window using redis
// INCR + EXPIRE counters. When redis is unreachable the limiter fails
// open; availability wins over throttling accuracy.
type RateLimit struct {
	redis  *redislib.Client
	prefix string
	window time.Duration
	max    int64
	logger *zap.Logger
}

func NewRateLimit(redis *redislib.Client, prefix string, window time.Duration, max int64, logger *zap.Logger) *RateLimit {
	if logger == nil {
		logger = zap.NewNop()
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &RateLimit{
		redis:  redis,
		prefix: prefix,
		window: window,
		max:    max,
		logger: logger,
	}
}

// Wrap applies the limiter to a handler.
func (rl *RateLimit) Wrap(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	if rl == nil || rl.redis == nil || rl.max <= 0 {
		return next
	}
	return func(ctx *fasthttp.RequestCtx) {
		if !rl.allow(clientIP(ctx)) {
			respondFailure(ctx, fasthttp.StatusTooManyRequests, "Too many requests, please try again later")
			return
		}
		next(ctx)
	}
}

func (rl *RateLimit) allow(ip string) bool {
	key := fmt.Sprintf("ratelimit:%s:%s", rl.prefix, ip)

	opCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	count, err := rl.redis.Incr(opCtx, key).Result()
	if err != nil {
		rl.logger.Warn("rate limit counter unavailable", zap.Error(err))
		return true
	}
	if count == 1 {
		if err := rl.redis.Expire(opCtx, key, rl.window).Err(); err != nil {
			rl.logger.Warn("rate limit expire failed", zap.Error(err))
		}
	}
	return count <= rl.max
}

func clientIP(ctx *fasthttp.RequestCtx) string {
	if forwarded := string(ctx.Request.Header.Peek("X-Forwarded-For")); forwarded != "" {
		return forwarded
	}
	return ctx.RemoteIP().String()
}
