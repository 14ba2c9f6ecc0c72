package middleware

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"swimbooking/internal/handler/httperr"
	"swimbooking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// tokenBucket refills refill_tokens every interval_ms up to capacity and
// takes one token per call. Returns {allowed, remaining, retry_after_ms}.
var tokenBucket = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill_tokens = tonumber(ARGV[3])
local interval_ms = tonumber(ARGV[4])
local ttl_seconds = tonumber(ARGV[5])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
  tokens = capacity
  last_refill = now_ms
end

if interval_ms > 0 and refill_tokens > 0 then
  local elapsed = math.max(0, now_ms - last_refill)
  local intervals = math.floor(elapsed / interval_ms)
  if intervals > 0 then
    tokens = math.min(capacity, tokens + (intervals * refill_tokens))
    last_refill = last_refill + (intervals * interval_ms)
  end
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
  allowed = 1
  tokens = tokens - 1
else
  retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`)

// RateLimiter throttles mutating booking routes per user and route. Redis
// errors let the request through.
type RateLimiter struct {
	cfg config.RateLimitConfig
	rdb redis.Scripter
}

func NewRateLimiter(cfg config.RateLimitConfig, rdb redis.Scripter) *RateLimiter {
	return &RateLimiter{cfg: cfg, rdb: rdb}
}

func (l *RateLimiter) Limit() gin.HandlerFunc {
	if l == nil || !l.cfg.Enabled || l.rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := l.key(c)
		args := []any{
			time.Now().UnixMilli(),
			l.cfg.Capacity,
			l.cfg.RefillTokens,
			l.cfg.RefillInterval.Milliseconds(),
			int64(l.cfg.TTL / time.Second),
		}

		vals, err := tokenBucket.Run(c.Request.Context(), l.rdb, []string{key}, args...).Int64Slice()
		if err != nil || len(vals) != 3 {
			slog.Warn("rate limiter unavailable, allowing request", "key", key, "error", fmt.Sprint(err))
			c.Next()
			return
		}
		allowed, remaining, retryMs := vals[0] == 1, vals[1], vals[2]

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.cfg.Capacity))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if !allowed {
			secs := int(math.Ceil(float64(retryMs) / 1000.0))
			c.Header("Retry-After", strconv.Itoa(secs))
			httperr.AbortWithError(c, http.StatusTooManyRequests, nil, "too_many_requests", "Rate limit exceeded",
				map[string]any{"retryAfter": secs})
			return
		}
		c.Next()
	}
}

func (l *RateLimiter) key(c *gin.Context) string {
	who := "anon"
	if id, ok := GetUserID(c); ok {
		who = id.String()
	}
	return strings.Join([]string{l.cfg.Prefix, "user", who, "route", c.Request.Method + " " + c.FullPath()}, ":")
}
