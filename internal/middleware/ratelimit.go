package middleware

import (
    "math"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/cinema-showtimes/internal/config"
    "github.com/iliyamo/cinema-showtimes/internal/logger"
)

// tokenBucket refills continuously at rate tokens per millisecond and takes
// one token when at least one is available.  State is the fractional token
// count and the time it was computed.  Returns {allowed, remaining,
// retry_after_ms}.
var tokenBucket = redis.NewScript(`
local key  = KEYS[1]
local now  = tonumber(ARGV[1])
local cap  = tonumber(ARGV[2])
local rate = tonumber(ARGV[3])
local ttl  = tonumber(ARGV[4])

local b  = redis.call('HMGET', key, 'tk', 'ts')
local tk = tonumber(b[1]) or cap
local ts = tonumber(b[2]) or now
tk = math.min(cap, tk + math.max(0, now - ts) * rate)

local allowed, wait = 0, 0
if tk >= 1 then
  allowed = 1
  tk = tk - 1
else
  wait = math.ceil((1 - tk) / rate)
end

redis.call('HSET', key, 'tk', tk, 'ts', now)
redis.call('PEXPIRE', key, ttl)
return { allowed, math.floor(tk), wait }
`)

// NewTokenBucket limits requests per key using a Redis-side token bucket.
// Redis errors fail open.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return passThrough
    }
    cfg.Normalize()
    rate := float64(cfg.RefillTokens) / float64(max(1, cfg.RefillInterval.Milliseconds()))

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            key := rateKey(cfg, c)
            res, err := tokenBucket.Run(c.Request().Context(), rdb, []string{key},
                time.Now().UnixMilli(), cfg.Capacity, rate, cfg.TTL.Milliseconds()).Int64Slice()
            if err != nil || len(res) != 3 {
                if cfg.Debug {
                    logger.Warn("ratelimit: script failed", "key", key, "err", err)
                }
                return next(c)
            }
            allowed, remaining, retryMs := res[0] == 1, res[1], res[2]

            h := c.Response().Header()
            h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
            h.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
            if !allowed {
                secs := int(math.Ceil(float64(retryMs) / 1000.0))
                h.Set("Retry-After", strconv.Itoa(secs))
                if cfg.Debug {
                    logger.Info("ratelimit: blocked", "key", key, "retry_ms", retryMs)
                }
                return c.JSON(http.StatusTooManyRequests, echo.Map{
                    "error":       "too_many_requests",
                    "message":     "rate limit exceeded",
                    "retry_after": secs,
                })
            }
            return next(c)
        }
    }
}

// rateKey builds the bucket key.  There are no user accounts, so buckets
// are per client IP, per route, or both.
func rateKey(cfg config.RateLimitConfig, c echo.Context) string {
    ip := c.RealIP()
    if ip == "" {
        ip = "unknown"
    }
    route := c.Request().Method + " " + c.Path()

    parts := []string{cfg.Prefix}
    switch strings.ToLower(cfg.KeyStrategy) {
    case "ip":
        parts = append(parts, "ip", ip)
    case "route":
        parts = append(parts, "route", route)
    default: // ip_route
        parts = append(parts, "ip", ip, "route", route)
    }
    return strings.Join(parts, ":")
}
