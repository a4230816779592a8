package middleware

import (
    "context"
    "fmt"
    "log/slog"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/coworking-reservation/internal/config"
)

// takeScript refills the bucket by whole intervals and then tries to take
// cost tokens.  It returns {allowed, remaining, retry_after_ms}.
var takeScript = redis.NewScript(`
local key      = KEYS[1]
local now      = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill   = tonumber(ARGV[3])
local every    = tonumber(ARGV[4])
local ttl_ms   = tonumber(ARGV[5])
local cost     = tonumber(ARGV[6])

local tokens = tonumber(redis.call('HGET', key, 'tokens'))
local last   = tonumber(redis.call('HGET', key, 'last'))
if tokens == nil or last == nil then
    tokens = capacity
    last = now
end

local steps = math.floor(math.max(0, now - last) / every)
if steps > 0 then
    tokens = math.min(capacity, tokens + steps * refill)
    last = last + steps * every
end

local allowed = 0
local retry = 0
if tokens >= cost then
    allowed = 1
    tokens = tokens - cost
else
    local missing = math.ceil((cost - tokens) / refill)
    retry = math.max(0, missing * every - (now - last))
end

redis.call('HSET', key, 'tokens', tokens, 'last', last)
redis.call('PEXPIRE', key, ttl_ms)
return {allowed, tokens, retry}
`)

// decision is the outcome of one take against a bucket.
type decision struct {
    allowed   bool
    remaining int64
    retry     time.Duration
}

// retryAfterSeconds rounds the wait up so clients never retry early.
func (d decision) retryAfterSeconds() int {
    return int((d.retry + time.Second - 1) / time.Second)
}

type bucket struct {
    cfg config.RateLimitConfig
    rdb *redis.Client
}

func (b bucket) take(ctx context.Context, key string, cost int) (decision, error) {
    res, err := takeScript.Run(ctx, b.rdb, []string{key},
        time.Now().UnixMilli(),
        b.cfg.Capacity,
        b.cfg.RefillTokens,
        b.cfg.RefillInterval.Milliseconds(),
        b.cfg.TTL.Milliseconds(),
        cost,
    ).Int64Slice()
    if err != nil {
        return decision{}, err
    }
    if len(res) != 3 {
        return decision{}, fmt.Errorf("rate limit script returned %d values", len(res))
    }
    return decision{
        allowed:   res[0] == 1,
        remaining: res[1],
        retry:     time.Duration(res[2]) * time.Millisecond,
    }, nil
}

// costOf charges mutating requests WriteCost tokens and reads one.
func costOf(cfg config.RateLimitConfig, method string) int {
    switch method {
    case http.MethodGet, http.MethodHead, http.MethodOptions:
        return 1
    }
    if cfg.WriteCost > 1 {
        return min(cfg.WriteCost, cfg.Capacity)
    }
    return 1
}

// NewTokenBucket limits requests with a token bucket kept in Redis so
// every API instance shares one bucket per key.  Bookings, renames and
// cancellations draw WriteCost tokens.  When Redis fails the request goes
// through and the failure is logged.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client, log *slog.Logger) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    b := bucket{cfg: cfg, rdb: rdb}

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            key := buildRateKey(cfg, c)
            d, err := b.take(c.Request().Context(), key, costOf(cfg, c.Request().Method))
            if err != nil {
                log.Warn("rate limit unavailable, allowing request", "key", key, "err", err)
                return next(c)
            }

            h := c.Response().Header()
            h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
            h.Set("X-RateLimit-Remaining", strconv.FormatInt(d.remaining, 10))
            if cfg.Debug {
                h.Set("X-RateLimit-Key", key)
            }
            if d.allowed {
                return next(c)
            }

            secs := d.retryAfterSeconds()
            h.Set("Retry-After", strconv.Itoa(secs))
            log.Debug("rate limited", "key", key, "retry_after", d.retry)
            return c.JSON(http.StatusTooManyRequests, echo.Map{
                "error":       "too many requests, slow down",
                "retry_after": secs,
            })
        }
    }
}

// buildRateKey scopes a bucket by client IP, by route, or by both.
// The API has no accounts, so there is no per-user strategy.
func buildRateKey(cfg config.RateLimitConfig, c echo.Context) string {
    ip := c.RealIP()
    if ip == "" {
        ip = "unknown"
    }
    route := c.Request().Method + " " + c.Path()

    switch strings.ToLower(cfg.KeyStrategy) {
    case "ip":
        return fmt.Sprintf("%s:ip:%s", cfg.Prefix, ip)
    case "route":
        return fmt.Sprintf("%s:route:%s", cfg.Prefix, route)
    }
    return fmt.Sprintf("%s:ip:%s:route:%s", cfg.Prefix, ip, route)
}
