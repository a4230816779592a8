package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/json"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/coworking-reservation/internal/config"
)

// cachedResponse is what a cache entry holds.
type cachedResponse struct {
    Status int         `json:"status"`
    Header http.Header `json:"header"`
    Body   []byte      `json:"body"`
}

// recorder tees the response to the client and keeps a copy of up to
// limit bytes.  overflow is set once the body outgrows the limit.
type recorder struct {
    http.ResponseWriter
    status   int
    body     bytes.Buffer
    limit    int
    overflow bool
}

func (r *recorder) WriteHeader(code int) {
    r.status = code
    r.ResponseWriter.WriteHeader(code)
}

func (r *recorder) Write(b []byte) (int, error) {
    if !r.overflow {
        if r.limit > 0 && r.body.Len()+len(b) > r.limit {
            r.overflow = true
            r.body.Reset()
        } else {
            r.body.Write(b)
        }
    }
    return r.ResponseWriter.Write(b)
}

// responseCache stores read responses under a generation number.  Every
// successful write bumps the generation, so availability and listings
// never outlive a booking, rename or cancellation.
type responseCache struct {
    cfg config.CacheConfig
    rdb *redis.Client
    ttl time.Duration
}

func (rc responseCache) generationKey() string { return rc.cfg.Prefix + ":gen" }

func (rc responseCache) generation(ctx context.Context) (int64, error) {
    gen, err := rc.rdb.Get(ctx, rc.generationKey()).Int64()
    if err == redis.Nil {
        return 0, nil
    }
    return gen, err
}

func (rc responseCache) invalidate(ctx context.Context) error {
    return rc.rdb.Incr(ctx, rc.generationKey()).Err()
}

// key hashes the request identity chosen by KeyStrategy.
func (rc responseCache) key(gen int64, c echo.Context) string {
    r := c.Request()
    var id string
    switch strings.ToLower(rc.cfg.KeyStrategy) {
    case config.KeyRoute:
        id = c.Path() + "|" + paramString(c)
    case config.KeyPathQuery:
        id = r.URL.Path + "?" + r.URL.RawQuery
    default:
        id = c.Path() + "|" + paramString(c) + "?" + r.URL.RawQuery
    }
    sum := sha1.Sum([]byte(r.Method + " " + id))
    return fmt.Sprintf("%s:%d:%x", rc.cfg.Prefix, gen, sum)
}

func (rc responseCache) lookup(ctx context.Context, key string) (*cachedResponse, bool) {
    raw, err := rc.rdb.Get(ctx, key).Bytes()
    if err != nil {
        return nil, false
    }
    var cr cachedResponse
    if err := json.Unmarshal(raw, &cr); err != nil || cr.Status == 0 {
        return nil, false
    }
    return &cr, true
}

func (rc responseCache) store(ctx context.Context, key string, cr cachedResponse) error {
    raw, err := json.Marshal(cr)
    if err != nil {
        return err
    }
    return rc.rdb.Set(ctx, key, raw, rc.ttl).Err()
}

// paramString renders path parameters so /v1/reports/:date/export does
// not share one entry across dates.
func paramString(c echo.Context) string {
    vals := c.ParamValues()
    var sb strings.Builder
    for i, n := range c.ParamNames() {
        if i < len(vals) {
            fmt.Fprintf(&sb, "%s=%s;", n, vals[i])
        }
    }
    return sb.String()
}

func replay(c echo.Context, cr *cachedResponse) error {
    h := c.Response().Header()
    for k, vals := range cr.Header {
        if strings.EqualFold(k, echo.HeaderContentLength) {
            continue
        }
        for _, v := range vals {
            h.Add(k, v)
        }
    }
    h.Set("X-Cache", "HIT")
    c.Response().WriteHeader(cr.Status)
    _, err := c.Response().Write(cr.Body)
    return err
}

// NewRedisCache caches 200 responses of cfg.Methods in Redis, headers
// included, and drops every cached entry after a successful request of
// any other method.  Redis failures fall through to the handler.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    rc := responseCache{cfg: cfg, rdb: rdb, ttl: cfg.TTL}
    if rc.ttl <= 0 {
        rc.ttl = 30 * time.Second
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
                if err := next(c); err != nil {
                    return err
                }
                if c.Response().Status < http.StatusMultipleChoices {
                    _ = rc.invalidate(context.WithoutCancel(c.Request().Context()))
                }
                return nil
            }

            ctx := c.Request().Context()
            gen, err := rc.generation(ctx)
            if err != nil {
                return next(c)
            }
            key := rc.key(gen, c)
            if cr, ok := rc.lookup(ctx, key); ok {
                return replay(c, cr)
            }

            rec := &recorder{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
            c.Response().Writer = rec
            c.Response().Header().Set("X-Cache", "MISS")
            if err := next(c); err != nil {
                return err
            }
            if rec.status != http.StatusOK || rec.overflow {
                return nil
            }
            hdr := c.Response().Header().Clone()
            hdr.Del("X-Cache")
            _ = rc.store(context.WithoutCancel(ctx), key, cachedResponse{Status: rec.status, Header: hdr, Body: rec.body.Bytes()})
            return nil
        }
    }
}
