package config

// Redis backs the response cache and the rate limiter.  When it cannot be
// reached at startup both features are switched off and the API keeps
// serving from the database alone.

import (
    "context"
    "crypto/tls"
    "os"
    "time"

    "github.com/redis/go-redis/v9"
)

// RedisConfig is read from:
//   REDIS_HOST and REDIS_PORT – hostname and port of the Redis server
//   REDIS_ADDR – host:port shorthand, used when host/port are not both set
//   REDIS_PASSWORD – optional password
//   REDIS_DB – database number (default 0)
//   REDIS_TLS – enable TLS when "true" or "1"
//   REDIS_TLS_INSECURE – skip certificate verification (local stacks only)
//   REDIS_TIMEOUT – per command read/write timeout (default 500ms)
type RedisConfig struct {
    Addr        string
    Password    string
    DB          int
    TLS         bool
    TLSInsecure bool
    Timeout     time.Duration
}

// LoadRedisConfig reads the REDIS_* variables.
func LoadRedisConfig() RedisConfig {
    addr := os.Getenv("REDIS_ADDR")
    host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")
    if host != "" && port != "" {
        addr = host + ":" + port
    }
    if addr == "" {
        addr = "localhost:6379"
    }
    return RedisConfig{
        Addr:        addr,
        Password:    os.Getenv("REDIS_PASSWORD"),
        DB:          envInt("REDIS_DB", 0),
        TLS:         envBool("REDIS_TLS", false),
        TLSInsecure: envBool("REDIS_TLS_INSECURE", false),
        Timeout:     envDur("REDIS_TIMEOUT", 500*time.Millisecond),
    }
}

// NewRedisClient connects and pings the server with a short timeout.  It
// returns nil when Redis is unreachable so callers can degrade.
func NewRedisClient(cfg RedisConfig) *redis.Client {
    opts := &redis.Options{
        Addr:         cfg.Addr,
        Password:     cfg.Password,
        DB:           cfg.DB,
        ReadTimeout:  cfg.Timeout,
        WriteTimeout: cfg.Timeout,
    }
    if cfg.TLS {
        opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12, InsecureSkipVerify: cfg.TLSInsecure}
    }
    client := redis.NewClient(opts)
    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        _ = client.Close()
        return nil
    }
    return client
}
