package config

import (
    "context"
    "crypto/tls"
    "time"

    "github.com/redis/go-redis/v9"
)

// RedisConfig describes the Redis connection backing the response cache
// and the rate limiter.  When the server is unreachable at startup both
// degrade to pass-through middleware.
type RedisConfig struct {
    Enabled  bool   `yaml:"enabled"`
    Addr     string `yaml:"addr"`
    Password string `yaml:"password"`
    DB       int    `yaml:"db"`
    TLS      bool   `yaml:"tls"`
}

func defaultRedis() RedisConfig {
    return RedisConfig{Enabled: true, Addr: "localhost:6379"}
}

func applyRedisEnv(r *RedisConfig) {
    r.Enabled = envBool("REDIS_ENABLED", r.Enabled)
    r.Addr = envStr("REDIS_ADDR", r.Addr)
    if host, port := envStr("REDIS_HOST", ""), envStr("REDIS_PORT", ""); host != "" && port != "" {
        r.Addr = host + ":" + port
    }
    r.Password = envStr("REDIS_PASSWORD", r.Password)
    r.DB = envInt("REDIS_DB", r.DB)
    r.TLS = envBool("REDIS_TLS", r.TLS)
}

// NewRedisClient connects and pings.  It returns nil when Redis is disabled
// or does not answer within two seconds.
func NewRedisClient(cfg RedisConfig) *redis.Client {
    if !cfg.Enabled || cfg.Addr == "" {
        return nil
    }
    var tlsConf *tls.Config
    if cfg.TLS {
        tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
    }
    client := redis.NewClient(&redis.Options{
        Addr:      cfg.Addr,
        Password:  cfg.Password,
        DB:        cfg.DB,
        TLSConfig: tlsConf,
    })
    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        _ = client.Close()
        return nil
    }
    return client
}
