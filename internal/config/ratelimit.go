package config

import "time"

// RateLimitConfig configures the Redis token bucket guarding the booking
// endpoints.
type RateLimitConfig struct {
    Enabled        bool          `yaml:"enabled"`
    Capacity       int           `yaml:"capacity"`
    RefillTokens   int           `yaml:"refillTokens"`
    RefillInterval time.Duration `yaml:"refillInterval"`
    TTL            time.Duration `yaml:"ttl"`
    KeyStrategy    string        `yaml:"keyStrategy"` // ip, route, ip_route
    Prefix         string        `yaml:"prefix"`
    Debug          bool          `yaml:"debug"`
}

func defaultRateLimit() RateLimitConfig {
    return RateLimitConfig{
        Enabled:        true,
        Capacity:       20,
        RefillTokens:   1,
        RefillInterval: 3 * time.Second,
        TTL:            10 * time.Minute,
        KeyStrategy:    "ip_route",
        Prefix:         "showtimes:rl",
    }
}

func applyRateLimitEnv(r *RateLimitConfig) {
    r.Enabled = envBool("RATE_LIMIT_ENABLED", r.Enabled)
    r.Capacity = envInt("RATE_LIMIT_CAPACITY", r.Capacity)
    r.RefillTokens = envInt("RATE_LIMIT_REFILL_TOKENS", r.RefillTokens)
    r.RefillInterval = envDur("RATE_LIMIT_REFILL_INTERVAL", r.RefillInterval)
    r.TTL = envDur("RATE_LIMIT_TTL", r.TTL)
    r.KeyStrategy = envStr("RATE_LIMIT_KEY_STRATEGY", r.KeyStrategy)
    r.Prefix = envStr("RATE_LIMIT_PREFIX", r.Prefix)
    r.Debug = envBool("RATE_LIMIT_DEBUG", r.Debug)
    if every := envDur("RATE_LIMIT_REFILL_EVERY", 0); every > 0 {
        r.RefillTokens = 1
        r.RefillInterval = every
    }
    r.Normalize()
}

// Normalize clamps values the limiter script cannot work with.
func (r *RateLimitConfig) Normalize() {
    if r.Capacity < 1 {
        r.Capacity = 1
    }
    if r.RefillTokens < 1 {
        r.RefillTokens = 1
    }
    if r.RefillInterval <= 0 {
        r.RefillInterval = time.Second
    }
    if minTTL := 5 * r.RefillInterval; r.TTL < minTTL {
        r.TTL = minTTL
    }
}
