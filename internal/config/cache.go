package config

import (
    "strings"
    "time"
)

// CacheConfig drives the Redis response cache in front of the listing and
// schedule endpoints.  Both derive purely from the catalog and the query
// string, so caching by route and query is safe until the catalog reloads.
type CacheConfig struct {
    Enabled      bool          `yaml:"enabled"`
    Methods      []string      `yaml:"methods"`
    TTL          time.Duration `yaml:"ttl"`
    KeyStrategy  string        `yaml:"keyStrategy"` // route, route_query, method_route_query
    Prefix       string        `yaml:"prefix"`
    MaxBodyBytes int           `yaml:"maxBodyBytes"`
}

// MethodSet returns the cacheable methods upper-cased.
func (c CacheConfig) MethodSet() map[string]bool {
    return parseMethods(strings.Join(c.Methods, ","))
}

func defaultCache() CacheConfig {
    return CacheConfig{
        Enabled:      true,
        Methods:      []string{"GET"},
        TTL:          time.Minute,
        KeyStrategy:  "route_query",
        Prefix:       "showtimes:cache",
        MaxBodyBytes: 1 << 20,
    }
}

func applyCacheEnv(c *CacheConfig) {
    c.Enabled = envBool("CACHE_ENABLED", c.Enabled)
    if v := envStr("CACHE_METHODS", ""); v != "" {
        c.Methods = nil
        for m := range parseMethods(v) {
            c.Methods = append(c.Methods, m)
        }
    }
    c.TTL = envDur("CACHE_TTL", c.TTL)
    c.KeyStrategy = envStr("CACHE_KEY_STRATEGY", c.KeyStrategy)
    c.Prefix = envStr("CACHE_PREFIX", c.Prefix)
    c.MaxBodyBytes = envInt("CACHE_MAX_BODY_BYTES", c.MaxBodyBytes)
}
