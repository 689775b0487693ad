package ratelimit

import (
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/resume-parser/internal/config"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern; a trailing "/" matches by prefix
	Method string        // HTTP method
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// FromConfig builds the limiter configuration for the parse API.
func FromConfig(cfg config.RateLimitConfig) *Config {
	if cfg.Disabled {
		return &Config{Enabled: false}
	}

	window := cfg.ParseWindow
	if window <= 0 {
		window = time.Minute
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    cfg.DefaultLimit,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       ipSet(cfg.Whitelist),
		Blacklist:       ipSet(cfg.Blacklist),
		EndpointConfigs: []EndpointConfig{
			{Path: "/parse", Method: http.MethodPost, Limit: cfg.ParseLimit, Window: window, Burst: cfg.ParseBurst},
		},
	}
}

// ipSet turns a list of client addresses into a lookup set.
func ipSet(list []string) map[string]bool {
	result := make(map[string]bool, len(list))
	for _, ip := range list {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
