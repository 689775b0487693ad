package ratelimit

import (
	"net/http"
	"strings"
)

// unlimited marks endpoints that are never limited.
var unlimited = &EndpointConfig{}

// MatchEndpoint returns the configuration for a request, or nil when the default applies.
// Exact paths win over prefix patterns; the health check is never limited.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == http.MethodGet {
		return unlimited
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}
	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}
	return nil
}
