package config

import (
	"fmt"
	"strconv"
)

// JWTConfig holds configuration for bearer-token validation on the HTTP API. An empty secret
// disables authentication.
type JWTConfig struct {
	Secret          string `yaml:"secret" json:"secret"`
	ExpirationHours int    `yaml:"expiration_hours" json:"expiration_hours"`
}

// Enabled reports whether tokens are required.
func (c JWTConfig) Enabled() bool {
	return c.Secret != ""
}

// applyEnv reads JWT_SECRET and JWT_EXPIRATION_HOURS.
func (c *JWTConfig) applyEnv(getenv func(string) string) {
	if secret := getenv("JWT_SECRET"); secret != "" {
		c.Secret = secret
	}
	if hours := getenv("JWT_EXPIRATION_HOURS"); hours != "" {
		if n, err := strconv.Atoi(hours); err == nil {
			c.ExpirationHours = n
		} else {
			c.ExpirationHours = -1
		}
	}
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if !c.Enabled() {
		return nil
	}
	if len(c.Secret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
