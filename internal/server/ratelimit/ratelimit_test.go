package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-parser/internal/config"
)

func TestTokenBucket_Take(t *testing.T) {
	bucket := newTokenBucket(3, 1.0)

	for i := 0; i < 3; i++ {
		allowed, _, _ := bucket.take()
		assert.True(t, allowed, "request %d", i+1)
	}
	allowed, remaining, reset := bucket.take()
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
	assert.True(t, reset.After(time.Now()))
}

func TestTokenBucket_Refill(t *testing.T) {
	bucket := newTokenBucket(2, 20.0)
	bucket.take()
	bucket.take()

	time.Sleep(100 * time.Millisecond)

	allowed, _, _ := bucket.take()
	assert.True(t, allowed, "expected a refilled token")
}

func TestLimiter_DefaultLimit(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 2, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		allowed, info := limiter.Allow("10.0.0.1", "/other", "GET")
		require.True(t, allowed)
		assert.Equal(t, 2, info.Limit)
	}
	allowed, info := limiter.Allow("10.0.0.1", "/other", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))

	// buckets are per client
	allowed, _ = limiter.Allow("10.0.0.2", "/other", "GET")
	assert.True(t, allowed)
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 20; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/parse", "POST")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
	allowed, _ := limiter.Allow("192.168.1.1", "/health", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 20; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/parse", "POST")
		require.True(t, allowed)
	}
	assert.Equal(t, 0, limiter.Len())
}

func TestLimiter_HealthIsUnlimited(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestFromConfig_ParseEndpoint(t *testing.T) {
	cfg := config.Default().Server.RateLimit
	cfg.ParseLimit = 3
	cfg.ParseBurst = 2
	cfg.Whitelist = []string{" 10.1.1.1 ", ""}

	rl := FromConfig(cfg)
	require.True(t, rl.Enabled)
	assert.Equal(t, map[string]bool{"10.1.1.1": true}, rl.Whitelist)

	limiter := NewLimiter(rl)
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		allowed, info := limiter.Allow("10.0.0.1", "/parse", "POST")
		require.True(t, allowed)
		assert.Equal(t, 3, info.Limit)
	}
	allowed, _ := limiter.Allow("10.0.0.1", "/parse", "POST")
	assert.False(t, allowed, "burst exhausted")

	allowed, info := limiter.Allow("10.0.0.1", "/parse", "GET")
	assert.True(t, allowed)
	assert.Equal(t, cfg.DefaultLimit, info.Limit)

	assert.False(t, FromConfig(config.RateLimitConfig{Disabled: true}).Enabled)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/parse", Method: "POST", Limit: 1},
		{Path: "/jobs/", Method: "GET", Limit: 2},
	}
	assert.Equal(t, 1, MatchEndpoint("/parse", "POST", configs).Limit)
	assert.Equal(t, 2, MatchEndpoint("/jobs/42", "GET", configs).Limit)
	assert.Nil(t, MatchEndpoint("/parse/extra", "POST", configs))
	assert.Nil(t, MatchEndpoint("/parse", "GET", configs))
	assert.Equal(t, 0, MatchEndpoint("/health", "GET", configs).Limit)
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Hour})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var allowed atomic.Int32
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow("127.0.0.1", "/test", "GET"); ok {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(100), allowed.Load())
}

func TestLimiter_EvictIdle(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/test", "GET")
	}
	require.Equal(t, 5, limiter.Len())

	limiter.evictIdle(time.Now().Add(-time.Minute))
	assert.Equal(t, 5, limiter.Len())

	limiter.evictIdle(time.Now().Add(time.Second))
	assert.Equal(t, 0, limiter.Len())
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()
	limiter.Stop()

	allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}
