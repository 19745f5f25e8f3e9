package ratelimit

import (
	"time"
)

// EndpointConfig overrides the default limit for one route.
type EndpointConfig struct {
	Pattern string  // "POST /submit", "/health" (any method) or "GET /sessions/*" (prefix)
	Rate    float64 // Tokens per second; zero means unlimited
	Burst   int     // Bucket capacity (defaults to 1 if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	Rate            float64
	Burst           int
	CleanupInterval time.Duration
	IdleTimeout     time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig builds a configuration allowing perSecond requests per client
// and route with the given burst. A non-positive rate disables limiting.
func NewConfig(perSecond float64, burst int) *Config {
	if burst <= 0 {
		burst = 1
	}
	return &Config{
		Enabled:         perSecond > 0,
		Rate:            perSecond,
		Burst:           burst,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(perSecond, burst),
	}
}

// DefaultEndpointConfigs returns the route-specific limits. Submissions may
// call the generative provider and get a fifth of the default budget.
func DefaultEndpointConfigs(perSecond float64, burst int) []EndpointConfig {
	expensiveBurst := max(1, burst/5)
	return []EndpointConfig{
		// Tier 1: submissions (strictest)
		{Pattern: "POST /submit", Rate: perSecond / 5, Burst: expensiveBurst},
		{Pattern: "POST /submit/stream", Rate: perSecond / 5, Burst: expensiveBurst},
		{Pattern: "POST /sessions/{id}/complete", Rate: perSecond / 5, Burst: expensiveBurst},

		// Tier 2: probes (unlimited, any method)
		{Pattern: "/health"},
		{Pattern: "/metrics"},

		// Everything else uses the default limit
	}
}
