package classifier

import (
	"context"
	"time"
)

// Config tunes caching and retry behavior.
type Config struct {
	CacheSize       int
	CacheKeyLength  int
	RetryAttempts   int
	RetryBaseDelay  time.Duration
	RetryMultiplier float64
	// Sleep waits between attempts. It must return early with ctx.Err()
	// when ctx is done. Nil uses a timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

func (c *Config) setDefaults() {
	if c.CacheSize <= 0 {
		c.CacheSize = DefaultCacheSize
	}
	if c.CacheKeyLength <= 0 {
		c.CacheKeyLength = DefaultCacheKeyLength
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = DefaultRetryAttempts
	}
	if c.RetryBaseDelay <= 0 {
		c.RetryBaseDelay = DefaultRetryBaseDelay
	}
	if c.RetryMultiplier < 1 {
		c.RetryMultiplier = DefaultRetryMultiplier
	}
	if c.Sleep == nil {
		c.Sleep = sleepContext
	}
}

// CacheStats reports classification cache usage.
type CacheStats struct {
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	Size    int     `json:"size"`
	MaxSize int     `json:"max_size"`
	HitRate float64 `json:"hit_rate"`
}

// Health is the result of HealthCheck.
type Health struct {
	Healthy bool       `json:"healthy"`
	Model   string     `json:"model"`
	Error   string     `json:"error,omitempty"`
	Cache   CacheStats `json:"cache"`
}

// reply mirrors the JSON object the model is asked to produce. Pointer
// fields tell a missing field from a zero value.
type reply struct {
	Intent      *string  `json:"intent"`
	Region      *string  `json:"region"`
	Confidence  *float64 `json:"confidence"`
	NeedsRegion *bool    `json:"needs_region"`
}
