// Package ratelimit provides keyed token buckets with automatic expiry of idle keys.
package ratelimit

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// ErrLimited is returned when a key has exhausted its budget.
var ErrLimited = errors.New("rate limit exceeded")

const (
	DefaultMaxKeys = 1000
	DefaultIdleTTL = 5 * time.Minute
)

// Config sizes a Limiter.
type Config struct {
	PerMinute int
	Burst     int           // defaults to PerMinute/10, at least 1
	MaxKeys   int           // defaults to DefaultMaxKeys
	IdleTTL   time.Duration // defaults to DefaultIdleTTL
}

// Limiter hands out one token bucket per key. Idle buckets expire.
type Limiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

// New builds a Limiter. A non-positive PerMinute disables limiting.
func New(cfg Config) *Limiter {
	if cfg.MaxKeys <= 0 {
		cfg.MaxKeys = DefaultMaxKeys
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultIdleTTL
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.PerMinute / 10
	}
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}

	limit := rate.Inf
	if cfg.PerMinute > 0 {
		limit = rate.Limit(float64(cfg.PerMinute) / 60.0)
	}

	return &Limiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](cfg.MaxKeys, nil, cfg.IdleTTL),
		rate:     limit,
		burst:    cfg.Burst,
	}
}

// Allow consumes one token for key.
func (l *Limiter) Allow(key string) error {
	if !l.bucket(key).Allow() {
		return fmt.Errorf("%w for %s", ErrLimited, key)
	}
	return nil
}

// bucket returns the limiter for key, creating it on first use.
func (l *Limiter) bucket(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(l.rate, l.burst)
		l.limiters.Add(key, limiter)
	}
	return limiter
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	return l.limiters.Len()
}
