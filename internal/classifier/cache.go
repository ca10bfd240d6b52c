package classifier

import (
	"context"

	"pastalink-bot/internal/metrics"
)

func (c *implClassifier) CacheStats() CacheStats {
	hits, misses := c.hits.Load(), c.misses.Load()
	s := CacheStats{
		Hits:    hits,
		Misses:  misses,
		Size:    c.cache.Len(),
		MaxSize: c.cfg.CacheSize,
	}
	if total := hits + misses; total > 0 {
		s.HitRate = float64(hits) / float64(total)
	}
	return s
}

func (c *implClassifier) ClearCache() {
	c.cache.Purge()
	metrics.CacheEvents.WithLabelValues(metrics.CacheClassifier, metrics.EventPurge).Inc()
}

// UpdateSystemPrompt swaps the prompt and drops every cached result.
func (c *implClassifier) UpdateSystemPrompt(prompt string) {
	if prompt == "" {
		return
	}
	c.promptMu.Lock()
	c.prompt = prompt
	c.promptMu.Unlock()

	c.ClearCache()
	c.l.Infof(context.Background(), "%s: system prompt updated, cache cleared", LogPrefixUpdatePrompt)
}

// HealthCheck pings the model server without touching the cache.
func (c *implClassifier) HealthCheck(ctx context.Context) Health {
	h := Health{Healthy: true, Model: c.client.Model(), Cache: c.CacheStats()}
	if err := c.client.Ping(ctx); err != nil {
		c.l.Warnf(ctx, "%s: %v", LogPrefixHealthCheck, err)
		h.Healthy = false
		h.Error = err.Error()
	}
	return h
}
