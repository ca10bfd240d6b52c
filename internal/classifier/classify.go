package classifier

import (
	"context"
	"errors"
	"strings"
	"time"

	"pastalink-bot/internal/metrics"
	"pastalink-bot/internal/model"
	"pastalink-bot/pkg/ollama"
	"pastalink-bot/pkg/textnorm"
)

// Classify returns the cached classification for text or asks the model.
// Degraded results are not cached.
func (c *implClassifier) Classify(ctx context.Context, text string) model.Classification {
	if strings.TrimSpace(text) == "" {
		metrics.ClassifierRequests.WithLabelValues(OutcomeEmptyInput).Inc()
		return model.UnknownClassification()
	}

	key := textnorm.Key(text, c.cfg.CacheKeyLength)
	if cached, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		metrics.CacheEvents.WithLabelValues(metrics.CacheClassifier, metrics.EventHit).Inc()
		metrics.ClassifierRequests.WithLabelValues(OutcomeCached).Inc()
		return cached
	}
	c.misses.Add(1)
	metrics.CacheEvents.WithLabelValues(metrics.CacheClassifier, metrics.EventMiss).Inc()

	start := time.Now()
	defer func() { metrics.ClassifierDuration.Observe(time.Since(start).Seconds()) }()

	content, err := c.chatWithRetry(ctx, text)
	if err != nil {
		outcome := OutcomeFailed
		if ollama.IsTransient(err) {
			outcome = OutcomeExhausted
			c.l.Errorf(ctx, "%s: %s: %v", LogPrefixClassify, ErrMsgRetriesExceeded, err)
		} else {
			c.l.Errorf(ctx, "%s: %s: %v", LogPrefixClassify, ErrMsgLLMCallFailed, err)
		}
		metrics.ClassifierRequests.WithLabelValues(outcome).Inc()
		return model.UnknownClassification()
	}

	result, err := DecodeReply(content)
	if err != nil {
		c.l.Warnf(ctx, "%s: %s: %v", LogPrefixClassify, ErrMsgParseFailed, err)
		metrics.ClassifierRequests.WithLabelValues(OutcomeParseError).Inc()
		return model.UnknownClassification()
	}

	if c.cache.Add(key, result) {
		metrics.CacheEvents.WithLabelValues(metrics.CacheClassifier, metrics.EventEvict).Inc()
	}
	metrics.ClassifierRequests.WithLabelValues(OutcomeSuccess).Inc()
	c.l.Debugf(ctx, "%s: intent=%s region=%q confidence=%.2f", LogPrefixClassify, result.Intent, result.RegionValue(), result.Confidence)

	return result
}

// chatWithRetry retries transient failures with exponential backoff:
// base, base*m, base*m^2 ...
func (c *implClassifier) chatWithRetry(ctx context.Context, text string) (string, error) {
	req := &ollama.ChatRequest{
		System:      c.systemPrompt(),
		Messages:    []ollama.Message{{Role: "user", Content: text}},
		Temperature: Temperature,
	}

	delay := c.cfg.RetryBaseDelay
	var lastErr error
	for attempt := 1; attempt <= c.cfg.RetryAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		metrics.ClassifierAttempts.Inc()
		resp, err := c.client.Chat(ctx, req)
		if err == nil {
			return resp.Content, nil
		}
		lastErr = err

		if !ollama.IsTransient(err) || attempt == c.cfg.RetryAttempts {
			break
		}

		c.l.Warnf(ctx, "%s: attempt %d/%d failed, retrying in %s: %v", LogPrefixClassify, attempt, c.cfg.RetryAttempts, delay, err)
		if err := c.cfg.Sleep(ctx, delay); err != nil {
			return "", errors.Join(lastErr, err)
		}
		delay = time.Duration(float64(delay) * c.cfg.RetryMultiplier)
	}

	return "", lastErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
