package usecase

import (
	"context"

	"pastalink-bot/internal/catalog"
	"pastalink-bot/internal/metrics"
	"pastalink-bot/internal/model"
)

// GetEntries returns at most MaxLinksPerResponse entries for intent and
// region, in dataset order.
func (uc *implUseCase) GetEntries(intent model.Intent, region string) []model.CatalogEntry {
	ik := intentKey(string(intent))
	if ik == "" {
		return nil
	}

	idx := uc.idx.Load()
	key := bucketKey(ik, regionKey(region))

	if idx.cache != nil {
		if cached, ok := idx.cache.Get(key); ok {
			uc.hits.Add(1)
			metrics.CacheEvents.WithLabelValues(metrics.CacheCatalog, metrics.EventHit).Inc()
			return clone(cached)
		}
	}
	uc.misses.Add(1)
	metrics.CacheEvents.WithLabelValues(metrics.CacheCatalog, metrics.EventMiss).Inc()

	res := idx.lookup(ik, region)
	if len(res) > uc.cfg.MaxLinksPerResponse {
		res = res[:uc.cfg.MaxLinksPerResponse]
	}
	if idx.cache != nil {
		idx.cache.Add(key, res)
	}
	return clone(res)
}

// GetLinks broadens to no region when a regional lookup finds nothing.
func (uc *implUseCase) GetLinks(ctx context.Context, intent model.Intent, region string, confidence float64) []model.CatalogEntry {
	entries := uc.GetEntries(intent, region)
	if len(entries) == 0 && region != "" {
		entries = uc.GetEntries(intent, "")
	}

	uc.recordUsage(string(intent), len(entries) > 0, confidence, region)
	uc.l.Debugf(ctx, "catalog.usecase.GetLinks: %d links for intent=%s region=%q", len(entries), intent, region)

	return entries
}

func (uc *implUseCase) GetRegions() []string {
	return clone(uc.idx.Load().regions)
}

func (uc *implUseCase) GetIntents() []string {
	return clone(uc.idx.Load().intents)
}

func (uc *implUseCase) Len() int {
	return len(uc.idx.Load().entries)
}

func (uc *implUseCase) recordUsage(intent string, success bool, confidence float64, region string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, ok := uc.usage[intent]
	if !ok {
		s = &catalog.IntentStats{Intent: intent}
		uc.usage[intent] = s
	}

	s.TotalRequests++
	if success {
		s.SuccessfulResponses++
	} else {
		s.FailedResponses++
	}
	if confidence > 0 {
		n := float64(s.TotalRequests)
		s.AverageConfidence = (s.AverageConfidence*(n-1) + confidence) / n
	}
	if region != "" {
		for _, r := range s.RegionsRequested {
			if r == region {
				return
			}
		}
		s.RegionsRequested = append(s.RegionsRequested, region)
	}
}

func clone[T any](in []T) []T {
	if len(in) == 0 {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
