package usecase

import (
	"context"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"pastalink-bot/internal/metrics"
	"pastalink-bot/internal/model"
	"pastalink-bot/pkg/textnorm"
)

// index is an immutable snapshot. Each snapshot owns its lookup cache, so a
// swap purges the cache wholesale.
type index struct {
	entries        []model.CatalogEntry
	byIntentRegion map[string][]model.CatalogEntry
	byIntent       map[string][]model.CatalogEntry
	byRegion       map[string][]model.CatalogEntry
	regions        []string
	intents        []string
	cache          *lru.Cache[string, []model.CatalogEntry]
}

func (uc *implUseCase) buildIndex(ctx context.Context, entries []model.CatalogEntry) *index {
	idx := &index{
		entries:        entries,
		byIntentRegion: make(map[string][]model.CatalogEntry),
		byIntent:       make(map[string][]model.CatalogEntry),
		byRegion:       make(map[string][]model.CatalogEntry),
	}

	regions := make(map[string]struct{})
	for _, e := range entries {
		ik := intentKey(e.Intent)
		rk := regionKey(e.Region)

		if _, ok := idx.byIntent[ik]; !ok {
			idx.intents = append(idx.intents, ik)
		}
		idx.byIntent[ik] = append(idx.byIntent[ik], e)
		idx.byRegion[rk] = append(idx.byRegion[rk], e)
		idx.byIntentRegion[bucketKey(ik, rk)] = append(idx.byIntentRegion[bucketKey(ik, rk)], e)

		if !e.IsNational() {
			if _, ok := regions[rk]; !ok {
				regions[rk] = struct{}{}
				idx.regions = append(idx.regions, e.Region)
			}
		}
	}
	sort.Strings(idx.regions)
	sort.Strings(idx.intents)

	cache, err := lru.NewWithEvict[string, []model.CatalogEntry](uc.cfg.CacheSize, func(string, []model.CatalogEntry) {
		metrics.CacheEvents.WithLabelValues(metrics.CacheCatalog, metrics.EventEvict).Inc()
	})
	if err != nil {
		uc.l.Errorf(ctx, "catalog.usecase.buildIndex: lru: %v", err)
	}
	idx.cache = cache

	uc.l.Infof(ctx, "catalog.usecase.buildIndex: %d intents, %d regions, %d entries", len(idx.intents), len(idx.regions), len(entries))
	return idx
}

// lookup runs the bucket search, first match wins:
// exact bucket, national bucket, manual filter of the intent bucket.
func (idx *index) lookup(intent, region string) []model.CatalogEntry {
	if intent == "" {
		return nil
	}

	if region != "" {
		if b := idx.byIntentRegion[bucketKey(intent, regionKey(region))]; len(b) > 0 {
			return b
		}
	}

	if b := idx.byIntentRegion[bucketKey(intent, regionKey(model.NationalRegion))]; len(b) > 0 {
		return b
	}

	var out []model.CatalogEntry
	for _, e := range idx.byIntent[intent] {
		switch {
		case region != "" && regionKey(e.Region) == regionKey(region):
			out = append(out, e)
		case region == "" && e.IsNational():
			out = append(out, e)
		}
	}
	return out
}

func intentKey(intent string) string {
	return strings.ToLower(strings.TrimSpace(intent))
}

func regionKey(region string) string {
	return textnorm.Fold(region)
}

func bucketKey(intent, region string) string {
	return intent + "|" + region
}
