package usecase

import "pastalink-bot/internal/catalog"

func (uc *implUseCase) Stats() catalog.Stats {
	idx := uc.idx.Load()
	src := uc.repo.Source()

	out := catalog.Stats{
		Index: catalog.IndexStats{
			TotalEntries: len(idx.entries),
			Intents:      len(idx.intents),
			Regions:      len(idx.regions),
		},
		Cache: catalog.CacheStats{
			Hits:    uc.hits.Load(),
			Misses:  uc.misses.Load(),
			MaxSize: uc.cfg.CacheSize,
		},
		Source: catalog.SourceInfo{
			Path:                src.Path,
			Exists:              src.Exists,
			MaxLinksPerResponse: uc.cfg.MaxLinksPerResponse,
		},
		Usage: make(map[string]catalog.IntentStats),
	}
	if idx.cache != nil {
		out.Cache.Size = idx.cache.Len()
	}

	uc.mu.RLock()
	for k, s := range uc.usage {
		cp := *s
		cp.RegionsRequested = clone(s.RegionsRequested)
		out.Usage[k] = cp
	}
	uc.mu.RUnlock()

	return out
}
