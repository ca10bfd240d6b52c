package usecase

import (
	"context"

	"pastalink-bot/internal/catalog"
	"pastalink-bot/internal/metrics"
)

// Reload re-reads the dataset and swaps in a new index. A failed or empty
// load keeps the current index and returns false.
func (uc *implUseCase) Reload(ctx context.Context) bool {
	uc.reloadMu.Lock()
	defer uc.reloadMu.Unlock()

	entries, err := uc.repo.Load(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "catalog.usecase.Reload: %v", err)
		metrics.CatalogReloads.WithLabelValues(metrics.ResultFailure).Inc()
		return false
	}
	if len(entries) == 0 {
		uc.l.Errorf(ctx, "catalog.usecase.Reload: %v", catalog.ErrEmptyCatalog)
		metrics.CatalogReloads.WithLabelValues(metrics.ResultFailure).Inc()
		return false
	}

	next := uc.buildIndex(ctx, entries)
	uc.idx.Store(next)
	metrics.CacheEvents.WithLabelValues(metrics.CacheCatalog, metrics.EventPurge).Inc()
	metrics.CatalogReloads.WithLabelValues(metrics.ResultSuccess).Inc()

	uc.mu.RLock()
	hooks := make([]catalog.ReloadHook, len(uc.hooks))
	copy(hooks, uc.hooks)
	uc.mu.RUnlock()

	for _, fn := range hooks {
		fn(clone(next.regions))
	}

	uc.l.Infof(ctx, "catalog.usecase.Reload: %d entries loaded", len(entries))
	return true
}

// OnReload registers fn to run after every successful reload.
func (uc *implUseCase) OnReload(fn catalog.ReloadHook) {
	if fn == nil {
		return
	}
	uc.mu.Lock()
	uc.hooks = append(uc.hooks, fn)
	uc.mu.Unlock()
}
