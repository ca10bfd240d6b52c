package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	"pastalink-bot/internal/catalog"
	"pastalink-bot/internal/catalog/repository"
	pkgLog "pastalink-bot/pkg/log"
)

const (
	DefaultMaxLinksPerResponse = 6
	DefaultCacheSize           = 500
)

// Config bounds lookups and the lookup cache.
type Config struct {
	MaxLinksPerResponse int
	CacheSize           int
}

type implUseCase struct {
	repo repository.Repository
	l    pkgLog.Logger
	cfg  Config

	idx    atomic.Pointer[index]
	hits   atomic.Uint64
	misses atomic.Uint64

	reloadMu sync.Mutex

	mu    sync.RWMutex
	hooks []catalog.ReloadHook
	usage map[string]*catalog.IntentStats
}

var _ catalog.UseCase = (*implUseCase)(nil)

// New loads the dataset once. A missing or unreadable dataset leaves an
// empty index in place instead of failing.
func New(repo repository.Repository, l pkgLog.Logger, cfg Config) *implUseCase {
	if cfg.MaxLinksPerResponse <= 0 {
		cfg.MaxLinksPerResponse = DefaultMaxLinksPerResponse
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}

	uc := &implUseCase{
		repo:  repo,
		l:     l,
		cfg:   cfg,
		usage: make(map[string]*catalog.IntentStats),
	}

	ctx := context.Background()
	entries, err := repo.Load(ctx)
	if err != nil {
		l.Errorf(ctx, "catalog.usecase.New: %v", err)
	}
	uc.idx.Store(uc.buildIndex(ctx, entries))

	return uc
}
