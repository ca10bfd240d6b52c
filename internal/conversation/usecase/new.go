package usecase

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"pastalink-bot/internal/catalog"
	"pastalink-bot/internal/classifier"
	"pastalink-bot/internal/conversation"
	"pastalink-bot/internal/metrics"
	"pastalink-bot/internal/validator"
	pkgLog "pastalink-bot/pkg/log"
)

const (
	DefaultSessionTimeout = 5 * time.Minute
	DefaultMaxSessions    = 10000
)

// Config bounds the session store.
type Config struct {
	SessionTimeout time.Duration
	MaxSessions    int
	// Now is the clock used for pending-request expiry. Nil uses time.Now.
	Now func() time.Time
}

type implUseCase struct {
	l          pkgLog.Logger
	catalog    catalog.UseCase
	classifier classifier.Classifier
	validator  validator.Validator
	cfg        Config
	sessions   *sessionStore
}

var _ conversation.UseCase = (*implUseCase)(nil)

// New wires the pipeline and keeps the validator's regions in step with
// catalog reloads.
func New(
	l pkgLog.Logger,
	cat catalog.UseCase,
	cls classifier.Classifier,
	val validator.Validator,
	cfg Config,
) *implUseCase {
	if cfg.SessionTimeout <= 0 {
		cfg.SessionTimeout = DefaultSessionTimeout
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	cat.OnReload(val.UpdateRegions)

	return &implUseCase{
		l:          l,
		catalog:    cat,
		classifier: cls,
		validator:  val,
		cfg:        cfg,
		sessions:   newSessionStore(cfg.MaxSessions, cfg.SessionTimeout),
	}
}

func newSessionStore(size int, ttl time.Duration) *sessionStore {
	st := &sessionStore{}
	st.lru = expirable.NewLRU[string, *session](size, func(_ string, s *session) {
		if s.pendingFlag.Swap(false) {
			metrics.SessionsPending.Dec()
		}
	}, ttl)
	return st
}
