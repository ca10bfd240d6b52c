package telegram

import (
	"context"

	"github.com/gin-gonic/gin"

	"pastalink-bot/internal/conversation"
	pkgLog "pastalink-bot/pkg/log"
	"pastalink-bot/pkg/ratelimit"
	pkgTelegram "pastalink-bot/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
	// Drain blocks until queued messages are processed or ctx is done.
	Drain(ctx context.Context) error
}

// Config tunes the delivery handler.
type Config struct {
	AdminUserIDs      []int64
	RegionsPerMessage int
	ShowTyping        bool
	QueueBufferSize   int
}

// New creates a new Telegram delivery handler. A nil limiter disables
// per-user rate limiting.
func New(
	l pkgLog.Logger,
	uc conversation.UseCase,
	bot *pkgTelegram.Bot,
	limiter *ratelimit.Limiter,
	cfg Config,
) Handler {
	if cfg.RegionsPerMessage <= 0 {
		cfg.RegionsPerMessage = DefaultRegionsPerMessage
	}
	if cfg.QueueBufferSize <= 0 {
		cfg.QueueBufferSize = DefaultQueueBufferSize
	}

	admins := make(map[int64]struct{}, len(cfg.AdminUserIDs))
	for _, id := range cfg.AdminUserIDs {
		admins[id] = struct{}{}
	}

	return &handler{
		l:       l,
		uc:      uc,
		bot:     bot,
		limiter: limiter,
		cfg:     cfg,
		admins:  admins,
		queue:   newQueue(cfg.QueueBufferSize),
		present: presenter{regionsPerMessage: cfg.RegionsPerMessage},
	}
}
