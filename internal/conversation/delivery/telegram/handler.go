package telegram

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pastalink-bot/internal/conversation"
	"pastalink-bot/internal/metrics"
	pkgLog "pastalink-bot/pkg/log"
	"pastalink-bot/pkg/ratelimit"
	pkgResponse "pastalink-bot/pkg/response"
	pkgTelegram "pastalink-bot/pkg/telegram"
)

type handler struct {
	l       pkgLog.Logger
	uc      conversation.UseCase
	bot     *pkgTelegram.Bot
	limiter *ratelimit.Limiter
	cfg     Config
	admins  map[int64]struct{}
	queue   *queue
	present presenter
}

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It answers at once and processes the message on the chat's serial queue,
// so replies for one chat keep their order while chats run concurrently.
// @Summary Telegram webhook
// @Tags telegram
// @Accept json
// @Produce json
// @Param update body pkgTelegram.Update true "Telegram update"
// @Success 200 {object} pkgResponse.Resp
// @Failure 400 {object} pkgResponse.Resp
// @Router /webhook/telegram [post]
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "%s: failed to parse update: %v", LogPrefixWebhook, err)
		metrics.WebhookUpdates.WithLabelValues(metrics.UpdateInvalid).Inc()
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-text updates (stickers, photos, service messages)
	msg := update.Message
	if msg == nil || msg.Chat == nil || strings.TrimSpace(msg.Text) == "" || (msg.From != nil && msg.From.IsBot) {
		metrics.WebhookUpdates.WithLabelValues(metrics.UpdateIgnored).Inc()
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	// Detach from the HTTP request context, which is cancelled after the response.
	bgCtx := pkgLog.WithTraceID(context.Background(), uuid.NewString())

	if h.limiter != nil {
		if err := h.limiter.Allow(userKey(msg)); err != nil {
			h.l.Warnf(bgCtx, "%s: %v", LogPrefixWebhook, err)
			metrics.WebhookUpdates.WithLabelValues(metrics.UpdateRateLimited).Inc()
			go h.send(bgCtx, msg.Chat.ID, TextRateLimited)
			pkgResponse.OK(c, map[string]string{"status": "rate_limited"})
			return
		}
	}

	if !h.queue.enqueue(sessionID(msg), func() {
		defer h.recoverJob(bgCtx, msg)
		h.process(bgCtx, msg)
	}) {
		h.l.Warnf(bgCtx, "%s: queue full for chat %d", LogPrefixWebhook, msg.Chat.ID)
		metrics.WebhookUpdates.WithLabelValues(metrics.UpdateDropped).Inc()
		go h.send(bgCtx, msg.Chat.ID, TextBusy)
		pkgResponse.OK(c, map[string]string{"status": "dropped"})
		return
	}

	metrics.WebhookUpdates.WithLabelValues(metrics.UpdateAccepted).Inc()
	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

func (h *handler) Drain(ctx context.Context) error {
	return h.queue.wait(ctx)
}

// recoverJob turns a panic in a queued job into the generic reply so the
// chat's worker keeps serving later messages.
func (h *handler) recoverJob(ctx context.Context, msg *pkgTelegram.Message) {
	if r := recover(); r != nil {
		h.l.Errorf(ctx, "%s: panic for chat %d: %v\n%s", LogPrefixProcess, msg.Chat.ID, r, debug.Stack())
		h.send(ctx, msg.Chat.ID, TextGeneric)
	}
}

// process handles a single Telegram message.
func (h *handler) process(ctx context.Context, msg *pkgTelegram.Message) {
	text := strings.TrimSpace(msg.Text)

	if strings.HasPrefix(text, "/") {
		h.command(ctx, msg, text)
		return
	}

	if h.cfg.ShowTyping {
		if err := h.bot.SendChatAction(ctx, msg.Chat.ID, pkgTelegram.ChatActionTyping); err != nil {
			h.l.Debugf(ctx, "%s: chat action failed: %v", LogPrefixProcess, err)
		}
	}

	resp := h.uc.Handle(ctx, sessionID(msg), text, locale(msg))
	h.l.Infof(ctx, "%s: chat=%d kind=%s intent=%s region=%q", LogPrefixProcess, msg.Chat.ID, resp.Kind, resp.Intent, resp.Region)

	h.send(ctx, msg.Chat.ID, h.present.render(resp))
}

func (h *handler) command(ctx context.Context, msg *pkgTelegram.Message, text string) {
	name, args := splitCommand(text)
	sid := sessionID(msg)

	var reply string
	switch name {
	case CommandStart:
		h.uc.Cancel(sid)
		reply = conversation.HelpText
	case CommandHelp:
		reply = conversation.HelpText
	case CommandAbout:
		reply = conversation.AboutText
	case CommandRegions:
		reply = h.present.regions(h.uc.Regions(args), args)
	case CommandCancel:
		if h.uc.State(sid) == conversation.StateIdle {
			reply = TextNothingToCancel
		} else {
			h.uc.Cancel(sid)
			reply = TextCancelled
		}
	case CommandStats:
		if !h.isAdmin(msg) {
			reply = TextAdminOnly
			break
		}
		reply = h.present.stats(h.uc.Stats())
	case CommandReload:
		if !h.isAdmin(msg) {
			reply = TextAdminOnly
			break
		}
		reply = h.reload(ctx)
	default:
		// Unknown commands go through the normal pipeline.
		resp := h.uc.Handle(ctx, sid, text, locale(msg))
		reply = h.present.render(resp)
	}

	h.l.Infof(ctx, "%s: chat=%d command=%s", LogPrefixProcess, msg.Chat.ID, name)
	h.send(ctx, msg.Chat.ID, reply)
}

func (h *handler) reload(ctx context.Context) string {
	if !h.uc.ReloadCatalog(ctx) {
		return TextReloadFailed
	}
	idx := h.uc.Stats().Catalog.Index
	return fmt.Sprintf(TextReloadOK, idx.TotalEntries, idx.Regions)
}

// send delivers text, falling back to plain text when Telegram rejects the
// Markdown.
func (h *handler) send(ctx context.Context, chatID int64, text string) {
	mode := parseMode(text)
	err := h.bot.SendMessageWithMode(ctx, chatID, text, mode)
	if err != nil && mode != "" {
		h.l.Warnf(ctx, "%s: markdown send failed, retrying as plain text: %v", LogPrefixSend, err)
		err = h.bot.SendMessage(ctx, chatID, text)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		h.l.Errorf(ctx, "%s: chat=%d: %v", LogPrefixSend, chatID, err)
	}
}

func (h *handler) isAdmin(msg *pkgTelegram.Message) bool {
	if msg.From == nil {
		return false
	}
	_, ok := h.admins[msg.From.ID]
	return ok
}

// splitCommand turns "/regions@PAstaLinkBot  lom" into ("/regions", "lom").
func splitCommand(text string) (string, string) {
	name, args, _ := strings.Cut(text, " ")
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name = name[:at]
	}
	return strings.ToLower(name), strings.TrimSpace(args)
}

func sessionID(msg *pkgTelegram.Message) string {
	return strconv.FormatInt(msg.Chat.ID, 10)
}

func userKey(msg *pkgTelegram.Message) string {
	if msg.From != nil {
		return "user:" + strconv.FormatInt(msg.From.ID, 10)
	}
	return "chat:" + sessionID(msg)
}

func locale(msg *pkgTelegram.Message) string {
	if msg.From == nil {
		return ""
	}
	return msg.From.LanguageCode
}
