package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"pastalink-bot/config"
	_ "pastalink-bot/docs" // Swagger docs
	fileRepo "pastalink-bot/internal/catalog/repository/file"
	catalogUC "pastalink-bot/internal/catalog/usecase"
	"pastalink-bot/internal/classifier"
	tgDelivery "pastalink-bot/internal/conversation/delivery/telegram"
	conversationUC "pastalink-bot/internal/conversation/usecase"
	"pastalink-bot/internal/httpserver"
	"pastalink-bot/internal/middleware"
	"pastalink-bot/internal/validator"
	"pastalink-bot/pkg/log"
	"pastalink-bot/pkg/ollama"
	"pastalink-bot/pkg/ratelimit"
	"pastalink-bot/pkg/telegram"
)

// @title       PAstaLinkBot API
// @description Telegram bot that routes questions about Italian public services to official links.
// @version     1
// @host        localhost:8080
// @schemes     http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting PAstaLinkBot...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Catalog: %s, model: %s at %s", cfg.Catalog.DataPath, cfg.Ollama.Model, cfg.Ollama.Host)

	// 3. Catalog
	repo, err := fileRepo.New(cfg.Catalog.DataPath, logger)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	catalog := catalogUC.New(repo, logger, catalogUC.Config{
		MaxLinksPerResponse: cfg.Catalog.MaxLinksPerResponse,
		CacheSize:           cfg.Catalog.CacheSize,
	})
	if report := catalog.Validate(); !report.Valid {
		logger.Warnf(ctx, "Catalog validation failed: %v", report.Errors)
	} else if len(report.Warnings) > 0 {
		logger.Infof(ctx, "Catalog loaded with %d warnings", len(report.Warnings))
	}

	// 4. Classifier
	ollamaClient, err := ollama.New(ollama.Config{
		Host:       cfg.Ollama.Host,
		Model:      cfg.Ollama.Model,
		HTTPClient: &http.Client{Timeout: cfg.Ollama.Timeout},
	})
	if err != nil {
		return fmt.Errorf("failed to create ollama client: %w", err)
	}
	cls, err := classifier.New(logger, ollamaClient, classifier.Config{
		CacheSize:       cfg.Classifier.CacheSize,
		CacheKeyLength:  cfg.Classifier.CacheKeyLength,
		RetryAttempts:   cfg.Classifier.RetryAttempts,
		RetryBaseDelay:  cfg.Classifier.RetryBaseDelay,
		RetryMultiplier: cfg.Classifier.RetryMultiplier,
	})
	if err != nil {
		return fmt.Errorf("failed to create classifier: %w", err)
	}
	if h := cls.HealthCheck(ctx); !h.Healthy {
		logger.Warnf(ctx, "Ollama not reachable yet, classifications will degrade: %s", h.Error)
	}

	// 5. Validator + conversation
	val := validator.New(logger, validator.Config{
		MinMessageLength:    cfg.Validator.MinMessageLength,
		MaxMessageLength:    cfg.Validator.MaxMessageLength,
		SpamRatio:           cfg.Validator.SpamRatio,
		FuzzyMatchThreshold: cfg.Validator.FuzzyMatchThreshold,
		SuggestionThreshold: cfg.Validator.SuggestionThreshold,
		AutoAcceptFuzzy:     cfg.Validator.AutoAcceptFuzzy,
	}, catalog.GetRegions())

	conv := conversationUC.New(logger, catalog, cls, val, conversationUC.Config{
		SessionTimeout: cfg.Conversation.SessionTimeout,
		MaxSessions:    cfg.Conversation.MaxSessions,
	})

	// 6. Telegram delivery
	var (
		telegramHandler tgDelivery.Handler
		bot             *telegram.Bot
	)
	if cfg.Telegram.BotToken != "" {
		bot = telegram.NewBot(cfg.Telegram.BotToken)
		telegramHandler = tgDelivery.New(logger, conv, bot,
			ratelimit.New(ratelimit.Config{PerMinute: cfg.Conversation.UserRateLimit}),
			tgDelivery.Config{
				AdminUserIDs:      cfg.Bot.AdminUserIDs,
				RegionsPerMessage: cfg.Bot.RegionsPerMessage,
				ShowTyping:        cfg.Bot.ShowTyping,
				QueueBufferSize:   cfg.Conversation.QueueBufferSize,
			},
		)
	} else {
		logger.Warn(ctx, "Telegram skipped: TELEGRAM_TOKEN is missing")
	}

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		TelegramHandler: telegramHandler,
		Middleware: middleware.New(logger, middleware.Config{
			WebhookSecret:   cfg.Webhook.Secret,
			AllowedIPs:      cfg.Webhook.AllowedIPs,
			RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
			StatsToken:      cfg.Bot.StatsToken,
		}),
		Catalog:      catalog,
		Classifier:   cls,
		Conversation: conv,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	// 8. Run
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpServer.Run(gctx)
	})
	if bot != nil {
		g.Go(func() error {
			registerWebhook(gctx, logger, bot, cfg)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}

	logger.Info(context.Background(), "Server stopped gracefully")
	return nil
}

// registerWebhook points Telegram at this server. Failures are logged, the
// server keeps running so the webhook can be set by hand.
func registerWebhook(ctx context.Context, logger log.Logger, bot *telegram.Bot, cfg *config.Config) {
	webhookURL := cfg.Telegram.WebhookURL
	if webhookURL == "" {
		ngrokURL, err := detectNgrokURL(ctx, cfg.Telegram.NgrokAPI)
		if err != nil {
			logger.Warnf(ctx, "Could not detect ngrok URL: %v", err)
			return
		}
		webhookURL = ngrokURL + "/webhook/telegram"
		logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
	}

	if err := bot.SetWebhook(ctx, webhookURL, cfg.Webhook.Secret); err != nil {
		logger.Warnf(ctx, "Failed to set Telegram webhook: %v", err)
		return
	}
	logger.Infof(ctx, "✅ Telegram webhook registered at %s", webhookURL)
}
