package httpserver

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"pastalink-bot/internal/catalog"
	"pastalink-bot/internal/classifier"
	"pastalink-bot/internal/conversation"
	tgDelivery "pastalink-bot/internal/conversation/delivery/telegram"
	"pastalink-bot/internal/middleware"
	"pastalink-bot/pkg/log"
)

const (
	DefaultShutdownTimeout = 15 * time.Second
	DefaultReadyTimeout    = 3 * time.Second
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	shutdownTimeout time.Duration
	readyTimeout    time.Duration

	telegramHandler tgDelivery.Handler
	mw              middleware.Middleware

	catalog      catalog.UseCase
	classifier   classifier.Classifier
	conversation conversation.UseCase
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	ShutdownTimeout time.Duration
	ReadyTimeout    time.Duration

	TelegramHandler tgDelivery.Handler
	Middleware      middleware.Middleware

	Catalog      catalog.UseCase
	Classifier   classifier.Classifier
	Conversation conversation.UseCase
}

// New creates a new HTTPServer instance with its routes mapped.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.ReadyTimeout <= 0 {
		cfg.ReadyTimeout = DefaultReadyTimeout
	}

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		shutdownTimeout: cfg.ShutdownTimeout,
		readyTimeout:    cfg.ReadyTimeout,
		telegramHandler: cfg.TelegramHandler,
		mw:              cfg.Middleware,
		catalog:         cfg.Catalog,
		classifier:      cfg.Classifier,
		conversation:    cfg.Conversation,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers()
	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.catalog == nil || srv.classifier == nil || srv.conversation == nil {
		return errors.New("catalog, classifier and conversation are required")
	}
	return nil
}

// Handler exposes the router, mainly for tests.
func (srv *HTTPServer) Handler() *gin.Engine {
	return srv.gin
}
