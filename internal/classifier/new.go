package classifier

import (
	"context"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"pastalink-bot/internal/model"
	pkgLog "pastalink-bot/pkg/log"
	"pastalink-bot/pkg/ollama"
)

// Classifier maps free text onto an intent, optional region and confidence.
// Classify never fails: every error degrades to the unknown classification.
type Classifier interface {
	Classify(ctx context.Context, text string) model.Classification
	CacheStats() CacheStats
	ClearCache()
	UpdateSystemPrompt(prompt string)
	HealthCheck(ctx context.Context) Health
}

type implClassifier struct {
	l      pkgLog.Logger
	client ollama.IOllama
	cfg    Config

	promptMu sync.RWMutex
	prompt   string

	cache  *lru.Cache[string, model.Classification]
	hits   atomic.Uint64
	misses atomic.Uint64
}

var _ Classifier = (*implClassifier)(nil)

// New creates a Classifier backed by an Ollama chat client.
func New(l pkgLog.Logger, client ollama.IOllama, cfg Config) (*implClassifier, error) {
	cfg.setDefaults()

	cache, err := lru.New[string, model.Classification](cfg.CacheSize)
	if err != nil {
		return nil, err
	}

	return &implClassifier{
		l:      l,
		client: client,
		cfg:    cfg,
		prompt: DefaultSystemPrompt,
		cache:  cache,
	}, nil
}

func (c *implClassifier) systemPrompt() string {
	c.promptMu.RLock()
	defer c.promptMu.RUnlock()
	return c.prompt
}
