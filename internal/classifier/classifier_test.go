package classifier_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pastalink-bot/internal/classifier"
	"pastalink-bot/internal/model"
	pkgLog "pastalink-bot/pkg/log"
	"pastalink-bot/pkg/ollama"
)

type step struct {
	content string
	err     error
}

type fakeOllama struct {
	mu      sync.Mutex
	steps   []step
	calls   int
	system  []string
	pingErr error
}

func (f *fakeOllama) Chat(ctx context.Context, req *ollama.ChatRequest) (*ollama.ChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.system = append(f.system, req.System)
	s := f.steps[len(f.steps)-1]
	if f.calls < len(f.steps) {
		s = f.steps[f.calls]
	}
	f.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &ollama.ChatResponse{Model: "test", Content: s.content}, nil
}

func (f *fakeOllama) Ping(ctx context.Context) error { return f.pingErr }
func (f *fakeOllama) Model() string                  { return "test-model" }

func (f *fakeOllama) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type sleepRecorder struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (s *sleepRecorder) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.delays = append(s.delays, d)
	s.mu.Unlock()
	return ctx.Err()
}

func newClassifier(t *testing.T, client ollama.IOllama, sleeper *sleepRecorder) classifier.Classifier {
	t.Helper()
	cfg := classifier.Config{}
	if sleeper != nil {
		cfg.Sleep = sleeper.Sleep
	}
	c, err := classifier.New(pkgLog.NewNop(), client, cfg)
	require.NoError(t, err)
	return c
}

func transient(msg string) error {
	return fmt.Errorf("%w: %s", ollama.ErrTransient, msg)
}

func TestClassify_CachesByNormalizedText(t *testing.T) {
	fake := &fakeOllama{steps: []step{{content: `{"intent":"spid","region":null,"confidence":0.9,"needs_region":false}`}}}
	c := newClassifier(t, fake, nil)
	ctx := context.Background()

	first := c.Classify(ctx, "Come richiedere SPID?")
	second := c.Classify(ctx, "  come richiedere spid?  ")

	assert.Equal(t, 1, fake.Calls())
	assert.Equal(t, first, second)
	assert.Equal(t, model.IntentSPID, first.Intent)

	stats := c.CacheStats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, 1, stats.Size)
	assert.InDelta(t, 0.5, stats.HitRate, 1e-9)
}

func TestClassify_KeyIsBoundedPrefix(t *testing.T) {
	fake := &fakeOllama{steps: []step{{content: `{"intent":"tari"}`}}}
	c := newClassifier(t, fake, nil)
	ctx := context.Background()

	prefix := ""
	for i := 0; i < 100; i++ {
		prefix += "x"
	}
	c.Classify(ctx, prefix+" tassa rifiuti Roma")
	c.Classify(ctx, prefix+" tassa rifiuti Milano")

	assert.Equal(t, 1, fake.Calls())
}

func TestClassify_RetriesTransientFailures(t *testing.T) {
	t.Run("recovers on third attempt", func(t *testing.T) {
		fake := &fakeOllama{steps: []step{
			{err: transient("connection refused")},
			{err: transient("status 503")},
			{content: `{"intent":"cup","region":"Lombardia","confidence":0.9,"needs_region":false}`},
		}}
		sleeper := &sleepRecorder{}
		c := newClassifier(t, fake, sleeper)

		res := c.Classify(context.Background(), "Prenotare visita medica in Lombardia")

		assert.Equal(t, 3, fake.Calls())
		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, sleeper.delays)
		assert.Equal(t, model.IntentCUP, res.Intent)
		require.NotNil(t, res.Region)
		assert.Equal(t, "Lombardia", *res.Region)
	})

	t.Run("exhausted degrades to unknown and is not cached", func(t *testing.T) {
		fake := &fakeOllama{steps: []step{{err: transient("connection refused")}}}
		sleeper := &sleepRecorder{}
		c := newClassifier(t, fake, sleeper)

		res := c.Classify(context.Background(), "bollo auto")
		assert.Equal(t, model.UnknownClassification(), res)
		assert.Equal(t, 3, fake.Calls())
		assert.Len(t, sleeper.delays, 2)

		c.Classify(context.Background(), "bollo auto")
		assert.Equal(t, 6, fake.Calls())
	})

	t.Run("non-transient error is not retried", func(t *testing.T) {
		fake := &fakeOllama{steps: []step{{err: errors.New("ollama: status 400")}}}
		sleeper := &sleepRecorder{}
		c := newClassifier(t, fake, sleeper)

		res := c.Classify(context.Background(), "bollo auto")
		assert.Equal(t, model.IntentUnknown, res.Intent)
		assert.Equal(t, 1, fake.Calls())
		assert.Empty(t, sleeper.delays)
	})

	t.Run("cancelled context stops backoff", func(t *testing.T) {
		fake := &fakeOllama{steps: []step{{err: transient("timeout")}}}
		sleeper := &sleepRecorder{}
		c := newClassifier(t, fake, sleeper)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res := c.Classify(ctx, "bollo auto")
		assert.Equal(t, model.IntentUnknown, res.Intent)
		assert.Equal(t, 0, fake.Calls())
	})
}

func TestClassify_ParseFailureNotRetried(t *testing.T) {
	fake := &fakeOllama{steps: []step{{content: "I think this is about SPID"}}}
	sleeper := &sleepRecorder{}
	c := newClassifier(t, fake, sleeper)

	res := c.Classify(context.Background(), "spid")

	assert.Equal(t, model.UnknownClassification(), res)
	assert.Equal(t, 1, fake.Calls())
	assert.Empty(t, sleeper.delays)
	assert.Equal(t, 0, c.CacheStats().Size)
}

func TestClassify_EmptyInput(t *testing.T) {
	fake := &fakeOllama{steps: []step{{content: `{"intent":"greeting"}`}}}
	c := newClassifier(t, fake, nil)

	assert.Equal(t, model.IntentUnknown, c.Classify(context.Background(), "   ").Intent)
	assert.Equal(t, 0, fake.Calls())
}

func TestUpdateSystemPrompt(t *testing.T) {
	fake := &fakeOllama{steps: []step{{content: `{"intent":"help"}`}}}
	c := newClassifier(t, fake, nil)
	ctx := context.Background()

	c.Classify(ctx, "aiuto")
	c.UpdateSystemPrompt("custom prompt")
	c.Classify(ctx, "aiuto")

	assert.Equal(t, 2, fake.Calls())
	assert.Equal(t, classifier.DefaultSystemPrompt, fake.system[0])
	assert.Equal(t, "custom prompt", fake.system[1])
}

func TestHealthCheck(t *testing.T) {
	fake := &fakeOllama{steps: []step{{content: "{}"}}}
	c := newClassifier(t, fake, nil)

	h := c.HealthCheck(context.Background())
	assert.True(t, h.Healthy)
	assert.Equal(t, "test-model", h.Model)

	fake.pingErr = transient("connection refused")
	h = c.HealthCheck(context.Background())
	assert.False(t, h.Healthy)
	assert.NotEmpty(t, h.Error)
	assert.Equal(t, 0, fake.Calls())
}

func TestDecodeReply(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		intent      model.Intent
		region      string
		confidence  float64
		needsRegion bool
		wantErr     error
	}{
		{
			name:   "surrounding commentary",
			raw:    `blah {"intent":"greeting"} trailing junk`,
			intent: model.IntentGreeting,
		},
		{
			name:        "full object",
			raw:         `{"intent":"fascicolo_sanitario", "region":null, "confidence":0.9, "needs_region":true}`,
			intent:      model.IntentFascicoloSanitario,
			confidence:  0.9,
			needsRegion: true,
		},
		{
			name:       "region trimmed and intent case folded",
			raw:        "```json\n{\"intent\":\"BOLLO_AUTO\",\"region\":\" Lombardia \",\"confidence\":0.8}\n```",
			intent:     model.IntentBolloAuto,
			region:     "Lombardia",
			confidence: 0.8,
		},
		{
			name:   "blank region is absent",
			raw:    `{"intent":"cup","region":"  "}`,
			intent: model.IntentCUP,
		},
		{
			name:       "confidence clamped",
			raw:        `{"intent":"spid","confidence":7}`,
			intent:     model.IntentSPID,
			confidence: 1,
		},
		{
			name:   "intent outside the set",
			raw:    `{"intent":"weather"}`,
			intent: model.IntentUnknown,
		},
		{name: "no braces", raw: "nothing here", wantErr: classifier.ErrNoJSONObject},
		{name: "missing closing brace", raw: `{"intent":"spid"`, wantErr: classifier.ErrNoJSONObject},
		{name: "reversed braces", raw: `} {`, wantErr: classifier.ErrNoJSONObject},
		{name: "malformed span", raw: `{"intent": spid}`, wantErr: classifier.ErrInvalidReply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := classifier.DecodeReply(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.intent, got.Intent)
			assert.Equal(t, tt.region, got.RegionValue())
			assert.InDelta(t, tt.confidence, got.Confidence, 1e-9)
			assert.Equal(t, tt.needsRegion, got.NeedsRegion)
		})
	}
}
