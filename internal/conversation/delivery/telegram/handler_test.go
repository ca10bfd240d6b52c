package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pastalink-bot/internal/catalog"
	"pastalink-bot/internal/conversation"
	"pastalink-bot/internal/model"
	pkgLog "pastalink-bot/pkg/log"
	"pastalink-bot/pkg/ratelimit"
	pkgTelegram "pastalink-bot/pkg/telegram"
)

type fakeUseCase struct {
	mu       sync.Mutex
	handled  []string
	cancels  int
	state    conversation.State
	reloadOK bool
	regions  []string
	resp     func(text string) conversation.Response

	// panicRegions makes Regions panic.
	panicRegions bool
}

func (f *fakeUseCase) HandleFreeText(ctx context.Context, sessionID, text, locale string) conversation.Response {
	return f.Handle(ctx, sessionID, text, locale)
}

func (f *fakeUseCase) HandleRegionReply(ctx context.Context, sessionID, text, locale string) conversation.Response {
	return f.Handle(ctx, sessionID, text, locale)
}

func (f *fakeUseCase) Handle(ctx context.Context, sessionID, text, locale string) conversation.Response {
	f.mu.Lock()
	f.handled = append(f.handled, sessionID+":"+text)
	f.mu.Unlock()
	if f.resp != nil {
		return f.resp(text)
	}
	return conversation.Response{Kind: conversation.KindConversational, Text: "echo " + text}
}

func (f *fakeUseCase) Cancel(sessionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancels++
	f.state = conversation.StateIdle
}

func (f *fakeUseCase) State(sessionID string) conversation.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == "" {
		return conversation.StateIdle
	}
	return f.state
}

func (f *fakeUseCase) ReloadCatalog(ctx context.Context) bool { return f.reloadOK }

func (f *fakeUseCase) Regions(query string) []string {
	if f.panicRegions {
		panic("regions unavailable")
	}
	return f.regions
}

func (f *fakeUseCase) Stats() conversation.Stats {
	return conversation.Stats{
		Catalog: catalog.Stats{Index: catalog.IndexStats{TotalEntries: 42, Intents: 13, Regions: 20}},
	}
}

type sentMessage struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type telegramAPI struct {
	mu      sync.Mutex
	sent    []sentMessage
	actions int
	// rejectMarkdown makes sendMessage fail whenever a parse mode is set.
	rejectMarkdown bool
}

func (a *telegramAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch {
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		var m sentMessage
		_ = json.NewDecoder(r.Body).Decode(&m)
		if a.rejectMarkdown && m.ParseMode != "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"ok":false,"description":"can't parse entities"}`))
			return
		}
		a.sent = append(a.sent, m)
	case strings.HasSuffix(r.URL.Path, "/sendChatAction"):
		a.actions++
	}
	_, _ = w.Write([]byte(`{"ok":true}`))
}

func (a *telegramAPI) chatActions() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.actions
}

func (a *telegramAPI) texts() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.sent))
	for i, m := range a.sent {
		out[i] = m.Text
	}
	return out
}

type testEnv struct {
	engine *gin.Engine
	h      *handler
	uc     *fakeUseCase
	api    *telegramAPI
}

func newTestEnv(t *testing.T, uc *fakeUseCase, limiter *ratelimit.Limiter, cfg Config) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := &telegramAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	bot := pkgTelegram.NewBot("test-token")
	bot.SetAPIURL(srv.URL)

	h := New(pkgLog.NewNop(), uc, bot, limiter, cfg).(*handler)

	engine := gin.New()
	engine.POST("/webhook/telegram", h.HandleWebhook)

	return &testEnv{engine: engine, h: h, uc: uc, api: api}
}

func (e *testEnv) post(t *testing.T, body string) map[string]any {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)

	var resp struct {
		Data map[string]any `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return resp.Data
}

func (e *testEnv) drain(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, e.h.Drain(ctx))
}

func update(chatID, userID int64, text string) string {
	return fmt.Sprintf(`{"update_id":1,"message":{"message_id":1,"from":{"id":%d,"first_name":"Ada","language_code":"it"},"chat":{"id":%d,"type":"private"},"date":0,"text":%q}}`,
		userID, chatID, text)
}

func TestHandleWebhook(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		env := newTestEnv(t, &fakeUseCase{}, nil, Config{})
		req := httptest.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		env.engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("update without message is ignored", func(t *testing.T) {
		env := newTestEnv(t, &fakeUseCase{}, nil, Config{})
		data := env.post(t, `{"update_id":7}`)
		assert.Equal(t, "ignored", data["status"])
	})

	t.Run("blank text is ignored", func(t *testing.T) {
		env := newTestEnv(t, &fakeUseCase{}, nil, Config{})
		data := env.post(t, update(1, 1, "   "))
		assert.Equal(t, "ignored", data["status"])
	})

	t.Run("free text is answered", func(t *testing.T) {
		uc := &fakeUseCase{}
		env := newTestEnv(t, uc, nil, Config{ShowTyping: true})

		data := env.post(t, update(10, 20, "ciao"))
		assert.Equal(t, "accepted", data["status"])
		env.drain(t)

		assert.Equal(t, []string{"10:ciao"}, uc.handled)
		assert.Equal(t, []string{"echo ciao"}, env.api.texts())
		assert.Equal(t, 1, env.api.chatActions())
	})

	t.Run("messages of one chat keep their order", func(t *testing.T) {
		uc := &fakeUseCase{}
		env := newTestEnv(t, uc, nil, Config{QueueBufferSize: 32})

		var want []string
		for i := range 10 {
			text := fmt.Sprintf("message %d", i)
			want = append(want, "5:"+text)
			env.post(t, update(5, 5, text))
		}
		env.drain(t)

		assert.Equal(t, want, uc.handled)
		assert.Zero(t, env.h.queue.active())
	})

	t.Run("rate limited user is told to slow down", func(t *testing.T) {
		uc := &fakeUseCase{}
		limiter := ratelimit.New(ratelimit.Config{PerMinute: 1, Burst: 1})
		env := newTestEnv(t, uc, limiter, Config{})

		assert.Equal(t, "accepted", env.post(t, update(3, 3, "first"))["status"])
		assert.Equal(t, "rate_limited", env.post(t, update(3, 3, "second"))["status"])
		env.drain(t)

		require.Eventually(t, func() bool { return len(env.api.texts()) == 2 }, 2*time.Second, 10*time.Millisecond)
		assert.Contains(t, env.api.texts(), TextRateLimited)
		assert.Equal(t, []string{"3:first"}, uc.handled)
	})

	t.Run("markdown rejection falls back to plain text", func(t *testing.T) {
		uc := &fakeUseCase{resp: func(string) conversation.Response {
			return conversation.Response{Kind: conversation.KindConversational, Text: "a_b"}
		}}
		env := newTestEnv(t, uc, nil, Config{})
		env.api.mu.Lock()
		env.api.rejectMarkdown = true
		env.api.mu.Unlock()

		env.post(t, update(1, 1, "hello there"))
		env.drain(t)

		assert.Equal(t, []string{"a_b"}, env.api.texts())
	})
}

func TestCommands(t *testing.T) {
	admin := Config{AdminUserIDs: []int64{99}}

	t.Run("start shows help and cancels", func(t *testing.T) {
		uc := &fakeUseCase{}
		env := newTestEnv(t, uc, nil, admin)
		env.post(t, update(1, 1, "/start"))
		env.drain(t)

		assert.Equal(t, []string{conversation.HelpText}, env.api.texts())
		assert.Equal(t, 1, uc.cancels)
		assert.Empty(t, uc.handled)
	})

	t.Run("about with bot mention", func(t *testing.T) {
		env := newTestEnv(t, &fakeUseCase{}, nil, admin)
		env.post(t, update(1, 1, "/about@PAstaLinkBot"))
		env.drain(t)
		assert.Equal(t, []string{conversation.AboutText}, env.api.texts())
	})

	t.Run("cancel", func(t *testing.T) {
		uc := &fakeUseCase{state: conversation.StateAwaitingRegion}
		env := newTestEnv(t, uc, nil, admin)
		env.post(t, update(1, 1, "/cancel"))
		env.post(t, update(1, 1, "/cancel"))
		env.drain(t)
		assert.Equal(t, []string{TextCancelled, TextNothingToCancel}, env.api.texts())
	})

	t.Run("regions", func(t *testing.T) {
		uc := &fakeUseCase{regions: []string{"Toscana", "Lazio"}}
		env := newTestEnv(t, uc, nil, admin)
		env.post(t, update(1, 1, "/regions"))
		env.drain(t)
		assert.Equal(t, []string{"**Available regions:**\nLazio, Toscana"}, env.api.texts())
	})

	t.Run("panic in a command answers generically and keeps the chat alive", func(t *testing.T) {
		uc := &fakeUseCase{panicRegions: true}
		env := newTestEnv(t, uc, nil, admin)
		env.post(t, update(1, 1, "/regions"))
		env.post(t, update(1, 1, "/help"))
		env.drain(t)

		assert.Equal(t, []string{TextGeneric, conversation.HelpText}, env.api.texts())
		assert.Zero(t, env.h.queue.active())

		env.post(t, update(2, 2, "ciao"))
		env.drain(t)
		assert.Equal(t, []string{"2:ciao"}, uc.handled)
	})

	t.Run("stats requires admin", func(t *testing.T) {
		env := newTestEnv(t, &fakeUseCase{}, nil, admin)
		env.post(t, update(1, 1, "/stats"))
		env.post(t, update(1, 99, "/stats"))
		env.drain(t)

		texts := env.api.texts()
		require.Len(t, texts, 2)
		assert.Equal(t, TextAdminOnly, texts[0])
		assert.Contains(t, texts[1], "Total entries: 42")
	})

	t.Run("reload", func(t *testing.T) {
		env := newTestEnv(t, &fakeUseCase{reloadOK: true}, nil, admin)
		env.post(t, update(1, 99, "/reload"))
		env.drain(t)
		assert.Equal(t, []string{fmt.Sprintf(TextReloadOK, 42, 20)}, env.api.texts())

		env = newTestEnv(t, &fakeUseCase{reloadOK: false}, nil, admin)
		env.post(t, update(1, 99, "/reload"))
		env.drain(t)
		assert.Equal(t, []string{TextReloadFailed}, env.api.texts())
	})

	t.Run("unknown command goes through the pipeline", func(t *testing.T) {
		uc := &fakeUseCase{}
		env := newTestEnv(t, uc, nil, admin)
		env.post(t, update(1, 1, "/bollo"))
		env.drain(t)
		assert.Equal(t, []string{"1:/bollo"}, uc.handled)
	})
}

func TestPresenter(t *testing.T) {
	p := presenter{regionsPerMessage: 3}

	t.Run("links", func(t *testing.T) {
		out := p.render(conversation.Response{
			Kind:   conversation.KindLinks,
			Intent: model.IntentBolloAuto,
			Entries: []model.CatalogEntry{
				{Label: "Calcolo bollo", URL: "https://example.it/bollo"},
				{Label: "No url"},
			},
		})
		assert.Equal(t, "Useful links (Bollo Auto)\n\n• Calcolo bollo: https://example.it/bollo", out)
	})

	t.Run("links without urls", func(t *testing.T) {
		out := p.render(conversation.Response{Kind: conversation.KindLinks, Entries: []model.CatalogEntry{{Label: "x"}}})
		assert.Equal(t, TextNoLinks, out)
	})

	t.Run("long reply is truncated", func(t *testing.T) {
		entries := make([]model.CatalogEntry, 200)
		for i := range entries {
			entries[i] = model.CatalogEntry{Label: strings.Repeat("l", 30), URL: "https://example.it/" + strings.Repeat("p", 20)}
		}
		out := p.links(model.IntentCUP, entries)
		assert.True(t, strings.HasSuffix(out, "\n..."))
		assert.Equal(t, SafeMessageLength+4, len([]rune(out)))
	})

	t.Run("ask region", func(t *testing.T) {
		out := p.render(conversation.Response{Kind: conversation.KindAskRegion, Examples: []string{"Lazio", "Lombardia"}})
		assert.Equal(t, "For which region? (e.g. Lazio, Lombardia)", out)
		assert.Equal(t, TextRegionQuestion, p.regionRequest(nil))
	})

	t.Run("unknown region", func(t *testing.T) {
		out := p.render(conversation.Response{
			Kind:        conversation.KindValidationError,
			ErrorKind:   model.ErrorKindUnknownRegion,
			Input:       "Lombardi",
			Suggestions: []string{"Lombardia"},
		})
		assert.Equal(t, "I didn't recognize 'Lombardi'. Did you mean: Lombardia?", out)

		out = p.render(conversation.Response{Kind: conversation.KindValidationError, ErrorKind: model.ErrorKindUnknownRegion, Input: "xyz"})
		assert.Equal(t, "I didn't recognize 'xyz'. Please try again.", out)
	})

	t.Run("validation message", func(t *testing.T) {
		out := p.render(conversation.Response{Kind: conversation.KindValidationError, ErrorKind: model.ErrorKindSpamRepetitive, Message: "Please send a meaningful message."})
		assert.Equal(t, "Please send a meaningful message.", out)
		assert.Equal(t, "m\n\nSuggestions: a, b", p.validationError("m", []string{"a", "b"}))
	})

	t.Run("errors", func(t *testing.T) {
		assert.Equal(t, TextNoLinks, p.render(conversation.Response{Kind: conversation.KindError, ErrorKind: conversation.ErrorKindNoLinks}))
		assert.Equal(t, TextGeneric, p.render(conversation.Response{Kind: conversation.KindError, ErrorKind: conversation.ErrorKindGeneric}))
	})

	t.Run("regions over the page size", func(t *testing.T) {
		out := p.regions([]string{"Veneto", "Lazio", "Umbria", "Abruzzo"}, "")
		assert.Equal(t, "**Available regions** (4 total):\nAbruzzo, Lazio, Umbria\n\n_Use /regions <name> to search_", out)
		assert.Equal(t, TextNoRegions, p.regions(nil, ""))
		assert.Equal(t, "No region matches 'zz'.", p.regions(nil, "zz"))
	})

	t.Run("parse mode", func(t *testing.T) {
		assert.Equal(t, pkgTelegram.ParseModeMarkdown, parseMode("**bold**"))
		assert.Equal(t, "", parseMode("plain text"))
	})
}

func TestSplitCommand(t *testing.T) {
	name, args := splitCommand("/Regions@PAstaLinkBot  lom ")
	assert.Equal(t, "/regions", name)
	assert.Equal(t, "lom", args)
}
