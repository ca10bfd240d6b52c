package usecase

import (
	"context"
	"runtime/debug"
	"strings"

	"pastalink-bot/internal/conversation"
	"pastalink-bot/internal/metrics"
)

func (uc *implUseCase) HandleFreeText(ctx context.Context, sessionID, text, locale string) conversation.Response {
	return uc.turn(ctx, sessionID, func(s *session) conversation.Response {
		return uc.freeText(ctx, s, text, locale)
	})
}

func (uc *implUseCase) HandleRegionReply(ctx context.Context, sessionID, text, locale string) conversation.Response {
	return uc.turn(ctx, sessionID, func(s *session) conversation.Response {
		return uc.regionReply(ctx, s, text, locale)
	})
}

func (uc *implUseCase) Handle(ctx context.Context, sessionID, text, locale string) conversation.Response {
	return uc.turn(ctx, sessionID, func(s *session) conversation.Response {
		if s.current(uc.cfg.Now(), uc.cfg.SessionTimeout) != nil {
			return uc.regionReply(ctx, s, text, locale)
		}
		return uc.freeText(ctx, s, text, locale)
	})
}

func (uc *implUseCase) Cancel(sessionID string) {
	s, ok := uc.sessions.peek(sessionID)
	if !ok {
		return
	}
	s.mu.Lock()
	s.clear()
	s.mu.Unlock()
}

func (uc *implUseCase) State(sessionID string) conversation.State {
	s, ok := uc.sessions.peek(sessionID)
	if !ok {
		return conversation.StateIdle
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current(uc.cfg.Now(), uc.cfg.SessionTimeout) != nil {
		return conversation.StateAwaitingRegion
	}
	return conversation.StateIdle
}

func (uc *implUseCase) ReloadCatalog(ctx context.Context) bool {
	return uc.catalog.Reload(ctx)
}

func (uc *implUseCase) Regions(query string) []string {
	if strings.TrimSpace(query) == "" {
		return uc.validator.Regions()
	}
	return uc.validator.FilterRegions(query)
}

func (uc *implUseCase) Stats() conversation.Stats {
	return conversation.Stats{
		Catalog:         uc.catalog.Stats(),
		Classifier:      uc.classifier.CacheStats(),
		Validator:       uc.validator.Stats(),
		ActiveSessions:  uc.sessions.len(),
		PendingSessions: uc.sessions.pendingCount(),
	}
}

// turn runs fn with the session lock held, converts a panic into a generic
// error and refreshes the session's idle timer.
func (uc *implUseCase) turn(ctx context.Context, sessionID string, fn func(s *session) conversation.Response) (resp conversation.Response) {
	s := uc.sessions.acquire(sessionID)
	defer func() {
		if r := recover(); r != nil {
			uc.l.Errorf(ctx, "%s: session=%s panic: %v\n%s", conversation.LogPrefixRecover, sessionID, r, debug.Stack())
			resp = genericError()
		}
		s.mu.Unlock()
		uc.sessions.touch(sessionID, s)
		metrics.MessagesTotal.WithLabelValues(string(resp.Kind)).Inc()
	}()

	return fn(s)
}

func genericError() conversation.Response {
	return conversation.Response{Kind: conversation.KindError, ErrorKind: conversation.ErrorKindGeneric}
}
