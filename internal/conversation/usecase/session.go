package usecase

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"pastalink-bot/internal/conversation"
	"pastalink-bot/internal/metrics"
)

// session is the per-chat state. mu serializes turns; pendingFlag mirrors
// pending != nil for the eviction callback, which must not take mu.
type session struct {
	mu          sync.Mutex
	pending     *conversation.PendingRequest
	pendingFlag atomic.Bool
}

type sessionStore struct {
	mu  sync.Mutex
	lru *expirable.LRU[string, *session]
}

// acquire returns the session for id, creating it if needed, with its turn
// lock held. The caller must call s.mu.Unlock.
func (st *sessionStore) acquire(id string) *session {
	st.mu.Lock()
	s, ok := st.lru.Get(id)
	if !ok {
		// An expired entry may still be stored; remove it so its eviction hook runs.
		st.lru.Remove(id)
		s = &session{}
		st.lru.Add(id, s)
	}
	st.mu.Unlock()

	s.mu.Lock()
	return s
}

// peek returns the session without creating it.
func (st *sessionStore) peek(id string) (*session, bool) {
	return st.lru.Peek(id)
}

// touch restarts the idle timer of id.
func (st *sessionStore) touch(id string, s *session) {
	st.mu.Lock()
	st.lru.Add(id, s)
	st.mu.Unlock()
}

func (st *sessionStore) len() int {
	return st.lru.Len()
}

func (st *sessionStore) pendingCount() int {
	n := 0
	for _, s := range st.lru.Values() {
		if s.pendingFlag.Load() {
			n++
		}
	}
	return n
}

// current returns the pending request, dropping it when older than ttl.
// Caller holds s.mu.
func (s *session) current(now time.Time, ttl time.Duration) *conversation.PendingRequest {
	if s.pending == nil {
		return nil
	}
	if now.Sub(s.pending.CreatedAt) > ttl {
		s.clear()
		return nil
	}
	return s.pending
}

// Caller holds s.mu.
func (s *session) set(p *conversation.PendingRequest) {
	s.pending = p
	if !s.pendingFlag.Swap(true) {
		metrics.SessionsPending.Inc()
	}
}

// Caller holds s.mu.
func (s *session) clear() {
	s.pending = nil
	if s.pendingFlag.Swap(false) {
		metrics.SessionsPending.Dec()
	}
}
