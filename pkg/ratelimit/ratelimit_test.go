package ratelimit_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"pastalink-bot/pkg/ratelimit"
)

func TestLimiter(t *testing.T) {
	t.Run("burst then limited", func(t *testing.T) {
		l := ratelimit.New(ratelimit.Config{PerMinute: 1, Burst: 2})

		for i := 0; i < 2; i++ {
			if err := l.Allow("user-1"); err != nil {
				t.Fatalf("request %d: unexpected error: %v", i, err)
			}
		}
		if err := l.Allow("user-1"); !errors.Is(err, ratelimit.ErrLimited) {
			t.Fatalf("expected ErrLimited, got %v", err)
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		l := ratelimit.New(ratelimit.Config{PerMinute: 1, Burst: 1})
		if err := l.Allow("a"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := l.Allow("b"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if l.Len() != 2 {
			t.Errorf("expected 2 tracked keys, got %d", l.Len())
		}
	})

	t.Run("disabled when per minute is zero", func(t *testing.T) {
		l := ratelimit.New(ratelimit.Config{})
		for i := 0; i < 100; i++ {
			if err := l.Allow("x"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
	})
	t.Run("concurrent first requests share one bucket", func(t *testing.T) {
		l := ratelimit.New(ratelimit.Config{PerMinute: 1, Burst: 1})

		var allowed atomic.Int32
		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				if l.Allow("user-1") == nil {
					allowed.Add(1)
				}
			}()
		}
		close(start)
		wg.Wait()

		if got := allowed.Load(); got != 1 {
			t.Errorf("expected exactly 1 allowed request, got %d", got)
		}
		if l.Len() != 1 {
			t.Errorf("expected 1 tracked key, got %d", l.Len())
		}
	})
}
