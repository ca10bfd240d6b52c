package telegram

import (
	"context"
	"sync"
)

// queue runs jobs for the same key one at a time, in arrival order. Each
// active key owns a goroutine that exits as soon as its backlog is empty.
type queue struct {
	mu      sync.Mutex
	workers map[string]chan func()
	buffer  int
	wg      sync.WaitGroup
}

func newQueue(buffer int) *queue {
	return &queue{
		workers: make(map[string]chan func()),
		buffer:  buffer,
	}
}

// enqueue reports false when the key's backlog is full.
func (q *queue) enqueue(key string, job func()) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	jobs, ok := q.workers[key]
	if !ok {
		jobs = make(chan func(), q.buffer)
		q.workers[key] = jobs
		q.wg.Add(1)
		go q.run(key, jobs)
	}

	select {
	case jobs <- job:
		return true
	default:
		return false
	}
}

func (q *queue) run(key string, jobs chan func()) {
	defer q.wg.Done()
	for {
		q.mu.Lock()
		select {
		case job := <-jobs:
			q.mu.Unlock()
			exec(job)
		default:
			delete(q.workers, key)
			q.mu.Unlock()
			return
		}
	}
}

func (q *queue) active() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.workers)
}

// wait blocks until every worker has exited or ctx is done.
func (q *queue) wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// exec runs job and swallows a panic so the worker stays alive and wg stays
// balanced. Jobs report their own failures.
func exec(job func()) {
	defer func() { _ = recover() }()
	job()
}
