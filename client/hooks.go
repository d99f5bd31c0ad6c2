package client

import (
	"context"
	"sync"
	"time"
)

// Fetcher caches the result of a fetch function and exposes a snapshot of
// the latest state. Starting a new Refetch cancels the previous in-flight
// request, so the stored result always belongs to the most recent call.
type Fetcher[T any] struct {
	fetch func(context.Context) (T, error)

	mu      sync.Mutex
	cancel  context.CancelFunc
	seq     uint64
	data    T
	err     error
	loading bool
}

func NewFetcher[T any](fetch func(context.Context) (T, error)) *Fetcher[T] {
	return &Fetcher[T]{fetch: fetch}
}

// Refetch runs the fetch function, superseding any in-flight call.
func (f *Fetcher[T]) Refetch(ctx context.Context) (T, error) {
	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.seq++
	seq := f.seq
	f.loading = true
	f.mu.Unlock()

	data, err := f.fetch(fetchCtx)
	cancel()

	f.mu.Lock()
	defer f.mu.Unlock()
	// A newer Refetch superseded this one; drop the result.
	if seq != f.seq {
		return data, err
	}
	f.data = data
	f.err = err
	f.loading = false
	return data, err
}

// Snapshot returns the latest data, whether a fetch is in flight, and the
// last error.
func (f *Fetcher[T]) Snapshot() (T, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data, f.loading, f.err
}

// Cancel aborts the in-flight request, if any.
func (f *Fetcher[T]) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

// Mutation tracks the lifecycle of a single write operation.
type Mutation[In, Out any] struct {
	run func(context.Context, In) (Out, error)

	mu      sync.Mutex
	data    Out
	err     error
	loading bool
}

func NewMutation[In, Out any](run func(context.Context, In) (Out, error)) *Mutation[In, Out] {
	return &Mutation[In, Out]{run: run}
}

// Mutate executes the operation and records its outcome.
func (m *Mutation[In, Out]) Mutate(ctx context.Context, in In) (Out, error) {
	m.mu.Lock()
	m.loading = true
	m.err = nil
	m.mu.Unlock()

	out, err := m.run(ctx, in)

	m.mu.Lock()
	m.data = out
	m.err = err
	m.loading = false
	m.mu.Unlock()
	return out, err
}

// Snapshot returns the last result, whether a call is in flight, and the
// last error.
func (m *Mutation[In, Out]) Snapshot() (Out, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data, m.loading, m.err
}

// Reset clears the recorded outcome.
func (m *Mutation[In, Out]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero Out
	m.data = zero
	m.err = nil
	m.loading = false
}

// Poller refetches on a fixed interval until stopped.
type Poller[T any] struct {
	fetcher  *Fetcher[T]
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller[T any](fetcher *Fetcher[T], interval time.Duration) *Poller[T] {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Poller[T]{fetcher: fetcher, interval: interval}
}

// Start begins polling. The first fetch fires immediately. Calling Start
// on a running poller is a no-op.
func (p *Poller[T]) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	pollCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	done := make(chan struct{})
	p.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.fetcher.Refetch(pollCtx)
		for {
			select {
			case <-ticker.C:
				p.fetcher.Refetch(pollCtx)
			case <-pollCtx.Done():
				return
			}
		}
	}()
}

// Stop cancels the timer and any in-flight request, then waits for the
// polling goroutine to exit.
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	done := p.done
	p.cancel = nil
	p.done = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	p.fetcher.Cancel()
	<-done
}

// Snapshot proxies the underlying fetcher's state.
func (p *Poller[T]) Snapshot() (T, bool, error) {
	return p.fetcher.Snapshot()
}
