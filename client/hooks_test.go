package client

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcherStoresResult(t *testing.T) {
	f := NewFetcher(func(ctx context.Context) (int, error) {
		return 42, nil
	})

	got, err := f.Refetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	data, loading, err := f.Snapshot()
	assert.Equal(t, 42, data)
	assert.False(t, loading)
	assert.NoError(t, err)
}

func TestFetcherRefetchCancelsPrevious(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	f := NewFetcher(func(ctx context.Context) (string, error) {
		select {
		case started <- struct{}{}:
		default:
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-release:
			return "done", nil
		}
	})

	firstErr := make(chan error, 1)
	go func() {
		_, err := f.Refetch(context.Background())
		firstErr <- err
	}()

	<-started

	// The second fetch supersedes the first; the first's context is
	// cancelled and its result discarded.
	go close(release)
	got, err := f.Refetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "done", got)

	select {
	case err := <-firstErr:
		if err != nil {
			assert.True(t, errors.Is(err, context.Canceled))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("first fetch never returned")
	}

	data, _, snapErr := f.Snapshot()
	assert.Equal(t, "done", data)
	assert.NoError(t, snapErr)
}

func TestMutationLifecycle(t *testing.T) {
	m := NewMutation(func(ctx context.Context, in int) (int, error) {
		if in < 0 {
			return 0, errors.New("negative")
		}
		return in * 2, nil
	})

	out, err := m.Mutate(context.Background(), 21)
	require.NoError(t, err)
	assert.Equal(t, 42, out)

	_, err = m.Mutate(context.Background(), -1)
	require.Error(t, err)
	_, _, snapErr := m.Snapshot()
	assert.Error(t, snapErr)

	m.Reset()
	data, loading, snapErr := m.Snapshot()
	assert.Zero(t, data)
	assert.False(t, loading)
	assert.NoError(t, snapErr)
}

func TestPollerRefetchesUntilStopped(t *testing.T) {
	var calls atomic.Int64
	f := NewFetcher(func(ctx context.Context) (int64, error) {
		return calls.Add(1), nil
	})

	p := NewPoller(f, 10*time.Millisecond)
	p.Start(context.Background())

	assert.Eventually(t, func() bool {
		return calls.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond)

	p.Stop()
	after := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}

func TestPollerStopCancelsInFlight(t *testing.T) {
	blocked := make(chan struct{}, 1)
	f := NewFetcher(func(ctx context.Context) (int, error) {
		select {
		case blocked <- struct{}{}:
		default:
		}
		<-ctx.Done()
		return 0, ctx.Err()
	})

	p := NewPoller(f, time.Minute)
	p.Start(context.Background())

	<-blocked
	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not cancel the in-flight fetch")
	}
}

func TestPollerStartTwiceIsNoop(t *testing.T) {
	var calls atomic.Int64
	f := NewFetcher(func(ctx context.Context) (int64, error) {
		return calls.Add(1), nil
	})

	p := NewPoller(f, time.Hour)
	p.Start(context.Background())
	p.Start(context.Background())
	defer p.Stop()

	assert.Eventually(t, func() bool {
		return calls.Load() == 1
	}, time.Second, 5*time.Millisecond)
}
