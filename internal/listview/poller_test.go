package listview

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTicker struct {
	ch chan time.Time

	mu      sync.Mutex
	resets  int
	stopped bool
}

func newFakeTicker() *fakeTicker {
	return &fakeTicker{ch: make(chan time.Time)}
}

func (f *fakeTicker) Chan() <-chan time.Time { return f.ch }

func (f *fakeTicker) Reset(time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
}

func (f *fakeTicker) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeTicker) state() (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resets, f.stopped
}

func (f *fakeTicker) factory() func(time.Duration) Ticker {
	return func(time.Duration) Ticker { return f }
}

func TestPollerTicksUntilStopped(t *testing.T) {
	ticker := newFakeTicker()
	var ticks atomic.Int32
	p := NewPoller(8*time.Second, func(context.Context) { ticks.Add(1) }, WithTicker(ticker.factory()))

	p.Start(context.Background())
	require.True(t, p.Running())

	ticker.ch <- time.Now()
	ticker.ch <- time.Now()
	assert.Eventually(t, func() bool { return ticks.Load() == 2 }, time.Second, 5*time.Millisecond)

	p.Stop()
	assert.False(t, p.Running())
	_, stopped := ticker.state()
	assert.True(t, stopped)

	// Nothing reads the channel once stopped.
	select {
	case ticker.ch <- time.Now():
		t.Fatal("tick delivered after Stop")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestPollerRefreshNowResetsInterval(t *testing.T) {
	ticker := newFakeTicker()
	var ticks atomic.Int32
	p := NewPoller(8*time.Second, func(context.Context) { ticks.Add(1) }, WithTicker(ticker.factory()))
	p.Start(context.Background())
	defer p.Stop()

	p.RefreshNow(context.Background())
	assert.Equal(t, int32(1), ticks.Load())
	assert.Eventually(t, func() bool {
		resets, _ := ticker.state()
		return resets == 1
	}, time.Second, 5*time.Millisecond)
}

func TestPollerStartTwiceIsNoop(t *testing.T) {
	created := 0
	p := NewPoller(time.Second, func(context.Context) {}, WithTicker(func(time.Duration) Ticker {
		created++
		return newFakeTicker()
	}))

	p.Start(context.Background())
	p.Start(context.Background())
	p.Stop()
	p.Stop()
	assert.Equal(t, 1, created)
}

func TestPollerStopsWithContext(t *testing.T) {
	ticker := newFakeTicker()
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPoller(time.Second, func(context.Context) {}, WithTicker(ticker.factory()))
	p.Start(ctx)

	cancel()
	assert.Eventually(t, func() bool {
		_, stopped := ticker.state()
		return stopped
	}, time.Second, 5*time.Millisecond)
	p.Stop()
}
