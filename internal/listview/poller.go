package listview

import (
	"context"
	"sync"
	"time"
)

// Ticker is the part of *time.Ticker the poller uses.
type Ticker interface {
	Chan() <-chan time.Time
	Reset(d time.Duration)
	Stop()
}

type timeTicker struct {
	*time.Ticker
}

func (t timeTicker) Chan() <-chan time.Time { return t.C }

func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{time.NewTicker(d)}
}

// Poller calls tick every interval until stopped. RefreshNow runs tick at
// once and restarts the interval.
type Poller struct {
	interval  time.Duration
	tick      func(ctx context.Context)
	newTicker func(time.Duration) Ticker

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	reset  chan struct{}
}

type PollerOption func(*Poller)

// WithTicker replaces the ticker factory. Tests use it to drive ticks.
func WithTicker(factory func(time.Duration) Ticker) PollerOption {
	return func(p *Poller) { p.newTicker = factory }
}

func NewPoller(interval time.Duration, tick func(ctx context.Context), opts ...PollerOption) *Poller {
	p := &Poller{
		interval:  interval,
		tick:      tick,
		newTicker: NewTimeTicker,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start is a no-op when the poller is already running.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.reset = make(chan struct{}, 1)

	go p.loop(ctx, p.newTicker(p.interval), p.done, p.reset)
}

func (p *Poller) loop(ctx context.Context, ticker Ticker, done chan struct{}, reset <-chan struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-reset:
			ticker.Reset(p.interval)
		case <-ticker.Chan():
			p.tick(ctx)
		}
	}
}

// Stop halts the loop and waits for an in-progress tick to return.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done, p.reset = nil, nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

func (p *Poller) RefreshNow(ctx context.Context) {
	p.mu.Lock()
	reset := p.reset
	p.mu.Unlock()

	if reset != nil {
		select {
		case reset <- struct{}{}:
		default:
		}
	}
	p.tick(ctx)
}
