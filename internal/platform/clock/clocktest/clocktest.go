// Package clocktest provides a hand-driven clock for timer tests.
package clocktest

import (
	"sync"
	"time"

	"focuspro/internal/platform/clock"
)

// FakeClock hands out tickers that only fire when Advance is called. Ticks
// are delivered over unbuffered channels, so Advance returns after the
// consuming loop has fully processed each tick.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*FakeTicker
}

func New(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) SetNow(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *FakeClock) NewTicker(d time.Duration) clock.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &FakeTicker{ch: make(chan time.Time), stop: make(chan struct{})}
	c.tickers = append(c.tickers, t)
	return t
}

// Advance delivers n ticks to every live ticker, blocking on each until the
// receiver has taken it.
func (c *FakeClock) Advance(n int) {
	for i := 0; i < n; i++ {
		c.mu.Lock()
		c.now = c.now.Add(time.Second)
		tickers := make([]*FakeTicker, len(c.tickers))
		copy(tickers, c.tickers)
		now := c.now
		c.mu.Unlock()
		for _, t := range tickers {
			t.tick(now)
		}
	}
}

// TickerCount reports how many tickers have ever been created; timer tests
// use it to assert a loop was or was not started.
func (c *FakeClock) TickerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

type FakeTicker struct {
	ch       chan time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

func (t *FakeTicker) C() <-chan time.Time { return t.ch }

func (t *FakeTicker) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
}

func (t *FakeTicker) tick(now time.Time) {
	select {
	case t.ch <- now:
	case <-t.stop:
	}
}

var _ clock.Clock = (*FakeClock)(nil)
