package service

import (
	"context"
	"fmt"
	"time"

	"focuspro/internal/modules/quicktimer/domain"
	quicktimerout "focuspro/internal/modules/quicktimer/port/out"
	"focuspro/internal/platform/clock"
	apperrors "focuspro/internal/platform/errors"
)

const tickInterval = time.Second

// Timer is an ad-hoc countdown with no persistence. It reuses the session
// machine's ownership model: one goroutine holds the state, control calls
// block on a command channel until applied.
type Timer struct {
	clock clock.Clock
	sink  quicktimerout.FinishSink

	cmds chan command
	done chan struct{}

	state     domain.State
	total     int
	remaining int
	ticker    clock.Ticker
}

type cmdKind int

const (
	cmdStart cmdKind = iota
	cmdPause
	cmdResume
	cmdStop
	cmdStatus
	cmdClose
)

type command struct {
	kind    cmdKind
	seconds int
	reply   chan response
}

type Snapshot struct {
	State     domain.State
	Total     int
	Remaining int
}

type response struct {
	snap Snapshot
	err  error
}

func NewTimer(clk clock.Clock, sink quicktimerout.FinishSink) *Timer {
	if sink == nil {
		sink = quicktimerout.NopSink{}
	}
	t := &Timer{
		clock: clk,
		sink:  sink,
		cmds:  make(chan command),
		done:  make(chan struct{}),
		state: domain.StateIdle,
	}
	go t.loop()
	return t
}

func (t *Timer) Close() {
	select {
	case t.cmds <- command{kind: cmdClose}:
		<-t.done
	case <-t.done:
	}
}

func (t *Timer) Start(ctx context.Context, seconds int) error {
	return t.do(command{kind: cmdStart, seconds: seconds}).err
}

func (t *Timer) Pause(ctx context.Context) error {
	return t.do(command{kind: cmdPause}).err
}

func (t *Timer) Resume(ctx context.Context) error {
	return t.do(command{kind: cmdResume}).err
}

// Stop forcibly returns to idle; no finished event fires.
func (t *Timer) Stop(ctx context.Context) error {
	return t.do(command{kind: cmdStop}).err
}

func (t *Timer) Status(ctx context.Context) Snapshot {
	return t.do(command{kind: cmdStatus}).snap
}

func (t *Timer) do(c command) response {
	c.reply = make(chan response, 1)
	select {
	case t.cmds <- c:
		return <-c.reply
	case <-t.done:
		return response{err: fmt.Errorf("quick timer is closed")}
	}
}

func (t *Timer) loop() {
	for {
		var tick <-chan time.Time
		if t.ticker != nil {
			tick = t.ticker.C()
		}
		select {
		case c := <-t.cmds:
			if c.kind == cmdClose {
				t.stopTicker()
				close(t.done)
				return
			}
			c.reply <- t.apply(c)
		case <-tick:
			t.onTick()
		}
	}
}

func (t *Timer) apply(c command) response {
	switch c.kind {
	case cmdStart:
		if !t.state.CanStart() {
			return response{err: fmt.Errorf("%w: start from %s", apperrors.ErrInvalidTransition, t.state)}
		}
		if err := domain.ValidateSeconds(c.seconds); err != nil {
			return response{err: err}
		}
		t.total = c.seconds
		t.remaining = c.seconds
		t.state = domain.StateRunning
		t.ticker = t.clock.NewTicker(tickInterval)
		return response{snap: t.snapshot()}
	case cmdPause:
		if !t.state.CanPause() {
			return response{err: fmt.Errorf("%w: pause from %s", apperrors.ErrInvalidTransition, t.state)}
		}
		t.state = domain.StatePaused
		return response{snap: t.snapshot()}
	case cmdResume:
		if !t.state.CanResume() {
			return response{err: fmt.Errorf("%w: resume from %s", apperrors.ErrInvalidTransition, t.state)}
		}
		t.state = domain.StateRunning
		return response{snap: t.snapshot()}
	case cmdStop:
		t.stopTicker()
		t.state = domain.StateIdle
		t.remaining = 0
		t.total = 0
		return response{snap: t.snapshot()}
	case cmdStatus:
		return response{snap: t.snapshot()}
	default:
		return response{err: fmt.Errorf("unknown command %d", c.kind)}
	}
}

func (t *Timer) onTick() {
	if t.state != domain.StateRunning {
		return
	}
	t.remaining--
	t.sink.Tick(t.remaining)
	if t.remaining <= 0 {
		t.stopTicker()
		t.state = domain.StateFinished
		t.sink.Finished(t.total)
	}
}

func (t *Timer) stopTicker() {
	if t.ticker != nil {
		t.ticker.Stop()
		t.ticker = nil
	}
}

func (t *Timer) snapshot() Snapshot {
	return Snapshot{State: t.state, Total: t.total, Remaining: t.remaining}
}
