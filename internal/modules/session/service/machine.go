package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"focuspro/internal/modules/session/domain"
	sessionout "focuspro/internal/modules/session/port/out"
	"focuspro/internal/platform/clock"
	apperrors "focuspro/internal/platform/errors"
)

const tickInterval = time.Second

// Machine owns one focus session's countdown. A single goroutine holds all
// mutable state; control calls are delivered over a command channel and block
// until applied, so a transition is always observed before the next decrement
// and cancellation lands within one tick.
type Machine struct {
	clock      clock.Clock
	store      sessionout.RecordStore
	goals      sessionout.GoalSource
	sink       sessionout.EventSink
	categories []string

	cmds chan command
	done chan struct{}

	// Everything below is owned by the loop goroutine.
	state       domain.State
	category    string
	durationMin int
	remaining   int
	recordID    int64
	ticker      clock.Ticker
}

type cmdKind int

const (
	cmdStart cmdKind = iota
	cmdPause
	cmdResume
	cmdStop
	cmdReset
	cmdSetDuration
	cmdStatus
	cmdClose
)

type command struct {
	kind     cmdKind
	ctx      context.Context
	category string
	minutes  int
	reply    chan response
}

// Snapshot is a point-in-time read of the loop-owned state.
type Snapshot struct {
	State       domain.State
	Category    string
	DurationMin int
	Remaining   int
	RecordID    int64
}

// StopResult reports what a stop finalized. Stopped is false when the
// machine was already idle.
type StopResult struct {
	RecordID     int64
	CompletedMin int
	Stopped      bool
}

type response struct {
	snap Snapshot
	stop StopResult
	err  error
}

func NewMachine(clk clock.Clock, store sessionout.RecordStore, goals sessionout.GoalSource, sink sessionout.EventSink, categories []string, defaultDurationMin int) *Machine {
	if sink == nil {
		sink = sessionout.NopSink{}
	}
	m := &Machine{
		clock:       clk,
		store:       store,
		goals:       goals,
		sink:        sink,
		categories:  categories,
		cmds:        make(chan command),
		done:        make(chan struct{}),
		state:       domain.StateIdle,
		durationMin: defaultDurationMin,
		remaining:   defaultDurationMin * 60,
	}
	go m.loop()
	return m
}

// Close terminates the loop goroutine. The machine is unusable afterwards.
func (m *Machine) Close() {
	select {
	case m.cmds <- command{kind: cmdClose}:
		<-m.done
	case <-m.done:
	}
}

func (m *Machine) Start(ctx context.Context, category string, durationMin int) (Snapshot, error) {
	resp := m.do(command{kind: cmdStart, ctx: ctx, category: category, minutes: durationMin})
	return resp.snap, resp.err
}

func (m *Machine) Pause(ctx context.Context) error {
	return m.do(command{kind: cmdPause, ctx: ctx}).err
}

func (m *Machine) Resume(ctx context.Context) error {
	return m.do(command{kind: cmdResume, ctx: ctx}).err
}

// Stop finalizes the running record. Calling from idle is a no-op.
func (m *Machine) Stop(ctx context.Context) (StopResult, error) {
	resp := m.do(command{kind: cmdStop, ctx: ctx})
	return resp.stop, resp.err
}

func (m *Machine) Reset(ctx context.Context) error {
	return m.do(command{kind: cmdReset, ctx: ctx}).err
}

func (m *Machine) SetDuration(ctx context.Context, minutes int) error {
	return m.do(command{kind: cmdSetDuration, ctx: ctx, minutes: minutes}).err
}

func (m *Machine) Status(ctx context.Context) Snapshot {
	return m.do(command{kind: cmdStatus, ctx: ctx}).snap
}

func (m *Machine) do(c command) response {
	c.reply = make(chan response, 1)
	select {
	case m.cmds <- c:
		return <-c.reply
	case <-m.done:
		return response{err: fmt.Errorf("session machine is closed")}
	}
}

func (m *Machine) loop() {
	for {
		var tick <-chan time.Time
		if m.ticker != nil {
			tick = m.ticker.C()
		}
		select {
		case c := <-m.cmds:
			if c.kind == cmdClose {
				m.stopTicker()
				close(m.done)
				return
			}
			c.reply <- m.apply(c)
		case <-tick:
			m.onTick()
		}
	}
}

func (m *Machine) apply(c command) response {
	switch c.kind {
	case cmdStart:
		return m.applyStart(c)
	case cmdPause:
		return m.applyPause()
	case cmdResume:
		if !m.state.CanResume() {
			return response{err: fmt.Errorf("%w: resume from %s", apperrors.ErrInvalidTransition, m.state)}
		}
		m.state = domain.StateActive
		return response{snap: m.snapshot()}
	case cmdStop:
		return m.applyStop(c.ctx)
	case cmdReset:
		m.stopTicker()
		m.state = domain.StateIdle
		m.recordID = 0
		m.remaining = m.durationMin * 60
		return response{snap: m.snapshot()}
	case cmdSetDuration:
		if m.state != domain.StateIdle {
			return response{err: fmt.Errorf("%w: duration can only change while idle", apperrors.ErrInvalidTransition)}
		}
		if err := domain.ValidateDuration(c.minutes); err != nil {
			return response{err: err}
		}
		m.durationMin = c.minutes
		m.remaining = c.minutes * 60
		return response{snap: m.snapshot()}
	case cmdStatus:
		return response{snap: m.snapshot()}
	default:
		return response{err: fmt.Errorf("unknown command %d", c.kind)}
	}
}

func (m *Machine) applyStart(c command) response {
	if !m.state.CanStart() {
		if m.state.Running() {
			return response{err: apperrors.ErrActiveSession}
		}
		return response{err: fmt.Errorf("%w: start from %s", apperrors.ErrInvalidTransition, m.state)}
	}
	if err := domain.ValidateCategory(m.categories, c.category); err != nil {
		return response{err: err}
	}
	minutes := c.minutes
	if minutes == 0 {
		minutes = m.durationMin
	}
	if err := domain.ValidateDuration(minutes); err != nil {
		return response{err: err}
	}

	now := m.clock.Now()
	id, err := m.store.InsertSession(c.ctx, domain.Record{
		Date:      clock.DateOf(now),
		Category:  c.category,
		Duration:  minutes,
		Completed: 0,
		StartTime: now,
	})
	if err != nil {
		return response{err: apperrors.Persistence("insert session", err)}
	}

	m.category = c.category
	m.durationMin = minutes
	m.remaining = minutes * 60
	m.recordID = id
	m.state = domain.StateActive
	m.ticker = m.clock.NewTicker(tickInterval)
	return response{snap: m.snapshot()}
}

func (m *Machine) applyPause() response {
	if !m.state.CanPause() {
		return response{err: fmt.Errorf("%w: pause from %s", apperrors.ErrInvalidTransition, m.state)}
	}
	// Persist progress before suspending; a failure is retried by the next
	// checkpoint, not surfaced into the pause.
	m.checkpoint()
	m.state = domain.StatePaused
	return response{snap: m.snapshot()}
}

func (m *Machine) applyStop(ctx context.Context) response {
	if m.state == domain.StateIdle {
		return response{snap: m.snapshot()}
	}
	if !m.state.CanStop() {
		return response{err: fmt.Errorf("%w: stop from %s", apperrors.ErrInvalidTransition, m.state)}
	}
	m.state = domain.StateStopped
	result := StopResult{RecordID: m.recordID, CompletedMin: m.elapsedMin(), Stopped: true}
	err := m.store.FinalizeSession(ctx, result.RecordID, result.CompletedMin, m.clock.Now())
	if err != nil {
		err = apperrors.Persistence("finalize session", err)
	}
	m.toIdle()
	return response{snap: m.snapshot(), stop: result, err: err}
}

func (m *Machine) onTick() {
	if m.state != domain.StateActive {
		return
	}
	m.remaining--
	m.sink.Tick(m.remaining)
	if m.remaining <= 0 {
		m.complete()
		return
	}
	if m.remaining%domain.CheckpointIntervalSec == 0 {
		m.checkpoint()
	}
}

func (m *Machine) complete() {
	m.state = domain.StateCompleted
	minutes := m.durationMin
	now := m.clock.Now()
	if err := m.store.FinalizeSession(context.Background(), m.recordID, minutes, now); err != nil {
		slog.Error("finalize completed session failed", "record_id", m.recordID, "error", err)
	}
	m.sink.Completed(minutes)
	m.checkGoal(now)
	m.toIdle()
}

func (m *Machine) checkGoal(now time.Time) {
	if m.goals == nil {
		return
	}
	ctx := context.Background()
	hours, err := m.goals.GoalHours(ctx)
	if err != nil {
		slog.Warn("daily goal lookup failed", "error", err)
		return
	}
	total, err := m.store.TodayTotal(ctx, clock.DateOf(now))
	if err != nil {
		slog.Warn("today total lookup failed", "error", err)
		return
	}
	if total >= hours*60 {
		m.sink.GoalReached(hours)
	}
}

// checkpoint upserts partial progress. Failures are logged and absorbed so
// the countdown never stops over storage trouble.
func (m *Machine) checkpoint() {
	if m.recordID == 0 {
		return
	}
	if err := m.store.UpdateCompleted(context.Background(), m.recordID, m.elapsedMin()); err != nil {
		slog.Warn("session checkpoint failed", "record_id", m.recordID, "error", err)
	}
}

func (m *Machine) elapsedMin() int {
	return (m.durationMin*60 - m.remaining) / 60
}

func (m *Machine) toIdle() {
	m.stopTicker()
	m.state = domain.StateIdle
	m.recordID = 0
	m.remaining = m.durationMin * 60
}

func (m *Machine) stopTicker() {
	if m.ticker != nil {
		m.ticker.Stop()
		m.ticker = nil
	}
}

func (m *Machine) snapshot() Snapshot {
	return Snapshot{
		State:       m.state,
		Category:    m.category,
		DurationMin: m.durationMin,
		Remaining:   m.remaining,
		RecordID:    m.recordID,
	}
}
