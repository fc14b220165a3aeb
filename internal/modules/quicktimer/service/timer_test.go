package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"focuspro/internal/modules/quicktimer/domain"
	"focuspro/internal/modules/quicktimer/service"
	"focuspro/internal/platform/clock/clocktest"
	apperrors "focuspro/internal/platform/errors"
)

type recordingSink struct {
	mu       sync.Mutex
	ticks    int
	finished []int
}

func (s *recordingSink) Tick(int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticks++
}

func (s *recordingSink) Finished(totalSeconds int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finished = append(s.finished, totalSeconds)
}

func (s *recordingSink) finishedEvents() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.finished...)
}

func newTestTimer(t *testing.T) (*service.Timer, *clocktest.FakeClock, *recordingSink) {
	t.Helper()
	clk := clocktest.New(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	sink := &recordingSink{}
	timer := service.NewTimer(clk, sink)
	t.Cleanup(timer.Close)
	return timer, clk, sink
}

func TestFiveSecondExpiryEmitsExactlyOneFinished(t *testing.T) {
	t.Parallel()
	timer, clk, sink := newTestTimer(t)
	ctx := context.Background()

	if err := timer.Start(ctx, 5); err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.Advance(5)

	snap := timer.Status(ctx)
	if snap.State != domain.StateFinished {
		t.Fatalf("expected finished, got %s", snap.State)
	}
	if got := sink.finishedEvents(); len(got) != 1 || got[0] != 5 {
		t.Fatalf("expected one Finished(5), got %v", got)
	}

	// Extra ticks past zero must not re-fire.
	clk.Advance(3)
	if got := sink.finishedEvents(); len(got) != 1 {
		t.Fatalf("finished re-fired: %v", got)
	}
}

func TestTimerIsReArmableFromFinished(t *testing.T) {
	t.Parallel()
	timer, clk, sink := newTestTimer(t)
	ctx := context.Background()

	if err := timer.Start(ctx, 2); err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.Advance(2)
	if err := timer.Start(ctx, 3); err != nil {
		t.Fatalf("restart from finished: %v", err)
	}
	clk.Advance(3)
	if got := sink.finishedEvents(); len(got) != 2 {
		t.Fatalf("expected two finished events, got %v", got)
	}
}

func TestPauseHoldsRemaining(t *testing.T) {
	t.Parallel()
	timer, clk, _ := newTestTimer(t)
	ctx := context.Background()

	if err := timer.Start(ctx, 30); err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.Advance(10)
	if err := timer.Pause(ctx); err != nil {
		t.Fatalf("pause: %v", err)
	}
	clk.Advance(10)
	if got := timer.Status(ctx).Remaining; got != 20 {
		t.Fatalf("expected remaining 20 while paused, got %d", got)
	}
	if err := timer.Resume(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}
	clk.Advance(1)
	if got := timer.Status(ctx).Remaining; got != 19 {
		t.Fatalf("expected remaining 19, got %d", got)
	}
}

func TestStopReturnsToIdleWithoutFinished(t *testing.T) {
	t.Parallel()
	timer, clk, sink := newTestTimer(t)
	ctx := context.Background()

	if err := timer.Start(ctx, 30); err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.Advance(5)
	if err := timer.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if got := timer.Status(ctx).State; got != domain.StateIdle {
		t.Fatalf("expected idle, got %s", got)
	}
	if got := sink.finishedEvents(); len(got) != 0 {
		t.Fatalf("stop must not emit finished, got %v", got)
	}
}

func TestStartValidation(t *testing.T) {
	t.Parallel()
	timer, _, _ := newTestTimer(t)
	ctx := context.Background()

	if err := timer.Start(ctx, 0); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for 0 seconds, got %v", err)
	}
	if err := timer.Start(ctx, 10); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := timer.Start(ctx, 10); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition while running, got %v", err)
	}
}
