package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"focuspro/internal/modules/session/domain"
	"focuspro/internal/modules/session/service"
	"focuspro/internal/platform/clock/clocktest"
	apperrors "focuspro/internal/platform/errors"
)

var testCategories = []string{"Maths", "Physics", "ICT", "General"}

type fakeStore struct {
	mu          sync.Mutex
	nextID      int64
	records     map[int64]domain.Record
	checkpoints []int
	insertErr   error
	updateErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, records: map[int64]domain.Record{}}
}

func (s *fakeStore) InsertSession(_ context.Context, record domain.Record) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return 0, s.insertErr
	}
	id := s.nextID
	s.nextID++
	record.ID = id
	s.records[id] = record
	return id, nil
}

func (s *fakeStore) UpdateCompleted(_ context.Context, id int64, completedMin int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	record := s.records[id]
	record.Completed = completedMin
	s.records[id] = record
	s.checkpoints = append(s.checkpoints, completedMin)
	return nil
}

func (s *fakeStore) FinalizeSession(_ context.Context, id int64, completedMin int, endTime time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok {
		return errors.New("no such record")
	}
	record.Completed = completedMin
	record.EndTime = &endTime
	s.records[id] = record
	return nil
}

func (s *fakeStore) TodayTotal(_ context.Context, date string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, record := range s.records {
		if record.Date == date {
			total += record.Completed
		}
	}
	return total, nil
}

func (s *fakeStore) record(id int64) domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[id]
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *fakeStore) checkpointCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.checkpoints)
}

type fakeGoals struct {
	hours int
}

func (g fakeGoals) GoalHours(context.Context) (int, error) { return g.hours, nil }

type recordingSink struct {
	mu          sync.Mutex
	ticks       int
	completed   []int
	goalReached []int
}

func (s *recordingSink) Tick(int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticks++
}

func (s *recordingSink) Completed(durationMin int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed = append(s.completed, durationMin)
}

func (s *recordingSink) GoalReached(goalHours int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goalReached = append(s.goalReached, goalHours)
}

func (s *recordingSink) snapshot() (int, []int, []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks, append([]int(nil), s.completed...), append([]int(nil), s.goalReached...)
}

func newTestMachine(t *testing.T, store *fakeStore, sink *recordingSink, goalHours int) (*service.Machine, *clocktest.FakeClock) {
	t.Helper()
	clk := clocktest.New(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	machine := service.NewMachine(clk, store, fakeGoals{hours: goalHours}, sink, testCategories, 25)
	t.Cleanup(machine.Close)
	return machine, clk
}

func TestStartInsertsRecordAndRunsCountdown(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	sink := &recordingSink{}
	machine, clk := newTestMachine(t, store, sink, 8)
	ctx := context.Background()

	snap, err := machine.Start(ctx, "Maths", 25)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if snap.RecordID == 0 {
		t.Fatalf("expected a record id")
	}
	record := store.record(snap.RecordID)
	if record.Date != "2026-03-14" || record.Category != "Maths" || record.Duration != 25 || record.Completed != 0 {
		t.Fatalf("unexpected inserted record: %+v", record)
	}

	clk.Advance(3)
	status := machine.Status(ctx)
	if status.Remaining != 25*60-3 {
		t.Fatalf("expected remaining %d, got %d", 25*60-3, status.Remaining)
	}
	ticks, _, _ := sink.snapshot()
	if ticks != 3 {
		t.Fatalf("expected 3 tick events, got %d", ticks)
	}
}

func TestStartWhileActiveFailsWithoutSecondRecord(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	machine, _ := newTestMachine(t, store, &recordingSink{}, 8)
	ctx := context.Background()

	if _, err := machine.Start(ctx, "Maths", 25); err != nil {
		t.Fatalf("start: %v", err)
	}
	_, err := machine.Start(ctx, "Physics", 25)
	if !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if store.count() != 1 {
		t.Fatalf("expected one record, got %d", store.count())
	}
}

func TestStartValidation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		category string
		minutes  int
	}{
		{name: "unknown category", category: "Gardening", minutes: 25},
		{name: "zero treated as default but negative rejected", category: "Maths", minutes: -5},
		{name: "too long", category: "Maths", minutes: 241},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := newFakeStore()
			machine, _ := newTestMachine(t, store, &recordingSink{}, 8)
			_, err := machine.Start(context.Background(), tt.category, tt.minutes)
			if !errors.Is(err, apperrors.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if store.count() != 0 {
				t.Fatalf("expected no record on validation failure")
			}
		})
	}
}

func TestPauseSuppressesTicksAndCheckpoints(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	sink := &recordingSink{}
	machine, clk := newTestMachine(t, store, sink, 8)
	ctx := context.Background()

	if _, err := machine.Start(ctx, "ICT", 25); err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.Advance(10)
	if err := machine.Pause(ctx); err != nil {
		t.Fatalf("pause: %v", err)
	}
	// Pause writes progress before suspending.
	if store.checkpointCount() == 0 {
		t.Fatalf("expected a checkpoint on pause")
	}
	before := machine.Status(ctx).Remaining

	clk.Advance(10)
	if got := machine.Status(ctx).Remaining; got != before {
		t.Fatalf("remaining moved while paused: %d -> %d", before, got)
	}

	if err := machine.Resume(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}
	clk.Advance(1)
	if got := machine.Status(ctx).Remaining; got != before-1 {
		t.Fatalf("expected remaining %d after resume, got %d", before-1, got)
	}
}

func TestNinetySecondsWithPauseStopRecordsOneMinute(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	machine, clk := newTestMachine(t, store, &recordingSink{}, 8)
	ctx := context.Background()

	snap, err := machine.Start(ctx, "Maths", 25)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.Advance(90)
	if err := machine.Pause(ctx); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if err := machine.Resume(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}
	result, err := machine.Stop(ctx)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if !result.Stopped {
		t.Fatalf("expected a stopped result")
	}
	if result.CompletedMin != 1 {
		t.Fatalf("expected 1 completed minute after 90s, got %d", result.CompletedMin)
	}
	record := store.record(snap.RecordID)
	if record.Completed != 1 {
		t.Fatalf("expected persisted completed=1, got %d", record.Completed)
	}
	if record.EndTime == nil {
		t.Fatalf("expected end time on stop")
	}
	if machine.Status(ctx).State != domain.StateIdle {
		t.Fatalf("expected idle after stop")
	}
}

func TestStopImmediatelyRecordsZeroWithEndTime(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	machine, _ := newTestMachine(t, store, &recordingSink{}, 8)
	ctx := context.Background()

	snap, err := machine.Start(ctx, "General", 25)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	result, err := machine.Stop(ctx)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if result.CompletedMin != 0 {
		t.Fatalf("expected 0 completed minutes, got %d", result.CompletedMin)
	}
	record := store.record(snap.RecordID)
	if record.EndTime == nil {
		t.Fatalf("expected end time set")
	}
}

func TestStopFromIdleIsNoOp(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	machine, _ := newTestMachine(t, store, &recordingSink{}, 8)

	result, err := machine.Stop(context.Background())
	if err != nil {
		t.Fatalf("stop from idle: %v", err)
	}
	if result.Stopped {
		t.Fatalf("expected no-op stop from idle")
	}
	if store.count() != 0 {
		t.Fatalf("expected no records")
	}
}

func TestCheckpointEveryThirtyLogicalSeconds(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	machine, clk := newTestMachine(t, store, &recordingSink{}, 8)

	if _, err := machine.Start(context.Background(), "Maths", 25); err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.Advance(120)
	// remaining hits 1470, 1440, 1410, 1380: four checkpoints.
	if got := store.checkpointCount(); got != 4 {
		t.Fatalf("expected 4 checkpoints after 120s, got %d", got)
	}
}

func TestNaturalCompletionFinalizesAndEmitsEvents(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	sink := &recordingSink{}
	machine, clk := newTestMachine(t, store, sink, 8)
	ctx := context.Background()

	snap, err := machine.Start(ctx, "Physics", 1)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.Advance(60)

	status := machine.Status(ctx)
	if status.State != domain.StateIdle {
		t.Fatalf("expected idle after completion, got %s", status.State)
	}
	record := store.record(snap.RecordID)
	if record.Completed != 1 || record.EndTime == nil {
		t.Fatalf("expected finalized record, got %+v", record)
	}
	_, completed, _ := sink.snapshot()
	if len(completed) != 1 || completed[0] != 1 {
		t.Fatalf("expected one Completed(1) event, got %v", completed)
	}
}

func TestGoalReachedEmittedOnceTotalMeetsGoal(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	sink := &recordingSink{}
	// 1 hour goal; seed 59 minutes already done today.
	clk := clocktest.New(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	machine := service.NewMachine(clk, store, fakeGoals{hours: 1}, sink, testCategories, 25)
	t.Cleanup(machine.Close)
	seed, _ := store.InsertSession(context.Background(), domain.Record{Date: "2026-03-14", Category: "Maths", Duration: 59, StartTime: clk.Now()})
	_ = store.UpdateCompleted(context.Background(), seed, 59)

	if _, err := machine.Start(context.Background(), "Maths", 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.Advance(60)

	_, _, goals := sink.snapshot()
	if len(goals) != 1 || goals[0] != 1 {
		t.Fatalf("expected one GoalReached(1) event, got %v", goals)
	}
}

func TestPersistenceFailureDoesNotStopCountdown(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	machine, clk := newTestMachine(t, store, &recordingSink{}, 8)
	ctx := context.Background()

	if _, err := machine.Start(ctx, "Maths", 25); err != nil {
		t.Fatalf("start: %v", err)
	}
	store.mu.Lock()
	store.updateErr = errors.New("disk full")
	store.mu.Unlock()

	clk.Advance(60)
	if got := machine.Status(ctx).Remaining; got != 25*60-60 {
		t.Fatalf("countdown stalled on checkpoint failure: remaining %d", got)
	}
}

func TestResetAbandonsRecordAndRestoresDuration(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	machine, clk := newTestMachine(t, store, &recordingSink{}, 8)
	ctx := context.Background()

	snap, err := machine.Start(ctx, "Maths", 25)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.Advance(45)
	if err := machine.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	status := machine.Status(ctx)
	if status.State != domain.StateIdle || status.Remaining != 25*60 {
		t.Fatalf("expected idle with full duration, got %+v", status)
	}
	// The abandoned record keeps its last checkpoint and no end time.
	record := store.record(snap.RecordID)
	if record.EndTime != nil {
		t.Fatalf("reset must not finalize the record")
	}
}

func TestSetDurationOnlyWhileIdle(t *testing.T) {
	t.Parallel()
	machine, _ := newTestMachine(t, newFakeStore(), &recordingSink{}, 8)
	ctx := context.Background()

	if err := machine.SetDuration(ctx, 50); err != nil {
		t.Fatalf("set duration while idle: %v", err)
	}
	if got := machine.Status(ctx).DurationMin; got != 50 {
		t.Fatalf("expected duration 50, got %d", got)
	}
	if err := machine.SetDuration(ctx, 300); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for 300, got %v", err)
	}
	if _, err := machine.Start(ctx, "Maths", 0); err != nil {
		t.Fatalf("start with default duration: %v", err)
	}
	if err := machine.SetDuration(ctx, 30); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition while active, got %v", err)
	}
}
