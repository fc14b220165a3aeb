package out

import (
	"context"
	"time"

	"focuspro/internal/modules/session/domain"
)

// RecordStore is the durable side of the machine. All writes are atomic
// per-row statements; UpdateCompleted on an unknown id is not an error (the
// record may already be finalized) and is logged by the adapter instead.
type RecordStore interface {
	InsertSession(ctx context.Context, record domain.Record) (int64, error)
	UpdateCompleted(ctx context.Context, id int64, completedMin int) error
	FinalizeSession(ctx context.Context, id int64, completedMin int, endTime time.Time) error
	TodayTotal(ctx context.Context, date string) (int, error)
}

// GoalSource yields the configured daily goal for completion checks.
type GoalSource interface {
	GoalHours(ctx context.Context) (int, error)
}

// EventSink receives machine events. Implementations must be cheap; they run
// on the tick goroutine.
type EventSink interface {
	Tick(remainingSeconds int)
	Completed(durationMin int)
	GoalReached(goalHours int)
}

// NopSink satisfies EventSink for callers that do not observe events.
type NopSink struct{}

func (NopSink) Tick(int)        {}
func (NopSink) Completed(int)   {}
func (NopSink) GoalReached(int) {}
