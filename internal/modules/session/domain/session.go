package domain

import (
	"fmt"
	"time"

	apperrors "focuspro/internal/platform/errors"
)

// State of the focus-session machine. Completed and Stopped are pass-through
// states on the way back to Idle; the machine only rests in Idle, Active or
// Paused.
type State string

const (
	StateIdle      State = "idle"
	StateActive    State = "active"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
	StateStopped   State = "stopped"
)

const (
	MinDurationMin = 1
	MaxDurationMin = 240
)

// CheckpointIntervalSec is the logical-elapsed cadence of partial-progress
// writes. Counted in consumed ticks, so pausing does not shift it.
const CheckpointIntervalSec = 30

// Record is one focus session as persisted. Completed is mutated only by the
// owning machine and never decreases while the session is live.
type Record struct {
	ID        int64
	Date      string
	Category  string
	Duration  int // planned minutes
	Completed int // elapsed minutes
	StartTime time.Time
	EndTime   *time.Time
}

func ValidateDuration(minutes int) error {
	if minutes < MinDurationMin || minutes > MaxDurationMin {
		return fmt.Errorf("%w: duration must be %d..%d minutes, got %d",
			apperrors.ErrInvalidInput, MinDurationMin, MaxDurationMin, minutes)
	}
	return nil
}

func ValidateCategory(categories []string, category string) error {
	for _, c := range categories {
		if c == category {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown task category %q", apperrors.ErrInvalidInput, category)
}

func (s State) CanStart() bool { return s == StateIdle }

func (s State) CanPause() bool { return s == StateActive }

func (s State) CanResume() bool { return s == StatePaused }

func (s State) CanStop() bool { return s == StateActive || s == StatePaused }

// Running reports whether a tick loop currently owns a record.
func (s State) Running() bool { return s == StateActive || s == StatePaused }
