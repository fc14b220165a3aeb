package domain

import (
	"fmt"

	apperrors "focuspro/internal/platform/errors"
)

// State is the quick timer's lifecycle position. Unlike a focus session the
// timer is re-armable: Finished accepts a new Start.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StatePaused   State = "paused"
	StateFinished State = "finished"
)

const (
	MinSeconds = 1
	MaxSeconds = 24 * 60 * 60
)

func ValidateSeconds(seconds int) error {
	if seconds < MinSeconds || seconds > MaxSeconds {
		return fmt.Errorf("%w: timer length must be between %d and %d seconds, got %d",
			apperrors.ErrInvalidInput, MinSeconds, MaxSeconds, seconds)
	}
	return nil
}

func (s State) CanStart() bool  { return s == StateIdle || s == StateFinished }
func (s State) CanPause() bool  { return s == StateRunning }
func (s State) CanResume() bool { return s == StatePaused }
