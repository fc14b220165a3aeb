package domain

import (
	"fmt"

	apperrors "focuspro/internal/platform/errors"
)

const (
	KeyDailyGoal = "daily_goal"

	DefaultGoalHours = 8
	MinGoalHours     = 1
)

// ValidateGoalHours rejects goals that would make every streak trivially zero
// or that no day can satisfy.
func ValidateGoalHours(hours int) error {
	if hours < MinGoalHours || hours > 24 {
		return fmt.Errorf("%w: daily goal must be between %d and 24 hours, got %d",
			apperrors.ErrInvalidInput, MinGoalHours, hours)
	}
	return nil
}
