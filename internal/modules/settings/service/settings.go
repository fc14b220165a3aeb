package service

import (
	"context"
	"errors"
	"strconv"

	"focuspro/internal/modules/settings/domain"
	settingsout "focuspro/internal/modules/settings/port/out"
	apperrors "focuspro/internal/platform/errors"
)

type Service struct {
	store settingsout.SettingStore
}

func NewService(store settingsout.SettingStore) *Service {
	return &Service{store: store}
}

// GoalHours returns the configured daily goal, falling back to the default
// when none has been set yet.
func (s *Service) GoalHours(ctx context.Context) (int, error) {
	value, err := s.store.Get(ctx, domain.KeyDailyGoal)
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.DefaultGoalHours, nil
	}
	if err != nil {
		return 0, apperrors.Persistence("get daily goal", err)
	}
	hours, err := strconv.Atoi(value)
	if err != nil || domain.ValidateGoalHours(hours) != nil {
		// A corrupt row should not wedge startup.
		return domain.DefaultGoalHours, nil
	}
	return hours, nil
}

func (s *Service) SetGoalHours(ctx context.Context, hours int) error {
	if err := domain.ValidateGoalHours(hours); err != nil {
		return err
	}
	if err := s.store.Upsert(ctx, domain.KeyDailyGoal, strconv.Itoa(hours)); err != nil {
		return apperrors.Persistence("set daily goal", err)
	}
	return nil
}
