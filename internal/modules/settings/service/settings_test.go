package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"focuspro/internal/modules/settings/domain"
	"focuspro/internal/modules/settings/service"
	apperrors "focuspro/internal/platform/errors"
)

type memStore struct {
	values map[string]string
	getErr error
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (s *memStore) Upsert(_ context.Context, key, value string) error {
	s.values[key] = value
	return nil
}

func (s *memStore) Get(_ context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	value, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("setting %q: %w", key, apperrors.ErrNotFound)
	}
	return value, nil
}

func TestGoalDefaultsWhenUnset(t *testing.T) {
	t.Parallel()
	svc := service.NewService(newMemStore())
	hours, err := svc.GoalHours(context.Background())
	if err != nil {
		t.Fatalf("goal hours: %v", err)
	}
	if hours != domain.DefaultGoalHours {
		t.Fatalf("expected default %d, got %d", domain.DefaultGoalHours, hours)
	}
}

func TestSetAndGetGoal(t *testing.T) {
	t.Parallel()
	svc := service.NewService(newMemStore())
	ctx := context.Background()

	if err := svc.SetGoalHours(ctx, 6); err != nil {
		t.Fatalf("set goal: %v", err)
	}
	hours, err := svc.GoalHours(ctx)
	if err != nil {
		t.Fatalf("goal hours: %v", err)
	}
	if hours != 6 {
		t.Fatalf("expected 6, got %d", hours)
	}
}

func TestSetGoalValidation(t *testing.T) {
	t.Parallel()
	svc := service.NewService(newMemStore())
	for _, hours := range []int{0, -1, 25} {
		if err := svc.SetGoalHours(context.Background(), hours); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %d, got %v", hours, err)
		}
	}
}

func TestCorruptGoalRowFallsBackToDefault(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	store.values[domain.KeyDailyGoal] = "eight"
	svc := service.NewService(store)

	hours, err := svc.GoalHours(context.Background())
	if err != nil {
		t.Fatalf("goal hours: %v", err)
	}
	if hours != domain.DefaultGoalHours {
		t.Fatalf("expected fallback to default, got %d", hours)
	}
}
