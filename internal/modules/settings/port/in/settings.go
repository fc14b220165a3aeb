package in

import (
	"context"

	"focuspro/internal/modules/settings/dto"
)

type Usecase interface {
	GetGoal(ctx context.Context) (dto.GoalOutput, error)
	SetGoal(ctx context.Context, hours int) error
}
