package usecase

import (
	"context"

	"focuspro/internal/modules/settings/dto"
	settingsin "focuspro/internal/modules/settings/port/in"
	"focuspro/internal/modules/settings/service"
)

type Interactor struct {
	service *service.Service
}

func NewInteractor(service *service.Service) settingsin.Usecase {
	return &Interactor{service: service}
}

func (i *Interactor) GetGoal(ctx context.Context) (dto.GoalOutput, error) {
	hours, err := i.service.GoalHours(ctx)
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return dto.GoalOutput{Hours: hours}, nil
}

func (i *Interactor) SetGoal(ctx context.Context, hours int) error {
	return i.service.SetGoalHours(ctx, hours)
}
