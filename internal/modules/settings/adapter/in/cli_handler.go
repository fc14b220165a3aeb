package in

import (
	"context"

	"focuspro/internal/modules/settings/dto"
	settingsin "focuspro/internal/modules/settings/port/in"
)

type CLIHandler struct {
	usecase settingsin.Usecase
}

func NewCLIHandler(usecase settingsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) (dto.GoalOutput, error) {
	return h.usecase.GetGoal(ctx)
}

func (h CLIHandler) Set(ctx context.Context, hours int) error {
	return h.usecase.SetGoal(ctx, hours)
}
