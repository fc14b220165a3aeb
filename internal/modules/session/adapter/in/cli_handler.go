package in

import (
	"context"

	"focuspro/internal/modules/session/dto"
	sessionin "focuspro/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, category string, durationMin int) (dto.StartOutput, error) {
	return h.usecase.Start(ctx, dto.StartInput{Category: category, DurationMin: durationMin})
}

func (h CLIHandler) Pause(ctx context.Context) error { return h.usecase.Pause(ctx) }

func (h CLIHandler) Resume(ctx context.Context) error { return h.usecase.Resume(ctx) }

func (h CLIHandler) Stop(ctx context.Context) (dto.StopOutput, error) { return h.usecase.Stop(ctx) }

func (h CLIHandler) Reset(ctx context.Context) error { return h.usecase.Reset(ctx) }

func (h CLIHandler) SetDuration(ctx context.Context, minutes int) error {
	return h.usecase.SetDuration(ctx, minutes)
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}
