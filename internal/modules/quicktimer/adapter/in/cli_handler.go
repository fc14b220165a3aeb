package in

import (
	"context"

	"focuspro/internal/modules/quicktimer/dto"
	quicktimerin "focuspro/internal/modules/quicktimer/port/in"
)

type CLIHandler struct {
	usecase quicktimerin.Usecase
}

func NewCLIHandler(usecase quicktimerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, seconds int) error {
	return h.usecase.Start(ctx, seconds)
}

func (h CLIHandler) Pause(ctx context.Context) error { return h.usecase.Pause(ctx) }

func (h CLIHandler) Resume(ctx context.Context) error { return h.usecase.Resume(ctx) }

func (h CLIHandler) Stop(ctx context.Context) error { return h.usecase.Stop(ctx) }

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}
