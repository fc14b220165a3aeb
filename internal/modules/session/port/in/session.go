package in

import (
	"context"

	"focuspro/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	Stop(ctx context.Context) (dto.StopOutput, error)
	Reset(ctx context.Context) error
	SetDuration(ctx context.Context, minutes int) error
	Status(ctx context.Context) (dto.StatusOutput, error)
}
