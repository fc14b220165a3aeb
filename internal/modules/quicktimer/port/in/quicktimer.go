package in

import (
	"context"

	"focuspro/internal/modules/quicktimer/dto"
)

type Usecase interface {
	Start(ctx context.Context, seconds int) error
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	Stop(ctx context.Context) error
	Status(ctx context.Context) (dto.StatusOutput, error)
}
