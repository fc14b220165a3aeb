package usecase

import (
	"context"

	"focuspro/internal/modules/quicktimer/dto"
	quicktimerin "focuspro/internal/modules/quicktimer/port/in"
	"focuspro/internal/modules/quicktimer/service"
)

type Interactor struct {
	timer *service.Timer
}

func NewInteractor(timer *service.Timer) quicktimerin.Usecase {
	return &Interactor{timer: timer}
}

func (i *Interactor) Start(ctx context.Context, seconds int) error {
	return i.timer.Start(ctx, seconds)
}

func (i *Interactor) Pause(ctx context.Context) error { return i.timer.Pause(ctx) }

func (i *Interactor) Resume(ctx context.Context) error { return i.timer.Resume(ctx) }

func (i *Interactor) Stop(ctx context.Context) error { return i.timer.Stop(ctx) }

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	snap := i.timer.Status(ctx)
	return dto.StatusOutput{
		State:            string(snap.State),
		RemainingSeconds: snap.Remaining,
		TotalSeconds:     snap.Total,
	}, nil
}
