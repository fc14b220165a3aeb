package usecase

import (
	"context"

	"focuspro/internal/modules/session/dto"
	sessionin "focuspro/internal/modules/session/port/in"
	"focuspro/internal/modules/session/service"
)

type Interactor struct {
	machine *service.Machine
}

func NewInteractor(machine *service.Machine) sessionin.Usecase {
	return &Interactor{machine: machine}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error) {
	snap, err := i.machine.Start(ctx, input.Category, input.DurationMin)
	if err != nil {
		return dto.StartOutput{}, err
	}
	return dto.StartOutput{
		RecordID:    snap.RecordID,
		Category:    snap.Category,
		DurationMin: snap.DurationMin,
	}, nil
}

func (i *Interactor) Pause(ctx context.Context) error {
	return i.machine.Pause(ctx)
}

func (i *Interactor) Resume(ctx context.Context) error {
	return i.machine.Resume(ctx)
}

func (i *Interactor) Stop(ctx context.Context) (dto.StopOutput, error) {
	result, err := i.machine.Stop(ctx)
	if err != nil {
		return dto.StopOutput{}, err
	}
	return dto.StopOutput{
		RecordID:     result.RecordID,
		CompletedMin: result.CompletedMin,
		Stopped:      result.Stopped,
	}, nil
}

func (i *Interactor) Reset(ctx context.Context) error {
	return i.machine.Reset(ctx)
}

func (i *Interactor) SetDuration(ctx context.Context, minutes int) error {
	return i.machine.SetDuration(ctx, minutes)
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	snap := i.machine.Status(ctx)
	return dto.StatusOutput{
		State:            string(snap.State),
		Category:         snap.Category,
		DurationMin:      snap.DurationMin,
		RemainingSeconds: snap.Remaining,
		ElapsedSeconds:   snap.DurationMin*60 - snap.Remaining,
		RecordID:         snap.RecordID,
	}, nil
}
