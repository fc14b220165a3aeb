package usecase

import (
	"context"

	"focuspro/internal/modules/notify/domain"
	"focuspro/internal/modules/notify/dto"
	notifyin "focuspro/internal/modules/notify/port/in"
	"focuspro/internal/modules/notify/service"
)

type Interactor struct {
	service *service.Service
}

func NewInteractor(service *service.Service) notifyin.Usecase {
	return &Interactor{service: service}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PluginInfo, error) {
	manifests, err := i.service.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PluginInfo, len(manifests))
	for n, m := range manifests {
		out[n] = dto.PluginInfo{
			Name:    m.Name,
			Version: m.Version,
			Binary:  m.Binary,
			Enabled: m.Enabled,
			Events:  m.Events,
		}
	}
	return out, nil
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	reports, err := i.service.Doctor(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DoctorResult, len(reports))
	for n, r := range reports {
		out[n] = dto.DoctorResult{Name: r.Name, OK: r.OK, Detail: r.Detail}
	}
	return out, nil
}

func (i *Interactor) Test(ctx context.Context, name string) error {
	return i.service.Test(ctx, name)
}

func (i *Interactor) Dispatch(ctx context.Context, notification domain.Notification) {
	i.service.Dispatch(ctx, notification)
}
