package in

import (
	"context"

	"focuspro/internal/modules/notify/domain"
	"focuspro/internal/modules/notify/dto"
)

type Usecase interface {
	// List returns the installed manifests, valid or not.
	List(ctx context.Context) ([]dto.PluginInfo, error)
	// Doctor launches every plugin and reports per-plugin health.
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	// Test delivers a synthetic notification to one named plugin.
	Test(ctx context.Context, name string) error
	// Dispatch fans an event out to enabled, subscribed plugins. Individual
	// plugin failures are logged, never returned.
	Dispatch(ctx context.Context, notification domain.Notification)
}
