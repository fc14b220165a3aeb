package in

import (
	"context"

	"focuspro/internal/modules/stats/dto"
	statsin "focuspro/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Today(ctx context.Context, date string) (dto.SummaryOutput, error) {
	return h.usecase.Summary(ctx, date)
}

func (h CLIHandler) Range(ctx context.Context, start, end string) ([]dto.DayTotal, error) {
	return h.usecase.RangeSeries(ctx, start, end)
}

func (h CLIHandler) Streak(ctx context.Context, asOf string) (int, error) {
	return h.usecase.Streak(ctx, asOf)
}

func (h CLIHandler) Report(ctx context.Context, kind, customStart, customEnd string) ([]dto.CategoryTotal, error) {
	return h.usecase.FilteredSeries(ctx, kind, customStart, customEnd)
}
