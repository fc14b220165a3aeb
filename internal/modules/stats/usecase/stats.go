package usecase

import (
	"context"

	"focuspro/internal/modules/stats/domain"
	"focuspro/internal/modules/stats/dto"
	statsin "focuspro/internal/modules/stats/port/in"
	"focuspro/internal/modules/stats/service"
)

type Interactor struct {
	service *service.Service
}

func NewInteractor(service *service.Service) statsin.Usecase {
	return &Interactor{service: service}
}

func (i *Interactor) DailyTotal(ctx context.Context, date string) (int, error) {
	return i.service.DailyTotal(ctx, date)
}

func (i *Interactor) RangeSeries(ctx context.Context, start, end string) ([]dto.DayTotal, error) {
	series, err := i.service.RangeSeries(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DayTotal, len(series))
	for n, day := range series {
		out[n] = dto.DayTotal{Date: day.Date, Minutes: day.Minutes}
	}
	return out, nil
}

func (i *Interactor) Streak(ctx context.Context, asOf string) (int, error) {
	return i.service.Streak(ctx, asOf)
}

func (i *Interactor) FilteredSeries(ctx context.Context, kind, customStart, customEnd string) ([]dto.CategoryTotal, error) {
	rows, err := i.service.FilteredSeries(ctx, domain.RangeKind(kind), customStart, customEnd)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryTotal, len(rows))
	for n, row := range rows {
		out[n] = dto.CategoryTotal{Date: row.Date, Category: row.Category, Minutes: row.Minutes}
	}
	return out, nil
}

func (i *Interactor) Summary(ctx context.Context, asOf string) (dto.SummaryOutput, error) {
	summary, err := i.service.Summary(ctx, asOf)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return dto.SummaryOutput{
		Date:        summary.Date,
		Minutes:     summary.Minutes,
		GoalHours:   summary.GoalHours,
		GoalPercent: summary.GoalPercent,
		StreakDays:  summary.StreakDays,
	}, nil
}
