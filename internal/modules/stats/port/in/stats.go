package in

import (
	"context"

	"focuspro/internal/modules/stats/dto"
)

type Usecase interface {
	DailyTotal(ctx context.Context, date string) (int, error)
	RangeSeries(ctx context.Context, start, end string) ([]dto.DayTotal, error)
	Streak(ctx context.Context, asOf string) (int, error)
	FilteredSeries(ctx context.Context, kind, customStart, customEnd string) ([]dto.CategoryTotal, error)
	Summary(ctx context.Context, asOf string) (dto.SummaryOutput, error)
}
