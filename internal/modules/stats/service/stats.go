package service

import (
	"context"
	"errors"
	"fmt"

	"focuspro/internal/modules/stats/domain"
	statsout "focuspro/internal/modules/stats/port/out"
	"focuspro/internal/platform/clock"
	apperrors "focuspro/internal/platform/errors"
)

// streakWindow is how many days of totals each backward fetch covers while
// walking a streak.
const streakWindow = 60

type Service struct {
	reader statsout.Reader
	goals  statsout.GoalSource
	clock  clock.Clock
}

func NewService(reader statsout.Reader, goals statsout.GoalSource, clk clock.Clock) *Service {
	return &Service{reader: reader, goals: goals, clock: clk}
}

func (s *Service) DailyTotal(ctx context.Context, date string) (int, error) {
	if _, err := domain.ParseDate(date); err != nil {
		return 0, err
	}
	totals, err := s.reader.DailyTotals(ctx, date, date)
	if err != nil {
		return 0, apperrors.Persistence("daily total", err)
	}
	return totals[date], nil
}

// RangeSeries returns one entry per day over the inclusive range, ascending,
// zero-filled for days without sessions.
func (s *Service) RangeSeries(ctx context.Context, start, end string) ([]domain.DayTotal, error) {
	startT, err := domain.ParseDate(start)
	if err != nil {
		return nil, err
	}
	endT, err := domain.ParseDate(end)
	if err != nil {
		return nil, err
	}
	if endT.Before(startT) {
		return nil, fmt.Errorf("%w: range end %s precedes start %s", apperrors.ErrInvalidInput, end, start)
	}
	totals, err := s.reader.DailyTotals(ctx, start, end)
	if err != nil {
		return nil, apperrors.Persistence("range series", err)
	}
	return domain.GapFill(totals, startT, endT), nil
}

// Streak counts consecutive goal-met days strictly before asOf, walking
// backwards in fixed windows. The in-progress day never counts toward a
// streak, so finishing today's goal extends tomorrow's number, not today's.
func (s *Service) Streak(ctx context.Context, asOf string) (int, error) {
	asOfT, err := domain.ParseDate(asOf)
	if err != nil {
		return 0, err
	}
	hours, err := s.goals.GoalHours(ctx)
	if err != nil {
		return 0, err
	}
	goalMinutes := hours * 60

	streak := 0
	day := asOfT.AddDate(0, 0, -1)
	for {
		windowStart := day.AddDate(0, 0, -(streakWindow - 1))
		totals, err := s.reader.DailyTotals(ctx, domain.FormatDate(windowStart), domain.FormatDate(day))
		if err != nil {
			return 0, apperrors.Persistence("streak totals", err)
		}
		for d := day; !d.Before(windowStart); d = d.AddDate(0, 0, -1) {
			if totals[domain.FormatDate(d)] < goalMinutes {
				return streak, nil
			}
			streak++
		}
		day = windowStart.AddDate(0, 0, -1)
	}
}

// FilteredSeries resolves the requested window and returns per-(date,
// category) minute tuples ordered by date. The default kind spans the
// earliest recorded day through today; with an empty store it collapses to
// just today.
func (s *Service) FilteredSeries(ctx context.Context, kind domain.RangeKind, customStart, customEnd string) ([]statsout.CategoryRow, error) {
	today := s.clock.Now()
	var start, end string
	if kind == domain.RangeDefault || kind == "" {
		earliest, err := s.reader.EarliestDate(ctx)
		if errors.Is(err, apperrors.ErrNotFound) {
			earliest = domain.FormatDate(today)
		} else if err != nil {
			return nil, apperrors.Persistence("earliest date", err)
		}
		start, end = earliest, domain.FormatDate(today)
	} else {
		var err error
		start, end, err = domain.ResolveRange(kind, today, customStart, customEnd)
		if err != nil {
			return nil, err
		}
	}
	rows, err := s.reader.CategoryTotals(ctx, start, end)
	if err != nil {
		return nil, apperrors.Persistence("category totals", err)
	}
	return rows, nil
}

// Summary bundles today's progress for the daily readout.
func (s *Service) Summary(ctx context.Context, asOf string) (domain.Summary, error) {
	if asOf == "" {
		asOf = clock.DateOf(s.clock.Now())
	}
	minutes, err := s.DailyTotal(ctx, asOf)
	if err != nil {
		return domain.Summary{}, err
	}
	hours, err := s.goals.GoalHours(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	streak, err := s.Streak(ctx, asOf)
	if err != nil {
		return domain.Summary{}, err
	}
	percent := 0
	if hours > 0 {
		percent = minutes * 100 / (hours * 60)
	}
	return domain.Summary{
		Date:        asOf,
		Minutes:     minutes,
		GoalHours:   hours,
		GoalPercent: percent,
		StreakDays:  streak,
	}, nil
}
