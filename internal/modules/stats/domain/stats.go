package domain

import (
	"fmt"
	"time"

	apperrors "focuspro/internal/platform/errors"
)

const dateLayout = "2006-01-02"

// RangeKind selects a reporting window.
type RangeKind string

const (
	RangeWeek    RangeKind = "week"
	RangeMonth   RangeKind = "month"
	RangeYear    RangeKind = "year"
	RangeCustom  RangeKind = "custom"
	RangeDefault RangeKind = "default"
)

// DayTotal is one day's minutes summed across categories.
type DayTotal struct {
	Date    string
	Minutes int
}

// CategoryTotal is one (day, category) cell of a report.
type CategoryTotal struct {
	Date     string
	Category string
	Minutes  int
}

// Summary backs the daily progress readout.
type Summary struct {
	Date        string
	Minutes     int
	GoalHours   int
	GoalPercent int
	StreakDays  int
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", apperrors.ErrInvalidInput, s)
	}
	return t, nil
}

func FormatDate(t time.Time) string { return t.Format(dateLayout) }

// ResolveRange turns a range kind into inclusive [start, end] dates.
// Week is the Monday-through-Sunday week containing today; month and year are
// calendar-aligned. Custom requires both bounds in order. The default kind is
// resolved by the caller from the earliest recorded date.
func ResolveRange(kind RangeKind, today time.Time, customStart, customEnd string) (string, string, error) {
	switch kind {
	case RangeWeek:
		weekday := int(today.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start := today.AddDate(0, 0, -(weekday - 1))
		return FormatDate(start), FormatDate(start.AddDate(0, 0, 6)), nil
	case RangeMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return FormatDate(start), FormatDate(start.AddDate(0, 1, -1)), nil
	case RangeYear:
		start := time.Date(today.Year(), 1, 1, 0, 0, 0, 0, today.Location())
		return FormatDate(start), FormatDate(time.Date(today.Year(), 12, 31, 0, 0, 0, 0, today.Location())), nil
	case RangeCustom:
		startT, err := ParseDate(customStart)
		if err != nil {
			return "", "", err
		}
		endT, err := ParseDate(customEnd)
		if err != nil {
			return "", "", err
		}
		if endT.Before(startT) {
			return "", "", fmt.Errorf("%w: range end %s precedes start %s", apperrors.ErrInvalidInput, customEnd, customStart)
		}
		return customStart, customEnd, nil
	default:
		return "", "", fmt.Errorf("%w: unknown range kind %q", apperrors.ErrInvalidInput, kind)
	}
}

// GapFill expands sparse per-day totals into a contiguous ascending series
// over [start, end], zero for missing days.
func GapFill(totals map[string]int, start, end time.Time) []DayTotal {
	var series []DayTotal
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := FormatDate(d)
		series = append(series, DayTotal{Date: date, Minutes: totals[date]})
	}
	return series
}
