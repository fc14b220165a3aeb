package out

import "context"

// Reader is the read side of the session store. DailyTotals returns sparse
// per-day sums over the inclusive range; EarliestDate reports
// apperrors.ErrNotFound when nothing has ever been recorded.
type Reader interface {
	DailyTotals(ctx context.Context, start, end string) (map[string]int, error)
	CategoryTotals(ctx context.Context, start, end string) ([]CategoryRow, error)
	EarliestDate(ctx context.Context) (string, error)
}

type CategoryRow struct {
	Date     string
	Category string
	Minutes  int
}

// GoalSource reads the daily goal without depending on the settings module.
type GoalSource interface {
	GoalHours(ctx context.Context) (int, error)
}
