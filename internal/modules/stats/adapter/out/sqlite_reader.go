package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	statsout "focuspro/internal/modules/stats/port/out"
	apperrors "focuspro/internal/platform/errors"
)

// SQLiteReader answers aggregate queries over the sessions table. It never
// writes; the session machine owns all mutation.
type SQLiteReader struct {
	db *sql.DB
}

func NewSQLiteReader(db *sql.DB) *SQLiteReader {
	return &SQLiteReader{db: db}
}

func (r *SQLiteReader) DailyTotals(ctx context.Context, start, end string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, SUM(completed) FROM sessions
		 WHERE date BETWEEN ? AND ?
		 GROUP BY date`, start, end)
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var (
			date    string
			minutes int
		)
		if err := rows.Scan(&date, &minutes); err != nil {
			return nil, fmt.Errorf("scan daily total: %w", err)
		}
		totals[date] = minutes
	}
	return totals, rows.Err()
}

func (r *SQLiteReader) CategoryTotals(ctx context.Context, start, end string) ([]statsout.CategoryRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, task_category, SUM(completed) FROM sessions
		 WHERE date BETWEEN ? AND ?
		 GROUP BY date, task_category
		 ORDER BY date, task_category`, start, end)
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	defer rows.Close()

	var result []statsout.CategoryRow
	for rows.Next() {
		var row statsout.CategoryRow
		if err := rows.Scan(&row.Date, &row.Category, &row.Minutes); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *SQLiteReader) EarliestDate(ctx context.Context) (string, error) {
	var date sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT MIN(date) FROM sessions`).Scan(&date)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !date.Valid) {
		return "", fmt.Errorf("no sessions recorded: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("earliest date: %w", err)
	}
	return date.String, nil
}

var _ statsout.Reader = (*SQLiteReader)(nil)
