package out

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"focuspro/internal/modules/session/domain"
	sessionout "focuspro/internal/modules/session/port/out"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

type SQLiteRecordStore struct {
	db *sql.DB
}

func NewSQLiteRecordStore(db *sql.DB) (*SQLiteRecordStore, error) {
	store := &SQLiteRecordStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteRecordStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  date TEXT NOT NULL,
  task_category TEXT NOT NULL,
  duration INTEGER NOT NULL,
  completed INTEGER NOT NULL,
  start_time TEXT NOT NULL,
  end_time TEXT,
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteRecordStore) InsertSession(ctx context.Context, record domain.Record) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (date, task_category, duration, completed, start_time)
		 VALUES (?, ?, ?, ?, ?)`,
		record.Date, record.Category, record.Duration, record.Completed,
		record.StartTime.Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get session id: %w", err)
	}
	return id, nil
}

func (s *SQLiteRecordStore) UpdateCompleted(ctx context.Context, id int64, completedMin int) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET completed = ? WHERE id = ?`, completedMin, id)
	if err != nil {
		return fmt.Errorf("update completed: %w", err)
	}
	// A vanished id means the record was already finalized or abandoned;
	// that is not worth failing a checkpoint over.
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		slog.Warn("checkpoint for unknown session id", "id", id)
	}
	return nil
}

func (s *SQLiteRecordStore) FinalizeSession(ctx context.Context, id int64, completedMin int, endTime time.Time) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET completed = ?, end_time = ? WHERE id = ?`,
		completedMin, endTime.Format(timeLayout), id)
	if err != nil {
		return fmt.Errorf("finalize session: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("finalize session: id %d not found", id)
	}
	return nil
}

func (s *SQLiteRecordStore) TodayTotal(ctx context.Context, date string) (int, error) {
	var total sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT SUM(completed) FROM sessions WHERE date = ?`, date).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("today total: %w", err)
	}
	return int(total.Int64), nil
}

// GetRecord reads one session row; used by tests and the status paths.
func (s *SQLiteRecordStore) GetRecord(ctx context.Context, id int64) (domain.Record, error) {
	var (
		record    domain.Record
		startTime string
		endTime   sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, date, task_category, duration, completed, start_time, end_time
		 FROM sessions WHERE id = ?`, id,
	).Scan(&record.ID, &record.Date, &record.Category, &record.Duration, &record.Completed, &startTime, &endTime)
	if err != nil {
		return domain.Record{}, fmt.Errorf("get session: %w", err)
	}
	if t, err := time.Parse(timeLayout, startTime); err == nil {
		record.StartTime = t
	}
	if endTime.Valid {
		if t, err := time.Parse(timeLayout, endTime.String); err == nil {
			record.EndTime = &t
		}
	}
	return record, nil
}

var _ sessionout.RecordStore = (*SQLiteRecordStore)(nil)
