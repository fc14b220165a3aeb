package out_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	recordstore "focuspro/internal/modules/session/adapter/out"
	sessiondomain "focuspro/internal/modules/session/domain"
	statsout "focuspro/internal/modules/stats/adapter/out"
	apperrors "focuspro/internal/platform/errors"
	"focuspro/internal/platform/sqlitedb"
)

func newReader(t *testing.T) (*statsout.SQLiteReader, *recordstore.SQLiteRecordStore) {
	t.Helper()
	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "focuspro.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	store, err := recordstore.NewSQLiteRecordStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return statsout.NewSQLiteReader(db), store
}

func seed(t *testing.T, store *recordstore.SQLiteRecordStore, date, category string, minutes int) {
	t.Helper()
	ctx := context.Background()
	id, err := store.InsertSession(ctx, sessiondomain.Record{
		Date: date, Category: category, Duration: minutes,
		StartTime: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := store.UpdateCompleted(ctx, id, minutes); err != nil {
		t.Fatalf("update: %v", err)
	}
}

func TestDailyTotalsGroupsByDate(t *testing.T) {
	t.Parallel()
	reader, store := newReader(t)
	seed(t, store, "2026-03-10", "Maths", 30)
	seed(t, store, "2026-03-10", "ICT", 45)
	seed(t, store, "2026-03-12", "Maths", 60)
	seed(t, store, "2026-03-20", "Maths", 90) // outside the range

	totals, err := reader.DailyTotals(context.Background(), "2026-03-09", "2026-03-13")
	if err != nil {
		t.Fatalf("daily totals: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected 2 days, got %d: %v", len(totals), totals)
	}
	if totals["2026-03-10"] != 75 || totals["2026-03-12"] != 60 {
		t.Fatalf("unexpected totals: %v", totals)
	}
}

func TestCategoryTotalsOrderedByDate(t *testing.T) {
	t.Parallel()
	reader, store := newReader(t)
	seed(t, store, "2026-03-12", "Physics", 20)
	seed(t, store, "2026-03-10", "Maths", 30)
	seed(t, store, "2026-03-10", "Maths", 15)

	rows, err := reader.CategoryTotals(context.Background(), "2026-03-01", "2026-03-31")
	if err != nil {
		t.Fatalf("category totals: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %+v", len(rows), rows)
	}
	if rows[0].Date != "2026-03-10" || rows[0].Category != "Maths" || rows[0].Minutes != 45 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Date != "2026-03-12" || rows[1].Category != "Physics" || rows[1].Minutes != 20 {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
}

func TestEarliestDate(t *testing.T) {
	t.Parallel()
	reader, store := newReader(t)

	if _, err := reader.EarliestDate(context.Background()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}

	seed(t, store, "2026-02-01", "Maths", 30)
	seed(t, store, "2026-01-15", "ICT", 30)

	earliest, err := reader.EarliestDate(context.Background())
	if err != nil {
		t.Fatalf("earliest date: %v", err)
	}
	if earliest != "2026-01-15" {
		t.Fatalf("expected 2026-01-15, got %s", earliest)
	}
}
