package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
)

// SQLiteCalendarRepo stores explicit non-working dates. Non-working weekdays
// are configuration, not data; they come from the calendar file.
type SQLiteCalendarRepo struct {
	db db.DBTX
}

func NewSQLiteCalendarRepo(dbtx db.DBTX) *SQLiteCalendarRepo {
	return &SQLiteCalendarRepo{db: dbtx}
}

func (r *SQLiteCalendarRepo) AddNonWorkingDate(ctx context.Context, date time.Time) error {
	query := `INSERT INTO non_working_dates (date) VALUES (?) ON CONFLICT (date) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, domain.NormalizeDate(date).Format(domain.DateFormat))
	if err != nil {
		return fmt.Errorf("inserting non-working date: %w", err)
	}
	return nil
}

func (r *SQLiteCalendarRepo) RemoveNonWorkingDate(ctx context.Context, date time.Time) error {
	query := `DELETE FROM non_working_dates WHERE date = ?`
	_, err := r.db.ExecContext(ctx, query, domain.NormalizeDate(date).Format(domain.DateFormat))
	if err != nil {
		return fmt.Errorf("deleting non-working date: %w", err)
	}
	return nil
}

func (r *SQLiteCalendarRepo) ListNonWorkingDates(ctx context.Context) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT date FROM non_working_dates ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("listing non-working dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning non-working date: %w", err)
		}
		d, err := domain.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("parsing stored date %q: %w", s, err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating non-working dates: %w", err)
	}
	return dates, nil
}
