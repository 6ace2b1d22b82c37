package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const historyColumns = `id, session_type, event_type, timestamp, duration, expected_duration, session_number, activity_type`

func (s *Store) AddHistoryEntry(ctx context.Context, e HistoryEntry) (int64, error) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO session_history
			(session_type, event_type, timestamp, duration, expected_duration, session_number, activity_type)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.SessionType, e.EventType, e.Timestamp.UTC().Format(time.RFC3339),
		e.Duration, e.ExpectedDuration, e.SessionNumber, e.ActivityType,
	)
	if err != nil {
		return 0, fmt.Errorf("add history entry: %w", err)
	}
	return res.LastInsertId()
}

// HistoryByRange returns entries with from <= timestamp < to, newest first.
func (s *Store) HistoryByRange(ctx context.Context, from, to time.Time) ([]HistoryEntry, error) {
	return s.queryHistory(ctx,
		`SELECT `+historyColumns+` FROM session_history
		 WHERE timestamp >= ? AND timestamp < ?
		 ORDER BY timestamp DESC, id DESC`,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
}

func (s *Store) RecentHistory(ctx context.Context, limit int) ([]HistoryEntry, error) {
	return s.queryHistory(ctx,
		`SELECT `+historyColumns+` FROM session_history ORDER BY timestamp DESC, id DESC LIMIT ?`,
		limit,
	)
}

func (s *Store) AllHistory(ctx context.Context) ([]HistoryEntry, error) {
	return s.queryHistory(ctx,
		`SELECT ` + historyColumns + ` FROM session_history ORDER BY timestamp DESC, id DESC`,
	)
}

// HistoryToday returns the entries of the calendar day containing now, in
// now's location.
func (s *Store) HistoryToday(ctx context.Context, now time.Time) ([]HistoryEntry, error) {
	start := startOfDay(now)
	return s.HistoryByRange(ctx, start, start.AddDate(0, 0, 1))
}

// HistoryThisWeek returns the entries of the Monday-based week containing now.
func (s *Store) HistoryThisWeek(ctx context.Context, now time.Time) ([]HistoryEntry, error) {
	start := startOfWeek(now)
	return s.HistoryByRange(ctx, start, start.AddDate(0, 0, 7))
}

func (s *Store) HistoryThisMonth(ctx context.Context, now time.Time) ([]HistoryEntry, error) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return s.HistoryByRange(ctx, start, start.AddDate(0, 1, 0))
}

// DeleteHistoryEntry removes one entry. Entries are never edited in place.
func (s *Store) DeleteHistoryEntry(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session_history WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete history entry %d: %w", id, err)
	}
	return nil
}

func (s *Store) ClearHistory(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session_history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func (s *Store) queryHistory(ctx context.Context, query string, args ...any) ([]HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var ts string
		var number sql.NullInt64
		var activity sql.NullString
		if err := rows.Scan(&e.ID, &e.SessionType, &e.EventType, &ts, &e.Duration, &e.ExpectedDuration, &number, &activity); err != nil {
			return nil, err
		}
		e.Timestamp, _ = time.Parse(time.RFC3339, ts)
		if number.Valid {
			n := int(number.Int64)
			e.SessionNumber = &n
		}
		if activity.Valid {
			a := ActivityType(activity.String)
			e.ActivityType = &a
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return day.AddDate(0, 0, 1-weekday)
}
