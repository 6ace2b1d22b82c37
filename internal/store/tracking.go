package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// RecordSession stores a finished session, recomputes the daily_stats row
// for its date and, for a completed pomodoro, advances the streak. All three
// writes share one transaction.
func (s *Store) RecordSession(ctx context.Context, sess Session) (int64, error) {
	if sess.Date == "" {
		sess.Date = sess.StartedAt.Format(dateLayout)
	}
	if _, err := time.Parse(dateLayout, sess.Date); err != nil {
		return 0, fmt.Errorf("record session: bad date %q: %w", sess.Date, err)
	}

	var id int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = insertSession(ctx, tx, sess)
		if err != nil {
			return err
		}
		if err := refreshDailyStats(ctx, tx, sess.Date); err != nil {
			return fmt.Errorf("update daily stats: %w", err)
		}
		if sess.SessionType == SessionPomodoro && sess.Status == StatusCompleted {
			if err := advanceStreak(ctx, tx, sess.Date); err != nil {
				return fmt.Errorf("update streak: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("record session: %w", err)
	}
	return id, nil
}

func insertSession(ctx context.Context, q querier, sess Session) (int64, error) {
	var work, short, long, count sql.NullInt64
	if snap := sess.Settings; snap != nil {
		work = sql.NullInt64{Int64: int64(snap.WorkDuration), Valid: true}
		short = sql.NullInt64{Int64: int64(snap.ShortBreakDuration), Valid: true}
		long = sql.NullInt64{Int64: int64(snap.LongBreakDuration), Valid: true}
		count = sql.NullInt64{Int64: int64(snap.SessionsBeforeLongBreak), Valid: true}
	}
	var activity sql.NullString
	if sess.BreakActivity != "" {
		activity = sql.NullString{String: sess.BreakActivity, Valid: true}
	}

	res, err := q.ExecContext(ctx, `
		INSERT INTO sessions (
			session_type, status, planned_duration, actual_duration,
			started_at, completed_at, date, break_activity,
			work_duration, short_break_duration, long_break_duration, sessions_before_long_break
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.SessionType, sess.Status, sess.PlannedDuration, sess.ActualDuration,
		sess.StartedAt.UTC().Format(time.RFC3339), sess.CompletedAt.UTC().Format(time.RFC3339),
		sess.Date, activity, work, short, long, count,
	)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	return res.LastInsertId()
}

type daySession struct {
	sessionType SessionType
	status      SessionStatus
	planned     int64
	actual      int64
	activity    string
}

// computeDailyStats derives one day's aggregate from its sessions.
func computeDailyStats(date string, sessions []daySession) DailyStats {
	ds := DailyStats{Date: date, TotalSessionsStarted: len(sessions)}

	var abandoned int
	var workPlanned int64
	for _, ss := range sessions {
		completed := ss.status == StatusCompleted
		if ss.status == StatusAbandoned {
			abandoned++
		}

		if ss.sessionType == SessionPomodoro {
			switch ss.status {
			case StatusCompleted:
				ds.WorkSessionsCompleted++
				ds.TotalWorkTime += ss.actual
				workPlanned += ss.planned
			case StatusSkipped:
				ds.WorkSessionsSkipped++
			}
			continue
		}

		switch ss.status {
		case StatusCompleted:
			ds.BreakSessionsCompleted++
			ds.TotalBreakTime += ss.actual
		case StatusSkipped:
			ds.BreakSessionsSkipped++
		}
		if !completed || ss.activity == "" {
			continue
		}
		switch strings.ToLower(ss.activity) {
		case "standing":
			ds.StandingBreaks++
			ds.TotalStandingTime += ss.actual
		case "walk", "walking":
			ds.WalkingBreaks++
			ds.TotalStandingTime += ss.actual
		case "stretch", "stretching", "exercise":
			ds.StretchingBreaks++
			ds.TotalExerciseTime += ss.actual
		default:
			ds.OtherBreaks++
		}
	}

	if ds.TotalSessionsStarted == 0 {
		return ds
	}

	started := float64(ds.TotalSessionsStarted)
	ds.CompletionRate = math.Round(float64(ds.WorkSessionsCompleted+ds.BreakSessionsCompleted) / started * 100)

	var durationRatio float64
	if ds.WorkSessionsCompleted > 0 {
		durationRatio = 1
		if workPlanned > 0 {
			durationRatio = math.Min(float64(ds.TotalWorkTime)/float64(workPlanned), 1)
		}
	}
	abandonment := 1 - float64(abandoned)/started
	ds.FocusScore = math.Round(ds.CompletionRate*0.4 + durationRatio*40 + abandonment*20)
	ds.IsStreakDay = ds.WorkSessionsCompleted > 0
	return ds
}

func refreshDailyStats(ctx context.Context, q querier, date string) error {
	rows, err := q.QueryContext(ctx,
		`SELECT session_type, status, planned_duration, actual_duration, COALESCE(break_activity, '')
		 FROM sessions WHERE date = ?`, date)
	if err != nil {
		return err
	}
	var sessions []daySession
	for rows.Next() {
		var ss daySession
		if err := rows.Scan(&ss.sessionType, &ss.status, &ss.planned, &ss.actual, &ss.activity); err != nil {
			rows.Close()
			return err
		}
		sessions = append(sessions, ss)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	ds := computeDailyStats(date, sessions)
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = q.ExecContext(ctx, `
		INSERT INTO daily_stats (
			date, work_sessions_completed, work_sessions_skipped,
			break_sessions_completed, break_sessions_skipped, total_sessions_started,
			total_work_time, total_break_time, total_standing_time, total_exercise_time,
			standing_breaks, walking_breaks, stretching_breaks, other_breaks,
			completion_rate, focus_score, is_streak_day, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			work_sessions_completed  = excluded.work_sessions_completed,
			work_sessions_skipped    = excluded.work_sessions_skipped,
			break_sessions_completed = excluded.break_sessions_completed,
			break_sessions_skipped   = excluded.break_sessions_skipped,
			total_sessions_started   = excluded.total_sessions_started,
			total_work_time          = excluded.total_work_time,
			total_break_time         = excluded.total_break_time,
			total_standing_time      = excluded.total_standing_time,
			total_exercise_time      = excluded.total_exercise_time,
			standing_breaks          = excluded.standing_breaks,
			walking_breaks           = excluded.walking_breaks,
			stretching_breaks        = excluded.stretching_breaks,
			other_breaks             = excluded.other_breaks,
			completion_rate          = excluded.completion_rate,
			focus_score              = excluded.focus_score,
			is_streak_day            = excluded.is_streak_day,
			updated_at               = excluded.updated_at`,
		ds.Date, ds.WorkSessionsCompleted, ds.WorkSessionsSkipped,
		ds.BreakSessionsCompleted, ds.BreakSessionsSkipped, ds.TotalSessionsStarted,
		ds.TotalWorkTime, ds.TotalBreakTime, ds.TotalStandingTime, ds.TotalExerciseTime,
		ds.StandingBreaks, ds.WalkingBreaks, ds.StretchingBreaks, ds.OtherBreaks,
		ds.CompletionRate, ds.FocusScore, ds.IsStreakDay, now,
	)
	return err
}

// nextStreak returns the streak after activity on date. A repeat of the last
// activity day keeps the streak, the following day extends it, a gap resets
// it to 1. Activity dated before the last activity day changes nothing.
func nextStreak(cur StreakInfo, date string) (StreakInfo, bool) {
	next := StreakInfo{CurrentStreak: 1, LongestStreak: cur.LongestStreak, LastActivityDate: date}
	if cur.LastActivityDate != "" {
		last, err1 := time.Parse(dateLayout, cur.LastActivityDate)
		day, err2 := time.Parse(dateLayout, date)
		if err1 == nil && err2 == nil {
			diff := int(day.Sub(last).Hours() / 24)
			switch {
			case diff < 0:
				return cur, false
			case diff == 0:
				next.CurrentStreak = cur.CurrentStreak
			case diff == 1:
				next.CurrentStreak = cur.CurrentStreak + 1
			}
		}
	}
	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}
	return next, true
}

func advanceStreak(ctx context.Context, q querier, date string) error {
	cur, err := readStreak(ctx, q)
	if err != nil {
		return err
	}
	next, changed := nextStreak(cur, date)
	if !changed {
		return nil
	}
	_, err = q.ExecContext(ctx, `
		UPDATE streak_info SET
			current_streak = ?,
			longest_streak = ?,
			last_activity_date = ?,
			updated_at = ?
		WHERE id = 1`,
		next.CurrentStreak, next.LongestStreak, next.LastActivityDate, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func readStreak(ctx context.Context, q querier) (StreakInfo, error) {
	var si StreakInfo
	var last sql.NullString
	err := q.QueryRowContext(ctx,
		`SELECT current_streak, longest_streak, last_activity_date FROM streak_info WHERE id = 1`,
	).Scan(&si.CurrentStreak, &si.LongestStreak, &last)
	if err != nil {
		return StreakInfo{}, err
	}
	si.LastActivityDate = last.String
	return si, nil
}

func (s *Store) Streak(ctx context.Context) (StreakInfo, error) {
	si, err := readStreak(ctx, s.db)
	if err != nil {
		return StreakInfo{}, fmt.Errorf("get streak: %w", err)
	}
	return si, nil
}

const dailyStatsColumns = `date, work_sessions_completed, work_sessions_skipped,
	break_sessions_completed, break_sessions_skipped, total_sessions_started,
	total_work_time, total_break_time, total_standing_time, total_exercise_time,
	standing_breaks, walking_breaks, stretching_breaks, other_breaks,
	completion_rate, focus_score, is_streak_day`

type scanner interface {
	Scan(dest ...any) error
}

func scanDailyStats(row scanner) (DailyStats, error) {
	var ds DailyStats
	err := row.Scan(&ds.Date, &ds.WorkSessionsCompleted, &ds.WorkSessionsSkipped,
		&ds.BreakSessionsCompleted, &ds.BreakSessionsSkipped, &ds.TotalSessionsStarted,
		&ds.TotalWorkTime, &ds.TotalBreakTime, &ds.TotalStandingTime, &ds.TotalExerciseTime,
		&ds.StandingBreaks, &ds.WalkingBreaks, &ds.StretchingBreaks, &ds.OtherBreaks,
		&ds.CompletionRate, &ds.FocusScore, &ds.IsStreakDay)
	return ds, err
}

// DailyStats returns the aggregate for date, or a zero aggregate when nothing
// was recorded that day.
func (s *Store) DailyStats(ctx context.Context, date string) (DailyStats, error) {
	ds, err := scanDailyStats(s.db.QueryRowContext(ctx,
		`SELECT `+dailyStatsColumns+` FROM daily_stats WHERE date = ?`, date))
	if errors.Is(err, sql.ErrNoRows) {
		return DailyStats{Date: date}, nil
	}
	if err != nil {
		return DailyStats{}, fmt.Errorf("get daily stats %s: %w", date, err)
	}
	return ds, nil
}

// DailyStatsRange returns the stored aggregates for from <= date <= to in
// ascending date order. Days without sessions are absent.
func (s *Store) DailyStatsRange(ctx context.Context, from, to string) ([]DailyStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+dailyStatsColumns+` FROM daily_stats WHERE date >= ? AND date <= ? ORDER BY date ASC`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("daily stats range: %w", err)
	}
	defer rows.Close()

	var out []DailyStats
	for rows.Next() {
		ds, err := scanDailyStats(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ds)
	}
	return out, rows.Err()
}

func (s *Store) AllTimeStats(ctx context.Context) (AllTimeStats, error) {
	var st AllTimeStats
	var workSecs int64
	var best float64
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM sessions WHERE status = 'completed'),
			(SELECT COALESCE(SUM(total_work_time), 0) FROM daily_stats),
			(SELECT COALESCE(MAX(focus_score), 0) FROM daily_stats)`,
	).Scan(&st.TotalSessions, &workSecs, &best)
	if err != nil {
		return AllTimeStats{}, fmt.Errorf("all-time stats: %w", err)
	}
	st.TotalFocusHours = math.Round(float64(workSecs)/3600*10) / 10
	st.BestFocusScore = int(math.Round(best))
	return st, nil
}

const sessionColumns = `id, session_type, status, planned_duration, actual_duration,
	started_at, completed_at, date, break_activity,
	work_duration, short_break_duration, long_break_duration, sessions_before_long_break`

// SessionsForDate returns the day's sessions in start order.
func (s *Store) SessionsForDate(ctx context.Context, date string) ([]Session, error) {
	return s.ListSessions(ctx, SessionFilter{From: date, To: date})
}

func (s *Store) ListSessions(ctx context.Context, f SessionFilter) ([]Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE 1=1`
	var args []any

	if f.From != "" {
		query += ` AND date >= ?`
		args = append(args, f.From)
	}
	if f.To != "" {
		query += ` AND date <= ?`
		args = append(args, f.To)
	}
	query += ` ORDER BY started_at ASC, id ASC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var ss Session
		var startedAt, completedAt string
		var activity sql.NullString
		var work, short, long, count sql.NullInt64
		if err := rows.Scan(&ss.ID, &ss.SessionType, &ss.Status, &ss.PlannedDuration, &ss.ActualDuration,
			&startedAt, &completedAt, &ss.Date, &activity, &work, &short, &long, &count); err != nil {
			return nil, err
		}
		ss.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		ss.CompletedAt, _ = time.Parse(time.RFC3339, completedAt)
		ss.BreakActivity = activity.String
		if work.Valid {
			ss.Settings = &SettingsSnapshot{
				WorkDuration:            int(work.Int64),
				ShortBreakDuration:      int(short.Int64),
				LongBreakDuration:       int(long.Int64),
				SessionsBeforeLongBreak: int(count.Int64),
			}
		}
		sessions = append(sessions, ss)
	}
	return sessions, rows.Err()
}

// SessionsCountForSettings counts completed pomodoros that ran under snap.
func (s *Store) SessionsCountForSettings(ctx context.Context, snap SettingsSnapshot) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM sessions
		WHERE work_duration = ? AND short_break_duration = ?
		  AND long_break_duration = ? AND sessions_before_long_break = ?
		  AND status = 'completed' AND session_type = 'pomodoro'`,
		snap.WorkDuration, snap.ShortBreakDuration, snap.LongBreakDuration, snap.SessionsBeforeLongBreak,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sessions for settings: %w", err)
	}
	return n, nil
}

func (s *Store) StatsForSettings(ctx context.Context, snap SettingsSnapshot) (SettingsStats, error) {
	var st SettingsStats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN status = 'completed' AND session_type = 'pomodoro'
		                         THEN actual_duration ELSE 0 END), 0)
		FROM sessions
		WHERE work_duration = ? AND short_break_duration = ?
		  AND long_break_duration = ? AND sessions_before_long_break = ?`,
		snap.WorkDuration, snap.ShortBreakDuration, snap.LongBreakDuration, snap.SessionsBeforeLongBreak,
	).Scan(&st.TotalSessions, &st.CompletedSessions, &st.TotalWorkTime)
	if err != nil {
		return SettingsStats{}, fmt.Errorf("stats for settings: %w", err)
	}
	if st.TotalSessions > 0 {
		st.AverageCompletionRate = float64(st.CompletedSessions) / float64(st.TotalSessions) * 100
	}
	return st, nil
}
