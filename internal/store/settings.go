package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidSettings = errors.New("invalid timer settings")

func DefaultTimerSettings() TimerSettings {
	return TimerSettings{
		WorkDuration:            25,
		ShortBreakDuration:      5,
		LongBreakDuration:       15,
		SessionsBeforeLongBreak: 4,
		SoundEnabled:            true,
		DefaultBreakActivity:    BreakActivityAsk,
		ShowCyclePreview:        true,
	}
}

// Validate reports ErrInvalidSettings for out-of-range durations or an
// unknown default break activity.
func (t TimerSettings) Validate() error {
	check := func(name string, v, lo, hi int) error {
		if v < lo || v > hi {
			return fmt.Errorf("%w: %s must be between %d and %d, got %d", ErrInvalidSettings, name, lo, hi, v)
		}
		return nil
	}
	if err := check("work duration", t.WorkDuration, 1, 180); err != nil {
		return err
	}
	if err := check("short break duration", t.ShortBreakDuration, 1, 180); err != nil {
		return err
	}
	if err := check("long break duration", t.LongBreakDuration, 1, 180); err != nil {
		return err
	}
	if err := check("sessions before long break", t.SessionsBeforeLongBreak, 1, 12); err != nil {
		return err
	}
	if !ValidBreakActivity(t.DefaultBreakActivity) {
		return fmt.Errorf("%w: unknown break activity %q", ErrInvalidSettings, t.DefaultBreakActivity)
	}
	return nil
}

// ValidBreakActivity reports whether v is "ask" or a known ActivityType.
func ValidBreakActivity(v string) bool {
	if v == BreakActivityAsk {
		return true
	}
	for _, a := range ActivityTypes {
		if string(a) == v {
			return true
		}
	}
	return false
}

func (s *Store) LoadTimerSettings(ctx context.Context) (TimerSettings, error) {
	var t TimerSettings
	var updatedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT work_duration, short_break_duration, long_break_duration, sessions_before_long_break,
		       sound_enabled, default_break_activity, show_cycle_preview, updated_at
		FROM timer_settings WHERE id = 1`,
	).Scan(&t.WorkDuration, &t.ShortBreakDuration, &t.LongBreakDuration, &t.SessionsBeforeLongBreak,
		&t.SoundEnabled, &t.DefaultBreakActivity, &t.ShowCyclePreview, &updatedAt)
	if err != nil {
		return TimerSettings{}, fmt.Errorf("load timer settings: %w", err)
	}
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return t, nil
}

func (s *Store) SaveTimerSettings(ctx context.Context, t TimerSettings) error {
	if err := t.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		UPDATE timer_settings SET
			work_duration = ?,
			short_break_duration = ?,
			long_break_duration = ?,
			sessions_before_long_break = ?,
			sound_enabled = ?,
			default_break_activity = ?,
			show_cycle_preview = ?,
			updated_at = ?
		WHERE id = 1`,
		t.WorkDuration, t.ShortBreakDuration, t.LongBreakDuration, t.SessionsBeforeLongBreak,
		t.SoundEnabled, t.DefaultBreakActivity, t.ShowCyclePreview, now,
	)
	if err != nil {
		return fmt.Errorf("save timer settings: %w", err)
	}
	return nil
}

func (s *Store) ResetTimerSettings(ctx context.Context) error {
	return s.SaveTimerSettings(ctx, DefaultTimerSettings())
}
