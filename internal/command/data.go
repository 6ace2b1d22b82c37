package command

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sadopc/pomodoro/internal/store"
)

const defaultHistoryLimit = 20

// RegisterDefaults adds greet and the data commands backed by s.
func RegisterDefaults(r *Registry, s *store.Store) {
	r.Register("greet", greet)

	r.Register("load_settings", func(ctx context.Context, _ json.RawMessage) (any, error) {
		return s.LoadTimerSettings(ctx)
	})

	r.Register("save_settings", func(ctx context.Context, args json.RawMessage) (any, error) {
		// Start from the stored row so callers may send a partial object.
		t, err := s.LoadTimerSettings(ctx)
		if err != nil {
			return nil, err
		}
		if err := decodeArgs(args, &t); err != nil {
			return nil, err
		}
		if err := s.SaveTimerSettings(ctx, t); err != nil {
			return nil, err
		}
		return s.LoadTimerSettings(ctx)
	})

	r.Register("reset_settings", func(ctx context.Context, _ json.RawMessage) (any, error) {
		if err := s.ResetTimerSettings(ctx); err != nil {
			return nil, err
		}
		return s.LoadTimerSettings(ctx)
	})

	r.Register("record_session", func(ctx context.Context, args json.RawMessage) (any, error) {
		var sess store.Session
		if err := decodeArgs(args, &sess); err != nil {
			return nil, err
		}
		if sess.StartedAt.IsZero() {
			return nil, fmt.Errorf("startedAt is required")
		}
		if sess.CompletedAt.IsZero() {
			sess.CompletedAt = time.Now()
		}
		id, err := s.RecordSession(ctx, sess)
		if err != nil {
			return nil, err
		}
		return map[string]int64{"id": id}, nil
	})

	r.Register("add_history_entry", func(ctx context.Context, args json.RawMessage) (any, error) {
		var e store.HistoryEntry
		if err := decodeArgs(args, &e); err != nil {
			return nil, err
		}
		id, err := s.AddHistoryEntry(ctx, e)
		if err != nil {
			return nil, err
		}
		return map[string]int64{"id": id}, nil
	})

	r.Register("recent_history", func(ctx context.Context, args json.RawMessage) (any, error) {
		a := struct {
			Limit int `json:"limit"`
		}{Limit: defaultHistoryLimit}
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		if a.Limit <= 0 {
			a.Limit = defaultHistoryLimit
		}
		entries, err := s.RecentHistory(ctx, a.Limit)
		if err != nil {
			return nil, err
		}
		if entries == nil {
			entries = []store.HistoryEntry{}
		}
		return entries, nil
	})

	r.Register("daily_stats", func(ctx context.Context, args json.RawMessage) (any, error) {
		var a struct {
			Date string `json:"date"`
		}
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		if a.Date == "" {
			a.Date = time.Now().Format("2006-01-02")
		}
		return s.DailyStats(ctx, a.Date)
	})

	r.Register("streak", func(ctx context.Context, _ json.RawMessage) (any, error) {
		return s.Streak(ctx)
	})

	r.Register("all_time_stats", func(ctx context.Context, _ json.RawMessage) (any, error) {
		return s.AllTimeStats(ctx)
	})
}
