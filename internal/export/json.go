package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/pomodoro/internal/store"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Sessions   []jsonSession `json:"sessions"`
}

type jsonSession struct {
	ID                      int64  `json:"id"`
	Date                    string `json:"date"`
	Type                    string `json:"type"`
	Status                  string `json:"status"`
	StartedAt               string `json:"started_at"`
	CompletedAt             string `json:"completed_at,omitempty"`
	PlannedSec              int64  `json:"planned_seconds"`
	ActualSec               int64  `json:"actual_seconds"`
	Actual                  string `json:"actual"`
	BreakActivity           string `json:"break_activity,omitempty"`
	WorkDuration            int    `json:"work_duration,omitempty"`
	ShortBreakDuration      int    `json:"short_break_duration,omitempty"`
	LongBreakDuration       int    `json:"long_break_duration,omitempty"`
	SessionsBeforeLongBreak int    `json:"sessions_before_long_break,omitempty"`
}

func ToJSON(sessions []store.Session, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(sessions),
	}

	for _, s := range sessions {
		js := jsonSession{
			ID:            s.ID,
			Date:          s.Date,
			Type:          string(s.SessionType),
			Status:        string(s.Status),
			StartedAt:     s.StartedAt.Local().Format(time.RFC3339),
			CompletedAt:   formatTime(s.CompletedAt),
			PlannedSec:    s.PlannedDuration,
			ActualSec:     s.ActualDuration,
			Actual:        formatDuration(s.ActualDuration),
			BreakActivity: s.BreakActivity,
		}
		if snap := s.Settings; snap != nil {
			js.WorkDuration = snap.WorkDuration
			js.ShortBreakDuration = snap.ShortBreakDuration
			js.LongBreakDuration = snap.LongBreakDuration
			js.SessionsBeforeLongBreak = snap.SessionsBeforeLongBreak
		}
		export.Sessions = append(export.Sessions, js)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
