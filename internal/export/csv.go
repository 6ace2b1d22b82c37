// Package export writes recorded sessions to CSV or JSON files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/pomodoro/internal/store"
)

var csvHeader = []string{
	"ID", "Date", "Type", "Status", "Started", "Completed",
	"Planned (s)", "Actual (s)", "Actual", "Break Activity",
}

func ToCSV(sessions []store.Session, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, s := range sessions {
		row := []string{
			strconv.FormatInt(s.ID, 10),
			s.Date,
			string(s.SessionType),
			string(s.Status),
			s.StartedAt.Local().Format(time.RFC3339),
			formatTime(s.CompletedAt),
			strconv.FormatInt(s.PlannedDuration, 10),
			strconv.FormatInt(s.ActualDuration, 10),
			formatDuration(s.ActualDuration),
			s.BreakActivity,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(time.RFC3339)
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
