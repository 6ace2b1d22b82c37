package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/pomodoro/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewToday
	viewHistory
	viewReports
	viewSettings
)

var viewNames = []string{"Timer", "Today", "History", "Reports", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// sessionRecordedMsg is sent after a finished phase has been written to the
// store, so views showing aggregates can reload.
type sessionRecordedMsg struct {
	session store.Session
}

type settingsSavedMsg struct {
	settings store.TimerSettings
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatSeconds(secs int64) string {
	return formatDuration(time.Duration(secs) * time.Second)
}

func formatHours(secs int64) string {
	h := float64(secs) / 3600
	return fmt.Sprintf("%.1fh", h)
}

func sessionLabel(t store.SessionType) string {
	switch t {
	case store.SessionPomodoro:
		return "Focus"
	case store.SessionShortBreak:
		return "Short break"
	case store.SessionLongBreak:
		return "Long break"
	}
	return string(t)
}

func todayString() string {
	return time.Now().Format("2006-01-02")
}
