package store

import "time"

type SessionType string

const (
	SessionPomodoro   SessionType = "pomodoro"
	SessionShortBreak SessionType = "shortBreak"
	SessionLongBreak  SessionType = "longBreak"
)

func (t SessionType) IsBreak() bool {
	return t == SessionShortBreak || t == SessionLongBreak
}

// SessionStatus is the outcome of a tracked session.
type SessionStatus string

const (
	StatusCompleted SessionStatus = "completed"
	StatusSkipped   SessionStatus = "skipped"
	StatusAbandoned SessionStatus = "abandoned"
)

// HistoryEvent is what ended a session_history entry.
type HistoryEvent string

const (
	EventCompleted    HistoryEvent = "completed"
	EventSkipped      HistoryEvent = "skipped"
	EventManualSwitch HistoryEvent = "manual_switch"
)

type ActivityType string

const (
	ActivityStretch  ActivityType = "stretch"
	ActivityWalk     ActivityType = "walk"
	ActivityExercise ActivityType = "exercise"
	ActivityHydrate  ActivityType = "hydrate"
	ActivityRest     ActivityType = "rest"
	ActivityOther    ActivityType = "other"
)

// ActivityTypes lists the allowed break activities in display order.
var ActivityTypes = []ActivityType{
	ActivityStretch, ActivityWalk, ActivityExercise, ActivityHydrate, ActivityRest, ActivityOther,
}

// BreakActivityAsk means the user picks an activity at the start of each break.
const BreakActivityAsk = "ask"

type TimerSettings struct {
	WorkDuration            int       `json:"workDuration"`       // minutes
	ShortBreakDuration      int       `json:"shortBreakDuration"` // minutes
	LongBreakDuration       int       `json:"longBreakDuration"`  // minutes
	SessionsBeforeLongBreak int       `json:"sessionsBeforeLongBreak"`
	SoundEnabled            bool      `json:"soundEnabled"`
	DefaultBreakActivity    string    `json:"defaultBreakActivity"` // "ask" or an ActivityType
	ShowCyclePreview        bool      `json:"showCyclePreview"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// Snapshot returns the duration settings recorded alongside a session.
func (t TimerSettings) Snapshot() SettingsSnapshot {
	return SettingsSnapshot{
		WorkDuration:            t.WorkDuration,
		ShortBreakDuration:      t.ShortBreakDuration,
		LongBreakDuration:       t.LongBreakDuration,
		SessionsBeforeLongBreak: t.SessionsBeforeLongBreak,
	}
}

// SettingsSnapshot is the duration configuration a session ran under.
type SettingsSnapshot struct {
	WorkDuration            int `json:"workDuration"`
	ShortBreakDuration      int `json:"shortBreakDuration"`
	LongBreakDuration       int `json:"longBreakDuration"`
	SessionsBeforeLongBreak int `json:"sessionsBeforeLongBreak"`
}

// HistoryEntry is one row of the session_history event log.
type HistoryEntry struct {
	ID               int64         `json:"id"`
	SessionType      SessionType   `json:"sessionType"`
	EventType        HistoryEvent  `json:"eventType"`
	Timestamp        time.Time     `json:"timestamp"`
	Duration         int64         `json:"duration"`         // seconds actually run
	ExpectedDuration int64         `json:"expectedDuration"` // seconds configured
	SessionNumber    *int          `json:"sessionNumber,omitempty"`
	ActivityType     *ActivityType `json:"activityType,omitempty"`
}

// Session is one tracked timer run.
type Session struct {
	ID              int64             `json:"id"`
	SessionType     SessionType       `json:"sessionType"`
	Status          SessionStatus     `json:"status"`
	PlannedDuration int64             `json:"plannedDuration"` // seconds
	ActualDuration  int64             `json:"actualDuration"`  // seconds
	StartedAt       time.Time         `json:"startedAt"`
	CompletedAt     time.Time         `json:"completedAt"`
	Date            string            `json:"date"` // YYYY-MM-DD
	BreakActivity   string            `json:"breakActivity,omitempty"`
	Settings        *SettingsSnapshot `json:"settings,omitempty"`
}

// SessionFilter is used to filter sessions in queries. Dates are YYYY-MM-DD
// and inclusive.
type SessionFilter struct {
	From  string
	To    string
	Limit int
}

type DailyStats struct {
	Date                   string  `json:"date"`
	WorkSessionsCompleted  int     `json:"workSessionsCompleted"`
	WorkSessionsSkipped    int     `json:"workSessionsSkipped"`
	BreakSessionsCompleted int     `json:"breakSessionsCompleted"`
	BreakSessionsSkipped   int     `json:"breakSessionsSkipped"`
	TotalSessionsStarted   int     `json:"totalSessionsStarted"`
	TotalWorkTime          int64   `json:"totalWorkTime"`
	TotalBreakTime         int64   `json:"totalBreakTime"`
	TotalStandingTime      int64   `json:"totalStandingTime"`
	TotalExerciseTime      int64   `json:"totalExerciseTime"`
	StandingBreaks         int     `json:"standingBreaks"`
	WalkingBreaks          int     `json:"walkingBreaks"`
	StretchingBreaks       int     `json:"stretchingBreaks"`
	OtherBreaks            int     `json:"otherBreaks"`
	CompletionRate         float64 `json:"completionRate"`
	FocusScore             float64 `json:"focusScore"`
	IsStreakDay            bool    `json:"isStreakDay"`
}

type StreakInfo struct {
	CurrentStreak    int    `json:"currentStreak"`
	LongestStreak    int    `json:"longestStreak"`
	LastActivityDate string `json:"lastActivityDate,omitempty"`
}

type AllTimeStats struct {
	TotalSessions   int     `json:"totalSessions"`
	TotalFocusHours float64 `json:"totalFocusHours"`
	BestFocusScore  int     `json:"bestFocusScore"`
}

// SettingsStats aggregates sessions that ran under one settings snapshot.
type SettingsStats struct {
	TotalSessions         int     `json:"totalSessions"`
	CompletedSessions     int     `json:"completedSessions"`
	AverageCompletionRate float64 `json:"averageCompletionRate"`
	TotalWorkTime         int64   `json:"totalWorkTime"`
}
