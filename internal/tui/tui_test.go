package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/pomodoro/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// fakeNow pins c to a controllable time and returns a pointer to it.
func fakeNow(c *phaseClock, start time.Time) *time.Time {
	cur := start
	c.now = func() time.Time { return cur }
	return &cur
}

func keyPress(k string) tea.KeyMsg {
	if k == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func saveSettings(t *testing.T, s *store.Store, mutate func(*store.TimerSettings)) {
	t.Helper()
	ts := store.DefaultTimerSettings()
	mutate(&ts)
	if err := s.SaveTimerSettings(context.Background(), ts); err != nil {
		t.Fatalf("save settings: %v", err)
	}
}

var testStart = time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)

// ============================================================
// Phase clock
// ============================================================

func TestClockStartStop(t *testing.T) {
	c := newPhaseClock()
	now := fakeNow(&c, testStart)

	if c.running() {
		t.Fatal("clock should start stopped")
	}
	c.start(25 * time.Minute)
	if !c.running() || c.paused() {
		t.Fatal("clock should be running after start")
	}

	*now = now.Add(10 * time.Minute)
	if c.elapsed() != 10*time.Minute {
		t.Fatalf("elapsed = %v, want 10m", c.elapsed())
	}
	if c.remaining() != 15*time.Minute {
		t.Fatalf("remaining = %v, want 15m", c.remaining())
	}

	if run := c.stop(); run != 10*time.Minute {
		t.Fatalf("stop returned %v, want 10m", run)
	}
	if c.running() {
		t.Fatal("clock should be stopped")
	}
}

func TestClockStopWhenStopped(t *testing.T) {
	c := newPhaseClock()
	if run := c.stop(); run != 0 {
		t.Fatalf("stop on stopped clock = %v, want 0", run)
	}
}

func TestClockPauseExcludesGap(t *testing.T) {
	c := newPhaseClock()
	now := fakeNow(&c, testStart)
	c.start(25 * time.Minute)

	*now = now.Add(5 * time.Minute)
	c.pause()
	if !c.paused() || !c.running() {
		t.Fatal("paused clock is still running (not stopped)")
	}

	*now = now.Add(30 * time.Minute)
	if c.elapsed() != 5*time.Minute {
		t.Fatalf("elapsed grew while paused: %v", c.elapsed())
	}
	if c.done() {
		t.Fatal("paused clock should never be done")
	}

	c.resume()
	*now = now.Add(time.Minute)
	if c.elapsed() != 6*time.Minute {
		t.Fatalf("elapsed after resume = %v, want 6m", c.elapsed())
	}
}

func TestClockToggle(t *testing.T) {
	c := newPhaseClock()
	fakeNow(&c, testStart)

	c.toggle()
	if c.running() {
		t.Fatal("toggle should not start a stopped clock")
	}

	c.start(time.Minute)
	c.toggle()
	if !c.paused() {
		t.Fatal("toggle should pause")
	}
	c.toggle()
	if c.paused() {
		t.Fatal("toggle should resume")
	}
}

func TestClockDone(t *testing.T) {
	c := newPhaseClock()
	now := fakeNow(&c, testStart)
	c.start(time.Minute)

	*now = now.Add(59 * time.Second)
	if c.done() {
		t.Fatal("clock done too early")
	}
	*now = now.Add(2 * time.Second)
	if !c.done() {
		t.Fatal("clock should be done after planned time")
	}
	if c.remaining() != 0 {
		t.Fatalf("remaining should clamp to 0, got %v", c.remaining())
	}
}

func TestClockRemainingWhenStopped(t *testing.T) {
	c := newPhaseClock()
	c.planned = 5 * time.Minute
	if c.remaining() != 5*time.Minute {
		t.Fatalf("stopped clock should show planned time, got %v", c.remaining())
	}
}

// ============================================================
// Helpers
// ============================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{time.Second, "00:00:01"},
		{time.Hour + time.Minute + time.Second, "01:01:01"},
		{25 * time.Hour, "25:00:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatSecondsAndHours(t *testing.T) {
	if got := formatSeconds(1500); got != "00:25:00" {
		t.Fatalf("formatSeconds(1500) = %q", got)
	}
	if got := formatHours(5400); got != "1.5h" {
		t.Fatalf("formatHours(5400) = %q", got)
	}
}

func TestFormatPomodoroTime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{25 * time.Minute, "25:00"},
		{90 * time.Second, "01:30"},
		{-time.Second, "00:00"},
	}
	for _, tt := range tests {
		if got := formatPomodoroTime(tt.d); got != tt.want {
			t.Errorf("formatPomodoroTime(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestSessionLabel(t *testing.T) {
	if sessionLabel(store.SessionPomodoro) != "Focus" || sessionLabel(store.SessionLongBreak) != "Long break" {
		t.Fatal("unexpected session labels")
	}
}

func TestViewNames(t *testing.T) {
	if len(viewNames) != 5 {
		t.Fatalf("expected 5 view names, got %d", len(viewNames))
	}
	if viewNames[viewTimer] != "Timer" || viewNames[viewSettings] != "Settings" {
		t.Fatal("view names out of order")
	}
}

// ============================================================
// Pomodoro model
// ============================================================

func TestPomodoroInit(t *testing.T) {
	s := newTestStore(t)
	pm := newPomodoroModel(s)

	if pm.phase != store.SessionPomodoro {
		t.Fatalf("expected pomodoro phase, got %s", pm.phase)
	}
	if pm.clock.running() {
		t.Fatal("clock should be idle")
	}
	if pm.plannedFor(store.SessionPomodoro) != 25*time.Minute {
		t.Fatalf("expected 25min work, got %v", pm.plannedFor(store.SessionPomodoro))
	}
	if pm.plannedFor(store.SessionShortBreak) != 5*time.Minute || pm.plannedFor(store.SessionLongBreak) != 15*time.Minute {
		t.Fatal("unexpected break durations")
	}
}

func TestPomodoroLoadsSettings(t *testing.T) {
	s := newTestStore(t)
	saveSettings(t, s, func(ts *store.TimerSettings) { ts.WorkDuration = 50 })

	pm := newPomodoroModel(s)
	if pm.plannedFor(store.SessionPomodoro) != 50*time.Minute {
		t.Fatalf("expected 50min work, got %v", pm.plannedFor(store.SessionPomodoro))
	}
}

func TestPomodoroCompleteWork(t *testing.T) {
	s := newTestStore(t)
	pm := newPomodoroModel(s)
	now := fakeNow(&pm.clock, testStart)

	pm, _ = pm.update(keyPress("s"))
	if !pm.clock.running() {
		t.Fatal("clock should run after start")
	}

	*now = now.Add(25 * time.Minute)
	pm, cmd := pm.update(tickMsg(*now))
	if cmd == nil {
		t.Fatal("finishing a phase should emit messages")
	}
	if pm.completedCount != 1 {
		t.Fatalf("expected 1 completed, got %d", pm.completedCount)
	}
	if pm.phase != store.SessionShortBreak || pm.clock.running() {
		t.Fatalf("expected idle short break, got %s running=%v", pm.phase, pm.clock.running())
	}

	ctx := context.Background()
	sessions, err := s.SessionsForDate(ctx, "2024-05-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	sess := sessions[0]
	if sess.Status != store.StatusCompleted || sess.ActualDuration != 1500 || sess.PlannedDuration != 1500 {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if sess.Settings == nil || sess.Settings.WorkDuration != 25 {
		t.Fatal("settings snapshot not recorded")
	}

	history, _ := s.AllHistory(ctx)
	if len(history) != 1 || history[0].EventType != store.EventCompleted {
		t.Fatalf("unexpected history: %+v", history)
	}
	if history[0].SessionNumber == nil || *history[0].SessionNumber != 1 {
		t.Fatal("history should carry session number 1")
	}

	streak, _ := s.Streak(ctx)
	if streak.CurrentStreak != 1 {
		t.Fatalf("completed pomodoro should start a streak, got %+v", streak)
	}
}

func TestPomodoroSkipWork(t *testing.T) {
	s := newTestStore(t)
	pm := newPomodoroModel(s)
	now := fakeNow(&pm.clock, testStart)

	pm, _ = pm.update(keyPress("s"))
	*now = now.Add(10 * time.Minute)
	pm, _ = pm.update(keyPress("n"))

	if pm.completedCount != 0 {
		t.Fatal("skipped pomodoro should not count")
	}
	if pm.phase != store.SessionShortBreak {
		t.Fatalf("expected short break after skip, got %s", pm.phase)
	}

	sessions, _ := s.SessionsForDate(context.Background(), "2024-05-01")
	if len(sessions) != 1 || sessions[0].Status != store.StatusSkipped || sessions[0].ActualDuration != 600 {
		t.Fatalf("unexpected sessions: %+v", sessions)
	}
	history, _ := s.AllHistory(context.Background())
	if history[0].EventType != store.EventSkipped {
		t.Fatalf("expected skipped event, got %s", history[0].EventType)
	}
}

func TestPomodoroSkipWhenIdleRecordsNothing(t *testing.T) {
	s := newTestStore(t)
	pm := newPomodoroModel(s)

	pm, _ = pm.update(keyPress("n"))
	if pm.phase != store.SessionShortBreak {
		t.Fatalf("idle skip should move to the next phase, got %s", pm.phase)
	}
	history, _ := s.AllHistory(context.Background())
	if len(history) != 0 {
		t.Fatal("idle skip should not record history")
	}
}

func TestPomodoroAbandon(t *testing.T) {
	s := newTestStore(t)
	pm := newPomodoroModel(s)
	now := fakeNow(&pm.clock, testStart)

	pm, _ = pm.update(keyPress("s"))
	*now = now.Add(3 * time.Minute)
	pm, _ = pm.update(keyPress("x"))

	if pm.clock.running() {
		t.Fatal("clock should stop after abandon")
	}
	if pm.phase != store.SessionPomodoro {
		t.Fatal("abandon should stay on the same phase")
	}

	sessions, _ := s.SessionsForDate(context.Background(), "2024-05-01")
	if len(sessions) != 1 || sessions[0].Status != store.StatusAbandoned {
		t.Fatalf("unexpected sessions: %+v", sessions)
	}
	history, _ := s.AllHistory(context.Background())
	if history[0].EventType != store.EventManualSwitch {
		t.Fatalf("expected manual_switch event, got %s", history[0].EventType)
	}
}

func TestPomodoroAbandonWhenIdle(t *testing.T) {
	s := newTestStore(t)
	pm := newPomodoroModel(s)
	pm, cmd := pm.update(keyPress("x"))
	if cmd != nil {
		t.Fatal("abandon when idle should be a no-op")
	}
}

func TestPomodoroPauseKey(t *testing.T) {
	s := newTestStore(t)
	pm := newPomodoroModel(s)
	fakeNow(&pm.clock, testStart)

	pm, _ = pm.update(keyPress("s"))
	pm, _ = pm.update(keyPress(" "))
	if !pm.clock.paused() {
		t.Fatal("space should pause")
	}
	pm, _ = pm.update(keyPress(" "))
	if pm.clock.paused() {
		t.Fatal("space should resume")
	}
}

func TestPomodoroBreakAsksForActivity(t *testing.T) {
	s := newTestStore(t)
	pm := newPomodoroModel(s)
	pm.phase = store.SessionShortBreak

	pm, _ = pm.update(keyPress("s"))
	if !pm.formActive || pm.form == nil {
		t.Fatal("break should ask for an activity when the default is ask")
	}
	if pm.clock.running() {
		t.Fatal("clock should wait for the activity choice")
	}

	pm, _ = pm.update(tea.KeyMsg{Type: tea.KeyEsc})
	if pm.formActive {
		t.Fatal("esc should close the activity form")
	}
}

func TestPomodoroBreakUsesDefaultActivity(t *testing.T) {
	s := newTestStore(t)
	saveSettings(t, s, func(ts *store.TimerSettings) { ts.DefaultBreakActivity = "walk" })
	pm := newPomodoroModel(s)
	now := fakeNow(&pm.clock, testStart)
	pm.phase = store.SessionShortBreak

	pm, _ = pm.update(keyPress("s"))
	if pm.formActive {
		t.Fatal("no form expected with a default activity")
	}
	if pm.breakActivity != "walk" {
		t.Fatalf("breakActivity = %q, want walk", pm.breakActivity)
	}

	*now = now.Add(5 * time.Minute)
	pm, _ = pm.update(tickMsg(*now))
	if pm.phase != store.SessionPomodoro {
		t.Fatalf("expected pomodoro after break, got %s", pm.phase)
	}

	ctx := context.Background()
	history, _ := s.AllHistory(ctx)
	if history[0].ActivityType == nil || *history[0].ActivityType != store.ActivityWalk {
		t.Fatal("history should record the break activity")
	}
	stats, _ := s.DailyStats(ctx, "2024-05-01")
	if stats.BreakSessionsCompleted != 1 || stats.WalkingBreaks != 1 {
		t.Fatalf("unexpected daily stats: %+v", stats)
	}
}

func TestPomodoroLongBreakCycle(t *testing.T) {
	s := newTestStore(t)
	saveSettings(t, s, func(ts *store.TimerSettings) {
		ts.SessionsBeforeLongBreak = 2
		ts.DefaultBreakActivity = "rest"
	})
	pm := newPomodoroModel(s)
	now := fakeNow(&pm.clock, testStart)

	run := func() {
		pm, _ = pm.update(keyPress("s"))
		*now = now.Add(pm.plannedFor(pm.phase))
		pm, _ = pm.update(tickMsg(*now))
	}

	run() // work 1
	if pm.phase != store.SessionShortBreak {
		t.Fatalf("expected short break, got %s", pm.phase)
	}
	run() // short break
	run() // work 2
	if pm.phase != store.SessionLongBreak {
		t.Fatalf("expected long break after 2 pomodoros, got %s", pm.phase)
	}
	run() // long break
	if pm.phase != store.SessionPomodoro || pm.completedCount != 0 {
		t.Fatalf("cycle should restart, got %s count=%d", pm.phase, pm.completedCount)
	}

	stats, _ := s.DailyStats(context.Background(), "2024-05-01")
	if stats.WorkSessionsCompleted != 2 || stats.BreakSessionsCompleted != 2 {
		t.Fatalf("unexpected daily stats: %+v", stats)
	}
}

func TestPomodoroCyclePreview(t *testing.T) {
	s := newTestStore(t)
	pm := newPomodoroModel(s)
	preview := pm.renderCyclePreview()
	if !strings.Contains(preview, "Long break") || !strings.Contains(preview, "Focus") {
		t.Fatalf("unexpected preview %q", preview)
	}
}

func TestPomodoroSettingsSavedWhileIdle(t *testing.T) {
	s := newTestStore(t)
	pm := newPomodoroModel(s)
	ts := store.DefaultTimerSettings()
	ts.ShortBreakDuration = 10

	pm, _ = pm.update(settingsSavedMsg{settings: ts})
	if pm.plannedFor(store.SessionShortBreak) != 10*time.Minute {
		t.Fatal("idle timer should pick up saved settings")
	}
}

func TestPomodoroView(t *testing.T) {
	s := newTestStore(t)
	pm := newPomodoroModel(s)
	pm.setSize(100, 30)
	if !strings.Contains(pm.view(), "25:00") {
		t.Fatal("idle view should show the planned focus time")
	}
}

// ============================================================
// Today / History / Reports
// ============================================================

func recordNow(t *testing.T, s *store.Store, typ store.SessionType, status store.SessionStatus) {
	t.Helper()
	now := time.Now()
	snap := store.DefaultTimerSettings().Snapshot()
	_, err := s.RecordSession(context.Background(), store.Session{
		SessionType:     typ,
		Status:          status,
		PlannedDuration: 1500,
		ActualDuration:  1500,
		StartedAt:       now.Add(-25 * time.Minute),
		CompletedAt:     now,
		Date:            now.Format("2006-01-02"),
		Settings:        &snap,
	})
	if err != nil {
		t.Fatalf("record session: %v", err)
	}
}

func TestTodayLoadData(t *testing.T) {
	s := newTestStore(t)
	recordNow(t, s, store.SessionPomodoro, store.StatusCompleted)

	d := newTodayModel(s)
	d.setSize(100, 30)
	d, _ = d.update(d.loadData()())

	if d.stats.WorkSessionsCompleted != 1 {
		t.Fatalf("expected 1 completed pomodoro, got %+v", d.stats)
	}
	if d.streak.CurrentStreak != 1 || len(d.sessions) != 1 {
		t.Fatalf("unexpected today data: streak=%+v sessions=%d", d.streak, len(d.sessions))
	}
	if !strings.Contains(d.view(), "Streak") {
		t.Fatal("today view should show the streak")
	}
}

func TestTodayReloadsOnRecordedSession(t *testing.T) {
	s := newTestStore(t)
	d := newTodayModel(s)
	if _, cmd := d.update(sessionRecordedMsg{}); cmd == nil {
		t.Fatal("recorded session should trigger a reload")
	}
}

func TestHistoryRangesAndDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		s.AddHistoryEntry(ctx, store.HistoryEntry{
			SessionType: store.SessionPomodoro,
			EventType:   store.EventCompleted,
			Duration:    1500,
		})
	}

	h := newHistoryModel(s)
	h.setSize(100, 30)
	h, _ = h.update(h.refresh()())
	if len(h.entries) != 3 {
		t.Fatalf("expected 3 entries today, got %d", len(h.entries))
	}

	h, _ = h.update(keyPress("j"))
	if h.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", h.cursor)
	}

	h, cmd := h.update(keyPress("d"))
	h, _ = h.update(cmd())
	if len(h.entries) != 2 {
		t.Fatalf("expected 2 entries after delete, got %d", len(h.entries))
	}

	h, cmd = h.update(keyPress("f"))
	if h.rng != rangeWeek || cmd == nil {
		t.Fatal("f should switch to the week range and reload")
	}
	if !strings.Contains(h.view(), "This week") {
		t.Fatal("history view should show range tabs")
	}
}

func TestReportsDateRange(t *testing.T) {
	r := newReportsModel(newTestStore(t))
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)

	from, to := r.dateRange(now)
	if from.Format("2006-01-02") != "2024-05-04" || to.Format("2006-01-02") != "2024-05-10" {
		t.Fatalf("range = %s..%s", from, to)
	}

	r.offset = 1
	from, to = r.dateRange(now)
	if from.Format("2006-01-02") != "2024-04-27" || to.Format("2006-01-02") != "2024-05-03" {
		t.Fatalf("previous range = %s..%s", from, to)
	}
}

func TestReportsRefresh(t *testing.T) {
	s := newTestStore(t)
	recordNow(t, s, store.SessionPomodoro, store.StatusCompleted)

	r := newReportsModel(s)
	r.setSize(100, 30)
	r, _ = r.update(r.refresh()())

	if len(r.days) != 1 {
		t.Fatalf("expected 1 day of stats, got %d", len(r.days))
	}
	if r.byConfig.TotalSessions != 1 {
		t.Fatalf("expected 1 session under current settings, got %+v", r.byConfig)
	}
	if r.view() == "" {
		t.Fatal("reports view rendered empty")
	}
}

func TestReportsNavigation(t *testing.T) {
	r := newReportsModel(newTestStore(t))
	r, _ = r.update(keyPress("l"))
	if r.offset != 0 {
		t.Fatal("offset should not go below 0")
	}
	r, _ = r.update(keyPress("h"))
	if r.offset != 1 {
		t.Fatalf("offset = %d, want 1", r.offset)
	}
}

// ============================================================
// Settings
// ============================================================

func TestIntInRange(t *testing.T) {
	v := intInRange(1, 12)
	if v("4") != nil {
		t.Fatal("4 should be valid")
	}
	if v("0") == nil || v("13") == nil || v("x") == nil {
		t.Fatal("out of range and non-numeric values should be rejected")
	}
}

func TestSettingsFormValues(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)
	m, _ = m.showForm()

	if *m.work != "25" || *m.sessions != "4" || *m.breakActivity != "ask" || !*m.sound {
		t.Fatal("form should be loaded with current settings")
	}

	*m.work = "45"
	*m.breakActivity = "hydrate"
	*m.cyclePreview = false
	ts := m.formSettings()
	if ts.WorkDuration != 45 || ts.DefaultBreakActivity != "hydrate" || ts.ShowCyclePreview {
		t.Fatalf("unexpected form settings: %+v", ts)
	}
}

func TestSettingsFormEscape(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)
	m, _ = m.showForm()
	if !m.formActive {
		t.Fatal("form should be active")
	}
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.formActive {
		t.Fatal("esc should close the form")
	}
}

func TestSettingsReset(t *testing.T) {
	s := newTestStore(t)
	saveSettings(t, s, func(ts *store.TimerSettings) { ts.WorkDuration = 60 })

	m := newSettingsModel(s)
	m, cmd := m.update(keyPress("r"))
	msg, ok := cmd().(settingsSavedMsg)
	if !ok {
		t.Fatal("reset should announce the saved settings")
	}
	if msg.settings.WorkDuration != 25 {
		t.Fatalf("reset settings = %+v", msg.settings)
	}
}

func TestSettingsView(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)
	m.setSize(100, 30)
	m, _ = m.update(m.refresh()())
	out := m.view()
	if !strings.Contains(out, "25 min") || !strings.Contains(out, "ask") {
		t.Fatalf("settings view missing values: %q", out)
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, "hello")

	if app.activeView != viewTimer {
		t.Fatal("default view should be the timer")
	}
	if app.showHelp || app.exportPicking {
		t.Fatal("help and export picker should be hidden by default")
	}
	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, "")
	app.width = 120
	app.height = 40

	for v := range viewNames {
		app.activeView = viewState(v)
		if app.View() == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppTabKeys(t *testing.T) {
	s := newTestStore(t)
	var m tea.Model = NewApp(s, "")

	m, _ = m.Update(keyPress("3"))
	if m.(App).activeView != viewHistory {
		t.Fatal("3 should open history")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.(App).activeView != viewReports {
		t.Fatal("tab should move to the next view")
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, "")
	app.width = 120

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppGreetingInFooter(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, "Hello, Ada! You've been greeted from Go!")
	app.width = 160
	app.height = 40

	if !strings.Contains(app.renderFooter(), "Hello, Ada!") {
		t.Fatal("footer should show the launch greeting")
	}
}

func TestAppStatusMessage(t *testing.T) {
	s := newTestStore(t)
	var m tea.Model = NewApp(s, "")
	m, _ = m.Update(statusMsg{text: "boom", isError: true})

	app := m.(App)
	app.width = 120
	if !app.statusErr || !strings.Contains(app.renderFooter(), "boom") {
		t.Fatal("footer should contain the error status")
	}
}

func TestAppLoadingState(t *testing.T) {
	s := newTestStore(t)
	if out := NewApp(s, "").View(); out != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", out)
	}
}

func TestAppExport(t *testing.T) {
	s := newTestStore(t)
	recordNow(t, s, store.SessionPomodoro, store.StatusCompleted)

	app := NewApp(s, "")
	app.exportDir = t.TempDir()

	var m tea.Model = app
	m, _ = m.Update(keyPress("e"))
	if !m.(App).exportPicking {
		t.Fatal("e should open the export picker")
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	done, ok := cmd().(exportDoneMsg)
	if !ok {
		t.Fatal("export should finish with exportDoneMsg")
	}
	if !strings.HasSuffix(done.path, ".csv") {
		t.Fatalf("unexpected export path %q", done.path)
	}
	m, _ = m.Update(done)
	if !strings.Contains(m.(App).status, "Exported to") {
		t.Fatal("status should report the export")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
	for i, g := range keys.FullHelp() {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}
