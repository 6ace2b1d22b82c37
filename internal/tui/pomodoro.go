package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/pomodoro/internal/store"
)

var phaseNames = map[store.SessionType]string{
	store.SessionPomodoro:   "FOCUS",
	store.SessionShortBreak: "SHORT BREAK",
	store.SessionLongBreak:  "LONG BREAK",
}

type pomodoroModel struct {
	store  *store.Store
	width  int
	height int

	settings store.TimerSettings
	clock    phaseClock

	phase store.SessionType
	// completed pomodoros in the current cycle, reset after a long break
	completedCount int
	startedAt      time.Time
	breakActivity  string

	formActive bool
	form       *huh.Form
	activity   *string // form value pointer, survives value copies
}

func newPomodoroModel(s *store.Store) pomodoroModel {
	activity := ""
	m := pomodoroModel{
		store:    s,
		clock:    newPhaseClock(),
		phase:    store.SessionPomodoro,
		activity: &activity,
	}
	m.loadSettings()
	return m
}

func (p *pomodoroModel) loadSettings() {
	ts, err := p.store.LoadTimerSettings(context.Background())
	if err != nil {
		ts = store.DefaultTimerSettings()
	}
	p.settings = ts
}

func (p *pomodoroModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p pomodoroModel) plannedFor(t store.SessionType) time.Duration {
	switch t {
	case store.SessionShortBreak:
		return time.Duration(p.settings.ShortBreakDuration) * time.Minute
	case store.SessionLongBreak:
		return time.Duration(p.settings.LongBreakDuration) * time.Minute
	}
	return time.Duration(p.settings.WorkDuration) * time.Minute
}

// nextPhase is the phase that follows the current one, given the number of
// pomodoros completed so far in the cycle.
func (p pomodoroModel) nextPhase() store.SessionType {
	if !p.phase.IsBreak() {
		if p.completedCount > 0 && p.completedCount%p.settings.SessionsBeforeLongBreak == 0 {
			return store.SessionLongBreak
		}
		return store.SessionShortBreak
	}
	return store.SessionPomodoro
}

func (p pomodoroModel) update(msg tea.Msg) (pomodoroModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tickMsg:
		if p.clock.done() {
			return p.finish(store.StatusCompleted, store.EventCompleted)
		}
		return p, nil

	case settingsSavedMsg:
		if !p.clock.running() {
			p.settings = msg.settings
		}
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			if !p.clock.running() {
				return p.startPhase()
			}
		case key.Matches(msg, keys.Pause):
			p.clock.toggle()
		case key.Matches(msg, keys.Skip):
			if p.clock.running() {
				return p.finish(store.StatusSkipped, store.EventSkipped)
			}
			p = p.advance()
		case key.Matches(msg, keys.Stop):
			if p.clock.running() {
				return p.abandon()
			}
		}
	}
	return p, nil
}

func (p pomodoroModel) startPhase() (pomodoroModel, tea.Cmd) {
	p.loadSettings()
	p.breakActivity = ""
	if p.phase.IsBreak() {
		if p.settings.DefaultBreakActivity == store.BreakActivityAsk {
			return p.showActivityForm()
		}
		p.breakActivity = p.settings.DefaultBreakActivity
	}
	p.beginClock()
	return p, nil
}

func (p *pomodoroModel) beginClock() {
	p.startedAt = p.clock.now()
	p.clock.start(p.plannedFor(p.phase))
}

func (p pomodoroModel) showActivityForm() (pomodoroModel, tea.Cmd) {
	*p.activity = string(store.ActivityStretch)
	options := make([]huh.Option[string], len(store.ActivityTypes))
	for i, a := range store.ActivityTypes {
		options[i] = huh.NewOption(string(a), string(a))
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What will you do this break?").
				Options(options...).
				Value(p.activity),
		),
	).WithShowHelp(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p pomodoroModel) updateForm(msg tea.Msg) (pomodoroModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		p.formActive = false
		p.form = nil
		return p, nil
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		p.form = nil
		p.breakActivity = *p.activity
		p.beginClock()
		return p, nil
	}
	return p, cmd
}

// finish stops the clock, records the phase with the given outcome and
// moves on to the next phase.
func (p pomodoroModel) finish(status store.SessionStatus, event store.HistoryEvent) (pomodoroModel, tea.Cmd) {
	sess, err := p.record(status, event)
	if err != nil {
		return p, errorCmd(err)
	}
	if p.phase == store.SessionPomodoro && status == store.StatusCompleted {
		p.completedCount++
	}

	text := fmt.Sprintf("%s %s", sessionLabel(sess.SessionType), status)
	if status == store.StatusCompleted && p.settings.SoundEnabled {
		text += " \a"
	}
	p = p.advance()
	return p, tea.Batch(
		func() tea.Msg { return sessionRecordedMsg{session: sess} },
		func() tea.Msg { return statusMsg{text: text} },
	)
}

// abandon records the running phase as abandoned and stays on it, ready to
// be started again.
func (p pomodoroModel) abandon() (pomodoroModel, tea.Cmd) {
	sess, err := p.record(store.StatusAbandoned, store.EventManualSwitch)
	if err != nil {
		return p, errorCmd(err)
	}
	return p, tea.Batch(
		func() tea.Msg { return sessionRecordedMsg{session: sess} },
		func() tea.Msg { return statusMsg{text: sessionLabel(sess.SessionType) + " abandoned"} },
	)
}

func (p pomodoroModel) advance() pomodoroModel {
	if p.phase == store.SessionLongBreak {
		p.completedCount = 0
	}
	p.phase = p.nextPhase()
	p.clock.planned = p.plannedFor(p.phase)
	return p
}

func (p *pomodoroModel) record(status store.SessionStatus, event store.HistoryEvent) (store.Session, error) {
	run := p.clock.stop()
	now := p.clock.now()
	planned := p.plannedFor(p.phase)
	snap := p.settings.Snapshot()

	sess := store.Session{
		SessionType:     p.phase,
		Status:          status,
		PlannedDuration: int64(planned.Seconds()),
		ActualDuration:  int64(run.Seconds()),
		StartedAt:       p.startedAt,
		CompletedAt:     now,
		BreakActivity:   p.breakActivity,
		Settings:        &snap,
	}

	ctx := context.Background()
	id, err := p.store.RecordSession(ctx, sess)
	if err != nil {
		return sess, err
	}
	sess.ID = id

	number := p.sessionNumber()
	entry := store.HistoryEntry{
		SessionType:      p.phase,
		EventType:        event,
		Timestamp:        now,
		Duration:         sess.ActualDuration,
		ExpectedDuration: sess.PlannedDuration,
		SessionNumber:    &number,
	}
	if p.phase.IsBreak() && store.ValidBreakActivity(p.breakActivity) && p.breakActivity != store.BreakActivityAsk {
		a := store.ActivityType(p.breakActivity)
		entry.ActivityType = &a
	}
	if _, err := p.store.AddHistoryEntry(ctx, entry); err != nil {
		return sess, err
	}
	return sess, nil
}

// sessionNumber is the position of the current pomodoro in the cycle. A
// break carries the number of the pomodoro it follows.
func (p pomodoroModel) sessionNumber() int {
	if p.phase.IsBreak() {
		return max(p.completedCount, 1)
	}
	return p.completedCount + 1
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
	}
}

func (p pomodoroModel) phaseStyle() lipgloss.Style {
	switch p.phase {
	case store.SessionShortBreak:
		return successStyle
	case store.SessionLongBreak:
		return highlightStyle
	}
	return accentStyle
}

func (p pomodoroModel) view() string {
	w := p.width - 4

	if p.formActive && p.form != nil {
		title := titleStyle.Render(phaseNames[p.phase])
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View()),
		)
	}

	title := titleStyle.Render("Pomodoro Timer")
	style := p.phaseStyle().Bold(true)

	var timeDisplay, phaseLabel string
	switch {
	case p.clock.paused():
		timeDisplay = timerPausedStyle.Width(w - 6).Render(formatPomodoroTime(p.clock.remaining()))
		phaseLabel = warningStyle.Render("⏸  " + phaseNames[p.phase])
	case p.clock.running():
		timeDisplay = style.Width(w - 6).Align(lipgloss.Center).Render(formatPomodoroTime(p.clock.remaining()))
		phaseLabel = style.Render(phaseNames[p.phase])
	default:
		timeDisplay = timerStyle.Width(w - 6).Render(formatPomodoroTime(p.plannedFor(p.phase)))
		phaseLabel = mutedStyle.Render("Next: " + phaseNames[p.phase])
	}

	lines := []string{title, "", timeDisplay, phaseLabel}
	if p.breakActivity != "" && p.clock.running() {
		lines = append(lines, mutedStyle.Render("Activity: "+p.breakActivity))
	}
	lines = append(lines, "", p.renderProgress())
	if p.settings.ShowCyclePreview {
		lines = append(lines, p.renderCyclePreview())
	}

	var controls string
	if p.clock.running() {
		controls = mutedStyle.Render("space: pause/resume  n: skip  x: abandon")
	} else {
		controls = mutedStyle.Render("s: start  n: skip to next phase")
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, append(lines, "", controls)...),
	)
}

func (p pomodoroModel) renderProgress() string {
	target := p.settings.SessionsBeforeLongBreak
	var parts []string
	for i := 0; i < target; i++ {
		switch {
		case i < p.completedCount:
			parts = append(parts, successStyle.Render("●"))
		case i == p.completedCount && p.phase == store.SessionPomodoro && p.clock.running():
			parts = append(parts, accentStyle.Render("◐"))
		default:
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	progress := strings.Join(parts, " ")
	counter := mutedStyle.Render(fmt.Sprintf("  %d/%d", p.completedCount, target))
	return progress + counter
}

// renderCyclePreview lists the phases still ahead until the next long break.
func (p pomodoroModel) renderCyclePreview() string {
	var steps []string
	q := p
	q.clock.state = timerStopped
	for i := 0; i < 2*p.settings.SessionsBeforeLongBreak && len(steps) < 8; i++ {
		steps = append(steps, sessionLabel(q.phase))
		if q.phase == store.SessionLongBreak {
			break
		}
		if q.phase == store.SessionPomodoro {
			q.completedCount++
		}
		q.phase = q.nextPhase()
	}
	return mutedStyle.Render(strings.Join(steps, " → "))
}

func formatPomodoroTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}
