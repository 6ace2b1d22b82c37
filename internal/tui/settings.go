package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/pomodoro/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   store.TimerSettings
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	work          *string
	shortBreak    *string
	longBreak     *string
	sessions      *string
	sound         *bool
	breakActivity *string
	cyclePreview  *bool
}

func newSettingsModel(s *store.Store) settingsModel {
	w, sb, lb, n, a := "", "", "", "", ""
	sound, preview := false, false
	return settingsModel{
		store:         s,
		settings:      store.DefaultTimerSettings(),
		work:          &w,
		shortBreak:    &sb,
		longBreak:     &lb,
		sessions:      &n,
		sound:         &sound,
		breakActivity: &a,
		cyclePreview:  &preview,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings store.TimerSettings
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		ts, err := s.store.LoadTimerSettings(context.Background())
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return settingsDataMsg{settings: ts}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter):
			return s.showForm()
		case key.Matches(msg, keys.Reset):
			if err := s.store.ResetTimerSettings(context.Background()); err != nil {
				return s, errorCmd(err)
			}
			return s, s.saved()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.work = strconv.Itoa(s.settings.WorkDuration)
	*s.shortBreak = strconv.Itoa(s.settings.ShortBreakDuration)
	*s.longBreak = strconv.Itoa(s.settings.LongBreakDuration)
	*s.sessions = strconv.Itoa(s.settings.SessionsBeforeLongBreak)
	*s.sound = s.settings.SoundEnabled
	*s.breakActivity = s.settings.DefaultBreakActivity
	*s.cyclePreview = s.settings.ShowCyclePreview

	activities := []huh.Option[string]{huh.NewOption("Ask each break", store.BreakActivityAsk)}
	for _, a := range store.ActivityTypes {
		activities = append(activities, huh.NewOption(string(a), string(a)))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Focus (min)").Value(s.work).Validate(intInRange(1, 180)),
			huh.NewInput().Title("Short break (min)").Value(s.shortBreak).Validate(intInRange(1, 180)),
			huh.NewInput().Title("Long break (min)").Value(s.longBreak).Validate(intInRange(1, 180)),
			huh.NewInput().Title("Pomodoros before long break").Value(s.sessions).Validate(intInRange(1, 12)),
		).Title("Durations"),
		huh.NewGroup(
			huh.NewConfirm().Title("Sound on completion").Value(s.sound),
			huh.NewSelect[string]().Title("Default break activity").Options(activities...).Value(s.breakActivity),
			huh.NewConfirm().Title("Show cycle preview").Value(s.cyclePreview),
		).Title("Preferences"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		if err := s.store.SaveTimerSettings(context.Background(), s.formSettings()); err != nil {
			return s, errorCmd(err)
		}
		return s, s.saved()
	}

	return s, cmd
}

// saved reloads the stored settings and announces them to the other views.
func (s settingsModel) saved() tea.Cmd {
	return func() tea.Msg {
		ts, err := s.store.LoadTimerSettings(context.Background())
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return settingsSavedMsg{settings: ts}
	}
}

func (s settingsModel) formSettings() store.TimerSettings {
	ts := s.settings
	ts.WorkDuration, _ = strconv.Atoi(*s.work)
	ts.ShortBreakDuration, _ = strconv.Atoi(*s.shortBreak)
	ts.LongBreakDuration, _ = strconv.Atoi(*s.longBreak)
	ts.SessionsBeforeLongBreak, _ = strconv.Atoi(*s.sessions)
	ts.SoundEnabled = *s.sound
	ts.DefaultBreakActivity = *s.breakActivity
	ts.ShowCyclePreview = *s.cyclePreview
	return ts
}

func intInRange(lo, hi int) func(string) error {
	return func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("enter a whole number")
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	ts := s.settings
	rows := []string{title, ""}
	for _, row := range [][2]string{
		{"Focus", fmt.Sprintf("%d min", ts.WorkDuration)},
		{"Short break", fmt.Sprintf("%d min", ts.ShortBreakDuration)},
		{"Long break", fmt.Sprintf("%d min", ts.LongBreakDuration)},
		{"Pomodoros before long break", strconv.Itoa(ts.SessionsBeforeLongBreak)},
		{"Sound", onOff(ts.SoundEnabled)},
		{"Default break activity", ts.DefaultBreakActivity},
		{"Cycle preview", onOff(ts.ShowCyclePreview)},
	} {
		label := lipgloss.NewStyle().Width(30).Render(row[0])
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(row[1])))
	}
	if !ts.UpdatedAt.IsZero() {
		rows = append(rows, "", mutedStyle.Render("  Updated "+ts.UpdatedAt.Local().Format("Jan 02 15:04")))
	}

	rows = append(rows, "", mutedStyle.Render("enter: edit  r: reset to defaults"))
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
