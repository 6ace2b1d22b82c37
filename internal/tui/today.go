package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/pomodoro/internal/store"
)

type todayModel struct {
	store  *store.Store
	width  int
	height int

	stats    store.DailyStats
	streak   store.StreakInfo
	allTime  store.AllTimeStats
	sessions []store.Session
}

func newTodayModel(s *store.Store) todayModel {
	return todayModel{store: s}
}

func (d todayModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *todayModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type todayDataMsg struct {
	stats    store.DailyStats
	streak   store.StreakInfo
	allTime  store.AllTimeStats
	sessions []store.Session
}

func (d todayModel) loadData() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		date := todayString()
		stats, _ := d.store.DailyStats(ctx, date)
		streak, _ := d.store.Streak(ctx)
		allTime, _ := d.store.AllTimeStats(ctx)
		sessions, _ := d.store.SessionsForDate(ctx, date)

		return todayDataMsg{
			stats:    stats,
			streak:   streak,
			allTime:  allTime,
			sessions: sessions,
		}
	}
}

func (d todayModel) update(msg tea.Msg) (todayModel, tea.Cmd) {
	switch msg := msg.(type) {
	case todayDataMsg:
		d.stats = msg.stats
		d.streak = msg.streak
		d.allTime = msg.allTime
		d.sessions = msg.sessions
		return d, nil

	case sessionRecordedMsg:
		return d, d.loadData()
	}
	return d, nil
}

func (d todayModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4
	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderStatsPanel(contentWidth),
		d.renderStreakPanel(contentWidth),
		d.renderSessionsPanel(contentWidth),
	)
}

func (d todayModel) renderStatsPanel(w int) string {
	s := d.stats
	title := titleStyle.Render("Today")
	focus := highlightStyle.Render(formatSeconds(s.TotalWorkTime))
	header := fmt.Sprintf("%s  %s focused", title, focus)

	if s.TotalSessionsStarted == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			header,
			mutedStyle.Render("No sessions today"),
		))
	}

	rows := []string{
		header,
		fmt.Sprintf("  Pomodoros   %s completed  %s skipped",
			successStyle.Render(fmt.Sprint(s.WorkSessionsCompleted)),
			warningStyle.Render(fmt.Sprint(s.WorkSessionsSkipped))),
		fmt.Sprintf("  Breaks      %d completed  %d skipped  %s total",
			s.BreakSessionsCompleted, s.BreakSessionsSkipped, formatSeconds(s.TotalBreakTime)),
		fmt.Sprintf("  Activity    %d standing  %d walking  %d stretching  %d other",
			s.StandingBreaks, s.WalkingBreaks, s.StretchingBreaks, s.OtherBreaks),
		fmt.Sprintf("  Completion  %s   Focus score  %s",
			highlightStyle.Render(fmt.Sprintf("%.0f%%", s.CompletionRate)),
			highlightStyle.Render(fmt.Sprintf("%.0f", s.FocusScore))),
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d todayModel) renderStreakPanel(w int) string {
	title := titleStyle.Render("Streak")
	current := accentStyle.Bold(true).Render(fmt.Sprintf("%d days", d.streak.CurrentStreak))
	row := fmt.Sprintf("%s  %s  %s", title, current,
		mutedStyle.Render(fmt.Sprintf("longest %d", d.streak.LongestStreak)))

	all := fmt.Sprintf("  All time: %d pomodoros, %.1fh focused, best score %d",
		d.allTime.TotalSessions, d.allTime.TotalFocusHours, d.allTime.BestFocusScore)
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, row, mutedStyle.Render(all)))
}

func (d todayModel) renderSessionsPanel(w int) string {
	title := titleStyle.Render("Sessions")
	if len(d.sessions) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("Press 1 and s to start a pomodoro"),
		))
	}

	var rows []string
	rows = append(rows, title)
	for _, s := range d.sessions {
		rows = append(rows, fmt.Sprintf("  %s %s  %-12s %s",
			statusMark(s.Status),
			s.StartedAt.Local().Format("15:04"),
			sessionLabel(s.SessionType),
			formatSeconds(s.ActualDuration),
		))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func statusMark(s store.SessionStatus) string {
	switch s {
	case store.StatusCompleted:
		return successStyle.Render("✓")
	case store.StatusSkipped:
		return warningStyle.Render("»")
	}
	return errorStyle.Render("✗")
}
