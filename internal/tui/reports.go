package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/pomodoro/internal/store"
)

const reportDays = 7

type reportsModel struct {
	store  *store.Store
	width  int
	height int

	offset   int // 7-day blocks back from today (0 = current)
	days     []store.DailyStats
	settings store.TimerSettings
	byConfig store.SettingsStats

	chart barchart.Model
}

func newReportsModel(s *store.Store) reportsModel {
	return reportsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type reportsDataMsg struct {
	days     []store.DailyStats
	settings store.TimerSettings
	byConfig store.SettingsStats
}

func (r reportsModel) refresh() tea.Cmd {
	from, to := r.dateRange(time.Now())
	return func() tea.Msg {
		ctx := context.Background()
		days, _ := r.store.DailyStatsRange(ctx, from.Format("2006-01-02"), to.Format("2006-01-02"))
		settings, err := r.store.LoadTimerSettings(ctx)
		if err != nil {
			settings = store.DefaultTimerSettings()
		}
		byConfig, _ := r.store.StatsForSettings(ctx, settings.Snapshot())
		return reportsDataMsg{days: days, settings: settings, byConfig: byConfig}
	}
}

// dateRange returns the first and last day (inclusive) of the window.
func (r reportsModel) dateRange(now time.Time) (time.Time, time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := today.AddDate(0, 0, -reportDays*r.offset)
	return end.AddDate(0, 0, 1-reportDays), end
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.days = msg.days
		r.settings = msg.settings
		r.byConfig = msg.byConfig
		r.buildChart(time.Now())
		return r, nil

	case sessionRecordedMsg:
		return r, r.refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			return r, r.refresh()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			return r, r.refresh()
		}
	}
	return r, nil
}

func (r *reportsModel) buildChart(now time.Time) {
	chartWidth := max(r.width-8, 20)
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	byDate := make(map[string]store.DailyStats, len(r.days))
	for _, d := range r.days {
		byDate[d.Date] = d
	}

	from, to := r.dateRange(now)
	var bars []barchart.BarData
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		stats := byDate[d.Format("2006-01-02")]
		bars = append(bars, barchart.BarData{
			Label: d.Format("Mon 02"),
			Values: []barchart.BarValue{
				{Name: "Focus", Value: float64(stats.TotalWorkTime) / 60, Style: lipgloss.NewStyle().Foreground(colorAccent)},
				{Name: "Break", Value: float64(stats.TotalBreakTime) / 60, Style: lipgloss.NewStyle().Foreground(colorSecondary)},
			},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	from, to := r.dateRange(time.Now())
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s - %s", from.Format("Jan 02"), to.Format("Jan 02, 2006")))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, titleStyle.Render("Reports"), "  ", dateLabel)

	legend := fmt.Sprintf("  %s focus min  %s break min",
		lipgloss.NewStyle().Foreground(colorAccent).Render("●"),
		lipgloss.NewStyle().Foreground(colorSecondary).Render("●"))

	nav := mutedStyle.Render("  ←/→: previous/next week")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", r.chart.View(), "", legend, "",
			r.renderSummaryTable(w), "", r.renderSettingsStats(), "", nav,
		),
	)
}

func (r reportsModel) renderSummaryTable(w int) string {
	if len(r.days) == 0 {
		return mutedStyle.Render("  No data for this period")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %9s %9s %10s %6s", "Date", "Pomodoros", "Focus", "Completion", "Score")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 52))))

	for _, d := range r.days {
		streak := " "
		if d.IsStreakDay {
			streak = successStyle.Render("●")
		}
		rows = append(rows, fmt.Sprintf("  %-12s %9d %9s %9.0f%% %6.0f %s",
			d.Date, d.WorkSessionsCompleted, formatSeconds(d.TotalWorkTime), d.CompletionRate, d.FocusScore, streak))
	}
	return strings.Join(rows, "\n")
}

func (r reportsModel) renderSettingsStats() string {
	s := r.settings
	title := fmt.Sprintf("  With %d/%d/%d min × %d:", s.WorkDuration, s.ShortBreakDuration, s.LongBreakDuration, s.SessionsBeforeLongBreak)
	if r.byConfig.TotalSessions == 0 {
		return mutedStyle.Render(title + " no sessions yet")
	}
	return mutedStyle.Render(title) + fmt.Sprintf(" %d sessions, %d completed (%.0f%%), %s focused",
		r.byConfig.TotalSessions, r.byConfig.CompletedSessions, r.byConfig.AverageCompletionRate,
		formatHours(r.byConfig.TotalWorkTime))
}
