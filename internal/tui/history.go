package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/pomodoro/internal/store"
)

type historyRange int

const (
	rangeToday historyRange = iota
	rangeWeek
	rangeMonth
	rangeRecent
)

var historyRangeNames = []string{"Today", "This week", "This month", "Recent"}

const recentHistoryLimit = 50

type historyModel struct {
	store  *store.Store
	width  int
	height int

	rng     historyRange
	entries []store.HistoryEntry
	cursor  int
}

func newHistoryModel(s *store.Store) historyModel {
	return historyModel{store: s}
}

func (h *historyModel) setSize(w, height int) {
	h.width = w
	h.height = height
}

type historyDataMsg struct {
	entries []store.HistoryEntry
}

func (h historyModel) refresh() tea.Cmd {
	rng := h.rng
	return func() tea.Msg {
		entries, _ := h.load(context.Background(), rng, time.Now())
		return historyDataMsg{entries: entries}
	}
}

func (h historyModel) load(ctx context.Context, rng historyRange, now time.Time) ([]store.HistoryEntry, error) {
	switch rng {
	case rangeToday:
		return h.store.HistoryToday(ctx, now)
	case rangeWeek:
		return h.store.HistoryThisWeek(ctx, now)
	case rangeMonth:
		return h.store.HistoryThisMonth(ctx, now)
	}
	return h.store.RecentHistory(ctx, recentHistoryLimit)
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyDataMsg:
		h.entries = msg.entries
		if h.cursor >= len(h.entries) {
			h.cursor = max(0, len(h.entries)-1)
		}
		return h, nil

	case sessionRecordedMsg:
		return h, h.refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if h.cursor > 0 {
				h.cursor--
			}
		case key.Matches(msg, keys.Down):
			if h.cursor < len(h.entries)-1 {
				h.cursor++
			}
		case key.Matches(msg, keys.Filter):
			h.rng = (h.rng + 1) % historyRange(len(historyRangeNames))
			h.cursor = 0
			return h, h.refresh()
		case key.Matches(msg, keys.Delete):
			if len(h.entries) > 0 {
				id := h.entries[h.cursor].ID
				if err := h.store.DeleteHistoryEntry(context.Background(), id); err != nil {
					return h, errorCmd(err)
				}
				return h, h.refresh()
			}
		}
	}
	return h, nil
}

func (h historyModel) view() string {
	w := h.width - 4

	var tabs []string
	for i, name := range historyRangeNames {
		if historyRange(i) == h.rng {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		append([]string{titleStyle.Render("History"), "  "}, tabs...)...)

	if len(h.entries) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			mutedStyle.Render("No history for this range"),
		))
	}

	var rows []string
	rows = append(rows, header, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-17s %-12s %-14s %9s %9s %s",
		"When", "Type", "Event", "Ran", "Planned", "#")))

	// Keep the cursor row on screen.
	visible := max(h.height-10, 5)
	start := 0
	if h.cursor >= visible {
		start = h.cursor - visible + 1
	}
	end := min(len(h.entries), start+visible)

	for i := start; i < end; i++ {
		e := h.entries[i]
		cursor := "  "
		style := normalItemStyle
		if i == h.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		number := ""
		if e.SessionNumber != nil {
			number = fmt.Sprint(*e.SessionNumber)
		}
		row := fmt.Sprintf("%s%-17s %-12s %-14s %9s %9s %s",
			cursor,
			e.Timestamp.Local().Format("Jan 02 15:04"),
			sessionLabel(e.SessionType),
			string(e.EventType),
			formatSeconds(e.Duration),
			formatSeconds(e.ExpectedDuration),
			number,
		)
		activity := ""
		if e.ActivityType != nil {
			activity = mutedStyle.Render(" [" + string(*e.ActivityType) + "]")
		}
		rows = append(rows, style.Render(row)+activity)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  f: change range  d: delete  ↑/↓: move"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
