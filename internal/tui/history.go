package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/liftr/internal/store"
	"github.com/sadopc/liftr/internal/workout"
)

type historyMode int

const (
	historyDaily historyMode = iota
	historyWeekly
)

type historyModel struct {
	store  *store.Store
	width  int
	height int
	unit   string

	mode     historyMode
	offset   int // weeks or 7-day blocks back from today (0 = current)
	days     []store.DailyVolume
	workouts []store.WorkoutRecord
	cursor   int

	chart barchart.Model
}

func newHistoryModel(s *store.Store, unit string) historyModel {
	return historyModel{
		store: s,
		unit:  unit,
		chart: barchart.New(60, 12),
	}
}

func (h *historyModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

type historyDataMsg struct {
	days     []store.DailyVolume
	workouts []store.WorkoutRecord
	err      error
}

type workoutDeletedMsg struct {
	id int64
}

func (h historyModel) refresh() tea.Cmd {
	from, to := h.dateRange()
	return func() tea.Msg {
		days, err := h.store.GetDailyVolume(from, to)
		if err != nil {
			return historyDataMsg{err: err}
		}
		workouts, err := h.store.ListWorkouts(store.WorkoutFilter{From: &from, To: &to})
		if err != nil {
			return historyDataMsg{err: err}
		}
		return historyDataMsg{days: days, workouts: workouts}
	}
}

func (h historyModel) dateRange() (time.Time, time.Time) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch h.mode {
	case historyWeekly:
		start := store.WeekStart(today).AddDate(0, 0, -7*h.offset)
		return start, start.AddDate(0, 0, 7)
	default:
		end := today.AddDate(0, 0, 1-7*h.offset)
		return end.AddDate(0, 0, -7), end
	}
}

func (h historyModel) selected() (store.WorkoutRecord, bool) {
	if h.cursor < 0 || h.cursor >= len(h.workouts) {
		return store.WorkoutRecord{}, false
	}
	return h.workouts[h.cursor], true
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyDataMsg:
		if msg.err != nil {
			return h, errorCmd("Load history: %v", msg.err)
		}
		h.days = msg.days
		h.workouts = msg.workouts
		h.cursor = clamp(h.cursor, 0, max(0, len(h.workouts)-1))
		h.buildChart()
		return h, nil

	case workoutDeletedMsg:
		return h, tea.Batch(h.refresh(), statusCmd(fmt.Sprintf("Deleted workout #%d", msg.id)))

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			h.offset++
			h.cursor = 0
			return h, h.refresh()
		case key.Matches(msg, keys.Right):
			if h.offset > 0 {
				h.offset--
				h.cursor = 0
			}
			return h, h.refresh()
		case key.Matches(msg, keys.Mode):
			if h.mode == historyDaily {
				h.mode = historyWeekly
			} else {
				h.mode = historyDaily
			}
			h.offset = 0
			h.cursor = 0
			return h, h.refresh()
		case key.Matches(msg, keys.Up):
			if h.cursor > 0 {
				h.cursor--
			}
		case key.Matches(msg, keys.Down):
			if h.cursor < len(h.workouts)-1 {
				h.cursor++
			}
		case key.Matches(msg, keys.Repeat):
			if w, ok := h.selected(); ok {
				plan := w.RepeatPlan()
				return h, func() tea.Msg { return planReadyMsg{plan: plan} }
			}
		case key.Matches(msg, keys.Remove):
			if w, ok := h.selected(); ok {
				return h, h.deleteWorkout(w.ID)
			}
		}
	}
	return h, nil
}

func (h historyModel) deleteWorkout(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := h.store.DeleteWorkout(id); err != nil {
			return statusMsg{text: fmt.Sprintf("Delete workout: %v", err), isError: true}
		}
		return workoutDeletedMsg{id: id}
	}
}

func (h *historyModel) buildChart() {
	chartWidth := max(20, h.width-8)
	chartHeight := 10
	if h.height > 36 {
		chartHeight = 14
	}
	h.chart = barchart.New(chartWidth, chartHeight)

	byDate := make(map[string]store.DailyVolume, len(h.days))
	for _, d := range h.days {
		byDate[d.Date] = d
	}

	from, to := h.dateRange()
	bar := lipgloss.NewStyle().Foreground(colorPrimary)
	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		dv := byDate[d.Format("2006-01-02")]
		bars = append(bars, barchart.BarData{
			Label:  d.Format("Mon 02"),
			Values: []barchart.BarValue{{Name: "volume", Value: dv.Volume, Style: bar}},
		})
	}
	h.chart.PushAll(bars)
	h.chart.Draw()
}

func (h historyModel) view() string {
	w := h.width - 4

	dailyTab := inactiveTabStyle.Render("Daily")
	weeklyTab := inactiveTabStyle.Render("Weekly")
	if h.mode == historyDaily {
		dailyTab = activeTabStyle.Render("Daily")
	} else {
		weeklyTab = activeTabStyle.Render("Weekly")
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, dailyTab, weeklyTab)

	from, to := h.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s - %s", from.Format("Jan 02"), to.AddDate(0, 0, -1).Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("History"), "  ", modeTabs, "  ", dateLabel,
	)

	nav := mutedStyle.Render("  ←/→: navigate  m: daily/weekly  ↑/↓: select  r: repeat  x: delete")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "",
			subtitleStyle.Render("Volume ("+h.unit+")"),
			h.chart.View(), "",
			h.renderTotals(), "",
			h.renderWorkouts(w), "",
			nav,
		),
	)
}

func (h historyModel) renderTotals() string {
	var workouts, sets int
	var volume float64
	var secs int64
	for _, d := range h.days {
		workouts += d.Workouts
		sets += d.Sets
		volume += d.Volume
		secs += d.TotalSeconds
	}
	return highlightStyle.Render(fmt.Sprintf("  %d workouts  %d sets  %s  %s",
		workouts, sets, formatVolume(volume, h.unit), workout.FormatElapsed(secs)))
}

func (h historyModel) renderWorkouts(w int) string {
	if len(h.workouts) == 0 {
		return mutedStyle.Render("  No workouts in this period")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-18s %9s %5s %11s %9s", "Finished", "Exercises", "Sets", "Volume", "Duration")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 58))))

	for i, r := range h.workouts {
		cursor := "  "
		style := normalItemStyle
		if i == h.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		line := fmt.Sprintf("%-18s %9d %5d %11s %9s",
			r.FinishedAt.Local().Format("Mon Jan 02 15:04"),
			r.ExerciseCount(), r.TotalSets(),
			formatVolume(r.TotalVolume(), h.unit),
			workout.FormatElapsed(r.ElapsedSeconds),
		)
		if r.Partial {
			line += warningStyle.Render("  partial")
		}
		rows = append(rows, cursor+style.Render(line))
	}
	return strings.Join(rows, "\n")
}
