package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/liftr/internal/store"
	"github.com/sadopc/liftr/internal/workout"
)

type homeModel struct {
	store  *store.Store
	width  int
	height int

	profile   store.Profile
	today     store.DailyVolume
	weekCount int
	streak    int
	lastWeek  []dayMark
	recent    []store.WorkoutRecord
}

// dayMark is one of the last seven days on the home screen.
type dayMark struct {
	day       time.Time
	workedOut bool
}

func newHomeModel(s *store.Store) homeModel {
	return homeModel{store: s}
}

func (h homeModel) Init() tea.Cmd {
	return h.loadData()
}

func (h *homeModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

type homeDataMsg struct {
	profile   store.Profile
	today     store.DailyVolume
	weekCount int
	streak    int
	lastWeek  []dayMark
	recent    []store.WorkoutRecord
	err       error
}

func (h homeModel) loadData() tea.Cmd {
	return func() tea.Msg {
		now := time.Now().UTC()
		msg := homeDataMsg{}

		var err error
		if msg.profile, err = h.store.GetProfile(); err != nil {
			return homeDataMsg{err: err}
		}
		if msg.today, err = h.store.GetTodayStats(); err != nil {
			return homeDataMsg{err: err}
		}
		week := store.WeekStart(now)
		if msg.weekCount, err = h.store.CountWorkouts(week, week.AddDate(0, 0, 7)); err != nil {
			return homeDataMsg{err: err}
		}
		if msg.streak, err = h.store.Streak(now); err != nil {
			return homeDataMsg{err: err}
		}

		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		from := today.AddDate(0, 0, -6)
		days, err := h.store.GetDailyVolume(from, today.AddDate(0, 0, 1))
		if err != nil {
			return homeDataMsg{err: err}
		}
		msg.lastWeek = markDays(from, days)

		if msg.recent, err = h.store.ListWorkouts(store.WorkoutFilter{Limit: 5}); err != nil {
			return homeDataMsg{err: err}
		}
		return msg
	}
}

// markDays lays out seven days starting at from, flagging days with workouts.
func markDays(from time.Time, days []store.DailyVolume) []dayMark {
	trained := make(map[string]bool, len(days))
	for _, d := range days {
		trained[d.Date] = d.Workouts > 0
	}
	marks := make([]dayMark, 7)
	for i := range marks {
		d := from.AddDate(0, 0, i)
		marks[i] = dayMark{day: d, workedOut: trained[d.Format("2006-01-02")]}
	}
	return marks
}

func (h homeModel) update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case homeDataMsg:
		if msg.err != nil {
			return h, errorCmd("Load dashboard: %v", msg.err)
		}
		h.profile = msg.profile
		h.today = msg.today
		h.weekCount = msg.weekCount
		h.streak = msg.streak
		h.lastWeek = msg.lastWeek
		h.recent = msg.recent
	}
	return h, nil
}

// view renders the dashboard. inProgress switches the call to action to
// resuming the running session.
func (h homeModel) view(inProgress bool) string {
	if h.width < 20 {
		return "Terminal too small"
	}
	w := h.width - 4

	return lipgloss.JoinVertical(lipgloss.Left,
		h.renderStartPanel(w, inProgress),
		h.renderWeekPanel(w),
		h.renderRecentPanel(w),
	)
}

func (h homeModel) renderStartPanel(w int, inProgress bool) string {
	name := h.profile.Name
	if name == "" {
		name = "Athlete"
	}
	greeting := titleStyle.Render("Let's get moving, " + name)

	if inProgress {
		return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			greeting,
			successStyle.Render("●  Workout in progress"),
			mutedStyle.Render("Press s or 2 to get back to it"),
		))
	}

	today := mutedStyle.Render("No workouts yet today")
	if h.today.Workouts > 0 {
		today = highlightStyle.Render(fmt.Sprintf("Today: %d workouts, %d sets, %s, %s",
			h.today.Workouts, h.today.Sets,
			formatVolume(h.today.Volume, h.profile.Unit),
			workout.FormatElapsed(h.today.TotalSeconds)))
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		greeting,
		today,
		"",
		selectedItemStyle.Render("▶  Press s to start a workout"),
	))
}

func (h homeModel) renderWeekPanel(w int) string {
	goal := max(1, h.profile.WeeklyGoal)
	title := titleStyle.Render("This Week") + "  " +
		highlightStyle.Render(fmt.Sprintf("%d/%d workouts", h.weekCount, goal))
	if h.streak > 0 {
		title += "  " + warningStyle.Render(fmt.Sprintf("🔥 %d day streak", h.streak))
	}

	bar := newProgressBar()
	bar.Width = max(10, w-10)
	ratio := float64(h.weekCount) / float64(goal)
	if ratio > 1 {
		ratio = 1
	}

	var dots, labels []string
	for _, d := range h.lastWeek {
		dot := mutedStyle.Render("○")
		if d.workedOut {
			dot = successStyle.Render("●")
		}
		dots = append(dots, fmt.Sprintf("%-5s", "  "+dot))
		labels = append(labels, fmt.Sprintf("%-5s", d.day.Format("Mon")))
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		bar.ViewAs(ratio),
		"",
		strings.Join(dots, ""),
		mutedStyle.Render(strings.Join(labels, "")),
	))
}

func (h homeModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent Activity")
	if len(h.recent) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No workouts yet"),
		))
	}

	now := time.Now()
	rows := []string{title}
	for _, r := range h.recent {
		status := successStyle.Render("✓")
		if r.Partial {
			status = warningStyle.Render("◐")
		}
		rows = append(rows, fmt.Sprintf("  %s %-12s %2d exercises  %3d sets  %10s  %s",
			status,
			relativeDay(r.FinishedAt, now),
			r.ExerciseCount(),
			r.TotalSets(),
			formatVolume(r.TotalVolume(), h.profile.Unit),
			mutedStyle.Render(workout.FormatElapsed(r.ElapsedSeconds)),
		))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
