package tui

import (
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/liftr/internal/store"
	"github.com/sadopc/liftr/internal/workout"
)

// viewState represents the currently active tab.
type viewState int

const (
	viewHome viewState = iota
	viewWorkout
	viewHistory
	viewProfile
)

var viewNames = []string{"Home", "Workout", "History", "Profile"}

// workoutStage is the step of the workout flow shown in the Workout tab.
type workoutStage int

const (
	stageCatalog workoutStage = iota
	stagePrepare
	stageActive
	stageSummary
)

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// advanceMsg fires once the auto-advance delay has passed.
type advanceMsg struct {
	adv workout.Advance
}

type planReadyMsg struct {
	plan *workout.Plan
}

type sessionStartedMsg struct {
	session *workout.Session
}

// workoutSavedMsg carries the finished workout. On a failed save err is set
// and record has no ID.
type workoutSavedMsg struct {
	record *store.WorkoutRecord
	err    error
}

type templateSavedMsg struct {
	name string
}

type exportDoneMsg struct {
	path string
}

type profileSavedMsg struct {
	profile store.Profile
}

// navigateMsg switches tab and, for the Workout tab, the flow stage.
type navigateMsg struct {
	view  viewState
	stage workoutStage
}

func navigate(v viewState, s workoutStage) tea.Cmd {
	return func() tea.Msg { return navigateMsg{view: v, stage: s} }
}

// --- Helpers ---

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errorCmd(format string, args ...any) tea.Cmd {
	text := fmt.Sprintf(format, args...)
	return func() tea.Msg { return statusMsg{text: text, isError: true} }
}

// formatSet renders a set as "10 × 60kg", "10 reps" or "—" placeholders.
func formatSet(set workout.PlannedSet, tracked bool, unit string) string {
	reps := "—"
	if set.Reps != nil {
		reps = strconv.Itoa(*set.Reps)
	}
	if !tracked {
		return reps + " reps"
	}
	weight := "—"
	if set.Weight != nil {
		weight = workout.FormatWeight(set.Weight) + unit
	}
	return fmt.Sprintf("%s × %s", reps, weight)
}

// formatVolume renders a volume with thousands shortened: 850kg, 12.4k kg.
func formatVolume(v float64, unit string) string {
	if v >= 10000 {
		return fmt.Sprintf("%.1fk %s", v/1000, unit)
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + unit
}

// relativeDay renders a date as "today", "yesterday" or "N days ago".
func relativeDay(t, now time.Time) string {
	t, now = t.Local(), now.Local()
	d0 := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
	d1 := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	days := int(d1.Sub(d0).Hours() / 24)
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "yesterday"
	}
	return fmt.Sprintf("%d days ago", days)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
