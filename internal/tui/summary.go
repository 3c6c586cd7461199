package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/liftr/internal/store"
	"github.com/sadopc/liftr/internal/workout"
)

type summaryModel struct {
	width  int
	height int
	unit   string

	record  *store.WorkoutRecord
	saveErr error
}

func newSummaryModel(unit string) summaryModel {
	return summaryModel{unit: unit}
}

func (s *summaryModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s summaryModel) update(msg tea.Msg) (summaryModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || s.record == nil {
		return s, nil
	}
	switch {
	case key.Matches(km, keys.Enter), key.Matches(km, keys.Back):
		return s, navigate(viewHome, stageCatalog)
	case key.Matches(km, keys.Repeat):
		plan := s.record.RepeatPlan()
		return s, func() tea.Msg { return planReadyMsg{plan: plan} }
	}
	return s, nil
}

func (s summaryModel) view() string {
	w := s.width - 4
	if s.record == nil {
		return panelStyle.Width(w).Render(mutedStyle.Render("No workout finished yet"))
	}
	r := s.record

	title := successStyle.Bold(true).Render("Workout Complete!")
	if r.Partial {
		title = warningStyle.Bold(true).Render("Workout Finished Early")
	}

	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		s.stat("Duration", workout.FormatElapsed(r.ElapsedSeconds)),
		s.stat("Exercises", fmt.Sprint(r.ExerciseCount())),
		s.stat("Sets", fmt.Sprint(r.TotalSets())),
		s.stat("Volume", formatVolume(r.TotalVolume(), s.unit)),
	)

	var rows []string
	rows = append(rows, title, "", stats, "")
	if len(r.Exercises) == 0 {
		rows = append(rows, mutedStyle.Render("No sets were completed."))
	}
	for _, ex := range r.Exercises {
		tracked := ex.Exercise.NeedsWeightTracking()
		rows = append(rows, titleStyle.Render(ex.Exercise.Name)+
			mutedStyle.Render(fmt.Sprintf("  %d sets", len(ex.Sets))))
		var sets []string
		for _, set := range ex.Sets {
			sets = append(sets, formatSet(set, tracked, s.unit))
		}
		rows = append(rows, "  "+strings.Join(sets, mutedStyle.Render("  ·  ")))
	}

	if s.saveErr != nil {
		rows = append(rows, "", errorStyle.Render("Not saved: "+s.saveErr.Error()))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: done  r: repeat this workout"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (s summaryModel) stat(label, value string) string {
	return lipgloss.NewStyle().Width(16).Render(
		lipgloss.JoinVertical(lipgloss.Left, highlightStyle.Bold(true).Render(value), subtitleStyle.Render(label)),
	)
}
