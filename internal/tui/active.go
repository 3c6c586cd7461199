package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/liftr/internal/store"
	"github.com/sadopc/liftr/internal/workout"
)

const formFinish = "finish"

type activeModel struct {
	store       *store.Store
	log         *slog.Logger
	width       int
	height      int
	unit        string
	autoAdvance time.Duration

	session   *workout.Session
	setCursor int
	bar       progress.Model

	jumping    bool
	jumpCursor int

	form       *huh.Form
	formActive bool
	formKind   string
	editIndex  int

	// Form values as pointers (survive value copies)
	editValues    *[]workout.SetInput
	confirmFinish *bool
}

func newActiveModel(s *store.Store, log *slog.Logger, unit string, autoAdvance time.Duration) activeModel {
	var values []workout.SetInput
	confirm := false
	return activeModel{
		store:         s,
		log:           log,
		unit:          unit,
		autoAdvance:   autoAdvance,
		bar:           newProgressBar(),
		editValues:    &values,
		confirmFinish: &confirm,
	}
}

func (a *activeModel) setSize(w, h int) {
	a.width = w
	a.height = h
	a.bar.Width = max(10, w-30)
}

func (a activeModel) running() bool {
	return a.session != nil && !a.session.Finished()
}

func (a activeModel) inputActive() bool {
	return a.formActive || a.jumping
}

func (a activeModel) start(s *workout.Session) activeModel {
	a.session = s
	a.setCursor = 0
	a.jumping = false
	a.formActive = false
	a.form = nil
	return a
}

func (a *activeModel) tick() {
	if a.session != nil {
		a.session.Tick()
	}
}

// resetSetCursor points at the first incomplete set of the current exercise.
func (a *activeModel) resetSetCursor() {
	if i := a.session.CurrentSetIndex(); i != workout.NoSet {
		a.setCursor = i
		return
	}
	a.setCursor = 0
}

func (a activeModel) update(msg tea.Msg) (activeModel, tea.Cmd) {
	if a.session == nil {
		return a, nil
	}
	if msg, ok := msg.(advanceMsg); ok {
		if a.session.ApplyAdvance(msg.adv) {
			a.resetSetCursor()
			return a, statusCmd("Next up: " + a.session.Current().Exercise.Name)
		}
		return a, nil
	}
	if a.formActive && a.form != nil {
		return a.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.jumping {
			return a.updateJump(msg)
		}
		if a.session.Finished() {
			return a, nil
		}

		switch {
		case key.Matches(msg, keys.Up):
			if a.setCursor > 0 {
				a.setCursor--
			}
		case key.Matches(msg, keys.Down):
			if a.setCursor < len(a.session.Current().Sets)-1 {
				a.setCursor++
			}
		case key.Matches(msg, keys.Complete):
			return a.completeSet()
		case key.Matches(msg, keys.Pause):
			a.session.TogglePause()
			if a.session.Paused() {
				return a, statusCmd("Paused")
			}
			return a, statusCmd("Resumed")
		case key.Matches(msg, keys.Next):
			if a.session.AdvanceToNextExercise() {
				a.resetSetCursor()
			}
		case key.Matches(msg, keys.Jump):
			a.jumping = true
			a.jumpCursor = a.session.CurrentIndex()
		case key.Matches(msg, keys.Edit):
			return a.showEditForm()
		case key.Matches(msg, keys.Finish):
			if a.session.IsComplete() {
				return a.finish(false)
			}
			return a.showFinishForm()
		}
	}
	return a, nil
}

func (a activeModel) completeSet() (activeModel, tea.Cmd) {
	target := a.setCursor
	if sets := a.session.Current().Sets; target >= len(sets) || sets[target].Completed {
		target = a.session.CurrentSetIndex()
	}
	if target == workout.NoSet {
		return a, statusCmd("All sets of this exercise are done")
	}

	adv, err := a.session.CompleteSet(target)
	if err != nil {
		return a, errorCmd("Error: %v", err)
	}
	a.resetSetCursor()

	var cmds []tea.Cmd
	if adv.Due() {
		cmds = append(cmds, a.scheduleAdvance(adv))
	}
	if a.session.IsComplete() {
		cmds = append(cmds, statusCmd("All sets complete! Press f to finish"))
	}
	return a, tea.Batch(cmds...)
}

// scheduleAdvance delivers the pending advance after the configured delay.
func (a activeModel) scheduleAdvance(adv workout.Advance) tea.Cmd {
	if a.autoAdvance <= 0 {
		return func() tea.Msg { return advanceMsg{adv: adv} }
	}
	return tea.Tick(a.autoAdvance, func(time.Time) tea.Msg {
		return advanceMsg{adv: adv}
	})
}

func (a activeModel) updateJump(msg tea.KeyMsg) (activeModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.jumpCursor > 0 {
			a.jumpCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.jumpCursor < a.session.Len()-1 {
			a.jumpCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.jumping = false
		if err := a.session.JumpToExercise(a.jumpCursor); err != nil {
			return a, errorCmd("Error: %v", err)
		}
		a.resetSetCursor()
	case key.Matches(msg, keys.Back):
		a.jumping = false
	}
	return a, nil
}

func (a activeModel) showEditForm() (activeModel, tea.Cmd) {
	ex := a.session.Current()
	values := make([]workout.SetInput, len(ex.Sets))
	for i, set := range ex.Sets {
		values[i] = set.Input()
	}
	*a.editValues = values
	a.editIndex = a.session.CurrentIndex()

	a.form = setsForm(ex, *a.editValues, a.unit)
	a.formKind = formEditSets
	a.formActive = true
	return a, a.form.Init()
}

func (a activeModel) showFinishForm() (activeModel, tea.Cmd) {
	*a.confirmFinish = false
	desc := fmt.Sprintf("%d of %d sets done. Only completed sets will be saved.",
		a.session.CompletedSets(), a.session.TotalSets())
	a.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Finish workout early?").
				Description(desc).
				Affirmative("Finish").
				Negative("Keep going").
				Value(a.confirmFinish),
		),
	)
	a.formKind = formFinish
	a.formActive = true
	return a, a.form.Init()
}

func (a activeModel) updateForm(msg tea.Msg) (activeModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		a.formActive = false
		a.form = nil
		return a, nil
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State != huh.StateCompleted {
		return a, cmd
	}
	a.formActive = false
	a.form = nil

	switch a.formKind {
	case formEditSets:
		if err := a.session.EditSets(a.editIndex, *a.editValues); err != nil {
			return a, errorCmd("Error: %v", err)
		}
	case formFinish:
		if *a.confirmFinish {
			return a.finish(true)
		}
	}
	return a, nil
}

// finish ends the session and saves the completed workout.
func (a activeModel) finish(allowPartial bool) (activeModel, tea.Cmd) {
	cw, err := a.session.Finish(allowPartial)
	if err != nil {
		return a, errorCmd("Cannot finish: %v", err)
	}
	a.log.Info("workout finished", "exercises", cw.ExerciseCount(), "sets", cw.TotalSets(), "elapsed", cw.ElapsedSeconds, "partial", cw.Partial)

	return a, func() tea.Msg {
		rec, err := a.store.SaveWorkout(cw)
		if err != nil {
			a.log.Error("save workout", "err", err)
			return workoutSavedMsg{record: &store.WorkoutRecord{CompletedWorkout: *cw}, err: err}
		}
		return workoutSavedMsg{record: rec}
	}
}

func (a activeModel) view() string {
	w := a.width - 4
	if a.session == nil {
		return panelStyle.Width(w).Render(mutedStyle.Render("No workout in progress"))
	}

	if a.formActive && a.form != nil {
		title := "Edit Sets"
		if a.formKind == formFinish {
			title = "Finish Workout"
		}
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", a.form.View()),
		)
	}

	top := a.renderClock(w)
	var body string
	if a.jumping {
		body = a.renderJump(w)
	} else {
		body = a.renderCurrent(w)
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, body)
}

func (a activeModel) renderClock(w int) string {
	clock := workout.FormatClock(a.session.Elapsed())
	var clockView, state string
	if a.session.Paused() {
		clockView = clockPausedStyle.Render(clock)
		state = warningStyle.Render("⏸  PAUSED")
	} else {
		clockView = clockStyle.Render(clock)
		state = successStyle.Render("●  ACTIVE")
	}

	done, total := a.session.CompletedSets(), a.session.TotalSets()
	bar := a.bar.ViewAs(a.session.Progress())
	counts := mutedStyle.Render(fmt.Sprintf(" %d/%d sets", done, total))
	started := mutedStyle.Render("started " + a.session.StartedAt().Local().Format("15:04"))

	content := lipgloss.JoinVertical(lipgloss.Left,
		clockView+"  "+state+"  "+started,
		"",
		bar+counts,
	)
	return activePanelStyle.Width(w).Render(content)
}

func (a activeModel) renderCurrent(w int) string {
	idx := a.session.CurrentIndex()
	ex := a.session.Current()
	tracked := ex.Exercise.NeedsWeightTracking()

	title := titleStyle.Render(ex.Exercise.Name) + "  " +
		mutedStyle.Render(fmt.Sprintf("exercise %d of %d", idx+1, a.session.Len()))
	tags := tagStyle.Render(ex.Exercise.MuscleLabel() + " · " + ex.Exercise.EquipmentLabel())

	var rows []string
	rows = append(rows, title, tags, "")
	current := a.session.CurrentSetIndex()
	for i, set := range ex.Sets {
		cursor := "  "
		if i == a.setCursor {
			cursor = "> "
		}
		label := fmt.Sprintf("Set %d  %s", i+1, formatSet(set, tracked, a.unit))
		switch {
		case set.Completed:
			rows = append(rows, cursor+successStyle.Render("✓ ")+doneItemStyle.Render(label))
		case i == current:
			rows = append(rows, cursor+highlightStyle.Render("◐ ")+selectedItemStyle.Render(label))
		default:
			rows = append(rows, cursor+mutedStyle.Render("○ ")+normalItemStyle.Render(label))
		}
	}

	if next := idx + 1; next < a.session.Len() {
		rows = append(rows, "", mutedStyle.Render("Up next: ")+a.session.Exercises()[next].Exercise.Name)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: complete set  space: pause  n: next  g: go to  e: edit  f: finish"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (a activeModel) renderJump(w int) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Go To Exercise"), "")
	for i, ex := range a.session.Exercises() {
		cursor := "  "
		style := normalItemStyle
		if i == a.jumpCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		mark := mutedStyle.Render("○")
		if ex.AllCompleted() {
			mark = successStyle.Render("✓")
		} else if i == a.session.CurrentIndex() {
			mark = highlightStyle.Render("◐")
		}
		count := mutedStyle.Render(fmt.Sprintf("  %d/%d", ex.CompletedSets(), len(ex.Sets)))
		rows = append(rows, fmt.Sprintf("%s%s %s%s", cursor, mark, style.Render(ex.Exercise.Name), count))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: go  esc: cancel"))
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
