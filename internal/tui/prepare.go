package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/liftr/internal/store"
	"github.com/sadopc/liftr/internal/workout"
)

const (
	formEditSets = "sets"
	formTemplate = "template"
)

type prepareModel struct {
	store  *store.Store
	width  int
	height int
	unit   string

	plan      *workout.Plan
	cursor    int // exercise
	setCursor int

	form       *huh.Form
	formActive bool
	formKind   string

	// Form values as pointers (survive value copies)
	editValues   *[]workout.SetInput
	templateName *string
}

func newPrepareModel(s *store.Store, unit string) prepareModel {
	var values []workout.SetInput
	name := ""
	return prepareModel{
		store:        s,
		unit:         unit,
		plan:         workout.NewPlan(),
		editValues:   &values,
		templateName: &name,
	}
}

func (p *prepareModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p prepareModel) load(plan *workout.Plan) prepareModel {
	p.plan = plan
	p.cursor = 0
	p.setCursor = 0
	p.formActive = false
	p.form = nil
	return p
}

func (p prepareModel) current() (workout.SessionExercise, bool) {
	exs := p.plan.Exercises()
	if p.cursor < 0 || p.cursor >= len(exs) {
		return workout.SessionExercise{}, false
	}
	return exs[p.cursor], true
}

func (p *prepareModel) clampCursors() {
	p.cursor = clamp(p.cursor, 0, max(0, p.plan.Len()-1))
	if ex, ok := p.current(); ok {
		p.setCursor = clamp(p.setCursor, 0, len(ex.Sets)-1)
	} else {
		p.setCursor = 0
	}
}

func (p prepareModel) update(msg tea.Msg) (prepareModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	var err error
	switch {
	case key.Matches(km, keys.Up):
		if p.cursor > 0 {
			p.cursor--
			p.setCursor = 0
		}
	case key.Matches(km, keys.Down):
		if p.cursor < p.plan.Len()-1 {
			p.cursor++
			p.setCursor = 0
		}
	case key.Matches(km, keys.Left):
		if p.setCursor > 0 {
			p.setCursor--
		}
	case key.Matches(km, keys.Right):
		if ex, ok := p.current(); ok && p.setCursor < len(ex.Sets)-1 {
			p.setCursor++
		}
	case key.Matches(km, keys.AddSet):
		err = p.plan.AddSet(p.cursor)
	case key.Matches(km, keys.DelSet):
		err = p.plan.RemoveSet(p.cursor, p.setCursor)
	case key.Matches(km, keys.Remove):
		err = p.plan.RemoveExercise(p.cursor)
		if err == nil && p.plan.Len() == 0 {
			return p, tea.Batch(navigate(viewWorkout, stageCatalog), statusCmd("Plan is empty, pick some exercises"))
		}
	case key.Matches(km, keys.MoveUp):
		if p.cursor > 0 {
			if err = p.plan.MoveExercise(p.cursor, p.cursor-1); err == nil {
				p.cursor--
			}
		}
	case key.Matches(km, keys.MoveDown):
		if p.cursor < p.plan.Len()-1 {
			if err = p.plan.MoveExercise(p.cursor, p.cursor+1); err == nil {
				p.cursor++
			}
		}
	case key.Matches(km, keys.Edit), key.Matches(km, keys.Enter):
		if _, ok := p.current(); ok {
			return p.showSetsForm()
		}
	case key.Matches(km, keys.Save):
		if p.plan.Len() > 0 {
			return p.showTemplateForm()
		}
	case key.Matches(km, keys.Start):
		return p, p.start()
	case key.Matches(km, keys.Back):
		return p, navigate(viewWorkout, stageCatalog)
	}
	p.clampCursors()
	if err != nil {
		return p, errorCmd("Error: %v", err)
	}
	return p, nil
}

func (p prepareModel) start() tea.Cmd {
	if !p.plan.Ready() {
		return errorCmd("Enter reps (and weight where needed) for every set first")
	}
	session, err := p.plan.Start()
	if err != nil {
		return errorCmd("Cannot start: %v", err)
	}
	return func() tea.Msg { return sessionStartedMsg{session: session} }
}

func (p prepareModel) showSetsForm() (prepareModel, tea.Cmd) {
	ex, _ := p.current()
	values := make([]workout.SetInput, len(ex.Sets))
	for i, set := range ex.Sets {
		values[i] = set.Input()
	}
	*p.editValues = values

	p.form = setsForm(ex, *p.editValues, p.unit)
	p.formKind = formEditSets
	p.formActive = true
	return p, p.form.Init()
}

// setsForm builds one reps input per set, plus a weight input for
// weight-tracked exercises. values backs the inputs.
func setsForm(ex workout.SessionExercise, values []workout.SetInput, unit string) *huh.Form {
	tracked := ex.Exercise.NeedsWeightTracking()
	var fields []huh.Field
	for i := range values {
		fields = append(fields, huh.NewInput().
			Title(fmt.Sprintf("Set %d reps", i+1)).
			Placeholder("reps").
			Value(&values[i].Reps))
		if tracked {
			fields = append(fields, huh.NewInput().
				Title(fmt.Sprintf("Set %d weight (%s)", i+1, unit)).
				Placeholder(unit).
				Value(&values[i].Weight))
		}
	}
	return huh.NewForm(huh.NewGroup(fields...).Title(ex.Exercise.Name)).WithShowHelp(true)
}

func (p prepareModel) showTemplateForm() (prepareModel, tea.Cmd) {
	*p.templateName = ""
	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Template name").
				Placeholder("Upper body power").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}).
				Value(p.templateName),
		),
	).WithShowHelp(true).WithShowErrors(true)
	p.formKind = formTemplate
	p.formActive = true
	return p, p.form.Init()
}

func (p prepareModel) updateForm(msg tea.Msg) (prepareModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		p.formActive = false
		p.form = nil
		return p, nil
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State != huh.StateCompleted {
		return p, cmd
	}
	p.formActive = false
	p.form = nil

	switch p.formKind {
	case formEditSets:
		for i, v := range *p.editValues {
			if err := p.plan.UpdateSet(p.cursor, i, v); err != nil {
				return p, errorCmd("Error: %v", err)
			}
		}
	case formTemplate:
		return p, p.saveTemplate(*p.templateName)
	}
	return p, nil
}

func (p prepareModel) saveTemplate(name string) tea.Cmd {
	tpl, err := workout.NewTemplate(name, p.plan)
	if err != nil {
		return errorCmd("Template: %v", err)
	}
	return func() tea.Msg {
		if err := p.store.SaveTemplate(tpl); err != nil {
			return statusMsg{text: fmt.Sprintf("Save template: %v", err), isError: true}
		}
		return templateSavedMsg{name: tpl.Name}
	}
}

func (p prepareModel) view() string {
	w := p.width - 4

	if p.formActive && p.form != nil {
		title := "Edit Sets"
		if p.formKind == formTemplate {
			title = "Save As Template"
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", p.form.View()),
		)
	}

	exs := p.plan.Exercises()
	sets := 0
	for _, ex := range exs {
		sets += len(ex.Sets)
	}
	header := titleStyle.Render("Prepare Workout") + "  " +
		mutedStyle.Render(fmt.Sprintf("%d exercises, %d sets", len(exs), sets))

	var rows []string
	rows = append(rows, header, "")
	for i, ex := range exs {
		rows = append(rows, p.renderExercise(i, ex))
	}

	ready := warningStyle.Render("fill in every set to start")
	if p.plan.Ready() {
		ready = successStyle.Render("ready, press s to start")
	}
	rows = append(rows, "", "  "+ready, "")
	rows = append(rows, mutedStyle.Render("  enter/e: edit sets  a/d: add/remove set  ←/→: set  K/J: reorder  x: remove  S: save template  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (p prepareModel) renderExercise(i int, ex workout.SessionExercise) string {
	cursor := "  "
	style := normalItemStyle
	if i == p.cursor {
		cursor = "> "
		style = selectedItemStyle
	}
	tracked := ex.Exercise.NeedsWeightTracking()

	var sets []string
	for j, set := range ex.Sets {
		s := formatSet(set, tracked, p.unit)
		if i == p.cursor && j == p.setCursor {
			s = highlightStyle.Underline(true).Render(s)
		}
		sets = append(sets, s)
	}
	line := fmt.Sprintf("%s%d. %s", cursor, i+1, style.Render(ex.Exercise.Name))
	return line + "\n      " + strings.Join(sets, mutedStyle.Render("  ·  "))
}
