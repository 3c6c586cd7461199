package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/liftr/internal/catalog"
	"github.com/sadopc/liftr/internal/store"
	"github.com/sadopc/liftr/internal/workout"
)

type catalogModel struct {
	store  *store.Store
	width  int
	height int

	search    textinput.Model
	searching bool
	results   []catalog.Exercise
	cursor    int
	selected  map[string]bool

	// Filter form values as pointers (survive value copies)
	filterMuscles   *[]catalog.MuscleGroup
	filterEquipment *[]catalog.Equipment
	form            *huh.Form
	formActive      bool

	templates  []workout.Template
	picking    bool
	pickCursor int
}

func newCatalogModel(s *store.Store) catalogModel {
	ti := textinput.New()
	ti.Placeholder = "search exercises"
	ti.Prompt = "/ "
	ti.CharLimit = 40

	var muscles []catalog.MuscleGroup
	var equipment []catalog.Equipment
	c := catalogModel{
		store:           s,
		search:          ti,
		selected:        map[string]bool{},
		filterMuscles:   &muscles,
		filterEquipment: &equipment,
	}
	c.applyFilter()
	return c
}

func (c *catalogModel) setSize(w, h int) {
	c.width = w
	c.height = h
	c.search.Width = max(10, w-12)
}

// inputActive reports whether keys should go to the catalog rather than the app.
func (c catalogModel) inputActive() bool {
	return c.searching || c.formActive || c.picking
}

func (c catalogModel) filter() catalog.Filter {
	return catalog.Filter{
		Query:     c.search.Value(),
		Muscles:   *c.filterMuscles,
		Equipment: *c.filterEquipment,
	}
}

func (c *catalogModel) applyFilter() {
	c.results = catalog.Search(c.filter())
	c.cursor = clamp(c.cursor, 0, max(0, len(c.results)-1))
}

// reset clears the selection, search and filters for a new workout.
func (c *catalogModel) reset() {
	c.selected = map[string]bool{}
	c.search.SetValue("")
	*c.filterMuscles = nil
	*c.filterEquipment = nil
	c.cursor = 0
	c.applyFilter()
}

// selection returns the selected exercises in catalog order.
func (c catalogModel) selection() []catalog.Exercise {
	var out []catalog.Exercise
	for _, e := range catalog.All() {
		if c.selected[e.ID] {
			out = append(out, e)
		}
	}
	return out
}

type templatesDataMsg struct {
	templates []workout.Template
}

func (c catalogModel) refresh() tea.Cmd {
	return func() tea.Msg {
		templates, err := c.store.ListTemplates()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load templates: %v", err), isError: true}
		}
		return templatesDataMsg{templates: templates}
	}
}

func (c catalogModel) repeatLast() tea.Cmd {
	return func() tea.Msg {
		last, err := c.store.LastWorkout()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load last workout: %v", err), isError: true}
		}
		if last == nil {
			return statusMsg{text: "No previous workout to repeat", isError: true}
		}
		return planReadyMsg{plan: last.RepeatPlan()}
	}
}

func (c catalogModel) update(msg tea.Msg) (catalogModel, tea.Cmd) {
	if c.formActive && c.form != nil {
		return c.updateForm(msg)
	}

	switch msg := msg.(type) {
	case templatesDataMsg:
		c.templates = msg.templates
		return c, nil

	case tea.KeyMsg:
		if c.searching {
			return c.updateSearch(msg)
		}
		if c.picking {
			return c.updatePicker(msg)
		}

		switch {
		case key.Matches(msg, keys.Up):
			if c.cursor > 0 {
				c.cursor--
			}
		case key.Matches(msg, keys.Down):
			if c.cursor < len(c.results)-1 {
				c.cursor++
			}
		case key.Matches(msg, keys.Select):
			if len(c.results) > 0 {
				id := c.results[c.cursor].ID
				if c.selected[id] {
					delete(c.selected, id)
				} else {
					c.selected[id] = true
				}
			}
		case key.Matches(msg, keys.Search):
			c.searching = true
			return c, c.search.Focus()
		case key.Matches(msg, keys.Filter):
			return c.showFilterForm()
		case key.Matches(msg, keys.Template):
			if len(c.templates) == 0 {
				return c, errorCmd("No saved templates yet")
			}
			c.picking = true
			c.pickCursor = 0
		case key.Matches(msg, keys.Repeat):
			return c, c.repeatLast()
		case key.Matches(msg, keys.Back):
			c.search.SetValue("")
			*c.filterMuscles = nil
			*c.filterEquipment = nil
			c.applyFilter()
		case key.Matches(msg, keys.Enter):
			chosen := c.selection()
			if len(chosen) == 0 {
				return c, errorCmd("Select at least one exercise (space)")
			}
			plan := workout.NewPlan(chosen...)
			return c, func() tea.Msg { return planReadyMsg{plan: plan} }
		}
	}
	return c, nil
}

func (c catalogModel) updateSearch(msg tea.KeyMsg) (catalogModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		c.searching = false
		c.search.Blur()
		return c, nil
	}
	var cmd tea.Cmd
	c.search, cmd = c.search.Update(msg)
	c.applyFilter()
	return c, cmd
}

func (c catalogModel) updatePicker(msg tea.KeyMsg) (catalogModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if c.pickCursor > 0 {
			c.pickCursor--
		}
	case key.Matches(msg, keys.Down):
		if c.pickCursor < len(c.templates)-1 {
			c.pickCursor++
		}
	case key.Matches(msg, keys.Enter):
		c.picking = false
		plan := c.templates[c.pickCursor].Plan()
		return c, func() tea.Msg { return planReadyMsg{plan: plan} }
	case key.Matches(msg, keys.Back):
		c.picking = false
	}
	return c, nil
}

func (c catalogModel) showFilterForm() (catalogModel, tea.Cmd) {
	muscleOpts := make([]huh.Option[catalog.MuscleGroup], len(catalog.AllMuscleGroups))
	for i, m := range catalog.AllMuscleGroups {
		muscleOpts[i] = huh.NewOption(string(m), m)
	}
	equipOpts := make([]huh.Option[catalog.Equipment], len(catalog.AllEquipment))
	for i, e := range catalog.AllEquipment {
		equipOpts[i] = huh.NewOption(string(e), e)
	}

	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[catalog.MuscleGroup]().
				Title("Muscle groups").
				Options(muscleOpts...).
				Value(c.filterMuscles),
			huh.NewMultiSelect[catalog.Equipment]().
				Title("Equipment").
				Options(equipOpts...).
				Value(c.filterEquipment),
		),
	).WithShowHelp(true)

	c.formActive = true
	return c, c.form.Init()
}

func (c catalogModel) updateForm(msg tea.Msg) (catalogModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		c.formActive = false
		c.form = nil
		c.applyFilter()
		return c, nil
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		c.formActive = false
		c.form = nil
		c.applyFilter()
		return c, nil
	}
	return c, cmd
}

func (c catalogModel) view() string {
	w := c.width - 4

	if c.formActive && c.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Filter Exercises"), "", c.form.View()),
		)
	}
	if c.picking {
		return c.renderTemplatePicker(w)
	}

	title := titleStyle.Render("Choose Exercises")
	count := highlightStyle.Render(fmt.Sprintf("%d selected", len(c.selected)))

	var rows []string
	rows = append(rows, title+"  "+count)
	if c.searching || c.search.Value() != "" {
		rows = append(rows, c.search.View())
	}
	if f := c.filterLabel(); f != "" {
		rows = append(rows, mutedStyle.Render("filters: ")+tagStyle.Render(f))
	}
	rows = append(rows, "")

	if len(c.results) == 0 {
		rows = append(rows, mutedStyle.Render("No exercises found. Try adjusting your filters."))
	} else {
		visible := max(5, c.height-12)
		start := clamp(c.cursor-visible/2, 0, max(0, len(c.results)-visible))
		end := min(len(c.results), start+visible)
		for i := start; i < end; i++ {
			rows = append(rows, c.renderRow(i))
		}
		if end < len(c.results) || start > 0 {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %d-%d of %d", start+1, end, len(c.results))))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: select  /: search  f: filters  t: templates  r: repeat last  enter: continue  esc: clear"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (c catalogModel) renderRow(i int) string {
	e := c.results[i]
	cursor := "  "
	style := normalItemStyle
	if i == c.cursor {
		cursor = "> "
		style = selectedItemStyle
	}
	box := "[ ]"
	if c.selected[e.ID] {
		box = successStyle.Render("[✓]")
	}
	tags := tagStyle.Render(e.MuscleLabel() + " · " + e.EquipmentLabel())
	return fmt.Sprintf("%s%s %s  %s", cursor, box, style.Render(fmt.Sprintf("%-22s", e.Name)), tags)
}

func (c catalogModel) filterLabel() string {
	var parts []string
	for _, m := range *c.filterMuscles {
		parts = append(parts, string(m))
	}
	for _, e := range *c.filterEquipment {
		parts = append(parts, string(e))
	}
	return strings.Join(parts, ", ")
}

func (c catalogModel) renderTemplatePicker(w int) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Start From Template"), "")
	for i, t := range c.templates {
		cursor := "  "
		style := normalItemStyle
		if i == c.pickCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		sets := 0
		for _, ex := range t.Exercises {
			sets += len(ex.Sets)
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-24s", cursor, t.Name))+
			mutedStyle.Render(fmt.Sprintf(" %d exercises, %d sets", len(t.Exercises), sets)))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: use template  esc: cancel"))
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
