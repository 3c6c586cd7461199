package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/liftr/internal/store"
)

type profileModel struct {
	store  *store.Store
	width  int
	height int

	profile store.Profile
	total   int
	last    *store.WorkoutRecord
	editing bool
	form    *huh.Form
	loaded  bool

	// Form values as pointers (survive value copies)
	name   *string
	age    *string
	gender *string
	unit   *string
	goal   *string
}

func newProfileModel(s *store.Store) profileModel {
	name, age, gender, unit, goal := "", "", "", "", ""
	return profileModel{
		store:  s,
		name:   &name,
		age:    &age,
		gender: &gender,
		unit:   &unit,
		goal:   &goal,
	}
}

func (p *profileModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p profileModel) formActive() bool {
	return p.editing && p.form != nil
}

type profileDataMsg struct {
	profile store.Profile
	total   int
	last    *store.WorkoutRecord
	err     error
}

func (p profileModel) refresh() tea.Cmd {
	return func() tea.Msg {
		profile, err := p.store.GetProfile()
		if err != nil {
			return profileDataMsg{err: err}
		}
		workouts, err := p.store.ListWorkouts(store.WorkoutFilter{})
		if err != nil {
			return profileDataMsg{err: err}
		}
		msg := profileDataMsg{profile: profile, total: len(workouts)}
		if len(workouts) > 0 {
			msg.last = &workouts[0]
		}
		return msg
	}
}

func (p profileModel) update(msg tea.Msg) (profileModel, tea.Cmd) {
	if p.formActive() {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case profileDataMsg:
		if msg.err != nil {
			return p, errorCmd("Load profile: %v", msg.err)
		}
		p.profile = msg.profile
		p.total = msg.total
		p.last = msg.last
		p.loaded = true
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return p.showForm()
		}
	}
	return p, nil
}

func (p profileModel) showForm() (profileModel, tea.Cmd) {
	*p.name = p.profile.Name
	*p.age = p.profile.Age
	*p.gender = p.profile.Gender
	*p.unit = p.profile.Unit
	*p.goal = strconv.Itoa(max(1, p.profile.WeeklyGoal))

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(p.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().Title("Age").Placeholder("optional").Value(p.age).
				Validate(validateAge),
			huh.NewSelect[string]().Title("Gender").
				Options(
					huh.NewOption("Prefer not to say", ""),
					huh.NewOption("Female", "female"),
					huh.NewOption("Male", "male"),
					huh.NewOption("Other", "other"),
				).Value(p.gender),
		).Title("About You"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Weight unit").
				Options(
					huh.NewOption("Kilograms (kg)", store.UnitKg),
					huh.NewOption("Pounds (lbs)", store.UnitLbs),
				).Value(p.unit),
			huh.NewInput().Title("Workouts per week goal").Value(p.goal).
				Validate(validateGoal),
		).Title("Training"),
	).WithShowHelp(true).WithShowErrors(true)

	p.editing = true
	return p, p.form.Init()
}

func validateAge(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > 120 {
		return fmt.Errorf("enter an age between 1 and 120")
	}
	return nil
}

func validateGoal(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 14 {
		return fmt.Errorf("enter a goal between 1 and 14")
	}
	return nil
}

func (p profileModel) updateForm(msg tea.Msg) (profileModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		p.editing = false
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
	p.editing = false
	p.form = nil
	return p, p.save()
}

func (p profileModel) save() tea.Cmd {
	goal, _ := strconv.Atoi(strings.TrimSpace(*p.goal))
	profile := store.Profile{
		Name:       *p.name,
		Age:        strings.TrimSpace(*p.age),
		Gender:     *p.gender,
		Unit:       *p.unit,
		WeeklyGoal: goal,
	}
	return func() tea.Msg {
		if err := p.store.SaveProfile(profile); err != nil {
			return statusMsg{text: fmt.Sprintf("Save profile: %v", err), isError: true}
		}
		profile.Name = strings.TrimSpace(profile.Name)
		return profileSavedMsg{profile: profile}
	}
}

func (p profileModel) view() string {
	w := p.width - 4

	if p.formActive() {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Edit Profile"), "", p.form.View()),
		)
	}

	rows := []string{titleStyle.Render("Profile"), ""}
	if !p.loaded {
		rows = append(rows, mutedStyle.Render("Loading..."))
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	field := func(label, value string) string {
		if value == "" {
			value = mutedStyle.Render("not set")
		} else {
			value = highlightStyle.Render(value)
		}
		return fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(20).Render(label), value)
	}

	rows = append(rows,
		field("Name", p.profile.Name),
		field("Age", p.profile.Age),
		field("Gender", p.profile.Gender),
		field("Weight unit", p.profile.Unit),
		field("Weekly goal", fmt.Sprintf("%d workouts", p.profile.WeeklyGoal)),
		"",
		field("Workouts logged", strconv.Itoa(p.total)),
	)
	if p.last != nil {
		rows = append(rows, field("Last workout", p.last.FinishedAt.Local().Format("Mon Jan 02 15:04")))
	}
	rows = append(rows, "", mutedStyle.Render("Press enter to edit your profile"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
