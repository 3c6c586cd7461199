package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/liftr/internal/export"
	"github.com/sadopc/liftr/internal/store"
	"github.com/sadopc/liftr/internal/workout"
)

// Options tune the App. The zero value is usable.
type Options struct {
	// AutoAdvance is the pause between finishing an exercise's last set and
	// moving on to the next exercise. Zero advances immediately.
	AutoAdvance time.Duration
	Logger      *slog.Logger
}

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	log    *slog.Logger
	width  int
	height int
	unit   string

	activeView    viewState
	stage         workoutStage
	showHelp      bool
	exportPicking bool
	exportCursor  int

	home    homeModel
	catalog catalogModel
	prepare prepareModel
	active  activeModel
	summary summaryModel
	history historyModel
	profile profileModel

	help   help.Model
	status string
	isErr  bool
}

func NewApp(s *store.Store, opts Options) App {
	h := help.New()
	h.ShowAll = false

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	unit := store.UnitKg
	if p, err := s.GetProfile(); err == nil {
		unit = p.Unit
	} else {
		log.Warn("load profile", "err", err)
	}

	return App{
		store:      s,
		log:        log,
		unit:       unit,
		activeView: viewHome,
		stage:      stageCatalog,
		home:       newHomeModel(s),
		catalog:    newCatalogModel(s),
		prepare:    newPrepareModel(s, unit),
		active:     newActiveModel(s, log, unit, opts.AutoAdvance),
		summary:    newSummaryModel(unit),
		history:    newHistoryModel(s, unit),
		profile:    newProfileModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.home.Init(),
		a.catalog.refresh(),
		a.profile.refresh(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.home.setSize(a.width, contentHeight)
		a.catalog.setSize(a.width, contentHeight)
		a.prepare.setSize(a.width, contentHeight)
		a.active.setSize(a.width, contentHeight)
		a.summary.setSize(a.width, contentHeight)
		a.history.setSize(a.width, contentHeight)
		a.profile.setSize(a.width, contentHeight)
		if a.activeView == viewHistory {
			a.history.buildChart()
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			if a.active.running() {
				a.setStatus("Workout in progress: finish it first (ctrl+c quits anyway)", true)
				return a, nil
			}
			return a, tea.Quit
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchView(viewHome)
		case key.Matches(msg, keys.Tab2):
			return a.switchView(viewWorkout)
		case key.Matches(msg, keys.Tab3):
			return a.switchView(viewHistory)
		case key.Matches(msg, keys.Tab4):
			return a.switchView(viewProfile)
		case key.Matches(msg, keys.Tab):
			return a.switchView((a.activeView + 1) % viewState(len(viewNames)))
		case a.activeView == viewHome && key.Matches(msg, keys.Start):
			return a.switchView(viewWorkout)
		}

	case tickMsg:
		a.active.tick()
		return a, tickCmd()

	case statusMsg:
		a.setStatus(msg.text, msg.isError)
		return a, nil

	case navigateMsg:
		if a.stage == stageSummary && msg.stage != stageSummary {
			a.catalog.reset()
		}
		a.stage = msg.stage
		return a.switchView(msg.view)

	case planReadyMsg:
		if a.active.running() {
			a.setStatus("Finish the current workout before starting another", true)
			return a, nil
		}
		a.prepare = a.prepare.load(msg.plan)
		a.stage = stagePrepare
		a.activeView = viewWorkout
		return a, nil

	case sessionStartedMsg:
		a.active = a.active.start(msg.session)
		a.catalog.reset()
		a.stage = stageActive
		a.activeView = viewWorkout
		a.log.Info("session started", "exercises", msg.session.Len(), "sets", msg.session.TotalSets())
		a.setStatus("Workout started", false)
		return a, nil

	case advanceMsg:
		var cmd tea.Cmd
		a.active, cmd = a.active.update(msg)
		return a, cmd

	case workoutSavedMsg:
		a.summary.record = msg.record
		a.summary.saveErr = msg.err
		a.stage = stageSummary
		a.activeView = viewWorkout
		if msg.err != nil {
			a.setStatus("Workout could not be saved: "+msg.err.Error(), true)
			return a, nil
		}
		a.setStatus(fmt.Sprintf("Workout #%d saved", msg.record.ID), false)
		return a, tea.Batch(a.home.loadData(), a.profile.refresh())

	case templateSavedMsg:
		a.setStatus(fmt.Sprintf("Saved template %q", msg.name), false)
		return a, a.catalog.refresh()

	case profileSavedMsg:
		a.setUnit(msg.profile.Unit)
		a.setStatus("Profile saved", false)
		return a, tea.Batch(a.profile.refresh(), a.home.loadData())

	case exportDoneMsg:
		a.setStatus("Exported to "+msg.path, false)
		a.exportPicking = false
		return a, nil

	// Data messages go to their owner whatever tab is showing.
	case homeDataMsg:
		var cmd tea.Cmd
		a.home, cmd = a.home.update(msg)
		return a, cmd
	case templatesDataMsg:
		var cmd tea.Cmd
		a.catalog, cmd = a.catalog.update(msg)
		return a, cmd
	case historyDataMsg, workoutDeletedMsg:
		var cmd tea.Cmd
		a.history, cmd = a.history.update(msg)
		return a, cmd
	case profileDataMsg:
		var cmd tea.Cmd
		a.profile, cmd = a.profile.update(msg)
		return a, cmd
	}

	return a.updateActiveView(msg)
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.isErr = isErr
}

// setUnit changes the display unit everywhere it is rendered.
func (a *App) setUnit(unit string) {
	a.unit = unit
	a.prepare.unit = unit
	a.active.unit = unit
	a.summary.unit = unit
	a.history.unit = unit
}

// switchView changes tab. The Workout tab always shows a running session.
func (a App) switchView(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	if v == viewWorkout && a.active.running() {
		a.stage = stageActive
	}
	return a, a.refreshCurrentView()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewHome:
		a.home, cmd = a.home.update(msg)
	case viewWorkout:
		switch a.stage {
		case stageCatalog:
			a.catalog, cmd = a.catalog.update(msg)
		case stagePrepare:
			a.prepare, cmd = a.prepare.update(msg)
		case stageActive:
			a.active, cmd = a.active.update(msg)
		case stageSummary:
			a.summary, cmd = a.summary.update(msg)
		}
	case viewHistory:
		a.history, cmd = a.history.update(msg)
	case viewProfile:
		a.profile, cmd = a.profile.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewWorkout:
		switch a.stage {
		case stageCatalog:
			return a.catalog.inputActive()
		case stagePrepare:
			return a.prepare.formActive
		case stageActive:
			return a.active.inputActive()
		}
	case viewProfile:
		return a.profile.formActive()
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewHome:
		return a.home.loadData()
	case viewWorkout:
		if a.stage == stageCatalog {
			return a.catalog.refresh()
		}
	case viewHistory:
		return a.history.refresh()
	case viewProfile:
		return a.profile.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewHome:
		content = a.home.view(a.active.running())
	case viewWorkout:
		switch a.stage {
		case stageCatalog:
			content = a.catalog.view()
		case stagePrepare:
			content = a.prepare.view()
		case stageActive:
			content = a.active.view()
		case stageSummary:
			content = a.summary.view()
		}
	case viewHistory:
		content = a.history.view()
	case viewProfile:
		content = a.profile.view()
	}

	contentHeight := max(1, a.height-lipgloss.Height(header)-lipgloss.Height(footer))

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("liftr")
	gap := max(1, a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.isErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	// Session clock in footer
	clock := ""
	if a.active.running() {
		s := a.active.session
		elapsed := workout.FormatClock(s.Elapsed())
		clock = successStyle.Render(fmt.Sprintf(" ● %s  %d/%d sets", elapsed, s.CompletedSets(), s.TotalSets()))
		if s.Paused() {
			clock = warningStyle.Render(" ⏸ " + elapsed)
		}
	}

	left := footerStyle.Render(helpView)
	right := clock + status

	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	rows := []string{titleStyle.Render("Export Workouts"), ""}
	for i, f := range export.Formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+strings.ToUpper(string(f))))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(export.Formats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(export.Formats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(f export.Format) tea.Cmd {
	unit := a.unit
	return func() tea.Msg {
		records, err := a.store.ListWorkouts(store.WorkoutFilter{})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		path := export.DefaultPath(f, time.Now())
		if err := export.Write(f, records, unit, path); err != nil {
			return statusMsg{text: fmt.Sprintf("%s export error: %v", strings.ToUpper(string(f)), err), isError: true}
		}
		a.log.Info("exported workouts", "format", f, "count", len(records), "path", path)
		return exportDoneMsg{path: path}
	}
}
