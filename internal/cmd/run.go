package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/liftr/internal/logging"
	"github.com/sadopc/liftr/internal/tui"
)

// RunCmd starts the TUI application
type RunCmd struct {
	AutoAdvance int `help:"Milliseconds before moving to the next exercise (-1 = use config)" default:"-1"`
}

// Run executes the TUI
func (r *RunCmd) Run(cli *CLI) error {
	if r.AutoAdvance >= 0 {
		if err := cli.cfg.SetAutoAdvanceMS(r.AutoAdvance); err != nil {
			return fmt.Errorf("--auto-advance: %w", err)
		}
	}
	autoAdvance := cli.cfg.AutoAdvance()

	s, err := cli.openStore()
	if err != nil {
		return err
	}

	logging.Logger.Info("starting liftr TUI", "auto_advance", autoAdvance)
	app := tui.NewApp(s, tui.Options{
		AutoAdvance: autoAdvance,
		Logger:      logging.Logger,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logging.Logger.Error("TUI exited with error", "error", err)
		return err
	}
	logging.Logger.Info("liftr TUI exited")
	return nil
}
