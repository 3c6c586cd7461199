package cmd

import (
	"fmt"
	"time"

	"github.com/sadopc/liftr/internal/export"
	"github.com/sadopc/liftr/internal/logging"
	"github.com/sadopc/liftr/internal/store"
)

// ExportCmd writes every stored workout to a file
type ExportCmd struct {
	Format string `help:"Output format" short:"f" default:"csv" enum:"csv,json"`
	Out    string `help:"Output path (default: ~/liftr-export-<date>.<format>)" short:"o" type:"path"`
}

// Run executes the export command
func (e *ExportCmd) Run(cli *CLI) error {
	f, err := export.ParseFormat(e.Format)
	if err != nil {
		return err
	}
	s, err := cli.openStore()
	if err != nil {
		return err
	}
	records, err := s.ListWorkouts(store.WorkoutFilter{})
	if err != nil {
		return fmt.Errorf("failed to list workouts: %w", err)
	}
	profile, err := s.GetProfile()
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	path := e.Out
	if path == "" {
		path = export.DefaultPath(f, time.Now())
	}
	if err := export.Write(f, records, profile.Unit, path); err != nil {
		return fmt.Errorf("export %s: %w", f, err)
	}
	logging.Logger.Info("exported workouts", "format", f, "count", len(records), "path", path)
	fmt.Fprintf(cli.stdout(), "Exported %d workouts to %s\n", len(records), path)
	return nil
}
