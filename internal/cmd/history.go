package cmd

import (
	"fmt"
	"strings"

	"github.com/sadopc/liftr/internal/store"
	"github.com/sadopc/liftr/internal/workout"
)

// HistoryCmd lists finished workouts, newest first
type HistoryCmd struct {
	Limit int `help:"Maximum number of workouts to show (0 = all)" short:"n" default:"10"`
}

// Run executes the history command
func (h *HistoryCmd) Run(cli *CLI) error {
	if h.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	s, err := cli.openStore()
	if err != nil {
		return err
	}
	records, err := s.ListWorkouts(store.WorkoutFilter{Limit: h.Limit})
	if err != nil {
		return fmt.Errorf("failed to list workouts: %w", err)
	}
	profile, err := s.GetProfile()
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	w := cli.stdout()
	if len(records) == 0 {
		fmt.Fprintln(w, "No workouts yet.")
		return nil
	}

	fmt.Fprintf(w, "%-5s %-17s %9s %5s %12s %9s\n", "ID", "Finished", "Exercises", "Sets", "Volume", "Duration")
	fmt.Fprintln(w, strings.Repeat("─", 62))
	for _, r := range records {
		partial := ""
		if r.Partial {
			partial = "  (partial)"
		}
		fmt.Fprintf(w, "%-5d %-17s %9d %5d %12s %9s%s\n",
			r.ID,
			r.FinishedAt.Local().Format("2006-01-02 15:04"),
			r.ExerciseCount(),
			r.TotalSets(),
			fmt.Sprintf("%g %s", r.TotalVolume(), profile.Unit),
			workout.FormatElapsed(r.ElapsedSeconds),
			partial,
		)
	}
	return nil
}
