package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/liftr/internal/store"
	"github.com/sadopc/liftr/internal/workout"
)

var csvHeader = []string{"Workout ID", "Date", "Exercise", "Muscles", "Set", "Reps", "Weight", "Unit", "Volume", "Duration", "Partial"}

// ToCSV writes one row per completed set. Weight and unit are empty for sets
// without a weight.
func ToCSV(records []store.WorkoutRecord, unit, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range records {
		date := r.FinishedAt.Local().Format(time.RFC3339)
		dur := workout.FormatClock(r.ElapsedSeconds)
		for _, ex := range r.Exercises {
			for i, set := range ex.Sets {
				setUnit := ""
				if set.Weight != nil {
					setUnit = unit
				}
				row := []string{
					strconv.FormatInt(r.ID, 10),
					date,
					ex.Exercise.Name,
					ex.Exercise.MuscleLabel(),
					strconv.Itoa(i + 1),
					workout.FormatReps(set.Reps),
					workout.FormatWeight(set.Weight),
					setUnit,
					strconv.FormatFloat(set.Volume(), 'f', -1, 64),
					dur,
					strconv.FormatBool(r.Partial),
				}
				if err := w.Write(row); err != nil {
					return err
				}
			}
		}
	}

	w.Flush()
	return w.Error()
}
