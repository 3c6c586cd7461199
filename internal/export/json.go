package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/liftr/internal/store"
	"github.com/sadopc/liftr/internal/workout"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Unit       string        `json:"unit"`
	Count      int           `json:"count"`
	Workouts   []jsonWorkout `json:"workouts"`
}

type jsonWorkout struct {
	ID          int64          `json:"id"`
	StartedAt   string         `json:"started_at"`
	FinishedAt  string         `json:"finished_at"`
	DurationSec int64          `json:"duration_seconds"`
	Duration    string         `json:"duration"`
	Partial     bool           `json:"partial"`
	TotalSets   int            `json:"total_sets"`
	TotalVolume float64        `json:"total_volume"`
	Exercises   []jsonExercise `json:"exercises"`
}

type jsonExercise struct {
	ExerciseID   string    `json:"exercise_id"`
	Name         string    `json:"name"`
	MuscleGroups []string  `json:"muscle_groups"`
	Equipment    []string  `json:"equipment"`
	Sets         []jsonSet `json:"sets"`
}

type jsonSet struct {
	Number int      `json:"number"`
	Reps   *int     `json:"reps"`
	Weight *float64 `json:"weight,omitempty"`
}

// ToJSON writes workouts as a nested, pretty-printed document.
func ToJSON(records []store.WorkoutRecord, unit, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Unit:       unit,
		Count:      len(records),
	}

	for _, r := range records {
		jw := jsonWorkout{
			ID:          r.ID,
			StartedAt:   r.StartedAt.Local().Format(time.RFC3339),
			FinishedAt:  r.FinishedAt.Local().Format(time.RFC3339),
			DurationSec: r.ElapsedSeconds,
			Duration:    workout.FormatClock(r.ElapsedSeconds),
			Partial:     r.Partial,
			TotalSets:   r.TotalSets(),
			TotalVolume: r.TotalVolume(),
		}
		for _, ex := range r.Exercises {
			je := jsonExercise{ExerciseID: ex.Exercise.ID, Name: ex.Exercise.Name}
			for _, m := range ex.Exercise.MuscleGroups {
				je.MuscleGroups = append(je.MuscleGroups, string(m))
			}
			for _, eq := range ex.Exercise.Equipment {
				je.Equipment = append(je.Equipment, string(eq))
			}
			for i, set := range ex.Sets {
				je.Sets = append(je.Sets, jsonSet{Number: i + 1, Reps: set.Reps, Weight: set.Weight})
			}
			jw.Exercises = append(jw.Exercises, je)
		}
		export.Workouts = append(export.Workouts, jw)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
