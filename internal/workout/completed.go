package workout

import (
	"fmt"
	"time"
)

// CompletedWorkout is the summary record of a finished session. Every
// exercise in it has at least one set and every set is completed.
type CompletedWorkout struct {
	Exercises      []SessionExercise
	ElapsedSeconds int64
	StartedAt      time.Time
	FinishedAt     time.Time
	Partial        bool // finished early
}

func (w CompletedWorkout) ExerciseCount() int {
	return len(w.Exercises)
}

func (w CompletedWorkout) TotalSets() int {
	n := 0
	for _, ex := range w.Exercises {
		n += len(ex.Sets)
	}
	return n
}

// TotalVolume sums reps times weight over all sets.
func (w CompletedWorkout) TotalVolume() float64 {
	var v float64
	for _, ex := range w.Exercises {
		v += ex.Volume()
	}
	return v
}

// RepeatPlan opens a new plan with the same exercises and set values.
func (w CompletedWorkout) RepeatPlan() *Plan {
	return planFrom(w.Exercises)
}

// FormatElapsed renders a duration for summaries: "1h 5m" or "5m 3s".
func FormatElapsed(secs int64) string {
	if secs < 0 {
		secs = 0
	}
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm %ds", m, s)
}

// FormatClock renders a running clock as HH:MM:SS.
func FormatClock(secs int64) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}
