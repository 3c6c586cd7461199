package store

import (
	"time"

	"github.com/sadopc/liftr/internal/workout"
)

// WorkoutRecord is a completed workout as stored.
type WorkoutRecord struct {
	ID int64
	workout.CompletedWorkout
	CreatedAt time.Time
}

type Setting struct {
	Key   string
	Value string
}

// WorkoutFilter is used to filter workouts in queries.
type WorkoutFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// DailyVolume represents aggregated training per day.
type DailyVolume struct {
	Date         string
	Workouts     int
	Sets         int
	Volume       float64
	TotalSeconds int64
}

// Profile is the user's profile, kept in the settings table.
type Profile struct {
	Name       string
	Age        string
	Gender     string
	Unit       string // kg or lbs
	WeeklyGoal int
}
