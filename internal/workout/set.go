package workout

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sadopc/liftr/internal/catalog"
)

// PlannedSet is one unit of work within an exercise. A nil Reps or Weight
// means the value has not been entered.
type PlannedSet struct {
	ID        string
	Reps      *int
	Weight    *float64
	Completed bool
}

// SessionExercise pairs a catalog exercise with its ordered sets.
// Set order defines the set number shown to the user.
type SessionExercise struct {
	Exercise catalog.Exercise
	Sets     []PlannedSet
}

// SetInput is free-form text as typed by the user.
type SetInput struct {
	Reps   string
	Weight string
}

func newSetID() string {
	return uuid.NewString()
}

func (s PlannedSet) clone() PlannedSet {
	if s.Reps != nil {
		r := *s.Reps
		s.Reps = &r
	}
	if s.Weight != nil {
		w := *s.Weight
		s.Weight = &w
	}
	return s
}

// Volume is reps times weight, with unset values counting as zero.
func (s PlannedSet) Volume() float64 {
	if s.Reps == nil || s.Weight == nil {
		return 0
	}
	return float64(*s.Reps) * *s.Weight
}

// Input renders the set back into editable text.
func (s PlannedSet) Input() SetInput {
	return SetInput{Reps: FormatReps(s.Reps), Weight: FormatWeight(s.Weight)}
}

func (e SessionExercise) clone() SessionExercise {
	e.Exercise.MuscleGroups = slices.Clone(e.Exercise.MuscleGroups)
	e.Exercise.Equipment = slices.Clone(e.Exercise.Equipment)
	sets := make([]PlannedSet, len(e.Sets))
	for i, s := range e.Sets {
		sets[i] = s.clone()
	}
	e.Sets = sets
	return e
}

func (e SessionExercise) CompletedSets() int {
	n := 0
	for _, s := range e.Sets {
		if s.Completed {
			n++
		}
	}
	return n
}

func (e SessionExercise) AllCompleted() bool {
	return e.CompletedSets() == len(e.Sets)
}

// Volume sums the volume of every set, completed or not.
func (e SessionExercise) Volume() float64 {
	var v float64
	for _, s := range e.Sets {
		v += s.Volume()
	}
	return v
}

var (
	leadingInt   = regexp.MustCompile(`^[+-]?\d+`)
	leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// ParseReps reads the whole number at the start of text, so "10 reps"
// and "12.5" give 10 and 12. No leading number or a negative one is unset.
func ParseReps(text string) *int {
	m := leadingInt.FindString(strings.TrimSpace(text))
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// ParseWeight reads the decimal number at the start of text, so "60kg"
// gives 60. No leading number, negative and non-finite values are unset.
func ParseWeight(text string) *float64 {
	m := leadingFloat.FindString(strings.TrimSpace(text))
	if m == "" {
		return nil
	}
	w, err := strconv.ParseFloat(m, 64)
	if err != nil || w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return nil
	}
	return &w
}

func FormatReps(r *int) string {
	if r == nil {
		return ""
	}
	return strconv.Itoa(*r)
}

func FormatWeight(w *float64) string {
	if w == nil {
		return ""
	}
	return strconv.FormatFloat(*w, 'f', -1, 64)
}

func IntPtr(n int) *int { return &n }

func FloatPtr(f float64) *float64 { return &f }
