package catalog

import (
	"slices"
	"strings"
)

type MuscleGroup string

const (
	Chest     MuscleGroup = "Chest"
	Back      MuscleGroup = "Back"
	Shoulders MuscleGroup = "Shoulders"
	Biceps    MuscleGroup = "Biceps"
	Triceps   MuscleGroup = "Triceps"
	Legs      MuscleGroup = "Legs"
	Core      MuscleGroup = "Core"
	Glutes    MuscleGroup = "Glutes"
	Cardio    MuscleGroup = "Cardio"
)

type Equipment string

const (
	Barbell    Equipment = "Barbell"
	Dumbbell   Equipment = "Dumbbell"
	Machine    Equipment = "Machine"
	Bodyweight Equipment = "Bodyweight"
	Cable      Equipment = "Cable"
	Kettlebell Equipment = "Kettlebell"
	Band       Equipment = "Band"
)

var AllMuscleGroups = []MuscleGroup{Chest, Back, Shoulders, Biceps, Triceps, Legs, Core, Glutes, Cardio}

var AllEquipment = []Equipment{Barbell, Dumbbell, Machine, Bodyweight, Cable, Kettlebell, Band}

// Exercise is a catalog entry. Catalog entries are never modified at runtime.
type Exercise struct {
	ID           string
	Name         string
	MuscleGroups []MuscleGroup
	Equipment    []Equipment
}

// NeedsWeightTracking reports whether sets of this exercise carry a weight.
// Anything that can be done with bodyweight is tracked by reps only.
func (e Exercise) NeedsWeightTracking() bool {
	for _, eq := range e.Equipment {
		if strings.EqualFold(string(eq), string(Bodyweight)) {
			return false
		}
	}
	return true
}

func (e Exercise) clone() Exercise {
	e.MuscleGroups = slices.Clone(e.MuscleGroups)
	e.Equipment = slices.Clone(e.Equipment)
	return e
}

func (e Exercise) MuscleLabel() string {
	parts := make([]string, len(e.MuscleGroups))
	for i, m := range e.MuscleGroups {
		parts[i] = string(m)
	}
	return strings.Join(parts, ", ")
}

func (e Exercise) EquipmentLabel() string {
	parts := make([]string, len(e.Equipment))
	for i, eq := range e.Equipment {
		parts[i] = string(eq)
	}
	return strings.Join(parts, ", ")
}

var exercises = []Exercise{
	{ID: "1", Name: "Bench Press", MuscleGroups: []MuscleGroup{Chest, Triceps}, Equipment: []Equipment{Barbell}},
	{ID: "2", Name: "Dumbbell Flyes", MuscleGroups: []MuscleGroup{Chest}, Equipment: []Equipment{Dumbbell}},
	{ID: "3", Name: "Push-ups", MuscleGroups: []MuscleGroup{Chest, Triceps, Shoulders}, Equipment: []Equipment{Bodyweight}},
	{ID: "4", Name: "Incline Press", MuscleGroups: []MuscleGroup{Chest, Shoulders}, Equipment: []Equipment{Barbell, Dumbbell}},
	{ID: "5", Name: "Cable Crossover", MuscleGroups: []MuscleGroup{Chest}, Equipment: []Equipment{Cable}},
	{ID: "6", Name: "Deadlift", MuscleGroups: []MuscleGroup{Back, Legs, Core}, Equipment: []Equipment{Barbell}},
	{ID: "7", Name: "Pull-ups", MuscleGroups: []MuscleGroup{Back, Biceps}, Equipment: []Equipment{Bodyweight}},
	{ID: "8", Name: "Bent Over Row", MuscleGroups: []MuscleGroup{Back, Biceps}, Equipment: []Equipment{Barbell}},
	{ID: "9", Name: "Lat Pulldown", MuscleGroups: []MuscleGroup{Back, Biceps}, Equipment: []Equipment{Cable, Machine}},
	{ID: "10", Name: "Seated Cable Row", MuscleGroups: []MuscleGroup{Back}, Equipment: []Equipment{Cable}},
	{ID: "11", Name: "Overhead Press", MuscleGroups: []MuscleGroup{Shoulders, Triceps}, Equipment: []Equipment{Barbell, Dumbbell}},
	{ID: "12", Name: "Lateral Raise", MuscleGroups: []MuscleGroup{Shoulders}, Equipment: []Equipment{Dumbbell, Cable}},
	{ID: "13", Name: "Front Raise", MuscleGroups: []MuscleGroup{Shoulders}, Equipment: []Equipment{Dumbbell, Cable}},
	{ID: "14", Name: "Face Pull", MuscleGroups: []MuscleGroup{Shoulders, Back}, Equipment: []Equipment{Cable}},
	{ID: "15", Name: "Barbell Curl", MuscleGroups: []MuscleGroup{Biceps}, Equipment: []Equipment{Barbell}},
	{ID: "16", Name: "Hammer Curl", MuscleGroups: []MuscleGroup{Biceps}, Equipment: []Equipment{Dumbbell}},
	{ID: "17", Name: "Preacher Curl", MuscleGroups: []MuscleGroup{Biceps}, Equipment: []Equipment{Barbell, Dumbbell, Machine}},
	{ID: "18", Name: "Tricep Dips", MuscleGroups: []MuscleGroup{Triceps, Chest}, Equipment: []Equipment{Bodyweight}},
	{ID: "19", Name: "Tricep Pushdown", MuscleGroups: []MuscleGroup{Triceps}, Equipment: []Equipment{Cable}},
	{ID: "20", Name: "Overhead Tricep Extension", MuscleGroups: []MuscleGroup{Triceps}, Equipment: []Equipment{Dumbbell, Cable}},
	{ID: "21", Name: "Squat", MuscleGroups: []MuscleGroup{Legs, Glutes, Core}, Equipment: []Equipment{Barbell}},
	{ID: "22", Name: "Leg Press", MuscleGroups: []MuscleGroup{Legs, Glutes}, Equipment: []Equipment{Machine}},
	{ID: "23", Name: "Lunges", MuscleGroups: []MuscleGroup{Legs, Glutes}, Equipment: []Equipment{Bodyweight, Dumbbell}},
	{ID: "24", Name: "Romanian Deadlift", MuscleGroups: []MuscleGroup{Legs, Glutes, Back}, Equipment: []Equipment{Barbell, Dumbbell}},
	{ID: "25", Name: "Leg Curl", MuscleGroups: []MuscleGroup{Legs}, Equipment: []Equipment{Machine}},
	{ID: "26", Name: "Leg Extension", MuscleGroups: []MuscleGroup{Legs}, Equipment: []Equipment{Machine}},
	{ID: "27", Name: "Calf Raise", MuscleGroups: []MuscleGroup{Legs}, Equipment: []Equipment{Machine, Dumbbell}},
	{ID: "28", Name: "Hip Thrust", MuscleGroups: []MuscleGroup{Glutes, Legs}, Equipment: []Equipment{Barbell, Bodyweight}},
	{ID: "29", Name: "Plank", MuscleGroups: []MuscleGroup{Core}, Equipment: []Equipment{Bodyweight}},
	{ID: "30", Name: "Cable Crunch", MuscleGroups: []MuscleGroup{Core}, Equipment: []Equipment{Cable}},
	{ID: "31", Name: "Hanging Leg Raise", MuscleGroups: []MuscleGroup{Core}, Equipment: []Equipment{Bodyweight}},
	{ID: "32", Name: "Russian Twist", MuscleGroups: []MuscleGroup{Core}, Equipment: []Equipment{Bodyweight, Dumbbell}},
	{ID: "33", Name: "Treadmill Run", MuscleGroups: []MuscleGroup{Cardio, Legs}, Equipment: []Equipment{Machine}},
	{ID: "34", Name: "Rowing Machine", MuscleGroups: []MuscleGroup{Cardio, Back}, Equipment: []Equipment{Machine}},
	{ID: "35", Name: "Jump Rope", MuscleGroups: []MuscleGroup{Cardio, Legs}, Equipment: []Equipment{Bodyweight}},
}

// All returns every catalog entry in catalog order.
func All() []Exercise {
	out := make([]Exercise, len(exercises))
	for i, e := range exercises {
		out[i] = e.clone()
	}
	return out
}

func Lookup(id string) (Exercise, bool) {
	for _, e := range exercises {
		if e.ID == id {
			return e.clone(), true
		}
	}
	return Exercise{}, false
}

// Filter narrows the catalog. Empty fields match everything.
type Filter struct {
	Query     string
	Muscles   []MuscleGroup
	Equipment []Equipment
}

func (f Filter) Active() bool {
	return strings.TrimSpace(f.Query) != "" || len(f.Muscles) > 0 || len(f.Equipment) > 0
}

func (f Filter) matches(e Exercise) bool {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q != "" && !strings.Contains(strings.ToLower(e.Name), q) {
		return false
	}
	if len(f.Muscles) > 0 && !slices.ContainsFunc(e.MuscleGroups, func(m MuscleGroup) bool {
		return slices.Contains(f.Muscles, m)
	}) {
		return false
	}
	if len(f.Equipment) > 0 && !slices.ContainsFunc(e.Equipment, func(eq Equipment) bool {
		return slices.Contains(f.Equipment, eq)
	}) {
		return false
	}
	return true
}

// Search returns the catalog entries matching f, in catalog order.
func Search(f Filter) []Exercise {
	var out []Exercise
	for _, e := range exercises {
		if f.matches(e) {
			out = append(out, e.clone())
		}
	}
	return out
}

// ParseMuscleGroup resolves a tag case-insensitively.
func ParseMuscleGroup(s string) (MuscleGroup, bool) {
	for _, m := range AllMuscleGroups {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, true
		}
	}
	return "", false
}

func ParseEquipment(s string) (Equipment, bool) {
	for _, eq := range AllEquipment {
		if strings.EqualFold(string(eq), strings.TrimSpace(s)) {
			return eq, true
		}
	}
	return "", false
}
