package workout

import (
	"fmt"

	"github.com/sadopc/liftr/internal/catalog"
)

// Plan is a workout being prepared: the exercise list can still change.
// Once started it becomes a Session with a fixed exercise list.
type Plan struct {
	exercises []SessionExercise
}

// NewPlan creates a plan with one empty set per exercise.
func NewPlan(exercises ...catalog.Exercise) *Plan {
	p := &Plan{}
	p.AddExercises(exercises...)
	return p
}

func planFrom(exercises []SessionExercise) *Plan {
	p := &Plan{exercises: make([]SessionExercise, len(exercises))}
	for i, ex := range exercises {
		c := ex.clone()
		for j := range c.Sets {
			c.Sets[j].ID = newSetID()
			c.Sets[j].Completed = false
		}
		p.exercises[i] = c
	}
	return p
}

func (p *Plan) Len() int { return len(p.exercises) }

// Exercises returns a copy of the planned exercises.
func (p *Plan) Exercises() []SessionExercise {
	out := make([]SessionExercise, len(p.exercises))
	for i, ex := range p.exercises {
		out[i] = ex.clone()
	}
	return out
}

// AddExercises appends exercises, skipping any already in the plan.
func (p *Plan) AddExercises(exercises ...catalog.Exercise) {
	for _, e := range exercises {
		if p.Contains(e.ID) {
			continue
		}
		p.exercises = append(p.exercises, SessionExercise{
			Exercise: e,
			Sets:     []PlannedSet{{ID: newSetID()}},
		})
	}
}

func (p *Plan) Contains(exerciseID string) bool {
	for _, ex := range p.exercises {
		if ex.Exercise.ID == exerciseID {
			return true
		}
	}
	return false
}

func (p *Plan) checkExercise(i int) error {
	if i < 0 || i >= len(p.exercises) {
		return fmt.Errorf("exercise %d: %w", i, ErrInvalidIndex)
	}
	return nil
}

func (p *Plan) checkSet(i, set int) error {
	if err := p.checkExercise(i); err != nil {
		return err
	}
	if set < 0 || set >= len(p.exercises[i].Sets) {
		return fmt.Errorf("set %d: %w", set, ErrInvalidIndex)
	}
	return nil
}

// AddSet appends a set pre-filled with the first set's values.
func (p *Plan) AddSet(exercise int) error {
	if err := p.checkExercise(exercise); err != nil {
		return err
	}
	ex := &p.exercises[exercise]
	first := ex.Sets[0].clone()
	ex.Sets = append(ex.Sets, PlannedSet{ID: newSetID(), Reps: first.Reps, Weight: first.Weight})
	return nil
}

// RemoveSet removes a set. The last remaining set is kept.
func (p *Plan) RemoveSet(exercise, set int) error {
	if err := p.checkSet(exercise, set); err != nil {
		return err
	}
	ex := &p.exercises[exercise]
	if len(ex.Sets) == 1 {
		return nil
	}
	ex.Sets = append(ex.Sets[:set], ex.Sets[set+1:]...)
	return nil
}

// UpdateSet sets reps and weight from user text.
func (p *Plan) UpdateSet(exercise, set int, in SetInput) error {
	if err := p.checkSet(exercise, set); err != nil {
		return err
	}
	s := &p.exercises[exercise].Sets[set]
	s.Reps = ParseReps(in.Reps)
	if p.exercises[exercise].Exercise.NeedsWeightTracking() {
		s.Weight = ParseWeight(in.Weight)
	} else {
		s.Weight = nil
	}
	return nil
}

func (p *Plan) RemoveExercise(exercise int) error {
	if err := p.checkExercise(exercise); err != nil {
		return err
	}
	p.exercises = append(p.exercises[:exercise], p.exercises[exercise+1:]...)
	return nil
}

// MoveExercise moves the exercise at from so that it ends up at index to.
func (p *Plan) MoveExercise(from, to int) error {
	if err := p.checkExercise(from); err != nil {
		return err
	}
	if err := p.checkExercise(to); err != nil {
		return err
	}
	ex := p.exercises[from]
	p.exercises = append(p.exercises[:from], p.exercises[from+1:]...)
	p.exercises = append(p.exercises[:to], append([]SessionExercise{ex}, p.exercises[to:]...)...)
	return nil
}

// Ready reports whether every set has reps and, where tracked, a weight.
func (p *Plan) Ready() bool {
	if len(p.exercises) == 0 {
		return false
	}
	for _, ex := range p.exercises {
		tracked := ex.Exercise.NeedsWeightTracking()
		for _, s := range ex.Sets {
			if s.Reps == nil || (tracked && s.Weight == nil) {
				return false
			}
		}
	}
	return true
}

// Start turns the plan into a session.
func (p *Plan) Start() (*Session, error) {
	return New(p.exercises)
}
