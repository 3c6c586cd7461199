package workout

import (
	"fmt"
	"time"
)

// NoSet is returned by CurrentSetIndex when every set of the current
// exercise is completed.
const NoSet = -1

// State is the lifecycle state of a session.
type State int

const (
	StateActive State = iota
	StatePaused
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// Session is the live state of one workout. It is owned by a single caller
// and is not safe for concurrent use. The session never runs timers itself:
// the caller drives Tick and performs the auto-advance returned by
// CompleteSet.
type Session struct {
	exercises []SessionExercise
	current   int
	elapsed   int64 // seconds
	paused    bool
	finished  bool
	startedAt time.Time
}

// Advance is a pending move of the current-exercise cursor produced by
// CompleteSet. The zero value means no advance is due.
type Advance struct {
	From int
	To   int
	due  bool
}

func (a Advance) Due() bool { return a.due }

// New starts a session from a prepared exercise list. The list is copied;
// completion flags are reset and sets without an ID get one.
func New(exercises []SessionExercise) (*Session, error) {
	if len(exercises) == 0 {
		return nil, ErrEmptyWorkout
	}
	own := make([]SessionExercise, len(exercises))
	for i, ex := range exercises {
		if len(ex.Sets) == 0 {
			return nil, fmt.Errorf("exercise %d (%s): %w", i, ex.Exercise.Name, ErrNoSets)
		}
		own[i] = ex.clone()
		for j := range own[i].Sets {
			own[i].Sets[j].Completed = false
			if own[i].Sets[j].ID == "" {
				own[i].Sets[j].ID = newSetID()
			}
		}
	}
	return &Session{
		exercises: own,
		startedAt: time.Now().UTC(),
	}, nil
}

func (s *Session) State() State {
	switch {
	case s.finished:
		return StateFinished
	case s.paused:
		return StatePaused
	}
	return StateActive
}

func (s *Session) StartedAt() time.Time { return s.startedAt }

// Elapsed returns the elapsed time counter in seconds.
func (s *Session) Elapsed() int64 { return s.elapsed }

func (s *Session) Paused() bool { return s.paused }

func (s *Session) Finished() bool { return s.finished }

func (s *Session) CurrentIndex() int { return s.current }

func (s *Session) Len() int { return len(s.exercises) }

// Current returns a copy of the current exercise.
func (s *Session) Current() SessionExercise {
	return s.exercises[s.current].clone()
}

// Exercises returns a deep copy of every exercise in session order.
func (s *Session) Exercises() []SessionExercise {
	out := make([]SessionExercise, len(s.exercises))
	for i, ex := range s.exercises {
		out[i] = ex.clone()
	}
	return out
}

func (s *Session) clone() *Session {
	c := *s
	c.exercises = s.Exercises()
	return &c
}

// CompleteSet marks a set of the current exercise as completed. Completing
// an already completed set changes nothing. When the current exercise
// becomes fully complete and another exercise follows, the returned Advance
// is due; pass it to ApplyAdvance once the caller's delay has elapsed.
func (s *Session) CompleteSet(setIndex int) (Advance, error) {
	if s.finished {
		return Advance{}, ErrFinished
	}
	ex := &s.exercises[s.current]
	if setIndex < 0 || setIndex >= len(ex.Sets) {
		return Advance{}, fmt.Errorf("set %d of %q: %w", setIndex, ex.Exercise.Name, ErrInvalidIndex)
	}
	if ex.Sets[setIndex].Completed {
		return Advance{}, nil
	}
	ex.Sets[setIndex].Completed = true
	return s.pendingAdvance(), nil
}

func (s *Session) pendingAdvance() Advance {
	if s.exercises[s.current].AllCompleted() && s.current < len(s.exercises)-1 {
		return Advance{From: s.current, To: s.current + 1, due: true}
	}
	return Advance{}
}

// ApplyAdvance performs a pending auto-advance. It is skipped when the
// user has navigated away in the meantime or the condition no longer holds.
// It reports whether the cursor moved.
func (s *Session) ApplyAdvance(a Advance) bool {
	if !a.due || s.finished || s.current != a.From {
		return false
	}
	if !s.pendingAdvance().due {
		return false
	}
	s.current = a.To
	return true
}

// AdvanceToNextExercise moves the cursor forward regardless of completion.
// At the last exercise it does nothing.
func (s *Session) AdvanceToNextExercise() bool {
	if s.finished || s.current >= len(s.exercises)-1 {
		return false
	}
	s.current++
	return true
}

// JumpToExercise moves the cursor to any exercise.
func (s *Session) JumpToExercise(index int) error {
	if s.finished {
		return ErrFinished
	}
	if index < 0 || index >= len(s.exercises) {
		return fmt.Errorf("exercise %d: %w", index, ErrInvalidIndex)
	}
	s.current = index
	return nil
}

// EditSets replaces reps and weight of every set of an exercise,
// positionally. IDs and completion flags are kept. Unparseable text becomes
// unset. Weight is dropped for exercises that are not weight tracked.
func (s *Session) EditSets(exerciseIndex int, values []SetInput) error {
	if s.finished {
		return ErrFinished
	}
	if exerciseIndex < 0 || exerciseIndex >= len(s.exercises) {
		return fmt.Errorf("exercise %d: %w", exerciseIndex, ErrInvalidIndex)
	}
	ex := &s.exercises[exerciseIndex]
	if len(values) != len(ex.Sets) {
		return fmt.Errorf("%q has %d sets, got %d values: %w", ex.Exercise.Name, len(ex.Sets), len(values), ErrSetCountMismatch)
	}
	tracked := ex.Exercise.NeedsWeightTracking()
	for i, v := range values {
		ex.Sets[i].Reps = ParseReps(v.Reps)
		if tracked {
			ex.Sets[i].Weight = ParseWeight(v.Weight)
		} else {
			ex.Sets[i].Weight = nil
		}
	}
	return nil
}

// Tick advances the elapsed counter by one second unless paused.
func (s *Session) Tick() {
	if s.paused || s.finished {
		return
	}
	s.elapsed++
}

func (s *Session) SetPaused(paused bool) {
	if s.finished {
		return
	}
	s.paused = paused
}

func (s *Session) TogglePause() {
	s.SetPaused(!s.paused)
}

// CurrentSetIndex returns the first incomplete set of the current exercise,
// or NoSet.
func (s *Session) CurrentSetIndex() int {
	for i, set := range s.exercises[s.current].Sets {
		if !set.Completed {
			return i
		}
	}
	return NoSet
}

func (s *Session) CompletedSets() int {
	n := 0
	for _, ex := range s.exercises {
		n += ex.CompletedSets()
	}
	return n
}

func (s *Session) TotalSets() int {
	n := 0
	for _, ex := range s.exercises {
		n += len(ex.Sets)
	}
	return n
}

// Progress is completed sets over total sets, in [0, 1].
func (s *Session) Progress() float64 {
	total := s.TotalSets()
	if total == 0 {
		return 0
	}
	return float64(s.CompletedSets()) / float64(total)
}

func (s *Session) IsComplete() bool {
	for _, ex := range s.exercises {
		if !ex.AllCompleted() {
			return false
		}
	}
	return true
}

// Finish ends the session. Without allowPartial every set must be
// completed, otherwise ErrNotComplete is returned and the session is left
// untouched. With allowPartial only completed sets are kept and exercises
// without any completed set are dropped.
func (s *Session) Finish(allowPartial bool) (*CompletedWorkout, error) {
	if s.finished {
		return nil, ErrFinished
	}
	complete := s.IsComplete()
	if !complete && !allowPartial {
		return nil, fmt.Errorf("%d of %d sets done: %w", s.CompletedSets(), s.TotalSets(), ErrNotComplete)
	}

	var kept []SessionExercise
	for _, ex := range s.exercises {
		c := ex.clone()
		sets := c.Sets[:0]
		for _, set := range c.Sets {
			if set.Completed {
				sets = append(sets, set)
			}
		}
		if len(sets) == 0 {
			continue
		}
		c.Sets = sets
		kept = append(kept, c)
	}

	s.finished = true
	s.paused = false
	return &CompletedWorkout{
		Exercises:      kept,
		ElapsedSeconds: s.elapsed,
		StartedAt:      s.startedAt,
		FinishedAt:     time.Now().UTC(),
		Partial:        !complete,
	}, nil
}
