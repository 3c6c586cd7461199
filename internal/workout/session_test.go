package workout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/liftr/internal/catalog"
)

var (
	bench   = catalog.Exercise{ID: "1", Name: "Bench Press", Equipment: []catalog.Equipment{catalog.Barbell}}
	pushups = catalog.Exercise{ID: "3", Name: "Push-ups", Equipment: []catalog.Equipment{catalog.Bodyweight}}
	squat   = catalog.Exercise{ID: "21", Name: "Squat", Equipment: []catalog.Equipment{catalog.Barbell}}
)

func sets(n int) []PlannedSet {
	out := make([]PlannedSet, n)
	for i := range out {
		out[i] = PlannedSet{Reps: IntPtr(10), Weight: FloatPtr(60)}
	}
	return out
}

// newSession builds a session with one exercise per entry of counts.
func newSession(t *testing.T, counts ...int) *Session {
	t.Helper()
	pool := []catalog.Exercise{bench, pushups, squat}
	var exs []SessionExercise
	for i, n := range counts {
		exs = append(exs, SessionExercise{Exercise: pool[i%len(pool)], Sets: sets(n)})
	}
	s, err := New(exs)
	require.NoError(t, err)
	return s
}

func TestNew_InitialState(t *testing.T) {
	s := newSession(t, 2, 1)

	assert.Equal(t, 0, s.CurrentIndex())
	assert.Equal(t, int64(0), s.Elapsed())
	assert.False(t, s.Paused())
	assert.Equal(t, StateActive, s.State())
	assert.Equal(t, 3, s.TotalSets())
	assert.Equal(t, 0, s.CompletedSets())
	for _, ex := range s.Exercises() {
		for _, set := range ex.Sets {
			assert.False(t, set.Completed)
			assert.NotEmpty(t, set.ID)
		}
	}
}

func TestNew_ResetsCompletionAndCopiesInput(t *testing.T) {
	in := []SessionExercise{{Exercise: bench, Sets: []PlannedSet{{ID: "a", Reps: IntPtr(5), Completed: true}}}}
	s, err := New(in)
	require.NoError(t, err)

	assert.Equal(t, 0, s.CompletedSets())

	*in[0].Sets[0].Reps = 99
	in[0].Sets[0].ID = "changed"
	cur := s.Current()
	assert.Equal(t, 5, *cur.Sets[0].Reps)
	assert.Equal(t, "a", cur.Sets[0].ID)
}

func TestNew_Rejects(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrEmptyWorkout)

	_, err = New([]SessionExercise{{Exercise: bench}})
	assert.ErrorIs(t, err, ErrNoSets)
}

func TestCompleteSet_Idempotent(t *testing.T) {
	s := newSession(t, 2, 1)

	_, err := s.CompleteSet(0)
	require.NoError(t, err)
	once := s.Exercises()

	adv, err := s.CompleteSet(0)
	require.NoError(t, err)
	assert.False(t, adv.Due())
	assert.Equal(t, once, s.Exercises())
	assert.Equal(t, 1, s.CompletedSets())
}

func TestCompleteSet_InvalidIndex(t *testing.T) {
	s := newSession(t, 2)
	before := s.Exercises()

	for _, idx := range []int{-1, 2, 100} {
		_, err := s.CompleteSet(idx)
		assert.ErrorIs(t, err, ErrInvalidIndex, "index %d", idx)
	}
	assert.Equal(t, before, s.Exercises())
}

func TestCompleteSet_AutoAdvance(t *testing.T) {
	s := newSession(t, 2, 1)

	adv, err := s.CompleteSet(0)
	require.NoError(t, err)
	assert.False(t, adv.Due(), "exercise not complete yet")

	adv, err = s.CompleteSet(1)
	require.NoError(t, err)
	require.True(t, adv.Due())
	assert.Equal(t, Advance{From: 0, To: 1, due: true}, adv)
	assert.Equal(t, 0, s.CurrentIndex(), "advance is applied by the caller")

	assert.True(t, s.ApplyAdvance(adv))
	assert.Equal(t, 1, s.CurrentIndex())

	// Last exercise: completing it never advances.
	adv, err = s.CompleteSet(0)
	require.NoError(t, err)
	assert.False(t, adv.Due())
	assert.False(t, s.AdvanceToNextExercise())
	assert.Equal(t, 1, s.CurrentIndex())
}

func TestApplyAdvance_SkippedAfterManualNavigation(t *testing.T) {
	s := newSession(t, 1, 1, 1)

	adv, err := s.CompleteSet(0)
	require.NoError(t, err)
	require.True(t, adv.Due())

	require.NoError(t, s.JumpToExercise(2))
	assert.False(t, s.ApplyAdvance(adv))
	assert.Equal(t, 2, s.CurrentIndex())
}

func TestApplyAdvance_ZeroValue(t *testing.T) {
	s := newSession(t, 1, 1)
	assert.False(t, s.ApplyAdvance(Advance{}))
	assert.Equal(t, 0, s.CurrentIndex())
}

func TestAdvanceToNextExercise(t *testing.T) {
	s := newSession(t, 3, 1)

	assert.True(t, s.AdvanceToNextExercise(), "skip allowed with nothing completed")
	assert.Equal(t, 1, s.CurrentIndex())
	assert.False(t, s.AdvanceToNextExercise())
	assert.Equal(t, 1, s.CurrentIndex())
}

func TestJumpToExercise(t *testing.T) {
	s := newSession(t, 1, 1, 1)

	require.NoError(t, s.JumpToExercise(2))
	assert.Equal(t, 2, s.CurrentIndex())
	require.NoError(t, s.JumpToExercise(0))
	assert.Equal(t, 0, s.CurrentIndex())

	assert.ErrorIs(t, s.JumpToExercise(3), ErrInvalidIndex)
	assert.ErrorIs(t, s.JumpToExercise(-1), ErrInvalidIndex)
	assert.Equal(t, 0, s.CurrentIndex())
}

func TestEditSets_KeepsIdentityAndCompletion(t *testing.T) {
	s := newSession(t, 2)
	_, err := s.CompleteSet(0)
	require.NoError(t, err)
	before := s.Current()

	err = s.EditSets(0, []SetInput{{Reps: "8", Weight: "72.5"}, {Reps: "abc", Weight: ""}})
	require.NoError(t, err)

	after := s.Current()
	for i := range after.Sets {
		assert.Equal(t, before.Sets[i].ID, after.Sets[i].ID)
		assert.Equal(t, before.Sets[i].Completed, after.Sets[i].Completed)
	}
	require.NotNil(t, after.Sets[0].Reps)
	assert.Equal(t, 8, *after.Sets[0].Reps)
	require.NotNil(t, after.Sets[0].Weight)
	assert.Equal(t, 72.5, *after.Sets[0].Weight)
	assert.Nil(t, after.Sets[1].Reps, "unparseable text is unset, not zero")
	assert.Nil(t, after.Sets[1].Weight)
}

func TestEditSets_BodyweightDropsWeight(t *testing.T) {
	s := newSession(t, 1, 1)

	require.NoError(t, s.EditSets(1, []SetInput{{Reps: "20", Weight: "10"}}))
	ex := s.Exercises()[1]
	assert.Equal(t, 20, *ex.Sets[0].Reps)
	assert.Nil(t, ex.Sets[0].Weight)
}

func TestEditSets_Rejects(t *testing.T) {
	s := newSession(t, 2)
	before := s.Exercises()

	assert.ErrorIs(t, s.EditSets(1, []SetInput{{}, {}}), ErrInvalidIndex)
	assert.ErrorIs(t, s.EditSets(0, []SetInput{{Reps: "1"}}), ErrSetCountMismatch)
	assert.Equal(t, before, s.Exercises())
}

func TestTickAndPause(t *testing.T) {
	s := newSession(t, 1)

	s.Tick()
	s.Tick()
	assert.Equal(t, int64(2), s.Elapsed())

	s.SetPaused(true)
	assert.Equal(t, StatePaused, s.State())
	s.Tick()
	assert.Equal(t, int64(2), s.Elapsed())

	// Other operations stay available while paused.
	_, err := s.CompleteSet(0)
	require.NoError(t, err)

	s.SetPaused(false)
	s.Tick()
	assert.Equal(t, int64(3), s.Elapsed())

	s.TogglePause()
	assert.True(t, s.Paused())
	s.TogglePause()
	assert.False(t, s.Paused())
}

func TestCurrentSetIndex(t *testing.T) {
	s := newSession(t, 3)
	assert.Equal(t, 0, s.CurrentSetIndex())

	_, _ = s.CompleteSet(1)
	assert.Equal(t, 0, s.CurrentSetIndex())
	_, _ = s.CompleteSet(0)
	assert.Equal(t, 2, s.CurrentSetIndex())
	_, _ = s.CompleteSet(2)
	assert.Equal(t, NoSet, s.CurrentSetIndex())
}

func TestProgress(t *testing.T) {
	s := newSession(t, 3, 2)
	assert.Equal(t, 0.0, s.Progress())

	_, _ = s.CompleteSet(0)
	_, _ = s.CompleteSet(1)
	assert.InDelta(t, 0.4, s.Progress(), 1e-9)
}

func TestProgress_MonotonicUntilComplete(t *testing.T) {
	s := newSession(t, 2, 1, 2)
	last := s.Progress()

	for !s.IsComplete() {
		idx := s.CurrentSetIndex()
		if idx == NoSet {
			require.True(t, s.AdvanceToNextExercise())
			continue
		}
		_, err := s.CompleteSet(idx)
		require.NoError(t, err)
		p := s.Progress()
		assert.GreaterOrEqual(t, p, last)
		if s.IsComplete() {
			assert.Equal(t, 1.0, p)
		} else {
			assert.Less(t, p, 1.0)
		}
		last = p
	}
}

func TestProgress_EmptyGuard(t *testing.T) {
	s := &Session{exercises: []SessionExercise{{Exercise: bench}}}
	assert.Equal(t, 0.0, s.Progress())
}

func TestFinish_NotComplete(t *testing.T) {
	s := newSession(t, 2, 1)
	_, _ = s.CompleteSet(0)
	s.Tick()
	before := s.clone()

	w, err := s.Finish(false)
	assert.Nil(t, w)
	assert.True(t, errors.Is(err, ErrNotComplete))
	assert.Equal(t, before, s)
	assert.Equal(t, StateActive, s.State())
}

func TestFinish_Partial(t *testing.T) {
	s := newSession(t, 2, 1)
	_, _ = s.CompleteSet(1)
	s.Tick()

	w, err := s.Finish(true)
	require.NoError(t, err)

	require.Len(t, w.Exercises, 1)
	assert.Equal(t, bench.ID, w.Exercises[0].Exercise.ID)
	require.Len(t, w.Exercises[0].Sets, 1)
	assert.True(t, w.Exercises[0].Sets[0].Completed)
	assert.True(t, w.Partial)
	assert.Equal(t, int64(1), w.ElapsedSeconds)
	assert.Equal(t, StateFinished, s.State())
}

func TestFinish_Natural(t *testing.T) {
	s := newSession(t, 1, 1)
	_, _ = s.CompleteSet(0)
	s.AdvanceToNextExercise()
	_, _ = s.CompleteSet(0)
	for i := 0; i < 90; i++ {
		s.Tick()
	}

	w, err := s.Finish(false)
	require.NoError(t, err)
	assert.False(t, w.Partial)
	assert.Len(t, w.Exercises, 2)
	assert.Equal(t, int64(90), w.ElapsedSeconds)
	assert.Equal(t, 2, w.TotalSets())
}

func TestFinishedIsTerminal(t *testing.T) {
	s := newSession(t, 1, 1)
	_, err := s.Finish(true)
	require.NoError(t, err)

	_, err = s.Finish(true)
	assert.ErrorIs(t, err, ErrFinished)
	_, err = s.CompleteSet(0)
	assert.ErrorIs(t, err, ErrFinished)
	assert.ErrorIs(t, s.JumpToExercise(1), ErrFinished)
	assert.ErrorIs(t, s.EditSets(0, []SetInput{{}}), ErrFinished)
	assert.False(t, s.AdvanceToNextExercise())

	s.SetPaused(true)
	assert.Equal(t, StateFinished, s.State())
	s.Tick()
	assert.Equal(t, int64(0), s.Elapsed())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "active", StateActive.String())
	assert.Equal(t, "paused", StatePaused.String())
	assert.Equal(t, "finished", StateFinished.String())
	assert.Equal(t, "unknown", State(9).String())
}
