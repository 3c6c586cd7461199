package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/liftr/internal/catalog"
	"github.com/sadopc/liftr/internal/workout"
)

// SaveWorkout persists a completed workout with its exercises and sets.
func (s *Store) SaveWorkout(w *workout.CompletedWorkout) (*WorkoutRecord, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	started := w.StartedAt
	if started.IsZero() {
		started = time.Now().UTC()
	}
	finished := w.FinishedAt
	if finished.IsZero() {
		finished = time.Now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin save workout: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO workouts (started_at, finished_at, elapsed, partial, created_at) VALUES (?, ?, ?, ?, ?)`,
		started.UTC().Format(time.RFC3339), finished.UTC().Format(time.RFC3339), w.ElapsedSeconds, boolInt(w.Partial), now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert workout: %w", err)
	}
	id, _ := res.LastInsertId()

	for pos, ex := range w.Exercises {
		res, err := tx.Exec(
			`INSERT INTO workout_exercises (workout_id, position, exercise_id, name, muscle_groups, equipment)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, pos, ex.Exercise.ID, ex.Exercise.Name, joinMuscles(ex.Exercise.MuscleGroups), joinEquipment(ex.Exercise.Equipment),
		)
		if err != nil {
			return nil, fmt.Errorf("insert workout exercise: %w", err)
		}
		exID, _ := res.LastInsertId()

		for setPos, set := range ex.Sets {
			_, err := tx.Exec(
				`INSERT INTO workout_sets (workout_exercise_id, position, set_uid, reps, weight) VALUES (?, ?, ?, ?, ?)`,
				exID, setPos, set.ID, set.Reps, set.Weight,
			)
			if err != nil {
				return nil, fmt.Errorf("insert workout set: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit workout: %w", err)
	}
	s.log.Info("workout saved", "id", id, "exercises", len(w.Exercises), "elapsed", w.ElapsedSeconds, "partial", w.Partial)
	return s.GetWorkout(id)
}

func (s *Store) GetWorkout(id int64) (*WorkoutRecord, error) {
	r := &WorkoutRecord{}
	var startedAt, finishedAt, createdAt string
	var partial int

	err := s.db.QueryRow(
		`SELECT id, started_at, finished_at, elapsed, partial, created_at FROM workouts WHERE id = ?`, id,
	).Scan(&r.ID, &startedAt, &finishedAt, &r.ElapsedSeconds, &partial, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get workout %d: %w", id, err)
	}
	r.Partial = partial == 1
	r.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	r.FinishedAt, _ = time.Parse(time.RFC3339, finishedAt)
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	if r.Exercises, err = s.loadExercises(id); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Store) loadExercises(workoutID int64) ([]workout.SessionExercise, error) {
	rows, err := s.db.Query(`
		SELECT e.id, e.exercise_id, e.name, e.muscle_groups, e.equipment,
		       st.set_uid, st.reps, st.weight
		FROM workout_exercises e
		JOIN workout_sets st ON st.workout_exercise_id = e.id
		WHERE e.workout_id = ?
		ORDER BY e.position, st.position`, workoutID,
	)
	if err != nil {
		return nil, fmt.Errorf("load workout %d exercises: %w", workoutID, err)
	}
	defer rows.Close()

	var exercises []workout.SessionExercise
	lastID := int64(-1)
	for rows.Next() {
		var exRowID int64
		var exID, name, muscles, equipment, setUID string
		var reps sql.NullInt64
		var weight sql.NullFloat64
		if err := rows.Scan(&exRowID, &exID, &name, &muscles, &equipment, &setUID, &reps, &weight); err != nil {
			return nil, err
		}
		if exRowID != lastID {
			exercises = append(exercises, workout.SessionExercise{
				Exercise: resolveExercise(exID, name, muscles, equipment),
			})
			lastID = exRowID
		}
		set := workout.PlannedSet{ID: setUID, Completed: true}
		if reps.Valid {
			set.Reps = workout.IntPtr(int(reps.Int64))
		}
		if weight.Valid {
			set.Weight = workout.FloatPtr(weight.Float64)
		}
		cur := &exercises[len(exercises)-1]
		cur.Sets = append(cur.Sets, set)
	}
	return exercises, rows.Err()
}

// resolveExercise prefers the catalog entry and falls back to the stored
// snapshot for ids the catalog no longer knows.
func resolveExercise(id, name, muscles, equipment string) catalog.Exercise {
	if e, ok := catalog.Lookup(id); ok {
		return e
	}
	e := catalog.Exercise{ID: id, Name: name}
	for _, m := range splitTags(muscles) {
		e.MuscleGroups = append(e.MuscleGroups, catalog.MuscleGroup(m))
	}
	for _, eq := range splitTags(equipment) {
		e.Equipment = append(e.Equipment, catalog.Equipment(eq))
	}
	return e
}

func (s *Store) ListWorkouts(f WorkoutFilter) ([]WorkoutRecord, error) {
	query := `SELECT id FROM workouts WHERE 1=1`
	var args []any

	if f.From != nil {
		query += ` AND finished_at >= ?`
		args = append(args, f.From.UTC().Format(time.RFC3339))
	}
	if f.To != nil {
		query += ` AND finished_at < ?`
		args = append(args, f.To.UTC().Format(time.RFC3339))
	}
	query += ` ORDER BY finished_at DESC, id DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var records []WorkoutRecord
	for _, id := range ids {
		r, err := s.GetWorkout(id)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, nil
}

// LastWorkout returns the most recently finished workout, or nil.
func (s *Store) LastWorkout() (*WorkoutRecord, error) {
	records, err := s.ListWorkouts(WorkoutFilter{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

func (s *Store) DeleteWorkout(id int64) error {
	_, err := s.db.Exec(`DELETE FROM workouts WHERE id = ?`, id)
	return err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func joinMuscles(ms []catalog.MuscleGroup) string {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = string(m)
	}
	return strings.Join(parts, ",")
}

func joinEquipment(es []catalog.Equipment) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = string(e)
	}
	return strings.Join(parts, ",")
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
