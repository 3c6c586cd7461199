package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sadopc/liftr/internal/catalog"
	"github.com/sadopc/liftr/internal/workout"
)

type templateSet struct {
	ID     string   `json:"id"`
	Reps   *int     `json:"reps"`
	Weight *float64 `json:"weight"`
}

type templateExercise struct {
	ExerciseID   string        `json:"exercise_id"`
	Name         string        `json:"name"`
	MuscleGroups []string      `json:"muscle_groups"`
	Equipment    []string      `json:"equipment"`
	Sets         []templateSet `json:"sets"`
}

// SaveTemplate appends a template. Templates are never updated.
func (s *Store) SaveTemplate(t workout.Template) error {
	doc := make([]templateExercise, len(t.Exercises))
	for i, ex := range t.Exercises {
		te := templateExercise{ExerciseID: ex.Exercise.ID, Name: ex.Exercise.Name}
		for _, m := range ex.Exercise.MuscleGroups {
			te.MuscleGroups = append(te.MuscleGroups, string(m))
		}
		for _, eq := range ex.Exercise.Equipment {
			te.Equipment = append(te.Equipment, string(eq))
		}
		for _, set := range ex.Sets {
			te.Sets = append(te.Sets, templateSet{ID: set.ID, Reps: set.Reps, Weight: set.Weight})
		}
		doc[i] = te
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal template: %w", err)
	}

	created := t.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err = s.db.Exec(
		`INSERT INTO templates (id, name, exercises, created_at) VALUES (?, ?, ?, ?)`,
		t.ID, t.Name, string(data), created.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert template: %w", err)
	}
	s.log.Info("template saved", "id", t.ID, "name", t.Name, "exercises", len(t.Exercises))
	return nil
}

func (s *Store) GetTemplate(id string) (*workout.Template, error) {
	var name, data, createdAt string
	err := s.db.QueryRow(
		`SELECT name, exercises, created_at FROM templates WHERE id = ?`, id,
	).Scan(&name, &data, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get template %s: %w", id, err)
	}
	return decodeTemplate(id, name, data, createdAt)
}

// ListTemplates returns templates newest first.
func (s *Store) ListTemplates() ([]workout.Template, error) {
	rows, err := s.db.Query(`SELECT id, name, exercises, created_at FROM templates ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []workout.Template
	for rows.Next() {
		var id, name, data, createdAt string
		if err := rows.Scan(&id, &name, &data, &createdAt); err != nil {
			return nil, err
		}
		t, err := decodeTemplate(id, name, data, createdAt)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

func decodeTemplate(id, name, data, createdAt string) (*workout.Template, error) {
	var doc []templateExercise
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("decode template %s: %w", id, err)
	}
	t := &workout.Template{ID: id, Name: name}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	for _, te := range doc {
		ex, ok := catalog.Lookup(te.ExerciseID)
		if !ok {
			ex = catalog.Exercise{ID: te.ExerciseID, Name: te.Name}
			for _, m := range te.MuscleGroups {
				ex.MuscleGroups = append(ex.MuscleGroups, catalog.MuscleGroup(m))
			}
			for _, eq := range te.Equipment {
				ex.Equipment = append(ex.Equipment, catalog.Equipment(eq))
			}
		}
		se := workout.SessionExercise{Exercise: ex}
		for _, ts := range te.Sets {
			se.Sets = append(se.Sets, workout.PlannedSet{ID: ts.ID, Reps: ts.Reps, Weight: ts.Weight})
		}
		t.Exercises = append(t.Exercises, se)
	}
	return t, nil
}
