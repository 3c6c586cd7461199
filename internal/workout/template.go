package workout

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrTemplateName = errors.New("template name is required")

// Template is a saved exercise list. Templates are append-only.
type Template struct {
	ID        string
	Name      string
	Exercises []SessionExercise
	CreatedAt time.Time
}

// NewTemplate snapshots a plan under a name.
func NewTemplate(name string, p *Plan) (Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Template{}, ErrTemplateName
	}
	if p.Len() == 0 {
		return Template{}, ErrEmptyWorkout
	}
	return Template{
		ID:        uuid.NewString(),
		Name:      name,
		Exercises: p.Exercises(),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Plan opens the template for preparation. Set IDs are fresh.
func (t Template) Plan() *Plan {
	return planFrom(t.Exercises)
}
