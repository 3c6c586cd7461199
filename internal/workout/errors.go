package workout

import "errors"

var (
	ErrEmptyWorkout     = errors.New("workout has no exercises")
	ErrNoSets           = errors.New("exercise has no sets")
	ErrInvalidIndex     = errors.New("index out of range")
	ErrSetCountMismatch = errors.New("set count mismatch")
	ErrNotComplete      = errors.New("workout not complete")
	ErrFinished         = errors.New("workout already finished")
)
