package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrNoVacancy            = errors.New("no vacant cell found")
)

// WrapStepError annotates err with the step it happened in.
func WrapStepError(step int, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("step %d: %w", step, err)
}
