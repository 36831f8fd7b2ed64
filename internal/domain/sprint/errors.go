package sprint

import (
	"errors"
	"fmt"
)

var (
	ErrSprintClosed       = errors.New("sprint is already closed")
	ErrSprintEnded        = errors.New("sprint has already ended")
	ErrConflictingClosure = errors.New("moveIncompleteTo and removeIncomplete cannot be used together")
	ErrTargetIsSameSprint = errors.New("incomplete tickets cannot be moved to the sprint being closed")
)

// CapacityExceededError reports a capacity check that failed.
type CapacityExceededError struct {
	Current   int
	Max       int
	New       int
	Available int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("sprint capacity exceeded: current %d + new %d > max %d (available %d)",
		e.Current, e.New, e.Max, e.Available)
}
