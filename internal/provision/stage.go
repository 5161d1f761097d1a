package provision

import (
	"errors"
	"fmt"
)

type StageID string

// Stage is one discrete provisioning step: a name, the mutation it applies
// to the build state, and an optional postcondition on the result.
type Stage struct {
	ID          StageID
	Description string

	// Apply mutates st. It sees the state produced by all prior stages.
	Apply func(cfg Config, st *State) error

	// Check validates the state Apply produced. Optional.
	Check func(st *State) error
}

// ErrStageFailed is the sentinel wrapped by every StageError.
var ErrStageFailed = errors.New("provisioning stage failed")

// StageError names the stage that aborted the sequence.
type StageError struct {
	ID  StageID
	Err error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.ID, e.Err)
}

func (e *StageError) Unwrap() []error { return []error{ErrStageFailed, e.Err} }

// FailedStage returns the ID of the stage that aborted the run, if err
// came out of a sequencer.
func FailedStage(err error) (StageID, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.ID, true
	}
	return "", false
}
