package dialogue

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned when the learner's response text is missing
// or blank. The exchange is rejected before extraction and no state changes.
var ErrEmptyResponse = errors.New("empty learner response")

// ErrDialogueClosed is returned when an operation targets a dialogue that
// has already completed or been abandoned.
var ErrDialogueClosed = errors.New("dialogue is not active")

// ErrGenerationUnavailable wraps a text-generation collaborator failure.
// The dialogue stays active with no exchange recorded so the caller may
// retry the same turn.
type ErrGenerationUnavailable struct {
	Err error
}

func (e *ErrGenerationUnavailable) Error() string {
	return fmt.Sprintf("text generation unavailable: %v", e.Err)
}

func (e *ErrGenerationUnavailable) Unwrap() error { return e.Err }
