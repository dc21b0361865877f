package wizard

import (
	"errors"
	"fmt"
)

var (
	ErrSubmissionInFlight = errors.New("wizard: submission already in progress")
	ErrCompleted          = errors.New("wizard: already completed")
	ErrEarlySaveDisabled  = errors.New("wizard: saving before the last step is not allowed")
)

// StaleStepError reports a commit aimed at a step other than the current one.
type StaleStepError struct {
	Current int
	Got     int
}

func (e *StaleStepError) Error() string {
	return fmt.Sprintf("wizard: step %d submitted while on step %d", e.Got, e.Current)
}

// ValidationError carries the field errors that kept a step from committing.
type ValidationError struct {
	Step   int
	Result Result
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("wizard: step %d failed validation (%d field errors)", e.Step, len(e.Result.FieldErrors))
}

// SubmissionError is a failed final submission with the message to display.
type SubmissionError struct {
	Message string
	Err     error
}

func (e *SubmissionError) Error() string { return e.Message }

func (e *SubmissionError) Unwrap() error { return e.Err }
