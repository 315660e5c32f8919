package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the pipeline. Handlers map these to HTTP status codes
// and the orchestrator uses them to decide whether a failure aborts the run.
var (
	// ErrInvalidInput indicates a missing or malformed request field.
	// Raised before any external call is made; not retryable.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoTranscript indicates the video has no retrievable captions.
	// Terminal for the run.
	ErrNoTranscript = errors.New("no transcript available")

	// ErrGeneration indicates a structured-generation call returned no content
	// or content that does not match the expected shape. Terminal for required
	// steps; optional steps catch it locally and continue.
	ErrGeneration = errors.New("generation failed")

	// ErrSelectionMismatch indicates the selected rank does not exist among the
	// returned viral segments. This signals a contract violation by the ranking
	// step; the pipeline fails fast rather than guessing a default.
	ErrSelectionMismatch = errors.New("selected segment not found in analysis")
)

// StepError tags an error with the pipeline step that produced it, so callers
// can report "transcript failed" vs "storyboard failed" instead of a generic
// pipeline error.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// NewStepError wraps err with the originating step name.
func NewStepError(step string, err error) *StepError {
	return &StepError{Step: step, Err: err}
}

// StepOf returns the step name carried by err, or "" when err is not step-tagged.
func StepOf(err error) string {
	var se *StepError
	if errors.As(err, &se) {
		return se.Step
	}
	return ""
}
