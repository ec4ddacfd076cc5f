package plans

import (
	"errors"
	"fmt"
)

// Domain failures of the plan subsystem. All are recoverable and
// returned to the caller; nothing here is retried internally.
var (
	// ErrValidation indicates a create-or-accept request carried neither
	// a generation ID nor plan text, or the text broke a field limit.
	ErrValidation = errors.New("invalid plan input")
	// ErrPlanNotFound indicates no PENDING_AI proposal matches the given
	// (generation ID, note ID) pair.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrActivePlanNotFound indicates a note has no ACTIVE plan. The Get
	// path surfaces this as absence, not a hard failure.
	ErrActivePlanNotFound = errors.New("no active plan for note")
	// ErrPlanConflict indicates a manual create collided with an
	// existing ACTIVE plan on the same note.
	ErrPlanConflict = errors.New("an active plan already exists for this note")
	// ErrRateLimited indicates a user exceeded the generation throttle.
	ErrRateLimited = errors.New("plan generation rate limit exceeded")
)

// GenerationError wraps a completion-service failure with the note it
// occurred for. The underlying cause stays reachable via errors.Is.
type GenerationError struct {
	NoteID uint64
	Err    error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	return fmt.Sprintf("plan generation failed for note %d: %v", e.NoteID, e.Err)
}

// Unwrap exposes the underlying completion-service error.
func (e *GenerationError) Unwrap() error { return e.Err }
