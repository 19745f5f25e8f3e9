package pipeline

import (
	"errors"
	"fmt"

	"github.com/jonathan/career-compass/internal/assessment"
	"github.com/jonathan/career-compass/internal/session"
)

// InvalidInputError reports a request the caller must fix. Validation is
// set when the responses themselves were rejected.
type InvalidInputError struct {
	Message    string
	Validation *assessment.ValidationResult
	Cause      error
}

func (e *InvalidInputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid input: %s: %v", e.Message, e.Cause)
	}
	return "invalid input: " + e.Message
}

func (e *InvalidInputError) Unwrap() error {
	return e.Cause
}

// NotFoundError reports an unknown session or career.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// IsInvalidInput reports whether err is an InvalidInputError.
func IsInvalidInput(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// sessionError translates store and state machine errors for session id.
func sessionError(id string, err error) error {
	if err == nil {
		return nil
	}
	var ve *assessment.ValidationError
	switch {
	case errors.Is(err, session.ErrNotFound):
		return &NotFoundError{Kind: "session", ID: id}
	case errors.Is(err, assessment.ErrSessionCompleted):
		return &InvalidInputError{Message: "session is already completed", Cause: err}
	case errors.Is(err, assessment.ErrPathLocked):
		return &InvalidInputError{Message: "assessment path cannot change", Cause: err}
	case errors.Is(err, assessment.ErrNotStarted):
		return &InvalidInputError{Message: "session has not been started", Cause: err}
	case errors.As(err, &ve):
		return &InvalidInputError{Message: "answer rejected", Cause: err}
	}
	return err
}
