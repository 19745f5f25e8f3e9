package assessment

import (
	"errors"
	"fmt"
)

// Issue codes reported by Validate
const (
	CodeMissingRequiredField     = "missing_required_field"
	CodeOutOfRangeAnswer         = "out_of_range_answer"
	CodeInvalidConditionalAnswer = "invalid_conditional_answer"
	CodeUnknownQuestion          = "unknown_question"
)

// Session transition errors
var (
	ErrSessionCompleted = errors.New("session is completed and can no longer change")
	ErrPathLocked       = errors.New("assessment path was already chosen and cannot change")
	ErrNotStarted       = errors.New("session has not been started")
	ErrIncomplete       = errors.New("assessment has blocking validation errors")
)

// ValidationError describes one problem with a set of responses.
// Blocking errors prevent completion; warnings never do.
type ValidationError struct {
	Code       string `json:"code"`
	QuestionID string `json:"question_id"`
	Message    string `json:"message"`
	Blocking   bool   `json:"blocking"`
}

func (e *ValidationError) Error() string {
	if e.QuestionID != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.QuestionID, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func missingRequired(id string) ValidationError {
	return ValidationError{
		Code:       CodeMissingRequiredField,
		QuestionID: id,
		Message:    "an answer is required",
		Blocking:   true,
	}
}

func outOfRange(id, format string, args ...any) ValidationError {
	return ValidationError{
		Code:       CodeOutOfRangeAnswer,
		QuestionID: id,
		Message:    fmt.Sprintf(format, args...),
		Blocking:   true,
	}
}

func invalidConditional(id, message string) ValidationError {
	return ValidationError{
		Code:       CodeInvalidConditionalAnswer,
		QuestionID: id,
		Message:    message,
	}
}

func unknownQuestion(id string) ValidationError {
	return ValidationError{
		Code:       CodeUnknownQuestion,
		QuestionID: id,
		Message:    "no such question; the answer is ignored",
	}
}
