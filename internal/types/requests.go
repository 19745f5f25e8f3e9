package types

import (
	"github.com/go-playground/validator/v10"
)

// validate is shared; validator caches struct metadata and is safe for concurrent use.
var validate = validator.New()

// SubmitRequest represents a full assessment submission.
type SubmitRequest struct {
	Responses Responses `json:"responses" validate:"required"`
	Path      PathID    `json:"path,omitempty" validate:"omitempty,oneof=path_a path_b path_c"`
	Limit     int       `json:"limit,omitempty" validate:"gte=0,lte=25"`
}

// CheckRequest is the body for validate and progress calls.
type CheckRequest struct {
	Responses Responses `json:"responses"`
	Path      PathID    `json:"path" validate:"omitempty,oneof=path_a path_b path_c"`
}

// PathRequest asks which path a branching answer selects.
type PathRequest struct {
	Answer string `json:"answer" validate:"required"`
}

// AnswerRequest carries answers for an existing session.
type AnswerRequest struct {
	Answers []QuestionAnswer `json:"answers" validate:"required,min=1,dive"`
}

// Validate validates the SubmitRequest using the validator.
func (r *SubmitRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the CheckRequest using the validator.
func (r *CheckRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the PathRequest using the validator.
func (r *PathRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the AnswerRequest using the validator.
func (r *AnswerRequest) Validate() error {
	return validate.Struct(r)
}

// ValidateCareer validates a catalog record against its struct tags.
func ValidateCareer(c *Career) error {
	return validate.Struct(c)
}
