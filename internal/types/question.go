// Package types provides type definitions for structured data used throughout the career-compass system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// QuestionType identifies how a question is answered
type QuestionType string

// Supported question types
const (
	QuestionSingleChoice QuestionType = "single_choice"
	QuestionMultiChoice  QuestionType = "multi_choice"
	QuestionFreeText     QuestionType = "free_text"
	QuestionMatrix       QuestionType = "matrix"
	QuestionRating       QuestionType = "rating"
)

// PathID identifies one of the mutually exclusive assessment branches
type PathID string

// Assessment paths. The branching question selects exactly one.
const (
	PathHandsOn      PathID = "path_a"
	PathCareerFocus  PathID = "path_b"
	PathExploring    PathID = "path_c"
	PathUndetermined PathID = ""
)

// Valid reports whether p names one of the three assessment paths.
func (p PathID) Valid() bool {
	switch p {
	case PathHandsOn, PathCareerFocus, PathExploring:
		return true
	}
	return false
}

// Option is a selectable answer value
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Trigger makes a question conditional on a parent answer
type Trigger struct {
	ParentID string `json:"parent_id"`
	Value    string `json:"value"`
}

// Question is an immutable assessment question definition
type Question struct {
	ID        string       `json:"id"`
	Type      QuestionType `json:"type"`
	Prompt    string       `json:"prompt"`
	Options   []Option     `json:"options,omitempty"`
	Rows      []string     `json:"rows,omitempty"`       // matrix rows
	Min       int          `json:"min,omitempty"`        // rating lower bound
	Max       int          `json:"max,omitempty"`        // rating upper bound
	MaxLength int          `json:"max_length,omitempty"` // free text limit
	Pattern   string       `json:"pattern,omitempty"`    // free text format
	Required  bool         `json:"required"`
	Trigger   *Trigger     `json:"trigger,omitempty"`
	Weight    float64      `json:"weight"`
}

// HasOption reports whether value is one of the question's option values.
func (q *Question) HasOption(value string) bool {
	for _, opt := range q.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// HasRow reports whether row is one of the matrix rows.
func (q *Question) HasRow(row string) bool {
	for _, r := range q.Rows {
		if r == row {
			return true
		}
	}
	return false
}
