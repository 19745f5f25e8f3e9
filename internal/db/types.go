package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PersistenceError reports a failed database operation. Callers that
// persist results best-effort log it and carry on.
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s failed: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// Submission is a stored submission result
type Submission struct {
	ID        uuid.UUID       `json:"id"`
	SessionID string          `json:"session_id,omitempty"`
	Path      string          `json:"path"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

// careerAttributes holds the list-valued career fields stored as JSONB
type careerAttributes struct {
	Certifications   []string `json:"certifications,omitempty"`
	Keywords         []string `json:"keywords"`
	Traits           []string `json:"traits,omitempty"`
	Aliases          []string `json:"aliases,omitempty"`
	WorkEnvironments []string `json:"work_environments,omitempty"`
}
