package types

import "time"

// SessionStatus is the externally visible lifecycle state of a session
type SessionStatus string

// Session statuses
const (
	StatusNotStarted SessionStatus = "not_started"
	StatusActive     SessionStatus = "active"
	StatusCompleted  SessionStatus = "completed"
)

// Phase is the state machine position of a session
type Phase string

// State machine phases. A session in PhasePathActive always carries a path.
const (
	PhaseNotStarted       Phase = "not_started"
	PhaseBranchingPending Phase = "branching_pending"
	PhasePathActive       Phase = "path_active"
	PhaseCompleted        Phase = "completed"
)

// Session represents one student's progress through the assessment
type Session struct {
	ID          string        `json:"id"`
	Status      SessionStatus `json:"status"`
	Phase       Phase         `json:"phase"`
	Path        PathID        `json:"path,omitempty"`
	Answers     Responses     `json:"answers"`
	AnswerOrder []string      `json:"answer_order"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

// OrderedAnswers returns the session's answers in submission order.
func (s *Session) OrderedAnswers() []QuestionAnswer {
	out := make([]QuestionAnswer, 0, len(s.AnswerOrder))
	for _, id := range s.AnswerOrder {
		if a, ok := s.Answers[id]; ok {
			out = append(out, QuestionAnswer{QuestionID: id, Answer: a})
		}
	}
	return out
}

// QuestionAnswer pairs a question ID with its answer
type QuestionAnswer struct {
	QuestionID string `json:"question_id" validate:"required"`
	Answer     Answer `json:"answer"`
}
