package assessment

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/career-compass/internal/types"
)

// NewSession creates a session in the not_started phase.
func NewSession(now time.Time) *types.Session {
	return &types.Session{
		ID:          uuid.New().String(),
		Status:      types.StatusNotStarted,
		Phase:       types.PhaseNotStarted,
		Answers:     types.Responses{},
		AnswerOrder: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Start moves a new session to branching_pending. Starting an already
// started session is a no-op.
func Start(s *types.Session, now time.Time) error {
	switch s.Phase {
	case types.PhaseCompleted:
		return ErrSessionCompleted
	case types.PhaseNotStarted, "":
		s.Phase = types.PhaseBranchingPending
		s.Status = types.StatusActive
		s.UpdatedAt = now
	}
	return nil
}

// ApplyAnswer records one answer. The first branching answer fixes the
// session path; a later branching answer selecting a different path fails
// with ErrPathLocked. An empty answer clears a previous one.
func ApplyAnswer(s *types.Session, qa types.QuestionAnswer, now time.Time) error {
	switch s.Phase {
	case types.PhaseCompleted:
		return ErrSessionCompleted
	case types.PhaseNotStarted, "":
		return ErrNotStarted
	}

	q, ok := LookupQuestion(qa.QuestionID)
	if !ok {
		e := unknownQuestion(qa.QuestionID)
		e.Blocking = true
		return &e
	}

	if qa.Answer.IsEmpty() {
		if q.ID == QCareerDirection && s.Path.Valid() {
			return ErrPathLocked
		}
		if _, had := s.Answers[q.ID]; had {
			delete(s.Answers, q.ID)
			s.AnswerOrder = removeID(s.AnswerOrder, q.ID)
			s.UpdatedAt = now
		}
		return nil
	}

	if e := CheckAnswer(q, qa.Answer); e != nil {
		return e
	}

	if q.ID == QCareerDirection {
		chosen := DeterminePath(qa.Answer.First())
		if s.Path.Valid() && chosen != s.Path {
			return ErrPathLocked
		}
		s.Path = chosen
		s.Phase = types.PhasePathActive
	}

	if s.Answers == nil {
		s.Answers = types.Responses{}
	}
	if _, had := s.Answers[q.ID]; !had {
		s.AnswerOrder = append(s.AnswerOrder, q.ID)
	}
	s.Answers[q.ID] = qa.Answer.Clone()
	s.UpdatedAt = now
	return nil
}

// Complete validates the session answers and, when nothing blocks, moves
// the session to completed. The validation result is returned either way.
func Complete(s *types.Session, now time.Time) (ValidationResult, error) {
	if s.Phase == types.PhaseCompleted {
		return ValidationResult{IsValid: true, Errors: []ValidationError{}, Warnings: []ValidationError{}}, ErrSessionCompleted
	}
	if !StateOf(s).Active() {
		res := Validate(s.Answers, s.Path)
		if !res.HasBlocking() {
			res.Errors = append(res.Errors, missingRequired(QCareerDirection))
			res.IsValid = false
		}
		return res, ErrIncomplete
	}

	res := Validate(s.Answers, s.Path)
	if res.HasBlocking() {
		return res, ErrIncomplete
	}
	s.Phase = types.PhaseCompleted
	s.Status = types.StatusCompleted
	s.UpdatedAt = now
	s.CompletedAt = &now
	return res, nil
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
