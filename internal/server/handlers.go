package server

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/pipeline"
	"github.com/jonathan/career-compass/internal/types"
)

// PathResponse is the body of POST /path
type PathResponse struct {
	Answer string       `json:"answer"`
	Path   types.PathID `json:"path"`
}

// QuestionsResponse is the body of GET /questions
type QuestionsResponse struct {
	Path      types.PathID     `json:"path,omitempty"`
	Questions []types.Question `json:"questions"`
}

// CareersResponse is the body of GET /careers
type CareersResponse struct {
	Careers []types.Career `json:"careers"`
	Total   int            `json:"total"`
}

// validatable is implemented by the request DTOs
type validatable interface {
	Validate() error
}

// decodeRequest decodes and validates a request body.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, req validatable) bool {
	if !s.decodeJSON(w, r, req) {
		return false
	}
	if err := req.Validate(); err != nil {
		s.serviceError(w, &ErrValidation{Message: err.Error()})
		return false
	}
	return true
}

// handleQuestions lists the questions for ?path=, or the common questions
func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	path := types.PathID(r.URL.Query().Get("path"))
	questions, err := s.service.Questions(path)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, QuestionsResponse{Path: path, Questions: questions})
}

// handleDeterminePath maps a branching answer to a path
func (s *Server) handleDeterminePath(w http.ResponseWriter, r *http.Request) {
	var req types.PathRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	s.jsonResponse(w, http.StatusOK, PathResponse{Answer: req.Answer, Path: s.service.DeterminePath(req.Answer)})
}

// handleValidate reports blocking errors and warnings for a response set
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req types.CheckRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	s.jsonResponse(w, http.StatusOK, s.service.Validate(req.Responses, req.Path))
}

// handleProgress reports completion for a response set
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	var req types.CheckRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	s.jsonResponse(w, http.StatusOK, s.service.Progress(req.Responses, req.Path))
}

// handleSubmit runs a full submission
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req types.SubmitRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	result, err := s.service.Submit(r.Context(), req.Responses, req.Path, req.Limit)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleSubmitStream runs a submission and streams progress as SSE
func (s *Server) handleSubmitStream(w http.ResponseWriter, r *http.Request) {
	var req types.SubmitRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	sse, err := NewSSEWriter(w, s.allowedOrigin)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	svc := s.service.Observed(func(e pipeline.ProgressEvent) {
		sse.WriteProgress(e) //nolint:errcheck
	})
	result, err := svc.Submit(r.Context(), req.Responses, req.Path, req.Limit)
	if err != nil {
		sse.WriteError(s.errorBody(err))
		return
	}
	if err := sse.WriteResult(result); err != nil {
		s.logger.Debug("stream closed before result", zap.Error(err))
	}
}

// handleListCareers lists the catalog
func (s *Server) handleListCareers(w http.ResponseWriter, _ *http.Request) {
	careers := s.service.Careers()
	s.jsonResponse(w, http.StatusOK, CareersResponse{Careers: careers, Total: len(careers)})
}

// handleGetCareer resolves a career by id, title or alias
func (s *Server) handleGetCareer(w http.ResponseWriter, r *http.Request) {
	career, err := s.service.Career(r.PathValue("id"))
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, career)
}

// handleStartSession creates a session
func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.service.StartSession(r.Context())
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, sess)
}

// handleGetSession returns a session
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.service.GetSession(r.Context(), r.PathValue("id"))
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess)
}

// handleAnswerSession applies a batch of answers
func (s *Server) handleAnswerSession(w http.ResponseWriter, r *http.Request) {
	var req types.AnswerRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	sess, err := s.service.AnswerSession(r.Context(), r.PathValue("id"), req.Answers)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess)
}

// handleSessionProgress reports progress of a session
func (s *Server) handleSessionProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := s.service.SessionProgress(r.Context(), r.PathValue("id"))
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, progress)
}

// handleCompleteSession completes a session and returns its results.
// ?limit= caps the match count.
func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > 25 {
			s.serviceError(w, &ErrValidation{Message: "limit must be between 0 and 25"})
			return
		}
		limit = n
	}
	result, err := s.service.CompleteSession(r.Context(), r.PathValue("id"), limit)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}
