package server

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/assessment"
	"github.com/jonathan/career-compass/internal/pipeline"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error      string                       `json:"error"`
	Validation *assessment.ValidationResult `json:"validation,omitempty"`
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return "validation error: " + e.Message
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var ve *ErrValidation
	switch {
	case err == nil:
		return http.StatusOK
	case pipeline.IsInvalidInput(err), errors.As(err, &ve):
		return http.StatusBadRequest
	case pipeline.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errorBody maps err to a status and reply body. Internal errors are
// logged and replaced with a generic message.
func (s *Server) errorBody(err error) (int, ErrorResponse) {
	status := HTTPStatus(err)
	resp := ErrorResponse{Error: err.Error()}

	var ie *pipeline.InvalidInputError
	if errors.As(err, &ie) {
		resp.Validation = ie.Validation
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
		resp.Error = "internal error"
	}
	return status, resp
}

// serviceError writes err with its mapped status.
func (s *Server) serviceError(w http.ResponseWriter, err error) {
	status, resp := s.errorBody(err)
	s.jsonResponse(w, status, resp)
}
