package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/assessment"
	"github.com/jonathan/career-compass/internal/pipeline"
)

func TestHTTPStatus(t *testing.T) {
	invalid := &pipeline.InvalidInputError{Message: "bad"}
	cases := map[string]struct {
		err  error
		want int
	}{
		"nil":                   {nil, http.StatusOK},
		"invalid input":         {invalid, http.StatusBadRequest},
		"wrapped invalid input": {fmt.Errorf("submit: %w", invalid), http.StatusBadRequest},
		"request validation":    {&ErrValidation{Message: "answers is required"}, http.StatusBadRequest},
		"unknown session":       {&pipeline.NotFoundError{Kind: "session", ID: "x"}, http.StatusNotFound},
		"store failure":         {errors.New("redis down"), http.StatusInternalServerError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestErrorBody(t *testing.T) {
	s := &Server{logger: zap.NewNop()}

	t.Run("invalid input carries the validation result", func(t *testing.T) {
		vr := &assessment.ValidationResult{Errors: []assessment.ValidationError{{QuestionID: "grade", Blocking: true}}}
		status, body := s.errorBody(&pipeline.InvalidInputError{Message: "1 blocking error", Validation: vr})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Same(t, vr, body.Validation)
	})

	t.Run("request validation message is kept", func(t *testing.T) {
		status, body := s.errorBody(&ErrValidation{Message: "limit must be between 0 and 25"})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "validation error: limit must be between 0 and 25", body.Error)
		assert.Nil(t, body.Validation)
	})

	t.Run("internal errors are not echoed", func(t *testing.T) {
		status, body := s.errorBody(errors.New("dial tcp 10.0.0.3:6379: refused"))
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "internal error", body.Error)
	})
}
