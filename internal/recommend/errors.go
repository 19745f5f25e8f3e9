package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ProviderTimeoutError is returned when the provider did not answer in time.
type ProviderTimeoutError struct {
	CareerID string
	Timeout  time.Duration
}

func (e *ProviderTimeoutError) Error() string {
	return fmt.Sprintf("provider timed out after %s for career %s", e.Timeout, e.CareerID)
}

// ProviderMalformedResponseError is returned when the provider answered with
// text that is not JSON or does not satisfy the recommendation schema.
type ProviderMalformedResponseError struct {
	CareerID string
	Reason   string
	Cause    error
}

func (e *ProviderMalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed provider response for career %s: %s: %v", e.CareerID, e.Reason, e.Cause)
	}
	return fmt.Sprintf("malformed provider response for career %s: %s", e.CareerID, e.Reason)
}

func (e *ProviderMalformedResponseError) Unwrap() error {
	return e.Cause
}

// ProviderUnavailableError covers every other provider failure, including a
// provider that is not configured.
type ProviderUnavailableError struct {
	CareerID string
	Cause    error
}

func (e *ProviderUnavailableError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("no provider available for career %s", e.CareerID)
	}
	return fmt.Sprintf("provider unavailable for career %s: %v", e.CareerID, e.Cause)
}

func (e *ProviderUnavailableError) Unwrap() error {
	return e.Cause
}

// Failure reasons reported to metrics
const (
	ReasonTimeout     = "timeout"
	ReasonMalformed   = "malformed"
	ReasonUnavailable = "unavailable"
)

// reason classifies a generative failure.
func reason(err error) string {
	var te *ProviderTimeoutError
	var me *ProviderMalformedResponseError
	switch {
	case errors.As(err, &te):
		return ReasonTimeout
	case errors.As(err, &me):
		return ReasonMalformed
	default:
		return ReasonUnavailable
	}
}

// classify wraps a raw provider error. callCtx is the per-call context that
// carried the timeout.
func classify(callCtx context.Context, careerID string, timeout time.Duration, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return &ProviderTimeoutError{CareerID: careerID, Timeout: timeout}
	}
	return &ProviderUnavailableError{CareerID: careerID, Cause: err}
}
