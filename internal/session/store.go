// Package session stores assessment sessions keyed by opaque session id.
// Every mutation is an atomic read-modify-write of one session.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/career-compass/internal/types"
)

// DefaultTTL is how long an untouched session is kept.
const DefaultTTL = 7 * 24 * time.Hour

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session not found")

// Mutator changes a session in place. Returning an error aborts the update
// and leaves the stored session untouched.
type Mutator func(s *types.Session) error

// Store is the session store collaborator.
type Store interface {
	Create(ctx context.Context, s *types.Session) error
	Get(ctx context.Context, id string) (*types.Session, error)
	UpdateAnswers(ctx context.Context, id string, fn Mutator) (*types.Session, error)
	MarkComplete(ctx context.Context, id string, fn Mutator) (*types.Session, error)
}

// completing wraps fn so the update fails unless the session ends completed.
func completing(fn Mutator) Mutator {
	return func(s *types.Session) error {
		if err := fn(s); err != nil {
			return err
		}
		if s.Status != types.StatusCompleted {
			return fmt.Errorf("session %s was not completed", s.ID)
		}
		return nil
	}
}
