package db

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Submission Methods
// -----------------------------------------------------------------------------

// SaveSubmission stores a submission result and returns its ID. sessionID
// may be empty for submissions made without a session.
func (db *DB) SaveSubmission(ctx context.Context, sessionID, path string, result any) (uuid.UUID, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return uuid.Nil, &PersistenceError{Op: "encode submission", Cause: err}
	}

	id := uuid.New()
	var session *string
	if sessionID != "" {
		session = &sessionID
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO submissions (id, session_id, path, result)
		 VALUES ($1, $2, $3, $4)`,
		id, session, path, data,
	)
	if err != nil {
		return uuid.Nil, &PersistenceError{Op: "save submission", Cause: err}
	}
	return id, nil
}

// GetSubmission retrieves a submission by ID. It returns nil, nil when the
// submission does not exist.
func (db *DB) GetSubmission(ctx context.Context, id uuid.UUID) (*Submission, error) {
	var s Submission
	var session *string
	var result []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, session_id, path, result, created_at
		 FROM submissions WHERE id = $1`,
		id,
	).Scan(&s.ID, &session, &s.Path, &result, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, &PersistenceError{Op: "get submission", Cause: err}
	}
	if session != nil {
		s.SessionID = *session
	}
	s.Result = result
	return &s, nil
}

// ListSessionSubmissions returns the submissions recorded for a session,
// newest first.
func (db *DB) ListSessionSubmissions(ctx context.Context, sessionID string, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, path, result, created_at
		 FROM submissions WHERE session_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		sessionID, limit,
	)
	if err != nil {
		return nil, &PersistenceError{Op: "list submissions", Cause: err}
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		s := Submission{SessionID: sessionID}
		var result []byte
		if err := rows.Scan(&s.ID, &s.Path, &result, &s.CreatedAt); err != nil {
			return nil, &PersistenceError{Op: "scan submission", Cause: err}
		}
		s.Result = result
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "list submissions", Cause: err}
	}
	return out, nil
}
