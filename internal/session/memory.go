package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jonathan/career-compass/internal/types"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore is an in-process Store for tests and single-instance use.
// Sessions are stored encoded so callers never share state with the store.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates a MemoryStore. A non-positive ttl uses DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Create stores a new session.
func (m *MemoryStore) Create(_ context.Context, s *types.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.lookup(s.ID); ok {
		return fmt.Errorf("session %s already exists", s.ID)
	}
	return m.put(s)
}

// Get loads a session.
func (m *MemoryStore) Get(_ context.Context, id string) (*types.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}
	return decode(e.data)
}

// UpdateAnswers applies fn atomically.
func (m *MemoryStore) UpdateAnswers(_ context.Context, id string, fn Mutator) (*types.Session, error) {
	return m.update(id, fn)
}

// MarkComplete applies fn atomically; fn must leave the session completed.
func (m *MemoryStore) MarkComplete(_ context.Context, id string, fn Mutator) (*types.Session, error) {
	return m.update(id, completing(fn))
}

func (m *MemoryStore) update(id string, fn Mutator) (*types.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}
	s, err := decode(e.data)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	if err := m.put(s); err != nil {
		return nil, err
	}
	return s, nil
}

// lookup returns a live entry, dropping it if expired. Caller holds mu.
func (m *MemoryStore) lookup(id string) (memoryEntry, bool) {
	e, ok := m.entries[id]
	if !ok {
		return memoryEntry{}, false
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, id)
		return memoryEntry{}, false
	}
	return e, true
}

func (m *MemoryStore) put(s *types.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	m.entries[s.ID] = memoryEntry{data: data, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func decode(data []byte) (*types.Session, error) {
	var s types.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if s.Answers == nil {
		s.Answers = types.Responses{}
	}
	return &s, nil
}
