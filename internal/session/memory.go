package session

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	retain   int
	sessions []Session
}

// NewMemoryStore returns an empty store keeping at most retain
// sessions. A non-positive retain means DefaultRetain.
func NewMemoryStore(retain int) *MemoryStore {
	return &MemoryStore{retain: normalizeRetain(retain)}
}

func (m *MemoryStore) Put(ctx context.Context, s Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validate(s); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.sessions {
		if existing.ID == s.ID {
			return fmt.Errorf("%w: %s", ErrExists, s.ID)
		}
	}
	m.sessions = trim(append(m.sessions, s), m.retain)
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return Session{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (m *MemoryStore) List(ctx context.Context) ([]Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Session{}, m.sessions...), nil
}

func (m *MemoryStore) Close() error { return nil }
