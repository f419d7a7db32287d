package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the in-memory reference [Store]: a map keyed by session id
// with every read and mutation serialized behind one mutex. The expiration
// sweep runs inside Get's critical section, so sweep and lookup are observed
// atomically by any single call.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session

	now func() time.Time
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

func (m *MemoryStore) Put(_ context.Context, sess *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[sess.ID]; exists {
		return ErrDuplicateID
	}
	m.sessions[sess.ID] = sess.Clone()
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for sid, sess := range m.sessions {
		if sess.Expired(now) {
			delete(m.sessions, sid)
		}
	}

	sess, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess.Clone(), nil
}

func (m *MemoryStore) Update(_ context.Context, sess *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sess.ID]; !ok {
		// Lost update: the session expired or was removed concurrently.
		return nil
	}
	m.sessions[sess.ID] = sess.Clone()
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}
