package chatstore

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/diveplanner/internal/domain/chat"
)

type sessionRecord struct {
	payload   chat.Session
	expiresAt time.Time
}

// MemoryStore keeps chat sessions in process memory for tests/dev.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]sessionRecord
	now      func() time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]sessionRecord),
		now:      time.Now,
	}
}

// Get implements chat.SessionStore.
func (s *MemoryStore) Get(_ context.Context, id string) (chat.Session, bool, error) {
	s.mu.RLock()
	record, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return chat.Session{}, false, nil
	}
	if s.expired(record.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return chat.Session{}, false, nil
	}
	return clone(record.payload), true, nil
}

// Save stores the session with optional TTL.
func (s *MemoryStore) Save(_ context.Context, session chat.Session, ttl time.Duration) error {
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = sessionRecord{payload: clone(session), expiresAt: exp}
	return nil
}

// Delete removes the session if present.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) expired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(s.now())
}

// clone detaches the slices so callers cannot mutate stored state.
func clone(session chat.Session) chat.Session {
	session.History = append(session.History[:0:0], session.History...)
	session.Transcript = append(session.Transcript[:0:0], session.Transcript...)
	return session
}

var _ chat.SessionStore = (*MemoryStore)(nil)
