package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/PJEDeveloper/thinker/internal/domain"
)

// DefaultSessionID names the single process-wide session the HTTP surface
// uses. The store is keyed by id so per-client sessions can be added without
// touching the state containers.
const DefaultSessionID = domain.SessionID("default")

type Store struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*Session
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[domain.SessionID]*Session),
	}
}

// Get returns the session for id, creating it empty on first use.
func (s *Store) Get(id domain.SessionID) *Session {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		return sess
	}
	sess = newSession(id)
	s.sessions[id] = sess
	return sess
}

// Default returns the process-wide session.
func (s *Store) Default() *Session {
	return s.Get(DefaultSessionID)
}

// Create makes a fresh session under a new id.
func (s *Store) Create() *Session {
	return s.Get(domain.SessionID(uuid.NewString()))
}
