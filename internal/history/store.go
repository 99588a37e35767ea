package history

import (
	"fmt"
	"sync"
)

// Store keeps one History per monitoring session, keyed by session ID.
// Sessions are created lazily on first use and discarded explicitly or when
// the process exits; there is no cross-restart persistence.
type Store struct {
	mu          sync.RWMutex
	sessions    map[string]*History
	maxSessions int
}

// SessionLimitError is returned when creating a session would exceed the
// configured cap.
type SessionLimitError struct {
	Limit int
}

func (e *SessionLimitError) Error() string {
	return fmt.Sprintf("session limit reached: %d active sessions", e.Limit)
}

// IsTransient returns true; capacity frees up as sessions are deleted.
func (e *SessionLimitError) IsTransient() bool {
	return true
}

// NewStore creates a session store. maxSessions <= 0 means unbounded.
func NewStore(maxSessions int) *Store {
	return &Store{
		sessions:    make(map[string]*History),
		maxSessions: maxSessions,
	}
}

// Get returns the history for a session if it exists.
func (s *Store) Get(sessionID string) (*History, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.sessions[sessionID]
	return h, ok
}

// GetOrCreate returns the history for a session, creating it when absent.
func (s *Store) GetOrCreate(sessionID string) (*History, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h, ok := s.sessions[sessionID]; ok {
		return h, nil
	}

	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		return nil, &SessionLimitError{Limit: s.maxSessions}
	}

	h := New()
	s.sessions[sessionID] = h
	return h, nil
}

// Delete removes a session and its history.
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Len returns the number of active sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
