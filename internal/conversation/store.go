package conversation

import "sync"

// Store owns the map of call SID to live session. It is the only structure
// shared between calls; sessions themselves are independent.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// GetOrCreate returns the session for callSID, creating it if absent.
// Creation is atomic: two near-simultaneous first webhooks for the same call
// observe the same session. The bool reports whether a session was created.
func (s *Store) GetOrCreate(callSID string, callID int64) (*Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[callSID]
	s.mu.RUnlock()
	if ok {
		return sess, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[callSID]; ok {
		return sess, false
	}
	sess = NewSession(callSID, callID)
	s.sessions[callSID] = sess
	return sess, true
}

// Get returns the session for callSID, if present.
func (s *Store) Get(callSID string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[callSID]
	return sess, ok
}

// Remove drops the session for callSID and returns it, if present.
func (s *Store) Remove(callSID string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[callSID]
	if ok {
		delete(s.sessions, callSID)
	}
	return sess, ok
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
