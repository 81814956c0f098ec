package domain

import "sync"

// Session tracks the active user for one process lifetime. It is never
// persisted; a fresh process always starts logged out.
type Session struct {
	mu     sync.RWMutex
	userID string
}

func NewSession() *Session {
	return &Session{}
}

// Set makes the given user the active one. The id is not validated here;
// callers decide whether it references a real user.
func (s *Session) Set(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
}

// Clear logs the active user out. Clearing an empty session is a no-op.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
}

// UserID returns the active user id, or "" when nobody is logged in.
func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Active reports whether a user is logged in.
func (s *Session) Active() bool {
	return s.UserID() != ""
}
