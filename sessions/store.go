package sessions

import (
	"sync"
	"time"
)

const (
	// MaxHistory is the number of dialogue turns retained per session.
	MaxHistory = 10
	// IdleTimeout is how long a session may sit untouched before its
	// history is discarded on the next access.
	IdleTimeout = 30 * time.Minute
)

// Session is the short-lived conversational memory for one user.
type Session struct {
	History    []string
	LastActive time.Time
}

// Store owns the user-id -> session mapping. It replaces what used to be an
// ambient global map: callers get a handle and the store guards all access
// with a mutex. Idle expiry is checked on access, there is no sweeper.
type Store struct {
	mu      sync.Mutex
	m       map[string]*Session
	nowFunc func() time.Time
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{m: make(map[string]*Session), nowFunc: time.Now}
}

// WithClock overrides the wall clock, for tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.nowFunc = now
	return s
}

// GetOrCreate returns a copy of the user's history, creating a fresh session
// on first access or after the idle timeout. Every call refreshes the
// session's last-active time and trims history to the most recent MaxHistory
// turns, oldest first.
func (s *Store) GetOrCreate(userID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFunc()
	sess, ok := s.m[userID]
	if !ok || now.Sub(sess.LastActive) > IdleTimeout {
		sess = &Session{LastActive: now}
		s.m[userID] = sess
		return nil
	}

	sess.LastActive = now
	if len(sess.History) > MaxHistory {
		sess.History = append([]string(nil), sess.History[len(sess.History)-MaxHistory:]...)
	}

	out := make([]string, len(sess.History))
	copy(out, sess.History)
	return out
}

// Append adds one dialogue turn to the user's history. The session is
// created if it does not exist; expiry is not re-checked here since Append
// always follows a GetOrCreate in the same request.
func (s *Store) Append(userID, turn string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.m[userID]
	if !ok {
		sess = &Session{LastActive: s.nowFunc()}
		s.m[userID] = sess
	}
	sess.History = append(sess.History, turn)
}

// History returns a copy of the user's current history without refreshing
// last-active. Used when snapshotting a conversation into a ticket.
func (s *Store) History(userID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.m[userID]
	if !ok {
		return nil
	}
	out := make([]string, len(sess.History))
	copy(out, sess.History)
	return out
}

// Reset discards the user's session entirely.
func (s *Store) Reset(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, userID)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
