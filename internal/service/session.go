package service

import (
	"sync"
	"time"

	"solarac_dashboard/internal/models"
)

// Session states.
const (
	StateInitial = "initial"
	StateLoaded  = "loaded"
)

// Session holds one user's current result. Only a successful refresh replaces it.
type Session struct {
	refreshMu sync.Mutex // serializes refreshes of this session

	mu          sync.RWMutex
	result      *models.ResultSet
	refreshedAt time.Time
}

// Snapshot returns the current result, or ok=false while still in the initial state.
func (s *Session) Snapshot() (rs models.ResultSet, refreshedAt time.Time, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return models.ResultSet{}, time.Time{}, false
	}
	return *s.result, s.refreshedAt, true
}

// State reports StateInitial or StateLoaded.
func (s *Session) State() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return StateInitial
	}
	return StateLoaded
}

func (s *Session) replace(rs models.ResultSet, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = &rs
	s.refreshedAt = at
}

// SessionStore owns one Session per authenticated user for the process lifetime.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int]*Session)}
}

// Get returns the user's session, creating it in the initial state.
func (st *SessionStore) Get(userID int) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[userID]
	if !ok {
		s = &Session{}
		st.sessions[userID] = s
	}
	return s
}
