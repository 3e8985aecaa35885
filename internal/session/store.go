// Package session provides the in-memory session store. All mutation goes
// through Update and TryBeginFinalization; no shared state escapes the
// package.
package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/hiveguard/honeytrap/internal/domain"
)

type entry struct {
	mu sync.Mutex
	s  domain.Session
}

// Store is a process-wide keyed collection of session state. Sessions for
// different ids are fully independent; operations on the same id serialize
// on a per-session lock.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*entry)}
}

func (st *Store) getOrCreate(sessionID string) *entry {
	st.mu.RLock()
	e, ok := st.sessions[sessionID]
	st.mu.RUnlock()
	if ok {
		return e
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if e, ok := st.sessions[sessionID]; ok {
		return e
	}
	e = &entry{s: domain.Session{
		SessionID: sessionID,
		CreatedAt: time.Now(),
	}}
	st.sessions[sessionID] = e
	return e
}

// Update creates the session if needed, runs fn on it under the session
// lock, and returns a snapshot of the resulting state. fn must not retain
// the *domain.Session beyond the call.
func (st *Store) Update(sessionID string, fn func(*domain.Session)) domain.Session {
	e := st.getOrCreate(sessionID)
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.s)
	return snapshot(&e.s)
}

// Snapshot returns a copy of the session state, or false if the session has
// never been seen.
func (st *Store) Snapshot(sessionID string) (domain.Session, bool) {
	st.mu.RLock()
	e, ok := st.sessions[sessionID]
	st.mu.RUnlock()
	if !ok {
		return domain.Session{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshot(&e.s), true
}

// TryBeginFinalization atomically latches FinalizationTriggered. It returns
// true for exactly one caller per session; every later or concurrent call
// returns false. Unknown ids return false.
func (st *Store) TryBeginFinalization(sessionID string) bool {
	st.mu.RLock()
	e, ok := st.sessions[sessionID]
	st.mu.RUnlock()
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.s.FinalizationTriggered {
		return false
	}
	e.s.FinalizationTriggered = true
	return true
}

// Len returns the number of retained sessions. Sessions are never evicted,
// so this only grows.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

func snapshot(s *domain.Session) domain.Session {
	cp := *s
	cp.History = append([]json.RawMessage(nil), s.History...)
	return cp
}
