package auth

import (
	"sync"
	"time"
)

// DefaultSessionTTL is the sliding window granted on login and on every successful check.
const DefaultSessionTTL = 2 * time.Hour

// SessionTable maps opaque tokens to expiry instants. It lives only in memory.
type SessionTable struct {
	mu       sync.Mutex
	sessions map[string]time.Time
	ttl      time.Duration
	now      func() time.Time
}

// SessionOption customizes a SessionTable.
type SessionOption func(*SessionTable)

// WithClock swaps the time source, mainly for expiry tests.
func WithClock(now func() time.Time) SessionOption {
	return func(t *SessionTable) {
		t.now = now
	}
}

func NewSessionTable(ttl time.Duration, opts ...SessionOption) *SessionTable {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	t := &SessionTable{
		sessions: make(map[string]time.Time),
		ttl:      ttl,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Add registers token with expiry now+ttl.
func (t *SessionTable) Add(token string) time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	expiry := t.now().Add(t.ttl)
	t.sessions[token] = expiry
	return expiry
}

// Touch validates token and slides its expiry forward.
// An expired token is dropped on the spot.
func (t *SessionTable) Touch(token string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	expiry, ok := t.sessions[token]
	if !ok {
		return false
	}
	now := t.now()
	if !now.Before(expiry) {
		delete(t.sessions, token)
		return false
	}
	t.sessions[token] = now.Add(t.ttl)
	return true
}

// Remove deletes token and reports whether it was present.
func (t *SessionTable) Remove(token string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.sessions[token]
	delete(t.sessions, token)
	return ok
}

// Sweep drops every expired entry and returns how many went.
func (t *SessionTable) Sweep() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	removed := 0
	for token, expiry := range t.sessions {
		if !now.Before(expiry) {
			delete(t.sessions, token)
			removed++
		}
	}
	return removed
}

// Len reports the number of held sessions, expired ones included until observed.
func (t *SessionTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}

// Clear forgets every session.
func (t *SessionTable) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessions = make(map[string]time.Time)
}
