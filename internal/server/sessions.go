package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/oklog/ulid/v2"

	"github.com/Faultbox/shelfview/internal/selector"
	"github.com/Faultbox/shelfview/internal/shelf"
)

// Session is one remote viewer: a selector over a stored layout. All access
// to the selector goes through Do.
type Session struct {
	ID       string
	LayoutID uuid.UUID

	mu      sync.Mutex
	sel     *selector.Selector
	pending []shelf.Location // OnSelect payloads not yet logged
}

// Do runs fn with exclusive access to the selector and returns the
// selections it produced.
func (s *Session) Do(fn func(sel *selector.Selector)) []shelf.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = s.pending[:0]
	fn(s.sel)
	if len(s.pending) == 0 {
		return nil
	}
	out := make([]shelf.Location, len(s.pending))
	copy(out, s.pending)
	return out
}

func (s *Session) onSelect(loc shelf.Location) {
	s.pending = append(s.pending, loc)
}

// Sessions is a bounded registry of sessions. Idle sessions expire after
// the TTL; the least recently used one is evicted when full.
type Sessions struct {
	lru *expirable.LRU[string, *Session]
}

// NewSessions creates a registry.
func NewSessions(size int, ttl time.Duration) *Sessions {
	if size <= 0 {
		size = 256
	}
	return &Sessions{lru: expirable.NewLRU[string, *Session](size, nil, ttl)}
}

// newSession allocates a session with a fresh id. The selector is attached
// by the caller.
func newSession(layoutID uuid.UUID) *Session {
	return &Session{ID: ulid.Make().String(), LayoutID: layoutID}
}

// Add registers a session.
func (r *Sessions) Add(s *Session) {
	r.lru.Add(s.ID, s)
}

// Get returns a live session and refreshes its expiry.
func (r *Sessions) Get(id string) (*Session, bool) {
	s, ok := r.lru.Get(id)
	if ok {
		r.lru.Add(id, s)
	}
	return s, ok
}

// Remove drops a session. Reports whether it existed.
func (r *Sessions) Remove(id string) bool {
	return r.lru.Remove(id)
}

// Len returns the number of live sessions.
func (r *Sessions) Len() int {
	return r.lru.Len()
}
