package store

import (
	"errors"
	"strings"
	"sync"
	"time"
)

var (
	// ErrNotFound is returned when no slot exists for a session id.
	ErrNotFound = errors.New("no state for session")
)

type slot[T any] struct {
	value    T
	stored   bool
	seq      uint64
	touched  time.Time
	inflight func() // cancels the pending submission, if any
}

// Sessions is a concurrency-safe in-memory map of session id to the last
// outcome shown to that session. Each slot is replaced wholesale on update;
// nothing is kept beyond the latest value.
type Sessions[T any] struct {
	mu sync.Mutex

	data map[string]*slot[T]

	// retention configuration
	maxAge time.Duration // idle slots older than this are pruned (0 = never)
	now    func() time.Time
}

// NewSessions creates a store whose idle slots expire after maxAge.
// If maxAge is <= 0, slots never expire.
func NewSessions[T any](maxAge time.Duration) *Sessions[T] {
	return &Sessions[T]{
		data:   make(map[string]*slot[T]),
		maxAge: maxAge,
		now:    time.Now,
	}
}

func (s *Sessions[T]) slotLocked(id string) *slot[T] {
	sl, ok := s.data[id]
	if !ok {
		sl = &slot[T]{}
		// Keys must not alias a caller's reusable buffer.
		s.data[strings.Clone(id)] = sl
	}
	sl.touched = s.now()
	return sl
}

// Get returns the latest value stored for id.
func (s *Sessions[T]) Get(id string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.data[id]
	if !ok || !sl.stored {
		var zero T
		return zero, ErrNotFound
	}
	sl.touched = s.now()
	return sl.value, nil
}

// Begin registers a new submission for id, cancelling the one still in flight
// (if any). It returns a ticket to pass to Commit.
func (s *Sessions[T]) Begin(id string, cancel func()) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl := s.slotLocked(id)
	if sl.inflight != nil {
		sl.inflight()
	}
	sl.inflight = cancel
	sl.seq++
	return sl.seq
}

// Commit stores value for id if ticket is still the newest submission.
// It reports whether the value was stored.
func (s *Sessions[T]) Commit(id string, ticket uint64, value T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.data[id]
	if !ok || sl.seq != ticket {
		return false
	}
	sl.value = value
	sl.stored = true
	sl.inflight = nil
	sl.touched = s.now()
	return true
}

// Len returns the number of live session slots.
func (s *Sessions[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// Prune drops slots idle for longer than maxAge and returns how many were removed.
func (s *Sessions[T]) Prune() int {
	if s.maxAge <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.maxAge)
	removed := 0
	for id, sl := range s.data {
		if sl.touched.Before(cutoff) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}
