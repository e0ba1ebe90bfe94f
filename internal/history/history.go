// Package history keeps the recent detections and analyses of each session in
// process memory.
package history

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is the number of records kept per list.
const DefaultCapacity = 10

// Kind names a history list.
type Kind string

const (
	KindDisease Kind = "disease"
	KindSoil    Kind = "soil"
)

// Record is one past result.
type Record struct {
	ID         uuid.UUID      `json:"id"`
	Timestamp  time.Time      `json:"timestamp"`
	Label      string         `json:"label"`
	Confidence float64        `json:"confidence"`
	Details    map[string]any `json:"details,omitempty"`
}

type session struct {
	lists    map[Kind][]Record
	lastSeen time.Time
}

// Store holds bounded, newest-first record lists keyed by session ID.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session
	capacity int
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a store keeping at most capacity records per list.
// A non-positive capacity uses DefaultCapacity.
func NewStore(capacity int, opts ...Option) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &Store{
		sessions: make(map[string]*session),
		capacity: capacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSessionID issues a fresh session ID.
func NewSessionID() string {
	return uuid.NewString()
}

// Add prepends a record to the kind list of sessionID, dropping the oldest
// entry when the list is full. The stored record is returned.
func (s *Store) Add(sessionID string, kind Kind, label string, confidence float64, details map[string]any) Record {
	rec := Record{
		ID:         uuid.New(),
		Timestamp:  s.now(),
		Label:      label,
		Confidence: confidence,
		Details:    details,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{lists: make(map[Kind][]Record)}
		s.sessions[sessionID] = sess
	}
	sess.lastSeen = rec.Timestamp

	list := append([]Record{rec}, sess.lists[kind]...)
	if len(list) > s.capacity {
		list = list[:s.capacity]
	}
	sess.lists[kind] = list
	return rec
}

// List returns the kind list of sessionID, newest first.
func (s *Store) List(sessionID string, kind Kind) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return []Record{}
	}
	return append([]Record{}, sess.lists[kind]...)
}

// Clear drops every list of sessionID.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
}

// Prune drops sessions idle for longer than maxIdle and returns how many were removed.
func (s *Store) Prune(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Sessions returns the number of live sessions.
func (s *Store) Sessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}
