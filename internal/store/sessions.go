package store

import (
	"sync"

	"github.com/jengzang/cellmap-backend-go/internal/models"
)

// Sessions is the collection of measurement sessions, keyed by session
// id and ordered by insertion.
type Sessions struct {
	mu        sync.RWMutex
	byID      map[string]*models.Session
	order     []string
	listeners []func()
}

// NewSessions creates an empty session collection
func NewSessions() *Sessions {
	return &Sessions{
		byID: make(map[string]*models.Session),
	}
}

// OnAdd registers a listener fired by Trigger after a batch of adds
func (s *Sessions) OnAdd(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Get returns the session with the given id, or nil
func (s *Sessions) Get(id string) *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id]
}

// GetOrCreate returns the session with the given id, creating it
// silently with the identifying properties known at creation time.
func (s *Sessions) GetOrCreate(id, fileID, rawID string) *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.byID[id]; ok {
		return sess
	}
	sess := &models.Session{ID: id, FileID: fileID, RawID: rawID}
	s.byID[id] = sess
	s.order = append(s.order, id)
	return sess
}

// Add inserts a session. A silent add fires no listeners.
func (s *Sessions) Add(sess *models.Session, silent bool) {
	s.mu.Lock()
	if _, exists := s.byID[sess.ID]; !exists {
		s.order = append(s.order, sess.ID)
	}
	s.byID[sess.ID] = sess
	s.mu.Unlock()

	if !silent {
		s.Trigger()
	}
}

// Trigger fires the batched add notification
func (s *Sessions) Trigger() {
	s.mu.RLock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}

// At returns the session at the given insertion index, or nil
func (s *Sessions) At(index int) *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.order) {
		return nil
	}
	return s.byID[s.order[index]]
}

// All returns the sessions in insertion order
func (s *Sessions) All() []*models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]*models.Session, 0, len(s.order))
	for _, id := range s.order {
		sessions = append(sessions, s.byID[id])
	}
	return sessions
}

// Len returns the number of sessions
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// Reset drops all sessions. Listeners stay registered.
func (s *Sessions) Reset() {
	s.mu.Lock()
	s.byID = make(map[string]*models.Session)
	s.order = nil
	s.mu.Unlock()
}
