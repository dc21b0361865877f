package wizard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind names the flow a session runs.
type Kind string

const (
	KindJobCreate         Kind = "job-create"
	KindJobEdit           Kind = "job-edit"
	KindApplicationGuest  Kind = "application-guest"
	KindApplicationMember Kind = "application-member"
)

// Session is a live wizard bound to the tenant and actor that started it.
type Session struct {
	ID         uuid.UUID
	Kind       Kind
	TenantID   uuid.UUID
	Owner      string
	Subject    uint // job being edited or applied to; 0 for a new job
	Controller *Controller
	CreatedAt  time.Time

	lastSeen time.Time
}

// Store keeps the live sessions of one server. Sessions idle for longer
// than the TTL are dropped by Purge.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Open registers a new session for c and returns it.
func (s *Store) Open(kind Kind, tenantID uuid.UUID, owner string, subject uint, c *Controller) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	sess := &Session{
		ID:         uuid.New(),
		Kind:       kind,
		TenantID:   tenantID,
		Owner:      owner,
		Subject:    subject,
		Controller: c,
		CreatedAt:  now,
		lastSeen:   now,
	}
	s.sessions[sess.ID] = sess
	return sess
}

// Get returns the session when it exists and belongs to tenantID.
func (s *Store) Get(id, tenantID uuid.UUID) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || sess.TenantID != tenantID {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess, true
}

func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Purge drops idle sessions and returns how many went. Sessions with a
// submission in flight are kept.
func (s *Store) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.ttl)
	n := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) && sess.Controller.State().Phase != PhaseSubmitting {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
