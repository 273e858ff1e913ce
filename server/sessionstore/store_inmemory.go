package sessionstore

import (
	"context"
	"sync"
	"time"

	errs "github.com/jrsteele09/go-login-broker/internal/errors"
)

// InMemoryStore is a thread-safe in-memory implementation of Store for
// single-process deployments. Expiry is checked lazily on read; there is no
// background sweeper.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	session  Session
	deadline time.Time
}

// NewInMemoryStore creates an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[string]memoryEntry),
	}
}

// Set creates or replaces the session stored under id.
func (s *InMemoryStore) Set(_ context.Context, id string, session Session, ttl time.Duration) error {
	if id == "" {
		return errs.Wrapf(errs.ErrSessionNotFound, "sessionID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[id] = memoryEntry{
		session:  session,
		deadline: time.Now().Add(ttl),
	}
	return nil
}

// Get retrieves a session by ID. An expired entry is removed and reported
// as not found, so callers never observe a stale identity.
func (s *InMemoryStore) Get(_ context.Context, id string) (Session, error) {
	if id == "" {
		return Session{}, errs.ErrSessionNotFound
	}

	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return Session{}, errs.ErrSessionNotFound
	}

	if !entry.deadline.After(time.Now()) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return Session{}, errs.ErrSessionNotFound
	}

	return entry.session, nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}
