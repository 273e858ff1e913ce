package statestore

import (
	"errors"
	"sync"
	"time"

	errs "github.com/jrsteele09/go-login-broker/internal/errors"
)

// InMemoryRepo is a thread-safe in-memory implementation of Repo. Expired
// entries are dropped lazily when claimed.
type InMemoryRepo struct {
	mu      sync.Mutex
	pending map[string]inMemoryEntry
}

type inMemoryEntry struct {
	pending  PendingLogin
	deadline time.Time
}

// NewInMemoryRepo creates an empty pending-login repository.
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		pending: make(map[string]inMemoryEntry),
	}
}

// Put records a pending login under the given state.
func (r *InMemoryRepo) Put(state string, pending PendingLogin, ttl time.Duration) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending[state] = inMemoryEntry{
		pending:  pending,
		deadline: time.Now().Add(ttl),
	}
	return nil
}

// Claim removes and returns the pending login for state. A second claim of
// the same state, an unknown state, or an expired entry all return
// ErrInvalidState.
func (r *InMemoryRepo) Claim(state string) (PendingLogin, error) {
	if state == "" {
		return PendingLogin{}, errs.ErrInvalidState
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.pending[state]
	if !ok {
		return PendingLogin{}, errs.ErrInvalidState
	}

	// Single use: remove before the expiry check so an expired state
	// cannot be claimed later either
	delete(r.pending, state)

	if !entry.deadline.After(time.Now()) {
		return PendingLogin{}, errs.ErrInvalidState
	}

	return entry.pending, nil
}
