// Package sessionstore holds the broker's only shared mutable state: the
// mapping from opaque session IDs to authenticated identities.
package sessionstore

import (
	"context"
	"time"

	"github.com/jrsteele09/go-login-broker/provider"
)

// Session binds an opaque identifier to the identity record established at
// callback time. The identity is immutable for the session's lifetime;
// there is no refresh path.
type Session struct {
	ID        string            `json:"id"`
	Identity  provider.Identity `json:"identity"`
	CreatedAt time.Time         `json:"created_at"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry time.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// Store is the injectable key-value capability backing sessions. Each
// session is keyed independently, so implementations only need per-key
// consistency; Get on a missing or expired key returns ErrSessionNotFound.
type Store interface {
	Get(ctx context.Context, id string) (Session, error)
	Set(ctx context.Context, id string, session Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
