// Package statestore tracks pending login attempts between the redirect to
// the provider and the provider's callback. A callback that cannot be
// correlated with an entry here is treated as forged or expired and fails
// closed.
package statestore

import "time"

// PendingLogin is the correlation record created at initiation. The nonce
// travels to the provider and must come back inside the ID token.
type PendingLogin struct {
	Nonce     string
	CreatedAt time.Time
}

// Repo stores pending logins keyed by the opaque state parameter. Claim is
// single-use: a state can correlate at most one callback.
type Repo interface {
	Put(state string, pending PendingLogin, ttl time.Duration) error
	Claim(state string) (PendingLogin, error)
}
