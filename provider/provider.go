// Package provider integrates the broker with external OAuth2 identity
// providers. The broker only ever sees a normalized Identity; tokens issued
// by the provider are consumed during Exchange and never retained.
package provider

import "context"

// Identity is the normalized profile returned by a provider after a
// successful authorization code exchange. Field names on the wire match
// what the front-end expects from /auth/user.
type Identity struct {
	Subject   string `json:"id"`
	Name      string `json:"displayName"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Exchanger abstracts the provider-specific parts of the login flow behind
// two primitives: building the consent URL and resolving an authorization
// code into an Identity.
type Exchanger interface {
	// AuthCodeURL builds the provider consent URL for the given
	// correlation state and nonce.
	AuthCodeURL(state, nonce string) string

	// Exchange swaps the authorization code for an Identity. The nonce is
	// the one issued alongside the state at initiation; implementations
	// must reject responses carrying a different nonce. Any failure means
	// the login attempt is over - there is no retry path.
	Exchange(ctx context.Context, code, nonce string) (Identity, error)
}
