// Package sessiontoken maps session IDs to and from the cookie payload.
// The mapping is explicit and total: Encode always produces a value Decode
// accepts, and Decode rejects anything not produced by Encode with the same
// secret.
package sessiontoken

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	errs "github.com/jrsteele09/go-login-broker/internal/errors"
)

// Codec signs session IDs into compact HS256 tokens so a cookie value
// cannot be forged or swapped for another session's ID without the secret.
type Codec struct {
	secret []byte
}

// New creates a codec keyed by the cookie signing secret.
func New(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Encode wraps a session ID in a signed token expiring with the session.
func (c *Codec) Encode(sessionID string, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", errs.Wrapf(err, "sign session token")
	}
	return signed, nil
}

// Decode validates the token and returns the session ID it carries.
func (c *Codec) Decode(value string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(value, claims,
		func(t *jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return "", errs.Wrapf(errs.ErrInvalidSessionToken, "%v", err)
	}
	if claims.Subject == "" {
		return "", errs.Wrapf(errs.ErrInvalidSessionToken, "empty subject")
	}
	return claims.Subject, nil
}
