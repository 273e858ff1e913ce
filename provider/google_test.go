package provider_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	errs "github.com/jrsteele09/go-login-broker/internal/errors"
	"github.com/jrsteele09/go-login-broker/provider"
	"github.com/stretchr/testify/require"
)

const (
	testClientID     = "test-client"
	testClientSecret = "test-secret"
	testRedirectURL  = "https://auth.example.com/auth/google/callback"
	testNonce        = "nonce-123"
	testKeyID        = "test-key"
)

// fakeIssuer is a minimal OIDC provider: discovery document, JWKS and a
// token endpoint that returns a signed ID token for code "VALID".
type fakeIssuer struct {
	server *httptest.Server
	key    *rsa.PrivateKey
	issuer string
}

func newFakeIssuer(t *testing.T) *fakeIssuer {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	fi := &fakeIssuer{key: key}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"issuer":                                fi.issuer,
			"authorization_endpoint":                fi.issuer + "/authorize",
			"token_endpoint":                        fi.issuer + "/token",
			"jwks_uri":                              fi.issuer + "/keys",
			"userinfo_endpoint":                     fi.issuer + "/userinfo",
			"id_token_signing_alg_values_supported": []string{"RS256"},
		})
	})
	mux.HandleFunc("GET /keys", func(w http.ResponseWriter, r *http.Request) {
		pub := &fi.key.PublicKey
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"keys": []map[string]any{{
				"kty": "RSA",
				"alg": "RS256",
				"use": "sig",
				"kid": testKeyID,
				"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
				"e":   "AQAB",
			}},
		})
	})
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.FormValue("code") != "VALID" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":"invalid_grant"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "fake-access-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
			"id_token":     fi.signIDToken(t),
		})
	})

	fi.server = httptest.NewServer(mux)
	fi.issuer = fi.server.URL
	t.Cleanup(fi.server.Close)

	return fi
}

func (fi *fakeIssuer) signIDToken(t *testing.T) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"iss":     fi.issuer,
		"aud":     testClientID,
		"sub":     "123",
		"email":   "jane@example.com",
		"name":    "Jane Doe",
		"picture": "https://example.com/jane.png",
		"nonce":   testNonce,
		"iat":     now.Unix(),
		"exp":     now.Add(time.Hour).Unix(),
	})
	token.Header["kid"] = testKeyID
	signed, err := token.SignedString(fi.key)
	require.NoError(t, err)
	return signed
}

func newGoogle(t *testing.T, fi *fakeIssuer) *provider.Google {
	t.Helper()
	g, err := provider.NewGoogle(context.Background(), provider.GoogleOptions{
		ClientID:     testClientID,
		ClientSecret: testClientSecret,
		RedirectURL:  testRedirectURL,
		Issuer:       fi.issuer,
	})
	require.NoError(t, err)
	return g
}

func TestAuthCodeURL(t *testing.T) {
	fi := newFakeIssuer(t)
	g := newGoogle(t, fi)

	rawURL := g.AuthCodeURL("state-abc", testNonce)
	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)

	q := parsed.Query()
	require.Equal(t, testClientID, q.Get("client_id"))
	require.Equal(t, "state-abc", q.Get("state"))
	require.Equal(t, testNonce, q.Get("nonce"))
	require.Equal(t, "openid profile email", q.Get("scope"))
	require.Equal(t, testRedirectURL, q.Get("redirect_uri"))
	require.Equal(t, "code", q.Get("response_type"))
}

func TestExchangeReturnsIdentity(t *testing.T) {
	fi := newFakeIssuer(t)
	g := newGoogle(t, fi)

	identity, err := g.Exchange(context.Background(), "VALID", testNonce)
	require.NoError(t, err)
	require.Equal(t, provider.Identity{
		Subject:   "123",
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		AvatarURL: "https://example.com/jane.png",
	}, identity)
}

func TestExchangeRejectedCode(t *testing.T) {
	fi := newFakeIssuer(t)
	g := newGoogle(t, fi)

	_, err := g.Exchange(context.Background(), "INVALID", testNonce)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrExchangeFailed)
}

func TestExchangeNonceMismatch(t *testing.T) {
	fi := newFakeIssuer(t)
	g := newGoogle(t, fi)

	_, err := g.Exchange(context.Background(), "VALID", "a-different-nonce")
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrExchangeFailed)
}

func TestExchangeHonorsContextTimeout(t *testing.T) {
	fi := newFakeIssuer(t)
	g := newGoogle(t, fi)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Exchange(ctx, "VALID", testNonce)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrExchangeFailed)
}
