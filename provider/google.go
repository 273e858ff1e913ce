package provider

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	errs "github.com/jrsteele09/go-login-broker/internal/errors"
	"golang.org/x/oauth2"
)

// GoogleIssuer is the OIDC issuer used for discovery in production.
const GoogleIssuer = "https://accounts.google.com"

// GoogleOptions configures a Google exchanger. Issuer is overridable so
// tests can point discovery at a local server.
type GoogleOptions struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Issuer       string
}

// Google implements Exchanger against Google's OIDC endpoints using
// standard discovery. ID tokens are verified (signature, audience, expiry)
// before any claim is trusted.
type Google struct {
	oauth    *oauth2.Config
	verifier *oidc.IDTokenVerifier
}

var _ Exchanger = (*Google)(nil)

// NewGoogle discovers the provider endpoints and builds the exchanger.
// Discovery is a network call, so this belongs in startup, not per-request.
func NewGoogle(ctx context.Context, opts GoogleOptions) (*Google, error) {
	issuer := opts.Issuer
	if issuer == "" {
		issuer = GoogleIssuer
	}

	oidcProvider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery for %q: %w", issuer, err)
	}

	return &Google{
		oauth: &oauth2.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			Endpoint:     oidcProvider.Endpoint(),
			RedirectURL:  opts.RedirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		verifier: oidcProvider.Verifier(&oidc.Config{ClientID: opts.ClientID}),
	}, nil
}

// AuthCodeURL builds the consent screen URL carrying state and nonce.
func (g *Google) AuthCodeURL(state, nonce string) string {
	return g.oauth.AuthCodeURL(state, oidc.Nonce(nonce))
}

// Exchange swaps the authorization code for tokens, verifies the ID token
// and returns the identity claims. Every failure wraps ErrExchangeFailed so
// the caller can treat the whole step as one fallible unit.
func (g *Google) Exchange(ctx context.Context, code, nonce string) (Identity, error) {
	oauth2Token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return Identity{}, errs.Wrapf(errs.ErrExchangeFailed, "token endpoint: %v", err)
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return Identity{}, errs.Wrapf(errs.ErrExchangeFailed, "no id_token in token response")
	}

	idToken, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return Identity{}, errs.Wrapf(errs.ErrExchangeFailed, "id token verification: %v", err)
	}

	var claims struct {
		Nonce   string `json:"nonce"`
		Sub     string `json:"sub"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return Identity{}, errs.Wrapf(errs.ErrExchangeFailed, "extract claims: %v", err)
	}

	// Replay protection: the nonce must be the one minted at initiation
	if claims.Nonce != nonce {
		return Identity{}, errs.Wrapf(errs.ErrExchangeFailed, "nonce mismatch")
	}

	return Identity{
		Subject:   claims.Sub,
		Name:      claims.Name,
		Email:     claims.Email,
		AvatarURL: claims.Picture,
	}, nil
}
