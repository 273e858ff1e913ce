package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-login-broker/server/sessionstore"
	"github.com/rs/zerolog/log"
)

// CallbackHandler completes a login attempt. Every exit path other than the
// final redirect to the front-end is a terminal failure: no session is
// created, no cookie is set, and the browser lands on the failure page.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := r.FormValue("state")
		code := r.FormValue("code")
		errorParam := r.FormValue("error")

		// Provider-reported authorization errors (user denied consent etc.)
		if errorParam != "" {
			log.Warn().Str("error", errorParam).Str("description", r.FormValue("error_description")).Msg("provider reported authorization error")
			s.redirectFailure(w, r)
			return
		}

		if code == "" || state == "" {
			log.Warn().Msg("callback missing code or state parameter")
			s.redirectFailure(w, r)
			return
		}

		// Correlate with the pending login. Claim is single-use, so a
		// replayed or forged state cannot complete a second time.
		pending, err := s.pendingLogins.Claim(state)
		if err != nil {
			log.Warn().Err(err).Msg("callback could not be correlated with a pending login")
			s.redirectFailure(w, r)
			return
		}

		// The exchange waits on the provider; bound it so a slow provider
		// maps to a failed login rather than a hung request
		ctx, cancel := context.WithTimeout(r.Context(), s.config.ExchangeTimeout)
		defer cancel()

		identity, err := s.exchanger.Exchange(ctx, code, pending.Nonce)
		if err != nil {
			log.Err(err).Msg("authorization code exchange failed")
			s.redirectFailure(w, r)
			return
		}

		sessionID := uuid.NewString()
		now := time.Now()
		session := sessionstore.Session{
			ID:        sessionID,
			Identity:  identity,
			CreatedAt: now,
			ExpiresAt: now.Add(s.config.SessionTTL),
		}

		if err := s.sessions.Set(r.Context(), sessionID, session, s.config.SessionTTL); err != nil {
			log.Err(err).Msg("failed to create session")
			s.redirectFailure(w, r)
			return
		}

		cookieValue, err := s.codec.Encode(sessionID, session.ExpiresAt)
		if err != nil {
			// The half-created session must not outlive the failed attempt
			if delErr := s.sessions.Delete(r.Context(), sessionID); delErr != nil {
				log.Err(delErr).Msg("failed to roll back session")
			}
			log.Err(err).Msg("failed to encode session cookie")
			s.redirectFailure(w, r)
			return
		}

		s.setSessionCookie(w, r, cookieValue, int(s.config.SessionTTL.Seconds()))
		http.Redirect(w, r, s.frontendURL, http.StatusFound)
	}
}

func (s *Server) redirectFailure(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, RouteAuthFailure, http.StatusFound)
}
