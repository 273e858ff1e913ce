package server

import (
	"net/http"
	"time"

	"github.com/jrsteele09/go-login-broker/server/statestore"
	"github.com/rs/zerolog/log"
)

// LoginHandler begins a login attempt: it records a pending login keyed by
// a fresh state value and redirects the browser to the provider consent
// screen. No session exists yet at this point.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := generateRandomString(16)
		nonce := generateRandomString(16)

		pending := statestore.PendingLogin{
			Nonce:     nonce,
			CreatedAt: time.Now(),
		}
		if err := s.pendingLogins.Put(state, pending, s.config.StateTTL); err != nil {
			log.Err(err).Msg("failed to record pending login")
			http.Error(w, "Failed to start login", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, s.exchanger.AuthCodeURL(state, nonce), http.StatusFound)
	}
}
