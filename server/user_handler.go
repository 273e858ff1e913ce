package server

import (
	"encoding/json"
	"net/http"
	"time"

	errs "github.com/jrsteele09/go-login-broker/internal/errors"
	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json; charset=utf-8"

// CurrentUserHandler returns the identity bound to the request's session,
// or a JSON null when there is none. "Not logged in" is a normal answer,
// never an error status; the front-end polls this endpoint to decide what
// to render.
func (s *Server) CurrentUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeJSON)

		sessionID, ok := s.sessionIDFromRequest(r)
		if !ok {
			writeNullIdentity(w)
			return
		}

		session, err := s.sessions.Get(r.Context(), sessionID)
		if err != nil {
			if !errs.Is(err, errs.ErrSessionNotFound) {
				log.Err(err).Msg("session store read failed")
			}
			writeNullIdentity(w)
			return
		}

		if session.Expired(time.Now()) {
			writeNullIdentity(w)
			return
		}

		if err := json.NewEncoder(w).Encode(session.Identity); err != nil {
			log.Err(err).Msg("failed to encode identity")
		}
	}
}

func writeNullIdentity(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("null\n"))
}
