package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// LogoutHandler destroys the session and clears the cookie, then sends the
// browser back to the front-end. It succeeds identically whether or not a
// valid session was attached, so repeated logouts are harmless.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessionID, ok := s.sessionIDFromRequest(r); ok {
			if err := s.sessions.Delete(r.Context(), sessionID); err != nil {
				log.Err(err).Msg("failed to delete session")
			}
		}

		s.clearSessionCookie(w, r)
		http.Redirect(w, r, s.frontendURL, http.StatusFound)
	}
}
