package server

import (
	"net/http"
)

const (
	// sessionCookieName is the single, stable name shared by the set at
	// login and the clear at logout. Mismatched names or attributes make
	// browsers silently keep the stale cookie.
	sessionCookieName = "session"
	sessionCookiePath = "/"
)

// setSessionCookie writes the session cookie. Secure follows the request
// scheme (forwarded-proto aware) and SameSite is None whenever the
// front-end lives on a different origin, otherwise Lax.
func (s *Server) setSessionCookie(w http.ResponseWriter, r *http.Request, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     sessionCookiePath,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: s.sameSitePolicy(),
	})
}

// clearSessionCookie expires the cookie using the exact attributes used at
// creation.
func (s *Server) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	s.setSessionCookie(w, r, "", -1)
}

func (s *Server) sameSitePolicy() http.SameSite {
	if s.crossSite {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// sessionIDFromRequest resolves the session ID carried by the request
// cookie, if any. A missing or invalid cookie returns ok=false; it is not
// an error condition.
func (s *Server) sessionIDFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	sessionID, err := s.codec.Decode(cookie.Value)
	if err != nil {
		return "", false
	}
	return sessionID, true
}
