package server

import (
	"fmt"
	"net/http"
)

// IndexHandler is a plain liveness page
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "%s running\n", s.config.AppName)
	}
}

// FailureHandler is the landing page for failed login attempts
func (s *Server) FailureHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Login failed!", http.StatusUnauthorized)
	}
}
