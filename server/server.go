// Package server implements the login session broker: it mediates between
// the browser, the OAuth2 identity provider, and a separate front-end
// origin, holding nothing but the session store between requests.
package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/go-login-broker/internal/config"
	"github.com/jrsteele09/go-login-broker/provider"
	"github.com/jrsteele09/go-login-broker/server/sessionstore"
	"github.com/jrsteele09/go-login-broker/server/sessiontoken"
	"github.com/jrsteele09/go-login-broker/server/statestore"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

// Deps are the injectable collaborators of the broker.
type Deps struct {
	Sessions      sessionstore.Store
	PendingLogins statestore.Repo
	Exchanger     provider.Exchanger
}

type Server struct {
	env     string // Environment (e.g., "DEV", "PROD")
	mux     *http.ServeMux
	handler http.Handler
	routes  []string
	config  config.Config

	sessions      sessionstore.Store
	pendingLogins statestore.Repo
	exchanger     provider.Exchanger
	codec         *sessiontoken.Codec

	frontendURL string
	// crossSite is true when the front-end lives on a different origin
	// than the broker; the session cookie then needs SameSite=None.
	crossSite bool
}

func New(cfg config.Config, deps Deps) (*Server, error) {
	if deps.Sessions == nil || deps.PendingLogins == nil || deps.Exchanger == nil {
		return nil, fmt.Errorf("[Server New] missing dependencies")
	}

	crossSite, err := differentOrigins(cfg.BaseURL, cfg.FrontendURL)
	if err != nil {
		return nil, fmt.Errorf("[Server New] %w", err)
	}

	s := &Server{
		env:           cfg.Env,
		mux:           http.NewServeMux(),
		config:        cfg,
		sessions:      deps.Sessions,
		pendingLogins: deps.PendingLogins,
		exchanger:     deps.Exchanger,
		codec:         sessiontoken.New(cfg.CookieSecret),
		frontendURL:   cfg.FrontendURL,
		crossSite:     crossSite,
	}

	s.initRoutes()
	s.logRoutes()

	// The front-end calls /auth/user from its own origin with the session
	// cookie attached, so CORS must allow credentials for that origin
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{frontendOrigin(cfg.FrontendURL)},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	s.handler = corsHandler.Handler(s.mux)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

// Helper function to determine the scheme (http/https). Behind a reverse
// proxy terminating TLS the forwarded-protocol header is the only signal
// that the browser connection is secure.
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}

// differentOrigins reports whether two URLs live on different origins
// (scheme + host).
func differentOrigins(a, b string) (bool, error) {
	ua, err := url.Parse(a)
	if err != nil {
		return false, fmt.Errorf("parse url %q: %w", a, err)
	}
	ub, err := url.Parse(b)
	if err != nil {
		return false, fmt.Errorf("parse url %q: %w", b, err)
	}
	return ua.Scheme != ub.Scheme || ua.Host != ub.Host, nil
}

// frontendOrigin reduces the configured front-end URL to its origin for the
// CORS allowlist.
func frontendOrigin(frontendURL string) string {
	u, err := url.Parse(frontendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		log.Warn().Str("frontend_url", frontendURL).Msg("could not derive front-end origin, using raw value")
		return frontendURL
	}
	return u.Scheme + "://" + u.Host
}
