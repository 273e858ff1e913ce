package server

import (
	"fmt"
	"log"
)

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteIndex+"{$}", ChainMiddleware(s.IndexHandler(), s.StandardMiddleware()...))

	// LOGIN
	s.RegisterRouteFunc("GET "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.StandardMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteAuthCallback, ChainMiddleware(s.CallbackHandler(), s.StandardMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteAuthUser, ChainMiddleware(s.CurrentUserHandler(), s.StandardMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.StandardMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteAuthFailure, ChainMiddleware(s.FailureHandler(), s.StandardMiddleware()...))
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
