package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex = "/"

	// Auth Routes - the whole login handshake
	RouteAuthLogin    = "/auth/google"
	RouteAuthCallback = "/auth/google/callback"
	RouteAuthUser     = "/auth/user"
	RouteAuthLogout   = "/auth/logout"
	RouteAuthFailure  = "/auth/failure"
)
