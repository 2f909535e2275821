package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteSignIn  = "/api/auth/signin"
	RouteSignUp  = "/api/auth/signup"
	RouteSignOut = "/api/auth/signout"
	RouteSession = "/api/auth/session"

	// Anonymous draft storage
	RouteAnonWork = "/api/anon-work"

	// Project Routes
	RouteProjects = "/api/projects"
	RouteProject  = "/api/projects/{id}"

	// API prefix, used for CORS preflight
	RouteAPI = "/api/"

	RouteMetrics = "/metrics"
)
