package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initRoutes() {
	// AUTH
	s.RegisterRouteHandler("POST "+RouteSignIn, ChainMiddleware(s.SignInHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteSignUp, ChainMiddleware(s.SignUpHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteSignOut, ChainMiddleware(s.SignOutHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteSession, ChainMiddleware(s.SessionHandler(), s.APIMiddleware()...))

	// ANONYMOUS WORK
	s.RegisterRouteHandler("GET "+RouteAnonWork, ChainMiddleware(s.GetAnonWorkHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteAnonWork, ChainMiddleware(s.SaveAnonWorkHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteAnonWork, ChainMiddleware(s.ClearAnonWorkHandler(), s.APIMiddleware()...))

	// PROJECTS (require a session)
	s.RegisterRouteHandler("GET "+RouteProjects, ChainMiddleware(s.ListProjectsHandler(), s.APIMiddleware(s.RequireSession)...))
	s.RegisterRouteHandler("POST "+RouteProjects, ChainMiddleware(s.CreateProjectHandler(), s.APIMiddleware(s.RequireSession)...))
	s.RegisterRouteHandler("GET "+RouteProject, ChainMiddleware(s.GetProjectHandler(), s.APIMiddleware(s.RequireSession)...))

	s.RegisterRouteHandler("OPTIONS "+RouteAPI, ChainMiddleware(s.PreflightHandler(), s.APIMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry}))
}

// PreflightHandler answers OPTIONS requests; the CORS headers are written by
// CorsMiddleware.
func (s *Server) PreflightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}
