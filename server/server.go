package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/uigen-server/anonwork"
	"github.com/jrsteele09/uigen-server/auth"
	"github.com/jrsteele09/uigen-server/bootstrap"
	"github.com/jrsteele09/uigen-server/internal/config"
	"github.com/jrsteele09/uigen-server/projects"
	"github.com/jrsteele09/uigen-server/sessions"
	"github.com/jrsteele09/uigen-server/token"
	"github.com/jrsteele09/uigen-server/users"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
)

// Repos are the storage backends the server depends on.
type Repos struct {
	Users    users.UserRepo
	Projects projects.Repo
	AnonWork anonwork.Store
}

type Server struct {
	env      string // Environment (e.g., "DEV", "production")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	repos    Repos
	sessions *sessions.Manager
	auth     *auth.Service

	registry        *prometheus.Registry
	metrics         *bootstrap.Metrics
	workflowOptions []bootstrap.WorkflowOption
}

type Option func(*Server)

// WithWorkflowOptions passes options to every bootstrap workflow the server runs.
func WithWorkflowOptions(options ...bootstrap.WorkflowOption) Option {
	return func(s *Server) {
		s.workflowOptions = append(s.workflowOptions, options...)
	}
}

// WithRegistry sets the registry served on /metrics.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = registry
	}
}

func New(cfg config.Config, repos Repos, options ...Option) (*Server, error) {
	if repos.Users == nil || repos.Projects == nil || repos.AnonWork == nil {
		return nil, fmt.Errorf("[Server New] users, projects and anon work repos are required")
	}

	s := &Server{
		env:    cfg.GetEnv(),
		mux:    http.NewServeMux(),
		config: cfg,
		repos:  repos,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
		s.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	s.metrics = bootstrap.NewMetrics(s.registry)

	s.sessions = sessions.NewManager(
		token.NewHMACSigner(cfg.GetJWTSecret()),
		sessions.WithCookieName(cfg.GetSessionCookieName()),
		sessions.WithTTL(cfg.GetSessionTTL()),
		sessions.WithSecureCookies(cfg.IsProduction()),
	)

	authService, err := auth.NewService(repos.Users, s.sessions)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create auth service: %w", err)
	}
	s.auth = authService

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) isDev() bool {
	return s.env == "DEV"
}

func (s *Server) logRoutes() {
	if !s.isDev() {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			log.Info().Msgf("[%-19s] %s", colourMethod(parts[0]), parts[1])
		} else {
			log.Info().Msgf("[%-19s] %s", "", parts[0])
		}
	}
}
