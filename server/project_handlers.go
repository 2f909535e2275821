package server

import (
	"net/http"

	apperrors "github.com/jrsteele09/uigen-server/internal/errors"
	"github.com/jrsteele09/uigen-server/projects"
	"github.com/rs/zerolog/log"
)

func (s *Server) ListProjectsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.repos.Projects.ListByOwner(r.Context(), SessionFromContext(r.Context()).UserID)
		if err != nil {
			log.Err(err).Msg("Failed to list projects")
			writeJSONError(w, "server_error", "Something went wrong", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) CreateProjectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req projects.CreateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeJSONError(w, "invalid_request", err.Error(), http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			writeJSONError(w, "invalid_request", "name is required", http.StatusBadRequest)
			return
		}

		p, err := s.repos.Projects.Create(r.Context(), SessionFromContext(r.Context()).UserID, req)
		if err != nil {
			log.Err(err).Msg("Failed to create project")
			writeJSONError(w, "server_error", "Something went wrong", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	}
}

func (s *Server) GetProjectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := s.repos.Projects.Get(r.Context(), SessionFromContext(r.Context()).UserID, r.PathValue("id"))
		if apperrors.Is(err, apperrors.ErrProjectNotFound) {
			writeJSONError(w, "not_found", "Project not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Err(err).Msg("Failed to get project")
			writeJSONError(w, "server_error", "Something went wrong", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}
