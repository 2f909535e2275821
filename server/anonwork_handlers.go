package server

import (
	"net/http"

	"github.com/jrsteele09/uigen-server/anonwork"
	"github.com/rs/zerolog/log"
)

func (s *Server) GetAnonWorkHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		work, err := s.anonWork(newRequestCookies(w, r)).GetAnonWorkData(r.Context())
		if err != nil {
			log.Err(err).Msg("Failed to read anonymous work")
			writeJSONError(w, "server_error", "Something went wrong", http.StatusInternalServerError)
			return
		}
		if work == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, work)
	}
}

// SaveAnonWorkHandler stores the draft only when it has content: any message,
// or a file system with more than the root directory.
func (s *Server) SaveAnonWorkHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var work anonwork.Work
		if err := decodeJSON(r, &work); err != nil {
			writeJSONError(w, "invalid_request", err.Error(), http.StatusBadRequest)
			return
		}
		if !work.HasContent() {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		err := s.anonWork(newRequestCookies(w, r)).SaveAnonWork(r.Context(), work, s.config.IsProduction())
		if err != nil {
			log.Err(err).Msg("Failed to save anonymous work")
			writeJSONError(w, "server_error", "Something went wrong", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ClearAnonWorkHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.anonWork(newRequestCookies(w, r)).ClearAnonWork(r.Context()); err != nil {
			log.Err(err).Msg("Failed to clear anonymous work")
			writeJSONError(w, "server_error", "Something went wrong", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
