package server

import (
	"net/http"

	"github.com/jrsteele09/uigen-server/auth"
	"github.com/jrsteele09/uigen-server/bootstrap"
	"github.com/rs/zerolog/log"
)

type authResponse struct {
	auth.Result
	Redirect string `json:"redirect,omitempty"`
}

func (s *Server) SignInHandler() http.HandlerFunc {
	return s.authHandler(bootstrap.ActionSignIn)
}

func (s *Server) SignUpHandler() http.HandlerFunc {
	return s.authHandler(bootstrap.ActionSignUp)
}

// authHandler runs the sign-in or sign-up workflow and reports where the
// client should go next.
func (s *Server) authHandler(action bootstrap.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds, err := decodeCredentials(r)
		if err != nil {
			writeJSONError(w, "invalid_request", err.Error(), http.StatusBadRequest)
			return
		}

		cookies := newRequestCookies(w, r)
		nav := &recordingNavigator{}
		workflow, err := s.newWorkflow(cookies, nav)
		if err != nil {
			log.Err(err).Msg("Failed to create bootstrap workflow")
			writeJSONError(w, "server_error", "Something went wrong", http.StatusInternalServerError)
			return
		}

		var inv *bootstrap.Invocation
		if action == bootstrap.ActionSignUp {
			inv = workflow.StartSignUp(r.Context(), creds.Email, creds.Password)
		} else {
			inv = workflow.StartSignIn(r.Context(), creds.Email, creds.Password)
		}
		result, err := inv.Wait()
		if err != nil {
			log.Err(err).Str("action", string(action)).Str("state", inv.State().String()).Msg("Sign in workflow failed")
			writeJSONError(w, "server_error", "Something went wrong", http.StatusInternalServerError)
			return
		}

		if !result.Success {
			writeJSON(w, http.StatusUnauthorized, authResponse{Result: result})
			return
		}

		if isHTMXRequest(r) {
			redirectSuccess(w, r, nav.path)
			return
		}
		writeJSON(w, http.StatusOK, authResponse{Result: result, Redirect: nav.path})
	}
}

func (s *Server) SignOutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.auth.SignOut(newRequestCookies(w, r)); err != nil {
			log.Err(err).Msg("Sign out failed")
			writeJSONError(w, "server_error", "Something went wrong", http.StatusInternalServerError)
			return
		}
		if isHTMXRequest(r) {
			redirectSuccess(w, r, "/")
			return
		}
		writeJSON(w, http.StatusOK, auth.Result{Success: true})
	}
}

// SessionHandler returns the current session payload, or 401 when there is none.
func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := s.auth.Session(newRequestCookies(w, r))
		if err != nil {
			log.Err(err).Msg("Failed to read session")
			writeJSONError(w, "server_error", "Something went wrong", http.StatusInternalServerError)
			return
		}
		if payload == nil {
			writeJSONError(w, "no_session", "Not signed in", http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, payload)
	}
}
