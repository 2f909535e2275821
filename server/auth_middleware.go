package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/uigen-server/sessions"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeySession stores the verified session payload
const ContextKeySession ContextKey = "session"

// RequireSession rejects requests without a valid session cookie and puts the
// session payload into the request context.
func (s *Server) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := s.auth.Session(newRequestCookies(w, r))
		if err != nil {
			log.Err(err).Msg("Failed to read session")
			writeJSONError(w, "server_error", "Something went wrong", http.StatusInternalServerError)
			return
		}
		if payload == nil {
			writeJSONError(w, "unauthorized", "Not signed in", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeySession, payload)
		next(w, r.WithContext(ctx))
	}
}

// SessionFromContext returns the payload stored by RequireSession.
func SessionFromContext(ctx context.Context) *sessions.Payload {
	payload, _ := ctx.Value(ContextKeySession).(*sessions.Payload)
	if payload == nil {
		return &sessions.Payload{}
	}
	return payload
}
