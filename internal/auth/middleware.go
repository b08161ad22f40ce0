package auth

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/question-bank/pkg/http/errors"
)

// RequireSession rejects requests without a live bearer token before the wrapped
// handler runs, so no store access happens for unauthenticated callers.
// Every accepted request also refreshes the session window.
func RequireSession(authSvc *Service, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authSvc.Check(BearerToken(r)) {
				logger.Debug().Str("path", r.URL.Path).Msg("rejected request without live session")
				httperrors.RespondUnauthorized(w, httperrors.ErrCodeUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken extracts <token> from "Authorization: Bearer <token>".
// Anything else yields an empty string.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
