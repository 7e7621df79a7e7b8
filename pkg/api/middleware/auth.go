// Package middleware provides the HTTP middleware for the admin API.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ZaidRasheed/backend-admin-panel/pkg/authz"
	"github.com/ZaidRasheed/backend-admin-panel/pkg/metrics"
)

// TokenHeader is the request header carrying the bearer token.
const TokenHeader = "token"

type contextKey string

const adminIDKey contextKey = "admin_id"

// AdminIDFromContext returns the authorized caller's unique ID, or "" when
// the request did not pass through RequireAdmin.
func AdminIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(adminIDKey).(string)
	return id
}

// RequireAdmin gates every request behind the administrator check. The
// authorization runs per request; failures return 403 with the canonical
// error body and never reach the next handler.
func RequireAdmin(authorizer *authz.Authorizer, m *metrics.TeacherOperations) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)

			adminID, err := authorizer.Authorize(r.Context(), token)
			if err != nil {
				m.RecordAuthDenied()
				if errors.Is(err, authz.ErrMissingToken) {
					writeAuthError(w, "No token")
				} else {
					writeAuthError(w, "Error in Authenticating request")
				}
				return
			}

			ctx := context.WithValue(r.Context(), adminIDKey, adminID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
