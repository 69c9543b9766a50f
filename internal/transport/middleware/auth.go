package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingonotes-backend/pkg/ctxutil"
)

// tokenValidator checks a session token and returns the user id and
// email it carries.
type tokenValidator interface {
	ValidateToken(token string) (uuid.UUID, string, error)
}

// RequireAuth returns middleware that rejects requests without a valid
// bearer token. There is no anonymous tier: every protected route needs
// an authenticated user, so a missing header fails the same way an
// invalid token does.
func RequireAuth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "missing or invalid authorization header", "")
				return
			}

			userID, email, err := validator.ValidateToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token", "")
				return
			}

			ctx := ctxutil.WithUserID(r.Context(), userID)
			ctx = ctxutil.WithUserEmail(ctx, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
