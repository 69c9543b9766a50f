package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingonotes-backend/pkg/ctxutil"
)

// SubscriptionRequiredCode is the machine-readable code the client keys
// its paywall screen on.
const SubscriptionRequiredCode = "SUBSCRIPTION_REQUIRED"

// premiumChecker reports whether a user currently has premium access.
type premiumChecker interface {
	IsPremium(ctx context.Context, userID uuid.UUID) (bool, error)
}

// RequirePremium returns middleware that gates a route behind an active
// premium subscription. It must run inside RequireAuth: a request with
// no user in context is a wiring bug and is rejected as unauthorized.
func RequirePremium(checker premiumChecker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := ctxutil.UserIDFromCtx(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "authentication required", "")
				return
			}

			premium, err := checker.IsPremium(r.Context(), userID)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "internal server error", "")
				return
			}
			if !premium {
				writeError(w, http.StatusForbidden, "active premium subscription required", SubscriptionRequiredCode)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
