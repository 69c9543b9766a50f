package rest

import (
	"net/http"

	"github.com/heartmarshall/lingonotes-backend/internal/transport/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth         *AuthHandler
	Translate    *TranslateHandler
	Sync         *SyncHandler
	Subscription *SubscriptionHandler
	Health       *HealthHandler
}

// RouteGuards are the per-route middleware the router applies on top of
// the global chain.
type RouteGuards struct {
	RequireAuth    middleware.Middleware
	RequirePremium middleware.Middleware
}

// NewRouter mounts all REST routes.
//
// Public: sign-in, token verification, the store webhook and health.
// Everything else requires a session token; the translate routes and
// sync push additionally require an active premium subscription.
func NewRouter(h Handlers, guards RouteGuards) http.Handler {
	mux := http.NewServeMux()

	authed := func(handler http.HandlerFunc) http.Handler {
		return guards.RequireAuth(handler)
	}
	premium := func(handler http.HandlerFunc) http.Handler {
		return guards.RequireAuth(guards.RequirePremium(handler))
	}

	mux.HandleFunc("GET /{$}", h.Health.Root)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /auth/google", h.Auth.SignInGoogle)
	mux.HandleFunc("POST /auth/apple", h.Auth.SignInApple)
	mux.HandleFunc("GET /auth/verify", h.Auth.Verify)

	mux.Handle("POST /translate", premium(h.Translate.Translate))
	mux.Handle("POST /translate/suggest", premium(h.Translate.Suggest))

	mux.Handle("GET /sync", authed(h.Sync.Pull))
	mux.Handle("POST /sync", premium(h.Sync.Push))
	mux.Handle("DELETE /sync", authed(h.Sync.Delete))

	mux.Handle("GET /subscription", authed(h.Subscription.Status))
	mux.Handle("POST /subscription/verify", authed(h.Subscription.Verify))
	mux.HandleFunc("POST /subscription/webhook", h.Subscription.Webhook)

	return mux
}
