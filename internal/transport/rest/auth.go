package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/lingonotes-backend/internal/domain"
	"github.com/heartmarshall/lingonotes-backend/internal/service/auth"
)

// authService defines the minimal interface needed by AuthHandler.
type authService interface {
	SignInGoogle(ctx context.Context, input auth.SignInGoogleInput) (*auth.AuthResult, error)
	SignInApple(ctx context.Context, input auth.SignInAppleInput) (*auth.AuthResult, error)
	Verify(ctx context.Context, token string) (*domain.User, error)
}

// AuthHandler serves auth REST endpoints.
type AuthHandler struct {
	svc authService
	log *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc authService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: logger.With("handler", "auth")}
}

type googleSignInRequest struct {
	IDToken string `json:"idToken"`
}

// appleSignInRequest mirrors what the app sends after the native Apple
// flow: the identity token plus the profile fields Apple reveals only
// on the very first authorization.
type appleSignInRequest struct {
	IDToken string            `json:"idToken"`
	User    *appleUserPayload `json:"user,omitempty"`
}

type appleUserPayload struct {
	Email    string         `json:"email,omitempty"`
	FullName *appleFullName `json:"fullName,omitempty"`
}

type appleFullName struct {
	GivenName  string `json:"givenName,omitempty"`
	FamilyName string `json:"familyName,omitempty"`
}

func (r *appleSignInRequest) email() string {
	if r.User == nil {
		return ""
	}
	return r.User.Email
}

func (r *appleSignInRequest) name() *string {
	if r.User == nil || r.User.FullName == nil {
		return nil
	}
	full := strings.TrimSpace(strings.TrimSpace(r.User.FullName.GivenName) + " " +
		strings.TrimSpace(r.User.FullName.FamilyName))
	if full == "" {
		return nil
	}
	return &full
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Name     *string `json:"name,omitempty"`
	Picture  *string `json:"picture,omitempty"`
	Provider string  `json:"provider"`
}

// SignInGoogle handles POST /auth/google.
func (h *AuthHandler) SignInGoogle(w http.ResponseWriter, r *http.Request) {
	var req googleSignInRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.SignInGoogle(r.Context(), auth.SignInGoogleInput{IDToken: req.IDToken})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(result))
}

// SignInApple handles POST /auth/apple.
func (h *AuthHandler) SignInApple(w http.ResponseWriter, r *http.Request) {
	var req appleSignInRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.SignInApple(r.Context(), auth.SignInAppleInput{
		IdentityToken: req.IDToken,
		Email:         req.email(),
		Name:          req.name(),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(result))
}

// Verify handles GET /auth/verify. Unlike the middleware check, this
// confirms the user still exists, so the client calls it on app start.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := extractBearer(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	user, err := h.svc.Verify(r.Context(), token)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"valid": true,
		"user":  toUserResponse(user),
	})
}

func toAuthResponse(result *auth.AuthResult) authResponse {
	return authResponse{
		Token: result.Token,
		User:  toUserResponse(result.User),
	}
}

func toUserResponse(user *domain.User) userResponse {
	return userResponse{
		ID:       user.ID.String(),
		Email:    user.Email,
		Name:     user.Name,
		Picture:  user.Picture,
		Provider: string(user.Provider),
	}
}
