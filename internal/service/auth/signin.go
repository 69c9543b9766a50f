package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingonotes-backend/internal/auth"
	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

// SignInGoogle verifies a Google ID token, upserts the user and issues a
// session token.
func (s *Service) SignInGoogle(ctx context.Context, input SignInGoogleInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	identity, err := s.google.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		return nil, fmt.Errorf("auth.SignInGoogle verify token: %w", err)
	}

	return s.signIn(ctx, domain.ProviderGoogle, identity)
}

// SignInApple verifies an Apple identity token, upserts the user and
// issues a session token. Apple omits the email from tokens after the
// first authorization for users who hid it, so the client-supplied
// fallback fills the gap.
func (s *Service) SignInApple(ctx context.Context, input SignInAppleInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	identity, err := s.apple.VerifyIDToken(ctx, input.IdentityToken)
	if err != nil {
		return nil, fmt.Errorf("auth.SignInApple verify token: %w", err)
	}

	if identity.Email == "" {
		identity.Email = input.Email
	}
	if identity.Name == nil {
		identity.Name = input.Name
	}
	if identity.Email == "" {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "email", Message: "required when the identity token carries no email"},
		}}
	}

	return s.signIn(ctx, domain.ProviderApple, identity)
}

// signIn maps a verified provider identity onto a user row and mints a
// session token. Repeat sign-ins keep the existing user id.
func (s *Service) signIn(ctx context.Context, provider domain.AuthProvider, identity *auth.Identity) (*AuthResult, error) {
	candidate := &domain.User{
		ID:         uuid.New(),
		Provider:   provider,
		ProviderID: identity.ProviderID,
		Email:      strings.ToLower(strings.TrimSpace(identity.Email)),
		Name:       identity.Name,
		Picture:    identity.Picture,
	}

	user, err := s.users.Upsert(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("auth.signIn upsert user: %w", err)
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("auth.signIn issue token: %w", err)
	}

	s.log.InfoContext(ctx, "user signed in",
		slog.String("user_id", user.ID.String()),
		slog.String("provider", string(provider)))

	return &AuthResult{Token: token, User: user}, nil
}
