package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

// Verify validates a session token and loads the user it belongs to.
// A token for a deleted user is as invalid as a forged one.
func (s *Service) Verify(ctx context.Context, token string) (*domain.User, error) {
	userID, _, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("auth.Verify: %w: %w", domain.ErrUnauthorized, err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("auth.Verify: %w: user no longer exists", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("auth.Verify get user: %w", err)
	}

	return user, nil
}

// ValidateToken checks a session token without touching storage. The
// middleware uses this on every request; the DB lookup stays in Verify.
func (s *Service) ValidateToken(token string) (uuid.UUID, string, error) {
	userID, email, err := s.tokens.ValidateToken(token)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	return userID, email, nil
}
