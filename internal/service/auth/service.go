package auth

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingonotes-backend/internal/auth"
	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

// userRepo defines the user repository interface needed by auth service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Upsert(ctx context.Context, user *domain.User) (*domain.User, error)
}

// identityVerifier checks a provider-issued identity token and extracts
// the verified identity. One implementation per provider.
type identityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Identity, error)
}

// tokenManager defines the session token interface needed by auth service.
type tokenManager interface {
	GenerateToken(userID uuid.UUID, email string) (string, error)
	ValidateToken(token string) (uuid.UUID, string, error)
}

// Service implements provider sign-in and session verification.
type Service struct {
	log    *slog.Logger
	users  userRepo
	google identityVerifier
	apple  identityVerifier
	tokens tokenManager
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	google identityVerifier,
	apple identityVerifier,
	tokens tokenManager,
) *Service {
	return &Service{
		log:    logger.With("service", "auth"),
		users:  users,
		google: google,
		apple:  apple,
		tokens: tokens,
	}
}

// AuthResult is what a successful sign-in returns: a session token and
// the stored user record.
type AuthResult struct {
	Token string
	User  *domain.User
}
