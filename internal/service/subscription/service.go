package subscription

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

// subscriptionRepo defines the subscription repository interface needed by
// subscription service.
type subscriptionRepo interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error)
	Upsert(ctx context.Context, sub *domain.Subscription) error
	DowngradeIfExpired(ctx context.Context, userID uuid.UUID, now time.Time) (bool, error)
}

// Service implements subscription status and purchase verification.
type Service struct {
	log  *slog.Logger
	subs subscriptionRepo
	// devGrants enables the development shortcut where any receipt is
	// accepted and grants a month of premium. Never true in production.
	devGrants bool
	now       func() time.Time
}

// NewService creates a new subscription service instance.
func NewService(logger *slog.Logger, subs subscriptionRepo, devGrants bool) *Service {
	return &Service{
		log:       logger.With("service", "subscription"),
		subs:      subs,
		devGrants: devGrants,
		now:       time.Now,
	}
}
