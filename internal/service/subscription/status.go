package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

// Status returns the user's current subscription. Expiry is applied
// lazily: an expired premium row is downgraded on first read after the
// deadline, so no background job is needed. Users with no row are free.
func (s *Service) Status(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error) {
	changed, err := s.subs.DowngradeIfExpired(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("subscription.Status downgrade: %w", err)
	}
	if changed {
		s.log.InfoContext(ctx, "premium expired, downgraded to free",
			slog.String("user_id", userID.String()))
	}

	sub, err := s.subs.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.FreeSubscription(userID), nil
		}
		return nil, fmt.Errorf("subscription.Status get: %w", err)
	}

	return sub, nil
}

// IsPremium reports whether the user currently has an active premium
// subscription. The premium gate middleware calls this per request.
func (s *Service) IsPremium(ctx context.Context, userID uuid.UUID) (bool, error) {
	sub, err := s.Status(ctx, userID)
	if err != nil {
		return false, err
	}
	return sub.IsActivePremium(s.now()), nil
}
