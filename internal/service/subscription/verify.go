package subscription

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

// devGrantPeriod is how much premium a verified purchase grants in
// development mode.
const devGrantPeriod = 30 * 24 * time.Hour

// VerifyReceiptInput holds parameters for store receipt verification.
type VerifyReceiptInput struct {
	UserID    uuid.UUID
	Platform  string // "ios" or "android"
	Receipt   string // opaque store receipt / purchase token
	ProductID string
}

// Validate validates the receipt verification input.
func (i VerifyReceiptInput) Validate() error {
	var errs []domain.FieldError

	if i.Platform == "" {
		errs = append(errs, domain.FieldError{Field: "platform", Message: "required"})
	} else if !slices.Contains([]string{"ios", "android"}, i.Platform) {
		errs = append(errs, domain.FieldError{Field: "platform", Message: "must be ios or android"})
	}

	if i.Receipt == "" {
		errs = append(errs, domain.FieldError{Field: "receipt", Message: "required"})
	} else if len(i.Receipt) > 65536 {
		errs = append(errs, domain.FieldError{Field: "receipt", Message: "too long"})
	}

	if len(i.ProductID) > 256 {
		errs = append(errs, domain.FieldError{Field: "productId", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// VerifyReceipt validates a store purchase and activates premium.
//
// Real store-side verification (App Store Server API, Google Play
// Developer API) is not wired yet; outside development mode the call
// reports not implemented so clients fail loud instead of getting
// premium for free.
func (s *Service) VerifyReceipt(ctx context.Context, input VerifyReceiptInput) (*domain.Subscription, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if !s.devGrants {
		return nil, fmt.Errorf("subscription.VerifyReceipt: store verification: %w", domain.ErrNotImplemented)
	}

	now := s.now()
	expires := now.Add(devGrantPeriod)
	sub := &domain.Subscription{
		UserID:    input.UserID,
		Status:    domain.SubscriptionPremium,
		ExpiresAt: &expires,
	}
	if input.ProductID != "" {
		sub.Plan = &input.ProductID
	}

	if err := s.subs.Upsert(ctx, sub); err != nil {
		return nil, fmt.Errorf("subscription.VerifyReceipt upsert: %w", err)
	}

	s.log.InfoContext(ctx, "premium granted (dev verification)",
		slog.String("user_id", input.UserID.String()),
		slog.String("platform", input.Platform),
		slog.Time("expires_at", expires))

	return sub, nil
}

// HandleWebhook acknowledges a store server notification. Notifications
// are logged and acknowledged so the store does not retry; acting on
// them comes with real store verification.
func (s *Service) HandleWebhook(ctx context.Context, payload json.RawMessage) error {
	s.log.InfoContext(ctx, "store webhook received", slog.Int("bytes", len(payload)))
	return nil
}
