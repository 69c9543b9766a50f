package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus is the billing tier of an account.
type SubscriptionStatus string

const (
	SubscriptionFree    SubscriptionStatus = "free"
	SubscriptionPremium SubscriptionStatus = "premium"
)

func (s SubscriptionStatus) String() string { return string(s) }

// Subscription is the per-user billing row. A missing row means free tier.
type Subscription struct {
	UserID    uuid.UUID
	Status    SubscriptionStatus
	ExpiresAt *time.Time
	Plan      *string // store product id, e.g. "lingonotes.premium.monthly"
	UpdatedAt time.Time
}

// IsActivePremium reports whether the subscription grants premium access
// at the given instant. A premium row without an expiry never expires.
func (s *Subscription) IsActivePremium(now time.Time) bool {
	if s == nil || s.Status != SubscriptionPremium {
		return false
	}
	return s.ExpiresAt == nil || s.ExpiresAt.After(now)
}

// FreeSubscription returns the implicit row for users with no purchase.
func FreeSubscription(userID uuid.UUID) *Subscription {
	return &Subscription{UserID: userID, Status: SubscriptionFree}
}
