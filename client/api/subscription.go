package api

import (
	"context"
	"net/http"
	"time"
)

// SubscriptionInfo is the billing state the gateway reports.
type SubscriptionInfo struct {
	Status    string  `json:"status"`
	ExpiresAt *int64  `json:"expiresAt,omitempty"` // Unix millis
	Plan      *string `json:"plan,omitempty"`
}

// IsActivePremium reports whether the info grants premium right now.
func (s *SubscriptionInfo) IsActivePremium(now time.Time) bool {
	if s == nil || s.Status != "premium" {
		return false
	}
	return s.ExpiresAt == nil || *s.ExpiresAt > now.UnixMilli()
}

// SubscriptionStatus fetches the current billing state.
func (c *Client) SubscriptionStatus(ctx context.Context) (*SubscriptionInfo, error) {
	var info SubscriptionInfo
	if err := c.do(ctx, http.MethodGet, "/subscription", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// VerifyPurchase submits a store receipt for validation. Outside of
// development environments the gateway answers 501 until real receipt
// validation ships.
func (c *Client) VerifyPurchase(ctx context.Context, platform, receipt, productID string) (*SubscriptionInfo, error) {
	body := map[string]string{
		"platform": platform,
		"receipt":  receipt,
	}
	if productID != "" {
		body["productId"] = productID
	}

	var resp struct {
		Success      bool             `json:"success"`
		Subscription SubscriptionInfo `json:"subscription"`
	}
	if err := c.do(ctx, http.MethodPost, "/subscription/verify", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Subscription, nil
}
