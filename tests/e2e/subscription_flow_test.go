//go:build e2e

package e2e_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestE2E_SubscriptionUpgradeFlow covers the happy path: a new account
// is free, the dev receipt stub upgrades it, and the premium gate opens.
func TestE2E_SubscriptionUpgradeFlow(t *testing.T) {
	ts := setupTestServer(t)

	token, _ := ts.signIn(t, "upgrader", "upgrader@example.com")

	body := ts.doJSON(t, http.MethodGet, "/subscription", token, nil, http.StatusOK)
	assert.Equal(t, "free", body["status"])

	// Premium route is shut before the purchase.
	translateBody := map[string]string{"text": "hello", "from": "en", "to": "es"}
	gated := ts.doJSON(t, http.MethodPost, "/translate", token, translateBody, http.StatusForbidden)
	assert.Equal(t, "SUBSCRIPTION_REQUIRED", gated["code"])

	body = ts.doJSON(t, http.MethodPost, "/subscription/verify", token,
		map[string]string{"platform": "ios", "receipt": "dev-receipt", "productId": "premium.monthly"},
		http.StatusOK)
	assert.Equal(t, true, body["success"])
	sub, ok := body["subscription"].(map[string]any)
	require.True(t, ok, "expected subscription object, got %v", body["subscription"])
	assert.Equal(t, "premium", sub["status"])

	expiresAt, ok := sub["expiresAt"].(float64)
	require.True(t, ok, "expected expiresAt millis")
	assert.Greater(t, int64(expiresAt), time.Now().UnixMilli())

	body = ts.doJSON(t, http.MethodGet, "/subscription", token, nil, http.StatusOK)
	assert.Equal(t, "premium", body["status"])

	// And the gate opens.
	ts.doJSON(t, http.MethodPost, "/translate", token, translateBody, http.StatusOK)
}

// TestE2E_WebhookAlwaysAcknowledges verifies the store webhook returns
// an ack without authentication.
func TestE2E_WebhookAlwaysAcknowledges(t *testing.T) {
	ts := setupTestServer(t)

	body := ts.doJSON(t, http.MethodPost, "/subscription/webhook", "",
		map[string]string{"notificationType": "DID_RENEW"}, http.StatusOK)
	assert.Equal(t, true, body["received"])
}
