package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingonotes-backend/internal/domain"
	subsvc "github.com/heartmarshall/lingonotes-backend/internal/service/subscription"
	"github.com/heartmarshall/lingonotes-backend/pkg/ctxutil"
)

// subscriptionService defines the minimal interface needed by
// SubscriptionHandler.
type subscriptionService interface {
	Status(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error)
	VerifyReceipt(ctx context.Context, input subsvc.VerifyReceiptInput) (*domain.Subscription, error)
	HandleWebhook(ctx context.Context, payload json.RawMessage) error
}

// SubscriptionHandler serves subscription REST endpoints.
type SubscriptionHandler struct {
	svc subscriptionService
	log *slog.Logger
}

// NewSubscriptionHandler creates a SubscriptionHandler.
func NewSubscriptionHandler(svc subscriptionService, logger *slog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc, log: logger.With("handler", "subscription")}
}

type verifyPurchaseRequest struct {
	Platform  string `json:"platform"`
	Receipt   string `json:"receipt"`
	ProductID string `json:"productId,omitempty"`
}

type subscriptionResponse struct {
	Status    string  `json:"status"`
	ExpiresAt *int64  `json:"expiresAt,omitempty"` // Unix millis
	Plan      *string `json:"plan,omitempty"`
}

// Status handles GET /subscription.
func (h *SubscriptionHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	sub, err := h.svc.Status(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toSubscriptionResponse(sub))
}

// Verify handles POST /subscription/verify.
func (h *SubscriptionHandler) Verify(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req verifyPurchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sub, err := h.svc.VerifyReceipt(r.Context(), subsvc.VerifyReceiptInput{
		UserID:    userID,
		Platform:  req.Platform,
		Receipt:   req.Receipt,
		ProductID: req.ProductID,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"subscription": toSubscriptionResponse(sub),
	})
}

// Webhook handles POST /subscription/webhook. The store retries until it
// sees an acknowledgment, so even unprocessed notifications return 200.
func (h *SubscriptionHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.HandleWebhook(r.Context(), payload); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

func toSubscriptionResponse(sub *domain.Subscription) subscriptionResponse {
	resp := subscriptionResponse{
		Status: sub.Status.String(),
		Plan:   sub.Plan,
	}
	if sub.ExpiresAt != nil {
		millis := sub.ExpiresAt.UnixMilli()
		resp.ExpiresAt = &millis
	}
	return resp
}
