package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

// SubscriptionRequiredCode is the machine-readable code the gateway
// attaches to premium-gate rejections.
const SubscriptionRequiredCode = "SUBSCRIPTION_REQUIRED"

// APIError is a non-2xx gateway response. Status is the HTTP status,
// Code the optional machine-readable code, Fields the per-field
// validation messages on 400s.
type APIError struct {
	Status  int
	Message string
	Code    string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api: %d %s (%s)", e.Status, e.Message, e.Code)
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Unwrap maps the HTTP status onto the matching domain sentinel so
// callers can branch with errors.Is instead of comparing status codes.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest:
		return domain.ErrValidation
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		if e.Code == SubscriptionRequiredCode {
			return domain.ErrPremiumRequired
		}
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrConflict
	case http.StatusNotImplemented:
		return domain.ErrNotImplemented
	case http.StatusBadGateway:
		return domain.ErrUpstream
	default:
		return nil
	}
}

// IsSubscriptionRequired reports whether the error is the premium gate.
func (e *APIError) IsSubscriptionRequired() bool {
	return e.Status == http.StatusForbidden && e.Code == SubscriptionRequiredCode
}

func parseAPIError(status int, raw []byte) *APIError {
	var envelope struct {
		Error  string            `json:"error"`
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	}
	// Tolerate non-JSON bodies from proxies in front of the gateway.
	_ = json.Unmarshal(raw, &envelope)

	message := envelope.Error
	if message == "" {
		message = http.StatusText(status)
	}
	return &APIError{
		Status:  status,
		Message: message,
		Code:    envelope.Code,
		Fields:  envelope.Fields,
	}
}
