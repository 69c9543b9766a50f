package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

// errorResponse is the JSON error shape the mobile client parses.
type errorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// subscriptionRequiredCode mirrors the middleware constant; the client
// keys its paywall on it.
const subscriptionRequiredCode = "SUBSCRIPTION_REQUIRED"

// handleError maps domain errors onto HTTP status codes. Unknown errors
// are logged and reported as plain 500s so internals never leak.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		fields := make(map[string]string, len(verr.Errors))
		for _, fe := range verr.Errors {
			fields[fe.Field] = fe.Message
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fields})
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrPremiumRequired):
		writeJSON(w, http.StatusForbidden, errorResponse{
			Error: "active premium subscription required",
			Code:  subscriptionRequiredCode,
		})
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "conflict")
	case errors.Is(err, domain.ErrNotImplemented):
		writeError(w, http.StatusNotImplemented, "not implemented")
	case errors.Is(err, domain.ErrUpstream):
		writeError(w, http.StatusBadGateway, "upstream provider unavailable")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON decodes a request body. Only malformed JSON is rejected;
// unknown fields are tolerated because shipped app versions send extra
// keys the gateway does not model.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}

func extractBearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
