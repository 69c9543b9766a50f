package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingonotes-backend/internal/domain"
	syncsvc "github.com/heartmarshall/lingonotes-backend/internal/service/sync"
	"github.com/heartmarshall/lingonotes-backend/pkg/ctxutil"
)

// syncService defines the minimal interface needed by SyncHandler.
type syncService interface {
	Pull(ctx context.Context, userID uuid.UUID) (*domain.SyncSnapshot, error)
	Push(ctx context.Context, input syncsvc.PushInput) (*syncsvc.PushResult, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// SyncHandler serves cloud sync REST endpoints. All routes run behind
// RequireAuth, so the user id is always in context.
type SyncHandler struct {
	svc syncService
	log *slog.Logger
}

// NewSyncHandler creates a SyncHandler.
func NewSyncHandler(svc syncService, logger *slog.Logger) *SyncHandler {
	return &SyncHandler{svc: svc, log: logger.With("handler", "sync")}
}

type pushRequest struct {
	LanguageSheets  json.RawMessage `json:"languageSheets"`
	Settings        json.RawMessage `json:"settings"`
	LastLocalUpdate int64           `json:"lastLocalUpdate"`
}

// withUpdatedAt folds the server stamp into a stored payload object.
// Devices expect a snapshot to carry its own updatedAt in milliseconds.
func withUpdatedAt(data json.RawMessage, ts time.Time) json.RawMessage {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return data
	}
	stamp, err := json.Marshal(ts.UnixMilli())
	if err != nil {
		return data
	}
	obj["updatedAt"] = stamp
	out, err := json.Marshal(obj)
	if err != nil {
		return data
	}
	return out
}

// Pull handles GET /sync. A fresh account gets null data and null
// lastSync.
func (h *SyncHandler) Pull(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	snapshot, err := h.svc.Pull(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if snapshot == nil {
		writeJSON(w, http.StatusOK, map[string]any{"data": nil, "lastSync": nil})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":     withUpdatedAt(snapshot.Data, snapshot.UpdatedAt),
		"lastSync": snapshot.UpdatedAt.UnixMilli(),
	})
}

// Push handles POST /sync. Last write wins; a strictly newer server
// snapshot turns the push into a 200 conflict response carrying the
// server's data so the client can reconcile. Conflict is a sync
// outcome, not a failure, so it does not use an error status.
func (h *SyncHandler) Push(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req pushRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	data, err := json.Marshal(struct {
		LanguageSheets json.RawMessage `json:"languageSheets"`
		Settings       json.RawMessage `json:"settings"`
	}{req.LanguageSheets, req.Settings})
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Push(r.Context(), syncsvc.PushInput{
		UserID:          userID,
		Data:            data,
		LastLocalUpdate: req.LastLocalUpdate,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if result.Conflict {
		writeJSON(w, http.StatusOK, map[string]any{
			"conflict":   true,
			"serverData": withUpdatedAt(result.ServerData.Data, result.ServerData.UpdatedAt),
			"message":    "server has newer data",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    withUpdatedAt(data, result.SyncedAt),
	})
}

// Delete handles DELETE /sync.
func (h *SyncHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.svc.Delete(r.Context(), userID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
