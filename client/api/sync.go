package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

// RemoteSnapshot is the server's copy of the user's data.
type RemoteSnapshot struct {
	Data      json.RawMessage
	UpdatedAt int64 // Unix millis
}

// PushResult reports the outcome of a push. On conflict the server's
// snapshot rides along so the caller can decide; the client never
// auto-resolves.
type PushResult struct {
	Conflict bool
	Server   *RemoteSnapshot // set when Conflict
	SyncedAt int64           // Unix millis, set when accepted
}

// Push uploads the local payload. A server snapshot strictly newer than
// lastLocalUpdate comes back as a conflict, not an error: the gateway
// answers 200 with a conflict flag and its own data.
func (c *Client) Push(ctx context.Context, payload domain.SyncPayload, lastLocalUpdate int64) (*PushResult, error) {
	body := map[string]any{
		"languageSheets":  payload.LanguageSheets,
		"settings":        payload.Settings,
		"lastLocalUpdate": lastLocalUpdate,
	}

	status, raw, err := c.request(ctx, http.MethodPost, "/sync", body)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, parseAPIError(status, raw)
	}

	var resp struct {
		Conflict   bool            `json:"conflict"`
		ServerData json.RawMessage `json:"serverData"`
		Data       json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("api: decode sync response: %w", err)
	}

	if resp.Conflict {
		return &PushResult{
			Conflict: true,
			Server: &RemoteSnapshot{
				Data:      resp.ServerData,
				UpdatedAt: embeddedUpdatedAt(resp.ServerData),
			},
		}, nil
	}
	return &PushResult{SyncedAt: embeddedUpdatedAt(resp.Data)}, nil
}

// embeddedUpdatedAt reads the updatedAt stamp the gateway folds into
// every snapshot object. Zero when absent.
func embeddedUpdatedAt(data json.RawMessage) int64 {
	var obj struct {
		UpdatedAt int64 `json:"updatedAt"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return 0
	}
	return obj.UpdatedAt
}

// Pull fetches the server snapshot, or nil when the account has none.
func (c *Client) Pull(ctx context.Context) (*RemoteSnapshot, error) {
	var resp struct {
		Data     json.RawMessage `json:"data"`
		LastSync *int64          `json:"lastSync"`
	}
	if err := c.do(ctx, http.MethodGet, "/sync", nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return nil, nil
	}
	snapshot := &RemoteSnapshot{Data: resp.Data}
	if resp.LastSync != nil {
		snapshot.UpdatedAt = *resp.LastSync
	}
	return snapshot, nil
}

// DeleteSync removes the server snapshot, e.g. before account deletion.
func (c *Client) DeleteSync(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/sync", nil, nil)
}
