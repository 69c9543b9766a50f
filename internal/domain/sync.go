package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SyncPayload is the client-owned bundle reconciled via last-write-wins.
// The gateway treats sheet contents as opaque: it stores the payload as
// submitted and only compares timestamps.
type SyncPayload struct {
	LanguageSheets []LanguageSheet `json:"languageSheets"`
	Settings       Settings        `json:"settings"`
}

// SyncSnapshot is the server-side copy of one user's data. It is a derived,
// disposable mirror of device state, never the source of truth.
type SyncSnapshot struct {
	UserID    uuid.UUID
	Data      json.RawMessage // serialized SyncPayload
	UpdatedAt time.Time
}

// IsNewerThan reports whether the snapshot was stamped strictly after the
// given client timestamp (Unix milliseconds). Strictness matters: a push
// carrying exactly the stored timestamp must win, so a device that pulled
// and immediately pushes back is not told it conflicts with itself.
func (s *SyncSnapshot) IsNewerThan(clientMillis int64) bool {
	return s.UpdatedAt.UnixMilli() > clientMillis
}
