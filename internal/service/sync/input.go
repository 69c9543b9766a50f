package sync

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

// maxSnapshotBytes caps the size of one user's sync payload. Sheets are
// plain text; anything past this is almost certainly a client bug.
const maxSnapshotBytes = 4 << 20

// PushInput holds parameters for a sync push.
type PushInput struct {
	UserID uuid.UUID
	// Data is the client's full state blob, stored opaquely.
	Data json.RawMessage
	// LastLocalUpdate is the client's latest local change, Unix millis.
	LastLocalUpdate int64
}

// Validate validates the push input.
func (i PushInput) Validate() error {
	var errs []domain.FieldError

	if len(i.Data) == 0 {
		errs = append(errs, domain.FieldError{Field: "data", Message: "required"})
	} else if len(i.Data) > maxSnapshotBytes {
		errs = append(errs, domain.FieldError{Field: "data", Message: "too large"})
	} else if !json.Valid(i.Data) {
		errs = append(errs, domain.FieldError{Field: "data", Message: "must be valid JSON"})
	}

	if i.LastLocalUpdate < 0 {
		errs = append(errs, domain.FieldError{Field: "lastLocalUpdate", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
