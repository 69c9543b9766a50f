package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

// Pull returns the user's stored snapshot, or nil when the user has never
// pushed. A missing snapshot is a normal state for fresh accounts, not an
// error.
func (s *Service) Pull(ctx context.Context, userID uuid.UUID) (*domain.SyncSnapshot, error) {
	snapshot, err := s.snapshots.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("sync.Pull: %w", err)
	}
	return snapshot, nil
}

// Delete removes the user's snapshot. Deleting an absent snapshot is a
// no-op so the client can retry freely.
func (s *Service) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.snapshots.Delete(ctx, userID); err != nil {
		return fmt.Errorf("sync.Delete: %w", err)
	}
	s.log.InfoContext(ctx, "sync snapshot deleted", "user_id", userID.String())
	return nil
}
