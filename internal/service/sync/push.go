package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

// PushResult is the outcome of a push attempt. Exactly one of the two
// shapes applies: accepted (SyncedAt set) or conflict (ServerData set).
type PushResult struct {
	Conflict   bool
	ServerData *domain.SyncSnapshot
	SyncedAt   time.Time
}

// Push stores the client's snapshot unless the server already holds a
// strictly newer one. The stored row is read under a row lock, so two
// concurrent pushes for the same user serialize instead of both winning.
//
// The accepted snapshot is stamped with the server's clock, not the
// client's: client clocks are not trusted and a skewed device must not be
// able to pin the account's snapshot in the future.
func (s *Service) Push(ctx context.Context, input PushInput) (*PushResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var result *PushResult
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		stored, err := s.snapshots.GetForUpdate(txCtx, input.UserID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("get snapshot: %w", err)
		}

		if stored != nil && stored.IsNewerThan(input.LastLocalUpdate) {
			result = &PushResult{Conflict: true, ServerData: stored}
			return nil
		}

		now := time.Now().UTC()
		if err := s.snapshots.Save(txCtx, &domain.SyncSnapshot{
			UserID:    input.UserID,
			Data:      input.Data,
			UpdatedAt: now,
		}); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}

		result = &PushResult{SyncedAt: now}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sync.Push: %w", err)
	}

	if result.Conflict {
		s.log.InfoContext(ctx, "sync push rejected, server snapshot newer",
			slog.String("user_id", input.UserID.String()),
			slog.Int64("client_last_update", input.LastLocalUpdate),
			slog.Time("server_updated_at", result.ServerData.UpdatedAt))
	} else {
		s.log.DebugContext(ctx, "sync push accepted",
			slog.String("user_id", input.UserID.String()),
			slog.Int("bytes", len(input.Data)))
	}

	return result, nil
}
