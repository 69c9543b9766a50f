package sync

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

// snapshotRepo defines the sync snapshot repository interface needed by sync service.
type snapshotRepo interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.SyncSnapshot, error)
	GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.SyncSnapshot, error)
	Save(ctx context.Context, snapshot *domain.SyncSnapshot) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// txManager defines the transaction manager interface needed by sync service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements cloud sync: one snapshot per user, last-write-wins.
type Service struct {
	log       *slog.Logger
	snapshots snapshotRepo
	tx        txManager
}

// NewService creates a new sync service instance.
func NewService(logger *slog.Logger, snapshots snapshotRepo, tx txManager) *Service {
	return &Service{
		log:       logger.With("service", "sync"),
		snapshots: snapshots,
		tx:        tx,
	}
}
