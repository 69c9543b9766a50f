// Package syncdata implements the SyncSnapshot repository using PostgreSQL.
// One row per user holding the latest pushed payload as jsonb.
package syncdata

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/lingonotes-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const columns = "user_id, data, updated_at"

// Repo provides sync snapshot persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new sync snapshot repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Get returns the stored snapshot for the user.
// Returns domain.ErrNotFound when the user has never pushed.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID) (*domain.SyncSnapshot, error) {
	return r.get(ctx, userID, false)
}

// GetForUpdate is Get with a row lock; call it inside a transaction so the
// compare-and-swap in the sync service cannot interleave with a concurrent
// push for the same user.
func (r *Repo) GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.SyncSnapshot, error) {
	return r.get(ctx, userID, true)
}

func (r *Repo) get(ctx context.Context, userID uuid.UUID, forUpdate bool) (*domain.SyncSnapshot, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := psql.
		Select(columns).
		From("sync_snapshots").
		Where(sq.Eq{"user_id": userID})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var snap domain.SyncSnapshot
	err = q.QueryRow(ctx, query, args...).Scan(&snap.UserID, &snap.Data, &snap.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "sync_snapshot")
	}

	return &snap, nil
}

// Save overwrites the user's snapshot with the given data and timestamp.
func (r *Repo) Save(ctx context.Context, snap *domain.SyncSnapshot) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.
		Insert("sync_snapshots").
		Columns("user_id", "data", "updated_at").
		Values(snap.UserID, snap.Data, snap.UpdatedAt).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "sync_snapshot")
	}
	return nil
}

// Delete removes the user's snapshot. Deleting a missing snapshot is not
// an error.
func (r *Repo) Delete(ctx context.Context, userID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.
		Delete("sync_snapshots").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "sync_snapshot")
	}
	return nil
}
