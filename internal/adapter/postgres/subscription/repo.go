// Package subscription implements the Subscription repository using PostgreSQL.
// Each user has at most one row; a missing row means free tier.
package subscription

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/lingonotes-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const columns = "user_id, status, expires_at, plan, updated_at"

// Repo provides subscription persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new subscription repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Get returns the subscription row for the user.
// Returns domain.ErrNotFound when the user has never purchased.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.
		Select(columns).
		From("subscriptions").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var (
		sub    domain.Subscription
		status string
	)
	err = q.QueryRow(ctx, query, args...).
		Scan(&sub.UserID, &status, &sub.ExpiresAt, &sub.Plan, &sub.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "subscription")
	}
	sub.Status = domain.SubscriptionStatus(status)

	return &sub, nil
}

// Upsert writes the subscription row for the user, replacing any prior state.
func (r *Repo) Upsert(ctx context.Context, sub *domain.Subscription) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.
		Insert("subscriptions").
		Columns("user_id", "status", "expires_at", "plan", "updated_at").
		Values(sub.UserID, sub.Status.String(), sub.ExpiresAt, sub.Plan, time.Now()).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			status = EXCLUDED.status,
			expires_at = EXCLUDED.expires_at,
			plan = EXCLUDED.plan,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "subscription")
	}
	return nil
}

// DowngradeIfExpired atomically flips an expired premium row to free.
// The WHERE clause is the concurrency guard: two racing requests both
// issue the conditional UPDATE and exactly one (or zero) changes the row.
// Returns true if a downgrade happened.
func (r *Repo) DowngradeIfExpired(ctx context.Context, userID uuid.UUID, now time.Time) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.
		Update("subscriptions").
		Set("status", domain.SubscriptionFree.String()).
		Set("updated_at", now).
		Where(sq.Eq{"user_id": userID, "status": domain.SubscriptionPremium.String()}).
		Where(sq.NotEq{"expires_at": nil}).
		Where(sq.LtOrEq{"expires_at": now}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return false, postgres.MapError(err, "subscription")
	}

	return tag.RowsAffected() > 0, nil
}
