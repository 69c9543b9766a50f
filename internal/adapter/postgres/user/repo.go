// Package user implements the User repository using PostgreSQL.
package user

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

const columns = "id, provider, provider_id, email, name, picture, created_at, updated_at"

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.
		Select(columns).
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	u, err := scanUser(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "user")
	}
	return u, nil
}

// Upsert inserts a user on first sign-in or refreshes the stored profile
// for an existing (provider, provider_id) identity. Returns the persisted row.
func (r *Repo) Upsert(ctx context.Context, u *domain.User) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now()
	query, args, err := psql.
		Insert("users").
		Columns("id", "provider", "provider_id", "email", "name", "picture", "created_at", "updated_at").
		Values(u.ID, u.Provider.String(), u.ProviderID, u.Email, u.Name, u.Picture, now, now).
		Suffix(`ON CONFLICT (provider, provider_id) DO UPDATE SET
			email = EXCLUDED.email,
			name = COALESCE(EXCLUDED.name, users.name),
			picture = COALESCE(EXCLUDED.picture, users.picture),
			updated_at = EXCLUDED.updated_at
			RETURNING ` + columns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	persisted, err := scanUser(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "user")
	}
	return persisted, nil
}

type row interface {
	Scan(dest ...any) error
}

func scanUser(r row) (*domain.User, error) {
	var (
		u        domain.User
		provider string
	)
	err := r.Scan(&u.ID, &provider, &u.ProviderID, &u.Email, &u.Name, &u.Picture, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Provider = domain.AuthProvider(provider)
	return &u, nil
}
