package testhelper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedUser inserts a minimal user row and returns its id. Subscription and
// sync snapshot rows reference users, so most repo tests need one.
func SeedUser(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	id := uuid.New()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, `
		INSERT INTO users (id, provider, provider_id, email)
		VALUES ($1, 'google', $2, $3)`,
		id, id.String(), fmt.Sprintf("%s@example.com", id))
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	return id
}
