package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuthProvider identifies the external identity issuer a user signed in with.
type AuthProvider string

const (
	ProviderGoogle AuthProvider = "google"
	ProviderApple  AuthProvider = "apple"
)

func (p AuthProvider) String() string { return string(p) }

// IsValid reports whether the provider is one the gateway supports.
func (p AuthProvider) IsValid() bool {
	return p == ProviderGoogle || p == ProviderApple
}

// User is an account created on first sign-in. The gateway never stores
// credentials; identity is delegated to the provider and the row records
// the profile the provider reported.
type User struct {
	ID         uuid.UUID
	Provider   AuthProvider
	ProviderID string // subject claim from the identity token
	Email      string
	Name       *string
	Picture    *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
