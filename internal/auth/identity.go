package auth

// Identity represents user information extracted from a verified
// provider identity token.
type Identity struct {
	ProviderID string // subject claim
	Email      string
	Name       *string
	Picture    *string
}
