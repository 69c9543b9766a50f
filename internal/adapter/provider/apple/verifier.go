// Package apple verifies Sign in with Apple identity tokens against
// Apple's published JWKS.
package apple

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"github.com/heartmarshall/lingonotes-backend/internal/auth"
	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

// Made variables for testing purposes
var (
	jwksURL     = "https://appleid.apple.com/auth/keys"
	appleIssuer = "https://appleid.apple.com"
)

// Verifier validates Apple identity tokens. Apple signs them RS256 with
// rotating keys, so the key set is fetched from the JWKS endpoint and
// cached with background refresh.
type Verifier struct {
	clientID string // expected audience (app bundle id); empty disables the check

	mu   sync.Mutex
	keys keyfunc.Keyfunc
	log  *slog.Logger
}

// NewVerifier creates an Apple identity token verifier.
// clientID comes from config.AuthConfig.AppleClientID.
// The JWKS is fetched lazily on first verification so startup does not
// depend on Apple being reachable.
func NewVerifier(clientID string, logger *slog.Logger) *Verifier {
	return &Verifier{
		clientID: clientID,
		log:      logger.With("adapter", "apple_identity"),
	}
}

// appleClaims are the claims we read from an Apple identity token.
// email_verified arrives as bool or as the string "true" depending on
// token vintage.
type appleClaims struct {
	jwt.RegisteredClaims
	Email         string `json:"email"`
	EmailVerified any    `json:"email_verified"`
}

// VerifyIDToken validates the identity token signature, issuer, expiry and
// audience, and returns the identity. Apple may omit the email claim on
// repeat sign-ins; callers supply a fallback from the sign-in request.
func (v *Verifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.Identity, error) {
	if idToken == "" {
		return nil, fmt.Errorf("apple: empty id token: %w", domain.ErrUnauthorized)
	}

	kf, err := v.keyfunc(ctx)
	if err != nil {
		v.log.ErrorContext(ctx, "apple jwks fetch failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("apple: jwks unavailable: %w", domain.ErrUpstream)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(appleIssuer),
		jwt.WithExpirationRequired(),
	}
	if v.clientID != "" {
		opts = append(opts, jwt.WithAudience(v.clientID))
	}

	var claims appleClaims
	token, err := jwt.ParseWithClaims(idToken, &claims, kf, opts...)
	if err != nil {
		v.log.WarnContext(ctx, "apple token rejected", slog.String("error", err.Error()))
		return nil, fmt.Errorf("apple: invalid id token: %w", domain.ErrUnauthorized)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("apple: invalid id token: %w", domain.ErrUnauthorized)
	}

	identity := &auth.Identity{
		ProviderID: claims.Subject,
		Email:      claims.Email,
	}

	v.log.DebugContext(ctx, "apple token verified", slog.String("sub", claims.Subject))

	return identity, nil
}

// keyfunc returns the cached JWKS keyfunc, fetching it on first use.
func (v *Verifier) keyfunc(ctx context.Context) (jwt.Keyfunc, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.keys == nil {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		k, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
		if err != nil {
			return nil, fmt.Errorf("fetch jwks: %w", err)
		}
		v.keys = k
	}

	return v.keys.Keyfunc, nil
}
