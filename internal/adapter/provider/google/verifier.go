// Package google verifies Google ID tokens against the tokeninfo endpoint.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/heartmarshall/lingonotes-backend/internal/auth"
	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

// Made a variable for testing purposes
var tokeninfoURL = "https://oauth2.googleapis.com/tokeninfo"

// Verifier validates Google-issued ID tokens and extracts user identity.
// Verification is delegated to Google's tokeninfo endpoint: a valid
// signature and expiry are implied by a 200 response.
type Verifier struct {
	clientID   string // expected audience; empty disables the check
	httpClient *http.Client
	log        *slog.Logger
}

// NewVerifier creates a Google ID-token verifier.
// clientID comes from config.AuthConfig.GoogleClientID.
func NewVerifier(clientID string, logger *slog.Logger) *Verifier {
	return &Verifier{
		clientID:   clientID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.With("adapter", "google_identity"),
	}
}

// tokeninfoResponse represents the response from Google's tokeninfo endpoint.
// Numeric and boolean claims arrive as strings.
type tokeninfoResponse struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Audience      string `json:"aud"`
}

// VerifyIDToken checks the ID token with Google and returns the identity.
func (v *Verifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.Identity, error) {
	if idToken == "" {
		return nil, fmt.Errorf("google: empty id token: %w", domain.ErrUnauthorized)
	}

	reqURL := tokeninfoURL + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("google: create tokeninfo request: %w", err)
	}

	resp, err := v.doWithRetry(ctx, req)
	if err != nil {
		v.log.ErrorContext(ctx, "google tokeninfo call failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("google: tokeninfo unavailable: %w", domain.ErrUpstream)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("google: read tokeninfo response: %w", domain.ErrUpstream)
	}

	if resp.StatusCode != http.StatusOK {
		// tokeninfo answers 400 for invalid or expired tokens.
		v.log.WarnContext(ctx, "google token rejected", slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("google: invalid id token: %w", domain.ErrUnauthorized)
	}

	var info tokeninfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("google: invalid tokeninfo response: %w", domain.ErrUpstream)
	}

	if info.Sub == "" || info.Email == "" {
		return nil, fmt.Errorf("google: tokeninfo missing required claims: %w", domain.ErrUnauthorized)
	}
	if info.EmailVerified != "true" {
		return nil, fmt.Errorf("google: email not verified: %w", domain.ErrUnauthorized)
	}
	if v.clientID != "" && info.Audience != v.clientID {
		v.log.WarnContext(ctx, "google token audience mismatch", slog.String("aud", info.Audience))
		return nil, fmt.Errorf("google: invalid id token: %w", domain.ErrUnauthorized)
	}

	identity := &auth.Identity{
		ProviderID: info.Sub,
		Email:      info.Email,
	}
	if info.Name != "" {
		identity.Name = &info.Name
	}
	if info.Picture != "" {
		identity.Picture = &info.Picture
	}

	v.log.DebugContext(ctx, "google token verified", slog.String("email", info.Email))

	return identity, nil
}

// doWithRetry executes an HTTP request with retry logic.
// Retries once on 5xx errors or network errors with 500ms backoff.
func (v *Verifier) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil || (resp != nil && resp.StatusCode >= 500) {
		if resp != nil {
			resp.Body.Close()
		}

		select {
		case <-time.After(500 * time.Millisecond):
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		resp, err = v.httpClient.Do(req)
	}

	return resp, err
}
