package apple

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// fakeApple hosts a JWKS endpoint for a freshly generated RSA key and
// returns a signer for tokens that key set will validate.
type fakeApple struct {
	key *rsa.PrivateKey
	kid string
}

func newFakeApple(t *testing.T) *fakeApple {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}

	fa := &fakeApple{key: key, kid: "test-key-1"}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jwks := map[string]any{
			"keys": []map[string]string{{
				"kty": "RSA",
				"kid": fa.kid,
				"use": "sig",
				"alg": "RS256",
				"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
			}},
		}
		json.NewEncoder(w).Encode(jwks)
	}))

	orig := jwksURL
	jwksURL = srv.URL
	t.Cleanup(func() {
		jwksURL = orig
		srv.Close()
	})

	return fa
}

// sign issues an identity token with the given claims.
func (fa *fakeApple) sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = fa.kid

	signed, err := token.SignedString(fa.key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func baseClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"iss":   appleIssuer,
		"sub":   "001234.abcdef",
		"aud":   "com.lingonotes.app",
		"email": "learner@privaterelay.appleid.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
}

func TestVerifyIDToken_Success(t *testing.T) {
	fa := newFakeApple(t)
	v := NewVerifier("com.lingonotes.app", slog.Default())

	identity, err := v.VerifyIDToken(context.Background(), fa.sign(t, baseClaims()))
	if err != nil {
		t.Fatalf("VerifyIDToken: %v", err)
	}
	if identity.ProviderID != "001234.abcdef" {
		t.Errorf("provider ID: got %q", identity.ProviderID)
	}
	if identity.Email != "learner@privaterelay.appleid.com" {
		t.Errorf("email: got %q", identity.Email)
	}
}

func TestVerifyIDToken_MissingEmail(t *testing.T) {
	fa := newFakeApple(t)
	v := NewVerifier("com.lingonotes.app", slog.Default())

	claims := baseClaims()
	delete(claims, "email")

	identity, err := v.VerifyIDToken(context.Background(), fa.sign(t, claims))
	if err != nil {
		t.Fatalf("VerifyIDToken: %v", err)
	}
	if identity.Email != "" {
		t.Errorf("expected empty email, got %q", identity.Email)
	}
}

func TestVerifyIDToken_WrongIssuer(t *testing.T) {
	fa := newFakeApple(t)
	v := NewVerifier("com.lingonotes.app", slog.Default())

	claims := baseClaims()
	claims["iss"] = "https://evil.example.com"

	if _, err := v.VerifyIDToken(context.Background(), fa.sign(t, claims)); err == nil {
		t.Fatal("expected error for wrong issuer")
	}
}

func TestVerifyIDToken_WrongAudience(t *testing.T) {
	fa := newFakeApple(t)
	v := NewVerifier("com.lingonotes.app", slog.Default())

	claims := baseClaims()
	claims["aud"] = "com.other.app"

	if _, err := v.VerifyIDToken(context.Background(), fa.sign(t, claims)); err == nil {
		t.Fatal("expected error for wrong audience")
	}
}

func TestVerifyIDToken_Expired(t *testing.T) {
	fa := newFakeApple(t)
	v := NewVerifier("com.lingonotes.app", slog.Default())

	claims := baseClaims()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()

	if _, err := v.VerifyIDToken(context.Background(), fa.sign(t, claims)); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestVerifyIDToken_UnknownKey(t *testing.T) {
	fa := newFakeApple(t)
	v := NewVerifier("com.lingonotes.app", slog.Default())

	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, baseClaims())
	token.Header["kid"] = "unknown-kid"
	signed, err := token.SignedString(otherKey)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	_ = fa

	if _, err := v.VerifyIDToken(context.Background(), signed); err == nil {
		t.Fatal("expected error for token signed by unknown key")
	}
}

func TestVerifyIDToken_Empty(t *testing.T) {
	t.Parallel()

	v := NewVerifier("", slog.Default())
	if _, err := v.VerifyIDToken(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty token")
	}
}
