package api

import (
	"context"
	"net/http"
)

// User is the account profile as the gateway reports it.
type User struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Name     *string `json:"name,omitempty"`
	Picture  *string `json:"picture,omitempty"`
	Provider string  `json:"provider"`
}

// Session is a successful sign-in: the minted token plus the profile.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// SignInGoogle exchanges a Google id token for a gateway session.
// The returned token is stored on the client for subsequent calls.
func (c *Client) SignInGoogle(ctx context.Context, idToken string) (*Session, error) {
	var session Session
	err := c.do(ctx, http.MethodPost, "/auth/google", map[string]string{"idToken": idToken}, &session)
	if err != nil {
		return nil, err
	}
	c.SetToken(session.Token)
	return &session, nil
}

// AppleUser carries the profile fields Apple reveals only on the very
// first authorization. The app captures them then and forwards them so
// the gateway can fall back when the token omits the claims.
type AppleUser struct {
	Email      string `json:"email,omitempty"`
	GivenName  string `json:"givenName,omitempty"`
	FamilyName string `json:"familyName,omitempty"`
}

// SignInApple exchanges an Apple identity token for a gateway session.
// user may be nil on repeat sign-ins.
func (c *Client) SignInApple(ctx context.Context, idToken string, user *AppleUser) (*Session, error) {
	body := map[string]any{"idToken": idToken}
	if user != nil {
		payload := map[string]any{}
		if user.Email != "" {
			payload["email"] = user.Email
		}
		if user.GivenName != "" || user.FamilyName != "" {
			payload["fullName"] = map[string]string{
				"givenName":  user.GivenName,
				"familyName": user.FamilyName,
			}
		}
		if len(payload) > 0 {
			body["user"] = payload
		}
	}

	var session Session
	if err := c.do(ctx, http.MethodPost, "/auth/apple", body, &session); err != nil {
		return nil, err
	}
	c.SetToken(session.Token)
	return &session, nil
}

// Verify checks the stored session token against the gateway and
// returns the current profile. Called on app start to decide between
// the signed-in and sign-in screens.
func (c *Client) Verify(ctx context.Context) (*User, error) {
	var resp struct {
		Valid bool `json:"valid"`
		User  User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/verify", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}
