package auth

import (
	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

// maxTokenLen bounds incoming identity tokens. Provider JWTs are well
// under this; anything larger is garbage.
const maxTokenLen = 8192

// SignInGoogleInput holds parameters for Google sign-in.
type SignInGoogleInput struct {
	IDToken string
}

// Validate validates the Google sign-in input.
func (i SignInGoogleInput) Validate() error {
	var errs []domain.FieldError

	if i.IDToken == "" {
		errs = append(errs, domain.FieldError{Field: "idToken", Message: "required"})
	} else if len(i.IDToken) > maxTokenLen {
		errs = append(errs, domain.FieldError{Field: "idToken", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SignInAppleInput holds parameters for Apple sign-in. Email and Name are
// client-supplied fallbacks: Apple only includes the user's profile in the
// very first authorization, so the app forwards it alongside the token.
type SignInAppleInput struct {
	IdentityToken string
	Email         string
	Name          *string
}

// Validate validates the Apple sign-in input.
func (i SignInAppleInput) Validate() error {
	var errs []domain.FieldError

	if i.IdentityToken == "" {
		errs = append(errs, domain.FieldError{Field: "idToken", Message: "required"})
	} else if len(i.IdentityToken) > maxTokenLen {
		errs = append(errs, domain.FieldError{Field: "idToken", Message: "too long"})
	}

	if len(i.Email) > 320 {
		errs = append(errs, domain.FieldError{Field: "email", Message: "too long"})
	}
	if i.Name != nil && len(*i.Name) > 256 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
