package translate

import (
	"unicode/utf8"

	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

// maxTextLen caps a single translation request. Sheets hold individual
// sentences, so anything longer is a misuse of the endpoint.
const maxTextLen = 1000

// TranslateInput holds parameters for a translation request.
type TranslateInput struct {
	Text string
	From domain.LanguageCode
	To   domain.LanguageCode
}

// Validate validates the translation input.
func (i TranslateInput) Validate() error {
	var errs []domain.FieldError

	if i.Text == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	} else if utf8.RuneCountInString(i.Text) > maxTextLen {
		errs = append(errs, domain.FieldError{Field: "text", Message: "must be at most 1000 characters"})
	}

	if !i.From.IsValidShape() {
		errs = append(errs, domain.FieldError{Field: "from", Message: "must be a two-letter language code"})
	}
	if !i.To.IsValidShape() {
		errs = append(errs, domain.FieldError{Field: "to", Message: "must be a two-letter language code"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SuggestInput holds parameters for an enriched suggestion request.
type SuggestInput struct {
	Sentence       string
	TargetLanguage domain.LanguageCode
}

// Validate validates the suggestion input.
func (i SuggestInput) Validate() error {
	var errs []domain.FieldError

	if i.Sentence == "" {
		errs = append(errs, domain.FieldError{Field: "sentence", Message: "required"})
	} else if utf8.RuneCountInString(i.Sentence) > maxTextLen {
		errs = append(errs, domain.FieldError{Field: "sentence", Message: "must be at most 1000 characters"})
	}

	if !i.TargetLanguage.IsValidShape() {
		errs = append(errs, domain.FieldError{Field: "targetLanguage", Message: "must be a two-letter language code"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
