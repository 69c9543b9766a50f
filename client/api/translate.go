package api

import (
	"context"
	"net/http"

	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

// Suggestion is the structured answer from /translate/suggest.
type Suggestion struct {
	Translation      string   `json:"translation"`
	GrammarNote      string   `json:"grammarNote"`
	SimilarSentences []string `json:"similarSentences"`
}

// Translate translates text between the two languages.
func (c *Client) Translate(ctx context.Context, text string, from, to domain.LanguageCode) (string, error) {
	body := map[string]string{
		"text": text,
		"from": from.String(),
		"to":   to.String(),
	}
	var resp struct {
		Translation string `json:"translation"`
	}
	if err := c.do(ctx, http.MethodPost, "/translate", body, &resp); err != nil {
		return "", err
	}
	return resp.Translation, nil
}

// Suggest asks for a translation enriched with a grammar note and
// similar example sentences.
func (c *Client) Suggest(ctx context.Context, sentence string, target domain.LanguageCode) (*Suggestion, error) {
	body := map[string]string{
		"sentence":       sentence,
		"targetLanguage": target.String(),
	}
	var suggestion Suggestion
	if err := c.do(ctx, http.MethodPost, "/translate/suggest", body, &suggestion); err != nil {
		return nil, err
	}
	return &suggestion, nil
}
