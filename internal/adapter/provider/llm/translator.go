// Package llm implements the translation provider on top of the
// Anthropic Messages API.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/lingonotes-backend/internal/config"
	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

// Suggestion is the structured response for sentence suggestions.
type Suggestion struct {
	Translation      string   `json:"translation"`
	GrammarNote      string   `json:"grammarNote"`
	SimilarSentences []string `json:"similarSentences"`
}

// Translator calls the LLM for plain translations and structured
// sentence suggestions.
type Translator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	log       *slog.Logger
}

// NewTranslator creates an LLM-backed translator from config.
func NewTranslator(cfg config.LLMConfig, logger *slog.Logger) *Translator {
	return &Translator{
		client:    anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		log:       logger.With("adapter", "llm"),
	}
}

// Translate returns the translation of text from one language to another.
// The instruction template is fixed; the model returns the bare translation.
func (t *Translator) Translate(ctx context.Context, text string, from, to domain.LanguageCode) (string, error) {
	system := fmt.Sprintf(`You are a professional translator. Translate the following text from %s to %s.
Provide only the translation, nothing else.
Keep the tone and style of the original text.
If the text contains idioms or expressions, translate them to equivalent expressions in the target language.`, from, to)

	out, err := t.complete(ctx, system, text, 0.3)
	if err != nil {
		return "", err
	}

	translation := strings.TrimSpace(out)
	if translation == "" {
		return "", fmt.Errorf("llm: empty translation: %w", domain.ErrUpstream)
	}

	return translation, nil
}

// Suggest returns a translation, a grammar note, and similar sentences
// for the given sentence as a structured object.
func (t *Translator) Suggest(ctx context.Context, sentence string, targetLanguage domain.LanguageCode) (*Suggestion, error) {
	system := fmt.Sprintf(`You are a language learning assistant. Given a sentence, provide:
1. A natural translation
2. A brief grammar note (if relevant)
3. 2-3 similar useful sentences in %s

Respond with ONLY a JSON object:
{
  "translation": "...",
  "grammarNote": "...",
  "similarSentences": ["...", "..."]
}`, targetLanguage)

	out, err := t.complete(ctx, system, sentence, 0.5)
	if err != nil {
		return nil, err
	}

	// Models occasionally wrap the object in prose or a code fence.
	jsonStr, err := extractJSON(out)
	if err != nil {
		return nil, fmt.Errorf("llm: %w: %w", err, domain.ErrUpstream)
	}

	var suggestion Suggestion
	if err := json.Unmarshal([]byte(jsonStr), &suggestion); err != nil {
		return nil, fmt.Errorf("llm: decode suggestion: %w", domain.ErrUpstream)
	}

	return &suggestion, nil
}

// complete sends one system+user exchange and returns the text of the
// first content block.
func (t *Translator) complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	msg, err := t.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(t.model),
		MaxTokens:   t.maxTokens,
		Temperature: anthropic.Float(temperature),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		t.log.ErrorContext(ctx, "llm call failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("llm: completion call: %w", domain.ErrUpstream)
	}

	if len(msg.Content) == 0 {
		return "", fmt.Errorf("llm: empty response: %w", domain.ErrUpstream)
	}

	return msg.Content[0].Text, nil
}

// extractJSON finds the first complete JSON object in a string.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}
