package translate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/lingonotes-backend/internal/adapter/provider/llm"
	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

// translator defines the model-backed translation interface needed by
// translate service.
type translator interface {
	Translate(ctx context.Context, text string, from, to domain.LanguageCode) (string, error)
	Suggest(ctx context.Context, sentence string, targetLanguage domain.LanguageCode) (*llm.Suggestion, error)
}

// Service implements translation and enriched suggestions.
type Service struct {
	log        *slog.Logger
	translator translator
}

// NewService creates a new translate service instance.
func NewService(logger *slog.Logger, tr translator) *Service {
	return &Service{
		log:        logger.With("service", "translate"),
		translator: tr,
	}
}

// Translate converts text between two languages.
func (s *Service) Translate(ctx context.Context, input TranslateInput) (string, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}

	translation, err := s.translator.Translate(ctx, input.Text, input.From, input.To)
	if err != nil {
		return "", fmt.Errorf("translate.Translate: %w", err)
	}

	s.log.DebugContext(ctx, "text translated",
		slog.String("from", input.From.String()),
		slog.String("to", input.To.String()),
		slog.Int("chars", len(input.Text)))

	return translation, nil
}

// Suggest returns a translation plus a grammar note and similar example
// sentences for the given sentence. Premium-gated at the transport layer.
func (s *Service) Suggest(ctx context.Context, input SuggestInput) (*llm.Suggestion, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	suggestion, err := s.translator.Suggest(ctx, input.Sentence, input.TargetLanguage)
	if err != nil {
		return nil, fmt.Errorf("translate.Suggest: %w", err)
	}

	return suggestion, nil
}
