package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/lingonotes-backend/internal/adapter/provider/llm"
	"github.com/heartmarshall/lingonotes-backend/internal/domain"
	"github.com/heartmarshall/lingonotes-backend/internal/service/translate"
)

// translateService defines the minimal interface needed by TranslateHandler.
type translateService interface {
	Translate(ctx context.Context, input translate.TranslateInput) (string, error)
	Suggest(ctx context.Context, input translate.SuggestInput) (*llm.Suggestion, error)
}

// TranslateHandler serves translation REST endpoints.
type TranslateHandler struct {
	svc translateService
	log *slog.Logger
}

// NewTranslateHandler creates a TranslateHandler.
func NewTranslateHandler(svc translateService, logger *slog.Logger) *TranslateHandler {
	return &TranslateHandler{svc: svc, log: logger.With("handler", "translate")}
}

type translateRequest struct {
	Text string `json:"text"`
	From string `json:"from"`
	To   string `json:"to"`
}

type suggestRequest struct {
	Sentence       string `json:"sentence"`
	TargetLanguage string `json:"targetLanguage"`
}

type suggestResponse struct {
	Translation      string   `json:"translation"`
	GrammarNote      string   `json:"grammarNote"`
	SimilarSentences []string `json:"similarSentences"`
}

// Translate handles POST /translate.
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	translation, err := h.svc.Translate(r.Context(), translate.TranslateInput{
		Text: req.Text,
		From: domain.LanguageCode(req.From),
		To:   domain.LanguageCode(req.To),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"translation": translation})
}

// Suggest handles POST /translate/suggest (premium).
func (h *TranslateHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	suggestion, err := h.svc.Suggest(r.Context(), translate.SuggestInput{
		Sentence:       req.Sentence,
		TargetLanguage: domain.LanguageCode(req.TargetLanguage),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, suggestResponse{
		Translation:      suggestion.Translation,
		GrammarNote:      suggestion.GrammarNote,
		SimilarSentences: suggestion.SimilarSentences,
	})
}
