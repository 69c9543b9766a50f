package translate

import (
	"context"
	"sync"

	"github.com/heartmarshall/lingonotes-backend/internal/adapter/provider/llm"
	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

var _ translator = &translatorMock{}

type translatorMock struct {
	TranslateFunc func(ctx context.Context, text string, from, to domain.LanguageCode) (string, error)
	SuggestFunc   func(ctx context.Context, sentence string, targetLanguage domain.LanguageCode) (*llm.Suggestion, error)

	calls struct {
		Translate []struct {
			Ctx  context.Context
			Text string
			From domain.LanguageCode
			To   domain.LanguageCode
		}
		Suggest []struct {
			Ctx            context.Context
			Sentence       string
			TargetLanguage domain.LanguageCode
		}
	}
	lockTranslate sync.RWMutex
	lockSuggest   sync.RWMutex
}

func (mock *translatorMock) Translate(ctx context.Context, text string, from, to domain.LanguageCode) (string, error) {
	if mock.TranslateFunc == nil {
		panic("translatorMock.TranslateFunc: method is nil but translator.Translate was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Text string
		From domain.LanguageCode
		To   domain.LanguageCode
	}{Ctx: ctx, Text: text, From: from, To: to}
	mock.lockTranslate.Lock()
	mock.calls.Translate = append(mock.calls.Translate, callInfo)
	mock.lockTranslate.Unlock()
	return mock.TranslateFunc(ctx, text, from, to)
}

func (mock *translatorMock) TranslateCalls() []struct {
	Ctx  context.Context
	Text string
	From domain.LanguageCode
	To   domain.LanguageCode
} {
	mock.lockTranslate.RLock()
	calls := mock.calls.Translate
	mock.lockTranslate.RUnlock()
	return calls
}

func (mock *translatorMock) Suggest(ctx context.Context, sentence string, targetLanguage domain.LanguageCode) (*llm.Suggestion, error) {
	if mock.SuggestFunc == nil {
		panic("translatorMock.SuggestFunc: method is nil but translator.Suggest was just called")
	}
	callInfo := struct {
		Ctx            context.Context
		Sentence       string
		TargetLanguage domain.LanguageCode
	}{Ctx: ctx, Sentence: sentence, TargetLanguage: targetLanguage}
	mock.lockSuggest.Lock()
	mock.calls.Suggest = append(mock.calls.Suggest, callInfo)
	mock.lockSuggest.Unlock()
	return mock.SuggestFunc(ctx, sentence, targetLanguage)
}

func (mock *translatorMock) SuggestCalls() []struct {
	Ctx            context.Context
	Sentence       string
	TargetLanguage domain.LanguageCode
} {
	mock.lockSuggest.RLock()
	calls := mock.calls.Suggest
	mock.lockSuggest.RUnlock()
	return calls
}
