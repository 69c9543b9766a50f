package domain

import "time"

// Timestamps inside sheets travel as Unix milliseconds. The mobile client
// persisted them that way long before the gateway existed, and the sync
// payload must stay byte-compatible with blobs already on devices.

// NowMillis returns the current wall clock as Unix milliseconds.
func NowMillis() int64 { return time.Now().UnixMilli() }

// Sentence is a single collected sentence with its translation.
// It belongs to exactly one LanguageSheet.
type Sentence struct {
	ID             string       `json:"id"`
	Original       string       `json:"original"`
	Translation    string       `json:"translation"`
	SourceLanguage LanguageCode `json:"sourceLanguage"`
	TargetLanguage LanguageCode `json:"targetLanguage"`
	Notes          string       `json:"notes,omitempty"`
	Tags           []string     `json:"tags,omitempty"`
	CreatedAt      int64        `json:"createdAt"`
	UpdatedAt      int64        `json:"updatedAt"`
	ReviewCount    int          `json:"reviewCount"`
	LastReviewedAt *int64       `json:"lastReviewedAt,omitempty"`
	AIGenerated    bool         `json:"aiGenerated,omitempty"`
}

// LanguageSheet is a named collection of sentences for one target language.
// Invariant: a user holds at most one sheet per target language.
type LanguageSheet struct {
	ID             string       `json:"id"`
	TargetLanguage LanguageCode `json:"targetLanguage"`
	Sentences      []Sentence   `json:"sentences"`
	CreatedAt      int64        `json:"createdAt"`
	UpdatedAt      int64        `json:"updatedAt"`
}

// FindSentence returns a pointer to the sentence with the given id, or nil.
func (s *LanguageSheet) FindSentence(id string) *Sentence {
	for i := range s.Sentences {
		if s.Sentences[i].ID == id {
			return &s.Sentences[i]
		}
	}
	return nil
}

// Settings is the per-user preference bundle synced alongside sheets.
type Settings struct {
	NativeLanguage LanguageCode `json:"nativeLanguage,omitempty"`
}
