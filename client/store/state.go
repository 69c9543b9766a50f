package store

import (
	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

// Profile is the locally cached account. It mirrors what the gateway
// returns on sign-in plus the preferences the user picks on device.
type Profile struct {
	ID                    string                    `json:"id"`
	Email                 string                    `json:"email"`
	Name                  string                    `json:"name,omitempty"`
	Picture               string                    `json:"picture,omitempty"`
	Provider              string                    `json:"provider,omitempty"`
	NativeLanguage        domain.LanguageCode       `json:"nativeLanguage,omitempty"`
	SubscriptionStatus    domain.SubscriptionStatus `json:"subscriptionStatus,omitempty"`
	SubscriptionExpiresAt *int64                    `json:"subscriptionExpiresAt,omitempty"`
	CreatedAt             int64                     `json:"createdAt"`
}

// state is the single blob persisted to the storage file. The field names
// are the wire names the mobile app has always used; changing them would
// orphan state already on devices.
type state struct {
	User                   *Profile               `json:"user"`
	HasCompletedOnboarding bool                   `json:"hasCompletedOnboarding"`
	LanguageSheets         []domain.LanguageSheet `json:"languageSheets"`
	CurrentSheetID         string                 `json:"currentSheetId,omitempty"`
	LastLocalUpdate        int64                  `json:"lastLocalUpdate"`
}

// SentenceInput is the caller-supplied part of a new sentence.
type SentenceInput struct {
	Original       string
	Translation    string
	SourceLanguage domain.LanguageCode
	TargetLanguage domain.LanguageCode
	Notes          string
	Tags           []string
	AIGenerated    bool
}

// SentenceUpdate carries the fields to change. Nil means keep as is.
type SentenceUpdate struct {
	Original    *string
	Translation *string
	Notes       *string
	Tags        *[]string
}
