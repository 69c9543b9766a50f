// Package store is the client-side state container: user profile,
// onboarding flag and language sheets, persisted as one JSON blob.
//
// Mutations apply synchronously in memory and schedule a debounced
// asynchronous flush to the storage file, so a burst of edits costs one
// write. Close flushes whatever is pending.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

const defaultDebounce = 500 * time.Millisecond

// Store owns the persisted client state. Safe for concurrent use.
type Store struct {
	log      *slog.Logger
	path     string
	debounce time.Duration
	now      func() int64

	// wmu serializes marshal+rename so a debounce-fired flush cannot
	// land a stale blob over the file after Close has written the
	// final state. Lock order is wmu before mu.
	wmu sync.Mutex

	mu     sync.Mutex
	st     state
	timer  *time.Timer
	closed bool
}

// Option tweaks Store construction.
type Option func(*Store)

// WithDebounce overrides the flush debounce window.
func WithDebounce(d time.Duration) Option {
	return func(s *Store) { s.debounce = d }
}

// WithClock overrides the millisecond clock. Tests use it to make
// timestamps deterministic.
func WithClock(now func() int64) Option {
	return func(s *Store) { s.now = now }
}

// Open loads the state file at path, or starts empty if it does not
// exist yet. A corrupt file is an error, not a silent reset.
func Open(path string, logger *slog.Logger, opts ...Option) (*Store, error) {
	s := &Store{
		log:      logger.With("component", "store"),
		path:     path,
		debounce: defaultDebounce,
		now:      domain.NowMillis,
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// fresh install
	case err != nil:
		return nil, fmt.Errorf("store.Open read %s: %w", path, err)
	default:
		if err := json.Unmarshal(raw, &s.st); err != nil {
			return nil, fmt.Errorf("store.Open decode %s: %w", path, err)
		}
	}

	return s, nil
}

// Close cancels any pending flush, writes the current state out and
// marks the store unusable for further scheduling. Its write is final:
// a flush still in flight either completes before it or becomes a
// no-op.
func (s *Store) Close() error {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	raw, err := json.Marshal(s.st)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("store.Close encode state: %w", err)
	}
	return s.write(raw)
}

// touch advances the local update clock. Two mutations inside the same
// millisecond still get distinct, increasing stamps so last-write-wins
// comparisons stay ordered.
func (s *Store) touch() int64 {
	ts := s.now()
	if ts <= s.st.LastLocalUpdate {
		ts = s.st.LastLocalUpdate + 1
	}
	s.st.LastLocalUpdate = ts
	return ts
}

// scheduleFlush arms (or re-arms) the debounce timer. Caller holds mu.
func (s *Store) scheduleFlush() {
	if s.closed {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.flush)
}

// flush marshals and writes the state while holding the write lock, so
// concurrent flushes cannot reorder and a timer that fires during Close
// finds the store closed and does nothing.
func (s *Store) flush() {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	raw, err := json.Marshal(s.st)
	s.mu.Unlock()
	if err != nil {
		s.log.Error("encode state", slog.String("error", err.Error()))
		return
	}
	if err := s.write(raw); err != nil {
		s.log.Error("flush state", slog.String("error", err.Error()))
	}
}

// write lands the blob atomically: temp file in the same directory, then
// rename over the target.
func (s *Store) write(raw []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("store: create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("store: temp file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("store: write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: replace %s: %w", s.path, err)
	}
	return nil
}

// --- sheets ---

// CreateSheet adds an empty sheet for the target language, makes it the
// current sheet and returns its id. A second sheet for the same language
// is rejected.
func (s *Store) CreateSheet(target domain.LanguageCode) (string, error) {
	if !target.IsValidShape() {
		return "", domain.NewValidationError("targetLanguage", "must be a two-letter language code")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.st.LanguageSheets {
		if s.st.LanguageSheets[i].TargetLanguage == target {
			return "", fmt.Errorf("store.CreateSheet: sheet for %q exists: %w", target, domain.ErrConflict)
		}
	}

	ts := s.touch()
	sheet := domain.LanguageSheet{
		ID:             uuid.NewString(),
		TargetLanguage: target,
		Sentences:      []domain.Sentence{},
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}
	s.st.LanguageSheets = append(s.st.LanguageSheets, sheet)
	s.st.CurrentSheetID = sheet.ID
	s.scheduleFlush()
	return sheet.ID, nil
}

// DeleteSheet removes the sheet. Unknown ids are ignored. If the current
// sheet is deleted the selection clears.
func (s *Store) DeleteSheet(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.st.LanguageSheets {
		if s.st.LanguageSheets[i].ID != id {
			continue
		}
		s.st.LanguageSheets = append(s.st.LanguageSheets[:i], s.st.LanguageSheets[i+1:]...)
		if s.st.CurrentSheetID == id {
			s.st.CurrentSheetID = ""
		}
		s.touch()
		s.scheduleFlush()
		return
	}
}

// SetCurrentSheet selects the active sheet. Unknown ids are ignored.
func (s *Store) SetCurrentSheet(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.st.LanguageSheets {
		if s.st.LanguageSheets[i].ID == id {
			s.st.CurrentSheetID = id
			s.scheduleFlush()
			return
		}
	}
}

// CurrentSheet returns a copy of the selected sheet, or nil.
func (s *Store) CurrentSheet() *domain.LanguageSheet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copySheetLocked(s.st.CurrentSheetID)
}

// Sheet returns a copy of the sheet with the given id, or nil.
func (s *Store) Sheet(id string) *domain.LanguageSheet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copySheetLocked(id)
}

// Sheets returns a copy of all sheets.
func (s *Store) Sheets() []domain.LanguageSheet {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.LanguageSheet, len(s.st.LanguageSheets))
	for i := range s.st.LanguageSheets {
		out[i] = s.st.LanguageSheets[i]
		out[i].Sentences = append([]domain.Sentence(nil), s.st.LanguageSheets[i].Sentences...)
	}
	return out
}

func (s *Store) copySheetLocked(id string) *domain.LanguageSheet {
	for i := range s.st.LanguageSheets {
		if s.st.LanguageSheets[i].ID == id {
			cp := s.st.LanguageSheets[i]
			cp.Sentences = append([]domain.Sentence(nil), cp.Sentences...)
			return &cp
		}
	}
	return nil
}

func (s *Store) sheetLocked(id string) *domain.LanguageSheet {
	for i := range s.st.LanguageSheets {
		if s.st.LanguageSheets[i].ID == id {
			return &s.st.LanguageSheets[i]
		}
	}
	return nil
}

// --- sentences ---

// AddSentence appends a sentence to the sheet and returns its id.
// An unknown sheet id is a silent no-op and returns "".
func (s *Store) AddSentence(sheetID string, input SentenceInput) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	sheet := s.sheetLocked(sheetID)
	if sheet == nil {
		return ""
	}

	ts := s.touch()
	sentence := domain.Sentence{
		ID:             uuid.NewString(),
		Original:       input.Original,
		Translation:    input.Translation,
		SourceLanguage: input.SourceLanguage,
		TargetLanguage: input.TargetLanguage,
		Notes:          input.Notes,
		Tags:           append([]string(nil), input.Tags...),
		CreatedAt:      ts,
		UpdatedAt:      ts,
		ReviewCount:    0,
		AIGenerated:    input.AIGenerated,
	}
	sheet.Sentences = append(sheet.Sentences, sentence)
	sheet.UpdatedAt = ts
	s.scheduleFlush()
	return sentence.ID
}

// UpdateSentence applies the given changes and refreshes both the
// sentence's and the owning sheet's updatedAt. Unknown ids are no-ops.
func (s *Store) UpdateSentence(sheetID, sentenceID string, update SentenceUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sheet := s.sheetLocked(sheetID)
	if sheet == nil {
		return
	}
	sentence := sheet.FindSentence(sentenceID)
	if sentence == nil {
		return
	}

	if update.Original != nil {
		sentence.Original = *update.Original
	}
	if update.Translation != nil {
		sentence.Translation = *update.Translation
	}
	if update.Notes != nil {
		sentence.Notes = *update.Notes
	}
	if update.Tags != nil {
		sentence.Tags = append([]string(nil), (*update.Tags)...)
	}

	ts := s.touch()
	sentence.UpdatedAt = ts
	sheet.UpdatedAt = ts
	s.scheduleFlush()
}

// DeleteSentence removes the sentence and refreshes the sheet's
// updatedAt. Unknown ids are no-ops.
func (s *Store) DeleteSentence(sheetID, sentenceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sheet := s.sheetLocked(sheetID)
	if sheet == nil {
		return
	}
	for i := range sheet.Sentences {
		if sheet.Sentences[i].ID != sentenceID {
			continue
		}
		sheet.Sentences = append(sheet.Sentences[:i], sheet.Sentences[i+1:]...)
		sheet.UpdatedAt = s.touch()
		s.scheduleFlush()
		return
	}
}

// MarkReviewed records one review pass: bumps reviewCount and stamps
// lastReviewedAt. Unknown ids are no-ops.
func (s *Store) MarkReviewed(sheetID, sentenceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sheet := s.sheetLocked(sheetID)
	if sheet == nil {
		return
	}
	sentence := sheet.FindSentence(sentenceID)
	if sentence == nil {
		return
	}

	ts := s.touch()
	sentence.ReviewCount++
	sentence.LastReviewedAt = &ts
	sentence.UpdatedAt = ts
	sheet.UpdatedAt = ts
	s.scheduleFlush()
}

// --- user / lifecycle ---

// User returns a copy of the cached profile, or nil when signed out.
func (s *Store) User() *Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.User == nil {
		return nil
	}
	cp := *s.st.User
	return &cp
}

// SetUser replaces the cached profile, e.g. after sign-in.
func (s *Store) SetUser(p Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.User = &p
	s.touch()
	s.scheduleFlush()
}

// UpdateUser mutates the cached profile in place. A no-op when signed out.
func (s *Store) UpdateUser(fn func(*Profile)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.User == nil {
		return
	}
	fn(s.st.User)
	s.touch()
	s.scheduleFlush()
}

// HasCompletedOnboarding reports whether the intro flow finished.
func (s *Store) HasCompletedOnboarding() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.HasCompletedOnboarding
}

// CompleteOnboarding marks the intro flow finished.
func (s *Store) CompleteOnboarding() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.HasCompletedOnboarding = true
	s.scheduleFlush()
}

// Reset clears the user, onboarding flag and all sheets. Used on sign-out.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = state{}
	s.scheduleFlush()
}

// --- sync ---

// Snapshot returns the payload to push plus the timestamp of the latest
// local mutation.
func (s *Store) Snapshot() (domain.SyncPayload, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sheets := make([]domain.LanguageSheet, len(s.st.LanguageSheets))
	for i := range s.st.LanguageSheets {
		sheets[i] = s.st.LanguageSheets[i]
		sheets[i].Sentences = append([]domain.Sentence(nil), s.st.LanguageSheets[i].Sentences...)
	}

	payload := domain.SyncPayload{LanguageSheets: sheets}
	if s.st.User != nil {
		payload.Settings.NativeLanguage = s.st.User.NativeLanguage
	}
	return payload, s.st.LastLocalUpdate
}

// ApplySnapshot replaces local sheets with a payload pulled from the
// gateway, for example after accepting the server side of a conflict.
func (s *Store) ApplySnapshot(payload domain.SyncPayload, serverMillis int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.LanguageSheets = payload.LanguageSheets
	if s.st.CurrentSheetID != "" && s.sheetLocked(s.st.CurrentSheetID) == nil {
		s.st.CurrentSheetID = ""
	}
	if payload.Settings.NativeLanguage != "" && s.st.User != nil {
		s.st.User.NativeLanguage = payload.Settings.NativeLanguage
	}
	if serverMillis > s.st.LastLocalUpdate {
		s.st.LastLocalUpdate = serverMillis
	}
	s.scheduleFlush()
}
