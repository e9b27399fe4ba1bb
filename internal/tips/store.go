package tips

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/models"
)

// ErrWriteFailed wraps any backend failure while persisting the collection.
// The backend keeps its previous value.
var ErrWriteFailed = errors.New("failed to save tips")

// Store is the key-value capability the tip store persists through
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// TipStore keeps a capped, newest-first list of saved tips under one key.
// It is not safe for concurrent use; across processes the last write wins.
type TipStore struct {
	store Store
	key   string
	limit int
	now   func() time.Time
}

type Option func(*TipStore)

// WithClock sets the time source used for ids and timestamps
func WithClock(now func() time.Time) Option {
	return func(s *TipStore) { s.now = now }
}

// WithKey overrides the backing key
func WithKey(key string) Option {
	return func(s *TipStore) { s.key = key }
}

// WithLimit overrides the collection cap
func WithLimit(n int) Option {
	return func(s *TipStore) {
		if n > 0 {
			s.limit = n
		}
	}
}

func New(store Store, opts ...Option) *TipStore {
	s := &TipStore{
		store: store,
		key:   constants.StorageKey,
		limit: constants.MaxSavedTips,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the backing key
func (s *TipStore) Key() string {
	return s.key
}

// List returns the saved tips, newest first, at most the cap. A missing,
// unreadable or corrupt value reads as an empty list.
func (s *TipStore) List() []models.SavedTip {
	tips, err := s.read()
	if err != nil {
		logger.Warn("Treating saved tips as empty", "key", s.key, "error", err)
		return []models.SavedTip{}
	}
	if len(tips) > s.limit {
		tips = tips[:s.limit]
	}
	return tips
}

// Check reads the collection like List but reports why it could not be
// decoded instead of hiding it.
func (s *TipStore) Check() ([]models.SavedTip, error) {
	return s.read()
}

// Save records a new tip at the front of the list, dropping the oldest
// beyond the cap, and writes the result through.
func (s *TipStore) Save(mood, suggestion string) (models.SavedTip, error) {
	existing := s.List()

	now := s.now().UTC().Truncate(time.Millisecond)
	id := now.UnixMilli()
	if newest := maxID(existing); id <= newest {
		id = newest + 1
	}

	tip := models.SavedTip{
		ID:         id,
		Mood:       mood,
		Suggestion: suggestion,
		SavedAt:    now,
	}

	updated := make([]models.SavedTip, 0, s.limit)
	updated = append(updated, tip)
	for _, t := range existing {
		if len(updated) == s.limit {
			break
		}
		updated = append(updated, t)
	}

	if err := s.write(updated); err != nil {
		return models.SavedTip{}, err
	}
	logger.Info("Saved tip", "id", tip.ID, "mood", mood, "count", len(updated))
	return tip, nil
}

// Replace swaps the whole collection for saved, ordered newest first by
// SavedAt and cut to the cap. It returns how many tips were kept.
func (s *TipStore) Replace(saved []models.SavedTip) (int, error) {
	ordered := make([]models.SavedTip, len(saved))
	copy(ordered, saved)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SavedAt.After(ordered[j].SavedAt)
	})
	if len(ordered) > s.limit {
		ordered = ordered[:s.limit]
	}

	if err := s.write(ordered); err != nil {
		return 0, err
	}
	logger.Info("Replaced saved tips", "key", s.key, "count", len(ordered), "dropped", len(saved)-len(ordered))
	return len(ordered), nil
}

// Delete removes the tip with the given id. An unknown id is a no-op.
func (s *TipStore) Delete(id int64) error {
	existing := s.List()

	remaining := make([]models.SavedTip, 0, len(existing))
	for _, t := range existing {
		if t.ID != id {
			remaining = append(remaining, t)
		}
	}
	if len(remaining) == len(existing) {
		logger.Debug("Delete of unknown tip ignored", "id", id)
		return nil
	}

	if err := s.write(remaining); err != nil {
		return err
	}
	logger.Info("Deleted tip", "id", id, "count", len(remaining))
	return nil
}

// Clear removes every saved tip and the backing key
func (s *TipStore) Clear() error {
	if err := s.store.Remove(s.key); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	logger.Info("Cleared saved tips", "key", s.key)
	return nil
}

// Contains finds a saved tip with the same mood and suggestion
func (s *TipStore) Contains(mood, suggestion string) (models.SavedTip, bool) {
	for _, t := range s.List() {
		if t.Mood == mood && t.Suggestion == suggestion {
			return t, true
		}
	}
	return models.SavedTip{}, false
}

func maxID(saved []models.SavedTip) int64 {
	var id int64
	for _, t := range saved {
		if t.ID > id {
			id = t.ID
		}
	}
	return id
}

func (s *TipStore) read() ([]models.SavedTip, error) {
	raw, ok, err := s.store.Get(s.key)
	if err != nil {
		return []models.SavedTip{}, fmt.Errorf("failed to read tips: %w", err)
	}
	if !ok || raw == "" {
		return []models.SavedTip{}, nil
	}

	var tips []models.SavedTip
	if err := json.Unmarshal([]byte(raw), &tips); err != nil {
		return []models.SavedTip{}, fmt.Errorf("failed to parse tips: %w", err)
	}
	if tips == nil {
		tips = []models.SavedTip{}
	}
	return tips, nil
}

func (s *TipStore) write(tips []models.SavedTip) error {
	data, err := json.Marshal(tips)
	if err != nil {
		return fmt.Errorf("%w: failed to serialize tips: %w", ErrWriteFailed, err)
	}
	if err := s.store.Set(s.key, string(data)); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}
