package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/models"
)

var (
	ErrEmptyMood   = errors.New("mood cannot be empty")
	ErrMoodTooLong = fmt.Errorf("mood must be at most %d characters", constants.MaxMoodLength)
)

// Mood trims free-text mood input and rejects empty or oversized text
func Mood(raw string) (string, error) {
	mood := strings.TrimSpace(raw)
	if mood == "" {
		return "", ErrEmptyMood
	}
	if utf8.RuneCountInString(mood) > constants.MaxMoodLength {
		return "", ErrMoodTooLong
	}
	return mood, nil
}

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictOverCapacity  ConflictType = "over_capacity"
	ConflictDuplicateID   ConflictType = "duplicate_id"
	ConflictOutOfOrder    ConflictType = "out_of_order"
	ConflictMissingField  ConflictType = "missing_field"
	ConflictMissingSaveAt ConflictType = "missing_saved_at"
)

// Conflict represents one problem found in the saved-tip collection
type Conflict struct {
	Type        ConflictType
	Description string
	IDs         []int64
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

type Validator struct {
	limit int
}

func New() *Validator {
	return &Validator{limit: constants.MaxSavedTips}
}

// ValidateTips checks a raw stored collection: at most the cap, unique
// ids, newest first, and every field populated.
func (v *Validator) ValidateTips(saved []models.SavedTip) ValidationResult {
	var result ValidationResult

	if len(saved) > v.limit {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictOverCapacity,
			Description: fmt.Sprintf("%d saved tips stored, only the newest %d are shown", len(saved), v.limit),
		})
	}

	seen := make(map[int64]bool, len(saved))
	for i, tip := range saved {
		if seen[tip.ID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateID,
				Description: fmt.Sprintf("tip id %d appears more than once", tip.ID),
				IDs:         []int64{tip.ID},
			})
		}
		seen[tip.ID] = true

		if strings.TrimSpace(tip.Mood) == "" || strings.TrimSpace(tip.Suggestion) == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingField,
				Description: fmt.Sprintf("tip %d is missing its mood or suggestion", tip.ID),
				IDs:         []int64{tip.ID},
			})
		}

		if tip.SavedAt.IsZero() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingSaveAt,
				Description: fmt.Sprintf("tip %d has no saved date", tip.ID),
				IDs:         []int64{tip.ID},
			})
		}

		if i > 0 && tip.SavedAt.After(saved[i-1].SavedAt) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOutOfOrder,
				Description: fmt.Sprintf("tip %d was saved after tip %d but is listed behind it", tip.ID, saved[i-1].ID),
				IDs:         []int64{saved[i-1].ID, tip.ID},
			})
		}
	}

	return result
}
