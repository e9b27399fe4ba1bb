package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/models"
)

func TestMood(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "plain", input: "tired", want: "tired"},
		{name: "trimmed", input: "  feeling low \n", want: "feeling low"},
		{name: "empty", input: "", wantErr: ErrEmptyMood},
		{name: "whitespace only", input: " \t ", wantErr: ErrEmptyMood},
		{name: "at limit", input: strings.Repeat("a", constants.MaxMoodLength), want: strings.Repeat("a", constants.MaxMoodLength)},
		{name: "over limit", input: strings.Repeat("a", constants.MaxMoodLength+1), wantErr: ErrMoodTooLong},
		{name: "multibyte counted as runes", input: strings.Repeat("é", constants.MaxMoodLength), want: strings.Repeat("é", constants.MaxMoodLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Mood(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Mood() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Mood() = %q, want %q", got, tt.want)
			}
		})
	}
}

func tip(id int64, at time.Time) models.SavedTip {
	return models.SavedTip{ID: id, Mood: "tired", Suggestion: "Rest. It helps.", SavedAt: at}
}

func hasConflict(result ValidationResult, kind ConflictType) bool {
	for _, c := range result.Conflicts {
		if c.Type == kind {
			return true
		}
	}
	return false
}

func TestValidateTips_Clean(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	result := New().ValidateTips([]models.SavedTip{
		tip(3, now),
		tip(2, now.Add(-time.Minute)),
		tip(1, now.Add(-time.Hour)),
	})
	if result.HasConflicts() {
		t.Errorf("unexpected conflicts: %s", result.FormatReport())
	}
	if result.FormatReport() != "No conflicts detected." {
		t.Errorf("FormatReport() = %q", result.FormatReport())
	}
}

func TestValidateTips_Conflicts(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		saved []models.SavedTip
		want  ConflictType
	}{
		{
			name:  "duplicate id",
			saved: []models.SavedTip{tip(1, now), tip(1, now.Add(-time.Second))},
			want:  ConflictDuplicateID,
		},
		{
			name:  "out of order",
			saved: []models.SavedTip{tip(1, now.Add(-time.Hour)), tip(2, now)},
			want:  ConflictOutOfOrder,
		},
		{
			name:  "missing mood",
			saved: []models.SavedTip{{ID: 1, Suggestion: "x", SavedAt: now}},
			want:  ConflictMissingField,
		},
		{
			name:  "missing saved at",
			saved: []models.SavedTip{{ID: 1, Mood: "m", Suggestion: "x"}},
			want:  ConflictMissingSaveAt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New().ValidateTips(tt.saved)
			if !hasConflict(result, tt.want) {
				t.Errorf("expected %s conflict, got %+v", tt.want, result.Conflicts)
			}
			if !strings.HasPrefix(result.FormatReport(), "Conflicts detected:") {
				t.Errorf("FormatReport() = %q", result.FormatReport())
			}
		})
	}
}

func TestValidateTips_OverCapacity(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	var saved []models.SavedTip
	for i := 0; i < constants.MaxSavedTips+1; i++ {
		saved = append(saved, tip(int64(100-i), now.Add(-time.Duration(i)*time.Minute)))
	}

	result := New().ValidateTips(saved)
	if !hasConflict(result, ConflictOverCapacity) {
		t.Errorf("expected over capacity conflict, got %+v", result.Conflicts)
	}
	if len(result.Conflicts) != 1 {
		t.Errorf("expected only the capacity conflict, got %d", len(result.Conflicts))
	}
}
