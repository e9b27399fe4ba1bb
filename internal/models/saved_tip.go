package models

import "time"

// SavedTip is a suggestion the user chose to keep
type SavedTip struct {
	ID         int64     `json:"id"`
	Mood       string    `json:"mood"`
	Suggestion string    `json:"suggestion"`
	SavedAt    time.Time `json:"savedAt"` // ISO-8601, UTC
}
