package models

// MoodCategory is one of the fixed mood keys the tip database is indexed by
type MoodCategory string

const (
	MoodTired     MoodCategory = "tired"
	MoodAnxious   MoodCategory = "anxious"
	MoodHappy     MoodCategory = "happy"
	MoodStressed  MoodCategory = "stressed"
	MoodEnergetic MoodCategory = "energetic"
	MoodPeaceful  MoodCategory = "peaceful"
)

// Tip is a pre-authored self-care activity
type Tip struct {
	Activity    string `json:"activity"`
	Explanation string `json:"explanation"`
	Duration    string `json:"duration,omitempty"`
}

// Text formats the tip the way it is shown and saved
func (t Tip) Text() string {
	return t.Activity + ". " + t.Explanation
}
