package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "moodlit"
	DefaultKeyringUser = "store-connection"
	DefaultConfigPath  = "~/.config/moodlit/moodlit.db"
	Version            = "v0.1.0"

	// EnvStoreConnection holds a full connection string (with password) for
	// networked stores. It takes precedence over the keyring.
	EnvStoreConnection = "MOODLIT_DB_CONNECTION"

	// StorageKey is the single key the saved tips collection lives under
	StorageKey = "wellnessTips"

	// MaxSavedTips caps the saved tips collection
	MaxSavedTips = 10

	// CollapsedTipCount is how many saved tips are shown before "N more"
	CollapsedTipCount = 2

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Resolution delay bounds, [MinResolveDelay, MaxResolveDelay)
	MinResolveDelay = 1000 * time.Millisecond
	MaxResolveDelay = 2500 * time.Millisecond

	// MaxMoodLength bounds free-text mood input
	MaxMoodLength = 100

	Disclaimer = "Remember: This is a supportive tool, not a replacement for professional mental health care. " +
		"If you're experiencing persistent distress, please reach out to a healthcare professional."
)

// Session States
const (
	StateCheckIn SessionState = iota
	StateSaved
	StateCustomMood
	StateLoading
	StateSuggestion
	StateConfirmClear
)

func init() {
	if MinResolveDelay >= MaxResolveDelay {
		panic("MinResolveDelay must be less than MaxResolveDelay")
	}
}
