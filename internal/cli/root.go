package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/moodlit/internal/backup"
	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/storage"
	"github.com/julianstephens/moodlit/internal/suggest"
	"github.com/julianstephens/moodlit/internal/tips"
)

type Context struct {
	Store    storage.Provider
	Tips     *tips.TipStore
	Resolver *suggest.Resolver

	// ConfigDir holds logs and tip backups
	ConfigDir string
	// Instant skips the artificial resolution delay
	Instant bool
	// Interactive is set when stdin and stdout are terminals
	Interactive bool

	Out io.Writer
}

// NewContext wires the tip store and resolver onto store
func NewContext(store storage.Provider, configDir string) *Context {
	return &Context{
		Store:     store,
		Tips:      tips.New(store),
		Resolver:  suggest.New(),
		ConfigDir: configDir,
		Out:       os.Stdout,
	}
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Backups returns the snapshot manager for the saved tips
func (c *Context) Backups() *backup.Manager {
	return backup.NewManager(c.Store, c.Tips.Key(), c.ConfigDir)
}

// PerformAutomaticBackup snapshots the saved tips and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, err := c.Backups().CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ConfigDirFor picks the directory for logs and backups: next to a file
// backend, otherwise under the default config path.
func ConfigDirFor(location string) string {
	if location != "" && !storage.IsPostgresURL(location) && !storage.IsRedisURL(location) && !strings.Contains(location, "host=") {
		if path, err := storage.ExpandPath(location); err == nil {
			return filepath.Dir(path)
		}
	}
	path, err := storage.ExpandPath(constants.DefaultConfigPath)
	if err != nil {
		return filepath.Join(os.TempDir(), constants.AppName)
	}
	return filepath.Dir(path)
}

func formatSavedAt(t time.Time) string {
	return t.Local().Format(constants.DateFormat)
}

// maskPassword masks passwords in connection strings for display
func maskPassword(connStr string) string {
	if idx := strings.Index(connStr, "://"); idx != -1 {
		remaining := connStr[idx+3:]
		if atIdx := strings.LastIndex(remaining, "@"); atIdx != -1 {
			userInfo := remaining[:atIdx]
			if colonIdx := strings.Index(userInfo, ":"); colonIdx != -1 {
				return connStr[:idx+3] + userInfo[:colonIdx] + ":****" + connStr[idx+3+atIdx:]
			}
		}
		return connStr
	}

	if strings.Contains(strings.ToLower(connStr), "password=") {
		parts := strings.Fields(connStr)
		for i, part := range parts {
			if strings.HasPrefix(strings.ToLower(part), "password=") {
				parts[i] = "password=****"
			}
		}
		return strings.Join(parts, " ")
	}

	return connStr
}
