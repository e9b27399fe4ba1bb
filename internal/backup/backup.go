package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/tips"
)

const (
	// MaxBackups is the maximum number of snapshots to keep
	MaxBackups = 5
	// BackupDirName is the name of the backup directory
	BackupDirName = "backups"
	// BackupFilePrefix is the prefix for snapshot files
	BackupFilePrefix = "tips-"
	// BackupFileSuffix is the suffix for snapshot files
	BackupFileSuffix = ".json"

	timestampFormat = "20060102-150405"
)

// BackupInfo describes one snapshot file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Count     int

	seq int
}

// Manager snapshots the saved-tip collection to JSON files, whatever
// backend holds it.
type Manager struct {
	store     tips.Store
	key       string
	backupDir string
	now       func() time.Time
}

// NewManager keeps snapshots in <configDir>/backups
func NewManager(store tips.Store, key, configDir string) *Manager {
	return &Manager{
		store:     store,
		key:       key,
		backupDir: filepath.Join(configDir, BackupDirName),
		now:       time.Now,
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup writes the current collection to a new snapshot. It returns
// an empty path when there is nothing saved.
func (m *Manager) CreateBackup() (string, error) {
	raw, ok, err := m.store.Get(m.key)
	if err != nil {
		return "", fmt.Errorf("failed to read saved tips: %w", err)
	}
	if !ok || raw == "" {
		return "", nil
	}
	if _, err := decode([]byte(raw)); err != nil {
		return "", fmt.Errorf("saved tips are not valid JSON, refusing to back up: %w", err)
	}

	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path, err := m.uniquePath()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(raw), 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	if err := m.rotateBackups(); err != nil {
		logger.Warn("Failed to rotate old backups", "error", err)
	}
	return path, nil
}

func (m *Manager) uniquePath() (string, error) {
	timestamp := m.now().Format(timestampFormat)
	path := filepath.Join(m.backupDir, BackupFilePrefix+timestamp+BackupFileSuffix)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", BackupFilePrefix, timestamp, counter, BackupFileSuffix))
	}
}

// ListBackups returns every snapshot, newest first
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, BackupFilePrefix) || !strings.HasSuffix(name, BackupFileSuffix) {
			continue
		}

		stamp := strings.TrimSuffix(strings.TrimPrefix(name, BackupFilePrefix), BackupFileSuffix)
		// Split off the collision counter, if any
		seq := 0
		if parts := strings.Split(stamp, "-"); len(parts) == 3 {
			n, err := strconv.Atoi(parts[2])
			if err != nil {
				continue
			}
			stamp, seq = parts[0]+"-"+parts[1], n
		}
		timestamp, err := time.ParseInLocation(timestampFormat, stamp, time.Local)
		if err != nil {
			continue
		}

		path := filepath.Join(m.backupDir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		saved, err := decode(data)
		if err != nil {
			continue
		}

		backups = append(backups, BackupInfo{
			Path:      path,
			Timestamp: timestamp,
			Count:     len(saved),
			seq:       seq,
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].seq > backups[j].seq
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// rotateBackups removes snapshots beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreResult describes a completed restore
type RestoreResult struct {
	// Restored is how many tips were written back
	Restored int
	// Dropped is how many tips in the file were beyond the cap
	Dropped int
	// Previous is the snapshot taken of the collection before restoring,
	// empty when nothing was saved
	Previous string
}

// RestoreBackup replaces the collection with the snapshot at path, going
// through the tip store so the result is ordered newest first and capped.
// The current collection is snapshotted first.
func (m *Manager) RestoreBackup(path string) (RestoreResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RestoreResult{}, fmt.Errorf("failed to read backup: %w", err)
	}
	saved, err := decode(data)
	if err != nil {
		return RestoreResult{}, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	previous, err := m.CreateBackup()
	if err != nil {
		return RestoreResult{}, fmt.Errorf("failed to backup current tips before restore: %w", err)
	}

	kept, err := tips.New(m.store, tips.WithKey(m.key)).Replace(saved)
	if err != nil {
		return RestoreResult{}, err
	}
	logger.Info("Restored tips from backup", "path", path, "restored", kept, "dropped", len(saved)-kept)
	return RestoreResult{
		Restored: kept,
		Dropped:  len(saved) - kept,
		Previous: previous,
	}, nil
}

func decode(data []byte) ([]models.SavedTip, error) {
	var saved []models.SavedTip
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, err
	}
	return saved, nil
}
