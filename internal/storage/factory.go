package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// New picks a backend from the shape of location: a Postgres or Redis URL,
// a path ending in .json, or otherwise a SQLite database path. Embedded
// passwords are accepted here; callers decide where they may come from.
func New(location string) (Provider, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("storage location cannot be empty")
	}

	switch {
	case IsPostgresURL(location) || strings.Contains(location, "host="):
		if _, err := ValidateConnString(location); err != nil && !errors.Is(err, ErrEmbeddedCredentials) {
			return nil, err
		}
		return NewPostgresStore(location), nil
	case IsRedisURL(location):
		return NewRedisStore(location), nil
	}

	path, err := ExpandPath(location)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONStore(path), nil
	}
	return NewSQLiteStore(path), nil
}

// ExpandPath resolves a leading ~ to the user's home directory
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
