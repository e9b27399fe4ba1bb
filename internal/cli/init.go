package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/moodlit/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Delete an existing local store before initialization."`
	Source string `help:"Store path or connection string to copy saved data from."`
}

func (c *InitCmd) Run(ctx *Context) error {
	out := ctx.out()

	if c.Force {
		if err := c.removeExisting(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Initialized moodlit storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Fprintf(out, "Copying data from: %s\n", maskPassword(c.Source))
		n, err := c.copyFrom(ctx, c.Source)
		if err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		fmt.Fprintf(out, "Copied %d key(s)\n", n)
	}
	return nil
}

// removeExisting deletes the file behind a local store. Networked stores
// have no file and are left alone.
func (c *InitCmd) removeExisting(ctx *Context) error {
	dbPath := ctx.Store.GetConfigPath()
	switch ctx.Store.(type) {
	case *storage.SQLiteStore, *storage.JSONStore:
	default:
		return fmt.Errorf("--force only applies to local file stores, not %s", dbPath)
	}

	if c.Source != "" {
		absDbPath, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDbPath
		}
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing store: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing store: %w", err)
		}
		fmt.Fprintf(ctx.out(), "Deleted existing store at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing store: %w", err)
	}
	return nil
}

func (c *InitCmd) copyFrom(ctx *Context, source string) (int, error) {
	src, err := storage.New(source)
	if err != nil {
		return 0, err
	}
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source store: %w", err)
	}
	defer src.Close()

	keys, err := src.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list source keys: %w", err)
	}
	for _, key := range keys {
		value, ok, err := src.Get(key)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s from source: %w", key, err)
		}
		if !ok {
			continue
		}
		if err := ctx.Store.Set(key, value); err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", key, err)
		}
	}
	return len(keys), nil
}
