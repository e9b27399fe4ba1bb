package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/moodlit/internal/keyring"
	"github.com/julianstephens/moodlit/internal/storage"
	"github.com/julianstephens/moodlit/internal/validation"
)

const healthTimeout = 5 * time.Second

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	out := ctx.out()
	fmt.Fprintln(out, "Running diagnostics...")
	fmt.Fprintln(out)

	hasError := false
	fail := func(name string, err error) {
		fmt.Fprintf(out, "❌ %s: FAIL\n", name)
		fmt.Fprintf(out, "   Error: %v\n", err)
		hasError = true
	}
	warn := func(name string, err error) {
		fmt.Fprintf(out, "⚠ %s: WARNING\n", name)
		fmt.Fprintf(out, "   %v\n", err)
	}
	ok := func(name string) {
		fmt.Fprintf(out, "✓ %s: OK\n", name)
	}
	skip := func(name string) {
		fmt.Fprintf(out, "⊘ %s: SKIPPED (storage not reachable)\n", name)
	}

	reachable := false
	if err := checkStoreReachable(ctx); err != nil {
		fail("Storage reachable", err)
	} else {
		ok("Storage reachable")
		reachable = true
	}

	if reachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fail("Schema version", err)
		} else {
			ok("Schema version")
		}

		if err := checkTipsDecodable(ctx); err != nil {
			fail("Saved tips readable", err)
		} else {
			ok("Saved tips readable")
		}

		if err := checkValidation(ctx); err != nil {
			fail("Saved tips valid", err)
		} else {
			ok("Saved tips valid")
		}
	} else {
		skip("Schema version")
		skip("Saved tips readable")
		skip("Saved tips valid")
	}

	if err := checkBackupsPresent(ctx); err != nil {
		warn("Backups present", err)
	} else {
		ok("Backups present")
	}

	if !keyring.IsAvailable() {
		warn("OS keyring", keyring.ErrKeyringUnavailable)
	} else {
		ok("OS keyring")
	}

	if err := checkClockTimezone(); err != nil {
		fail("Clock/timezone", err)
	} else {
		ok("Clock/timezone")
	}

	fmt.Fprintln(out)
	if hasError {
		fmt.Fprintln(out, "Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Fprintln(out, "All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if checker, ok := ctx.Store.(storage.HealthChecker); ok {
		pingCtx, cancel := context.WithTimeout(context.Background(), healthTimeout)
		defer cancel()
		if err := checker.Health(pingCtx); err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}
	}
	if _, err := ctx.Store.Keys(); err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	versioned, ok := ctx.Store.(storage.Versioned)
	if !ok {
		// Key-value files and Redis have no schema
		return nil
	}
	current, latest, err := versioned.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported (%d), please upgrade moodlit", current, latest)
	}
	if current < latest {
		return fmt.Errorf("%d pending migration(s), run 'moodlit init' to upgrade", latest-current)
	}
	return nil
}

func checkTipsDecodable(ctx *Context) error {
	_, err := ctx.Tips.Check()
	return err
}

func checkValidation(ctx *Context) error {
	saved, err := ctx.Tips.Check()
	if err != nil {
		return err
	}
	result := validation.New().ValidateTips(saved)
	if result.HasConflicts() {
		return errors.New(result.FormatReport())
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	backups, err := ctx.Backups().ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no tip backups found, run 'moodlit tips backup' to create one")
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()

	// Saved tip ids come from the clock, so it has to be roughly right
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
