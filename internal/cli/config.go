package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/keyring"
	"github.com/julianstephens/moodlit/internal/storage"
)

type ConfigCmd struct {
	SetConnection   ConfigSetConnectionCmd   `cmd:"" help:"Store a Postgres or Redis connection string in the OS keyring."`
	ClearConnection ConfigClearConnectionCmd `cmd:"" help:"Remove the stored connection string from the OS keyring."`
	Show            ConfigShowCmd            `cmd:"" help:"Show the active storage configuration." default:"1"`
}

type ConfigSetConnectionCmd struct {
	ConnectionString string `arg:"" help:"Connection string, which may include a password."`
}

func (cmd *ConfigSetConnectionCmd) Run(ctx *Context) error {
	out := ctx.out()
	connStr := strings.TrimSpace(cmd.ConnectionString)

	switch {
	case storage.IsRedisURL(connStr):
		if _, err := storage.NewRedisStore(connStr).Options(); err != nil {
			return fmt.Errorf("invalid connection string: %w", err)
		}
	case storage.IsPostgresURL(connStr) || strings.Contains(connStr, "host="):
		if _, err := storage.ValidateConnString(connStr); err != nil {
			if !errors.Is(err, storage.ErrEmbeddedCredentials) {
				return fmt.Errorf("invalid connection string: %w", err)
			}
		}
	default:
		return errors.New("connection string must be a PostgreSQL or Redis connection string")
	}

	if storage.HasEmbeddedCredentials(connStr) {
		fmt.Fprintln(out, "ℹ Connection string contains a password; it is kept only in the encrypted OS keyring.")
	}

	if err := keyring.SetConnectionString(connStr); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	fmt.Fprintln(out, "✓ Connection string stored successfully in OS keyring")
	fmt.Fprintln(out, "  moodlit will use it when --store is not given")
	return nil
}

type ConfigClearConnectionCmd struct{}

func (cmd *ConfigClearConnectionCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	fmt.Fprintln(ctx.out(), "✓ Connection string deleted from OS keyring")
	return nil
}

type ConfigShowCmd struct{}

func (cmd *ConfigShowCmd) Run(ctx *Context) error {
	out := ctx.out()

	fmt.Fprintf(out, "Store:       %s\n", ctx.Store.GetConfigPath())
	fmt.Fprintf(out, "Config dir:  %s\n", ctx.ConfigDir)
	fmt.Fprintf(out, "Tips key:    %s (max %d)\n", ctx.Tips.Key(), constants.MaxSavedTips)

	if env := os.Getenv(constants.EnvStoreConnection); env != "" {
		fmt.Fprintf(out, "Environment: %s=%s\n", constants.EnvStoreConnection, maskPassword(env))
	}

	if !keyring.IsAvailable() {
		fmt.Fprintln(out, "Keyring:     unavailable")
		return nil
	}
	connStr, err := keyring.GetConnectionString()
	switch {
	case err == nil:
		fmt.Fprintf(out, "Keyring:     %s\n", maskPassword(connStr))
	case errors.Is(err, keyring.ErrNotFound):
		fmt.Fprintln(out, "Keyring:     no connection string stored")
	default:
		return fmt.Errorf("failed to retrieve connection string from keyring: %w", err)
	}
	return nil
}
