package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/cli/backups"
	"github.com/julianstephens/habitlit/internal/cli/habits"
	"github.com/julianstephens/habitlit/internal/cli/system"
	"github.com/julianstephens/habitlit/internal/constants"
	apperrors "github.com/julianstephens/habitlit/internal/errors"
	"github.com/julianstephens/habitlit/internal/habitstore"
	"github.com/julianstephens/habitlit/internal/keyring"
	"github.com/julianstephens/habitlit/internal/logger"
	"github.com/julianstephens/habitlit/internal/storage"
	"github.com/julianstephens/habitlit/internal/storage/postgres"
	"github.com/julianstephens/habitlit/internal/storage/redis"
	"github.com/julianstephens/habitlit/internal/storage/sqlite"
)

// keyringBackend is the --config value that reads the PostgreSQL connection
// string from HABITLIT_DB_CONNECTION or the OS keyring.
const keyringBackend = "postgres"

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage location: a .db (SQLite) or .json file path, a redis:// URL, a PostgreSQL connection string, or 'postgres' to use the connection string from the keyring. PostgreSQL credentials must NOT be embedded." type:"string" env:"HABITLIT_CONFIG" default:"${default_config}"`
	Verbose bool   `short:"v" help:"Enable debug logging to stderr." env:"HABITLIT_DEBUG"`

	Init   system.InitCmd   `cmd:"" help:"Initialize habitlit storage."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Habit  habits.HabitCmd  `cmd:"" help:"Manage habits and habit tracking."`
	Debug  system.DebugCmd  `cmd:"" help:"Debug commands for troubleshooting."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage habit backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
}

func main() {
	// A missing .env file is fine; anything else is worth a warning
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with schedules, streaks and monthly progress"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	)

	command := ctx.Command()

	// Keyring commands manage the credentials a backend would need, so they
	// must work before any backend can be opened
	if strings.HasPrefix(command, "keyring") {
		apperrors.Fatal(ctx.Run(&cli.Context{Ctx: context.Background()}))
		return
	}

	provider, configDir, err := openProvider(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
		return
	}

	if err := logger.Init(logger.Config{Debug: CLI.Verbose, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	logger.Debug("Starting", "command", command, "storage", provider.GetConfigPath())

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	appCtx := &cli.Context{
		Ctx:       runCtx,
		Store:     habitstore.New(provider),
		Provider:  provider,
		ConfigDir: configDir,
	}

	// Init opens storage itself
	if !strings.HasPrefix(command, "init") {
		if err := provider.Load(); err != nil {
			apperrors.Fatal(err)
			return
		}
		appCtx.Store.Load(runCtx)
		if err := appCtx.Store.LoadErr(); err != nil {
			logger.Warn("Stored habits unreadable, changes disabled", "error", err)
			fmt.Fprintf(os.Stderr, "Warning: %v\n         Changes are disabled; run '%s doctor' or '%s backup restore'.\n",
				err, constants.AppName, constants.AppName)
		}
	}

	err = ctx.Run(appCtx)
	if closeErr := provider.Close(); closeErr != nil {
		logger.Warn("Failed to close storage", "error", closeErr)
	}
	apperrors.Fatal(err)
}

// openProvider picks a storage backend from the --config value and returns
// it with the directory used for logs and backups.
func openProvider(config string) (storage.Provider, string, error) {
	config = strings.TrimSpace(config)

	switch {
	case config == keyringBackend:
		connStr, source, err := keyring.ResolveConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, "", fmt.Errorf("no PostgreSQL connection string found; set %s or run '%s keyring set'", constants.EnvDBConnection, constants.AppName)
			}
			return nil, "", err
		}
		// Credentials are acceptable here because they never touch the command line
		if err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, "", fmt.Errorf("connection string from %s: %w", source, err)
		}
		return postgres.New(connStr), defaultConfigDir(), nil

	case postgres.IsConnString(config) || strings.Contains(config, "host="):
		if err := postgres.ValidateConnString(config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, "", fmt.Errorf("%w; store the connection string with '%s keyring set' or %s and use --config %s, or use ~/.pgpass",
					err, constants.AppName, constants.EnvDBConnection, keyringBackend)
			}
			return nil, "", err
		}
		return postgres.New(config), defaultConfigDir(), nil

	case redis.IsURL(config):
		return redis.New(config), defaultConfigDir(), nil
	}

	path, err := expandHome(config)
	if err != nil {
		return nil, "", err
	}
	if strings.HasSuffix(path, ".json") {
		return storage.NewJSONStore(path), filepath.Dir(path), nil
	}
	return sqlite.NewStore(path), filepath.Dir(path), nil
}

func defaultConfigDir() string {
	dir, err := expandHome(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		return "."
	}
	return dir
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
