package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/botroom/internal/cli"
	"github.com/julianstephens/botroom/internal/cli/bots"
	"github.com/julianstephens/botroom/internal/cli/system"
	"github.com/julianstephens/botroom/internal/config"
	"github.com/julianstephens/botroom/internal/constants"
	"github.com/julianstephens/botroom/internal/errors"
	"github.com/julianstephens/botroom/internal/identity"
	"github.com/julianstephens/botroom/internal/logger"
	"github.com/julianstephens/botroom/internal/notify"
	"github.com/julianstephens/botroom/internal/scheduler"
	"github.com/julianstephens/botroom/internal/storage/backend"
)

var CLI struct {
	Version    kong.VersionFlag
	ConfigPath string `name:"config" help:"Config file path." type:"path" default:"${config_path}"`
	Store      string `help:"Store DSN: SQLite path, PostgreSQL URL without a password, 'keyring', or 'memory:'. Overrides store.dsn."`
	Email      string `help:"Signed-in operator email. Overrides user.email."`
	Debug      bool   `help:"Enable debug logging to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize botroom storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive roster view." default:"1"`
	Bots    struct {
		List   bots.ListCmd   `cmd:"" help:"List bots and their schedules." default:"1"`
		Add    bots.AddCmd    `cmd:"" help:"Add a new bot."`
		Edit   bots.EditCmd   `cmd:"" help:"Edit an existing bot."`
		Delete bots.DeleteCmd `cmd:"" help:"Delete a bot."`
	} `cmd:"" help:"Manage bots."`
	Backup struct {
		Create  system.BackupCreateCmd  `cmd:"" help:"Snapshot the SQLite database."`
		List    system.BackupListCmd    `cmd:"" help:"List available snapshots." default:"1"`
		Restore system.BackupRestoreCmd `cmd:"" help:"Replace the database with a snapshot."`
	} `cmd:"" help:"Manage SQLite backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string, password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage the stored database connection string."`
	Config struct {
		Init system.ConfigInitCmd `cmd:"" help:"Write a default config file."`
		Show system.ConfigShowCmd `cmd:"" help:"Show the effective configuration." default:"1"`
	} `cmd:"" help:"Manage configuration."`
}

// needsStore reports whether the selected command talks to storage.
func needsStore(command string) bool {
	return !strings.HasPrefix(command, "keyring") && !strings.HasPrefix(command, "config")
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Manage a roster of scheduled automation bots"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     "v0.1.0",
			"config_path": config.DefaultPath(),
		},
	)

	cfg, err := config.Load(CLI.ConfigPath)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Store != "" {
		cfg.Store.DSN = config.ExpandPath(CLI.Store)
	}
	if CLI.Debug {
		cfg.Log.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Log.Debug, ConfigDir: cfg.Dir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	var notifier notify.Notifier = notify.NewConsole(os.Stderr)
	if cfg.Notify.Tray {
		notifier = notify.Multi{notifier, notify.NewTray(cfg.Dir)}
	}

	appCtx := &cli.Context{
		Scheduler:  scheduler.New(),
		Config:     cfg,
		ConfigPath: CLI.ConfigPath,
		Identity:   identity.Resolve(CLI.Email, cfg),
		Notifier:   notifier,
	}

	command := ctx.Command()
	if needsStore(command) {
		store, err := backend.Open(cfg.Store.DSN)
		if err != nil {
			errors.Fatal(err)
		}
		appCtx.Store = store

		// init creates the store itself
		if !strings.HasPrefix(command, "init") {
			if err := store.Load(); err != nil {
				errors.Fatal(err)
			}
		}
		logger.Debug("store selected", "path", store.GetConfigPath(), "command", command)
	}

	err = ctx.Run(appCtx)
	if appCtx.Store != nil {
		if cerr := appCtx.Store.Close(); cerr != nil {
			logger.Warn("failed to close store", "error", cerr)
		}
	}
	errors.Fatal(err)
}
