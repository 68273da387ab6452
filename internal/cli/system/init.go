package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/botroom/internal/backup"
	"github.com/julianstephens/botroom/internal/cli"
	"github.com/julianstephens/botroom/internal/storage/backend"
	"github.com/julianstephens/botroom/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting an existing SQLite database before initialization."`
	Source string `help:"Source DSN to copy bots from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()

	if c.Force {
		if _, ok := ctx.Store.(*sqlite.Store); !ok {
			return errors.New("--force is only supported for SQLite storage")
		}
		dbPath := ctx.Store.GetConfigPath()
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			snap, err := backup.NewManager(dbPath).Create()
			if err != nil {
				return fmt.Errorf("failed to back up existing database: %w", err)
			}
			fmt.Fprintf(out, "Backed up existing database to: %s\n", snap.Path)
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Fprintf(out, "Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Initialized botroom storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Fprintf(out, "Copying bots from: %s\n", c.Source)
		n, err := c.copyBots(ctx)
		if err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		fmt.Fprintf(out, "Copied %d bots\n", n)
	}

	return nil
}

// copyBots inserts every bot from the source store. The destination
// assigns new ids.
func (c *InitCmd) copyBots(ctx *cli.Context) (int, error) {
	source, err := backend.Open(c.Source)
	if err != nil {
		return 0, err
	}
	if err := source.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	sctx, cancel := ctx.StoreContext()
	defer cancel()

	rows, err := source.ListBots(sctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list bots from source: %w", err)
	}
	for i, row := range rows {
		row.ID = ""
		if _, err := ctx.Store.InsertBot(sctx, row); err != nil {
			return i, fmt.Errorf("failed to copy bot %q: %w", row.Name, err)
		}
	}
	return len(rows), nil
}
