package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/botroom/internal/cli"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()

	result, err := ctx.Store.Migrate(func(msg string) {
		fmt.Fprintln(out, msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if len(result.Applied) == 0 {
		fmt.Fprintf(out, "No migrations to apply. Database is up to date (version %d).\n", result.To)
	} else {
		fmt.Fprintf(out, "\nSuccessfully applied %d migration(s): version %d -> %d in %s.\n",
			len(result.Applied), result.From, result.To, result.Elapsed.Round(time.Millisecond))
	}

	return nil
}
