package bots

import (
	"fmt"

	"github.com/julianstephens/botroom/internal/cli"
)

type DeleteCmd struct {
	ID string `arg:"" help:"Bot ID to delete."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	dash, err := ctx.LoadDashboard()
	if err != nil {
		return err
	}
	ctrl := dash.Controller(ctx.Store)

	if err := ctrl.SelectForEdit(c.ID); err != nil {
		return fmt.Errorf("failed to find bot with ID %s: %w", c.ID, err)
	}
	wc, _ := ctrl.WorkingCopy()

	sctx, cancel := ctx.StoreContext()
	defer cancel()
	if err := ctrl.SubmitDelete(sctx); err != nil {
		return err
	}

	fmt.Fprintf(ctx.Stdout(), "Deleted bot: %s (ID: %s)\n", wc.Name, c.ID)
	return nil
}
