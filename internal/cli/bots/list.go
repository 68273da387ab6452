package bots

import (
	"fmt"
	"strings"

	"github.com/julianstephens/botroom/internal/cli"
	"github.com/julianstephens/botroom/internal/models"
	"github.com/julianstephens/botroom/internal/validation"
)

type ListCmd struct {
	ShowIDs  bool   `help:"Show bot IDs." name:"show-ids"`
	Platform string `help:"Only show bots on this platform."`
}

func (c *ListCmd) Validate() error {
	if c.Platform == "" {
		return nil
	}
	_, err := models.ParsePlatform(c.Platform)
	return err
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	dash, err := ctx.LoadDashboard()
	if err != nil {
		return err
	}
	out := ctx.Stdout()

	fmt.Fprintf(out, "Welcome, %s\n", dash.Username)

	bots := dash.Roster.All()
	if c.Platform != "" {
		p, _ := models.ParsePlatform(c.Platform)
		filtered := bots[:0]
		for _, b := range bots {
			if b.Platform == p {
				filtered = append(filtered, b)
			}
		}
		bots = filtered
	}
	if len(bots) == 0 {
		fmt.Fprintln(out, "No bots found")
		return nil
	}

	now := ctx.Clock()
	fmt.Fprintln(out, "Bots:")
	for _, b := range bots {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", b.ID)
		}
		fmt.Fprintf(out, "  %s%s - %s on %s\n", b.Name, idStr, b.MachineName, b.Platform)
		fmt.Fprintf(out, "      %s %s - %s (%s)\n",
			b.Schedule.Days, b.Schedule.Start, b.Schedule.End, ctx.Scheduler.StatusAt(b, now))
	}

	if res := validation.New().ValidateRoster(bots); res.HasConflicts() {
		fmt.Fprintln(out)
		fmt.Fprint(out, strings.TrimRight(res.FormatReport(), "\n")+"\n")
	}
	return nil
}
