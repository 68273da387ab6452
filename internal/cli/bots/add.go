package bots

import (
	"fmt"
	"time"

	"github.com/julianstephens/botroom/internal/cli"
	"github.com/julianstephens/botroom/internal/models"
)

type AddCmd struct {
	Name     string `arg:"" help:"Bot name."`
	Machine  string `short:"m" help:"Machine the bot runs on." required:""`
	Platform string `short:"p" help:"Automation platform." default:"Automation Anywhere"`
	Start    string `short:"s" help:"Window start, e.g. '9:00 AM'." default:"12:00 AM"`
	End      string `short:"e" help:"Window end, e.g. '5:00 PM'." default:"12:00 AM"`
	Days     string `short:"d" help:"Comma-separated weekdays, e.g. 'mon,wed,fri'."`

	platform models.Platform
	start    models.ClockTime
	end      models.ClockTime
	days     []time.Weekday
}

func (c *AddCmd) Validate() error {
	var err error
	if c.platform, err = models.ParsePlatform(c.Platform); err != nil {
		return err
	}
	if c.start, err = models.ParseClockTime(c.Start); err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}
	if c.end, err = models.ParseClockTime(c.End); err != nil {
		return fmt.Errorf("invalid --end: %w", err)
	}
	set, err := models.ParseWeekdayList(c.Days)
	if err != nil {
		return fmt.Errorf("invalid --days: %w", err)
	}
	c.days = set.Days()
	return nil
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	dash, err := ctx.LoadDashboard()
	if err != nil {
		return err
	}
	ctrl := dash.Controller(ctx.Store)

	ctrl.RequestAdd()
	ctrl.EditDraft(func(d *models.BotDraft) {
		d.Name = c.Name
		d.MachineName = c.Machine
		d.Platform = c.platform
		d.Start = c.start
		d.End = c.end
	})
	for _, day := range c.days {
		ctrl.ToggleDay(day)
	}

	sctx, cancel := ctx.StoreContext()
	defer cancel()
	if err := ctrl.SubmitCreate(sctx); err != nil {
		return err
	}

	bots := ctrl.Bots()
	created := bots[len(bots)-1]
	fmt.Fprintf(ctx.Stdout(), "Added bot: %s (ID: %s)\n", created.Name, created.ID)
	return nil
}
