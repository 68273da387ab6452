package bots

import (
	"fmt"
	"time"

	"github.com/julianstephens/botroom/internal/cli"
	"github.com/julianstephens/botroom/internal/models"
)

type EditCmd struct {
	ID        string   `arg:"" help:"Bot ID."`
	Name      *string  `help:"New bot name."`
	Machine   *string  `short:"m" help:"New machine name."`
	Platform  *string  `short:"p" help:"New automation platform."`
	Start     *string  `short:"s" help:"New window start, e.g. '9:00 AM'."`
	End       *string  `short:"e" help:"New window end, e.g. '5:00 PM'."`
	Days      *string  `short:"d" help:"Replace scheduled days (comma-separated, empty for none)."`
	ToggleDay []string `name:"toggle-day" help:"Toggle one weekday; repeatable."`

	toggles []time.Weekday
}

func (c *EditCmd) Validate() error {
	if c.Platform != nil {
		if _, err := models.ParsePlatform(*c.Platform); err != nil {
			return err
		}
	}
	if c.Start != nil {
		if _, err := models.ParseClockTime(*c.Start); err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
	}
	if c.End != nil {
		if _, err := models.ParseClockTime(*c.End); err != nil {
			return fmt.Errorf("invalid --end: %w", err)
		}
	}
	if c.Days != nil && len(c.ToggleDay) > 0 {
		return fmt.Errorf("--days and --toggle-day cannot be combined")
	}
	if c.Days != nil {
		if _, err := models.ParseWeekdayList(*c.Days); err != nil {
			return fmt.Errorf("invalid --days: %w", err)
		}
	}
	c.toggles = nil
	for _, raw := range c.ToggleDay {
		day, err := models.ParseWeekday(raw)
		if err != nil {
			return fmt.Errorf("invalid --toggle-day: %w", err)
		}
		c.toggles = append(c.toggles, day)
	}
	return nil
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	dash, err := ctx.LoadDashboard()
	if err != nil {
		return err
	}
	ctrl := dash.Controller(ctx.Store)

	if err := ctrl.SelectForEdit(c.ID); err != nil {
		return fmt.Errorf("failed to find bot: %w", err)
	}

	ctrl.EditWorkingCopy(func(b *models.BotRecord) {
		if c.Name != nil {
			b.Name = *c.Name
		}
		if c.Machine != nil {
			b.MachineName = *c.Machine
		}
		if c.Platform != nil {
			b.Platform, _ = models.ParsePlatform(*c.Platform)
		}
		if c.Start != nil {
			t, _ := models.ParseClockTime(*c.Start)
			b.SetStart(t)
		}
		if c.End != nil {
			t, _ := models.ParseClockTime(*c.End)
			b.SetEnd(t)
		}
	})

	toggles := c.toggles
	if c.Days != nil {
		wc, _ := ctrl.WorkingCopy()
		want, _ := models.ParseWeekdayList(*c.Days)
		toggles = wc.Schedule.Days.TogglesTo(want)
	}
	for _, day := range toggles {
		ctrl.ToggleDay(day)
	}

	updated, _ := ctrl.WorkingCopy()

	sctx, cancel := ctx.StoreContext()
	defer cancel()
	if err := ctrl.SubmitUpdate(sctx); err != nil {
		return err
	}

	fmt.Fprintf(ctx.Stdout(), "Updated bot: %s (ID: %s)\n", updated.Name, updated.ID)
	return nil
}
