package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/botroom/internal/cli"
	"github.com/julianstephens/botroom/internal/notify"
	"github.com/julianstephens/botroom/internal/operations"
	"github.com/julianstephens/botroom/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// Console output would corrupt the alternate screen; the view drains
	// the queue instead.
	queue := notify.NewQueue()
	var notifier notify.Notifier = queue
	if ctx.Config.Notify.Tray {
		notifier = notify.Multi{queue, notify.NewTray(ctx.Config.Dir)}
	}

	dash := operations.NewDashboard(ctx.Identity, notifier)
	model := tui.NewModel(tui.Options{
		Store:     ctx.Store,
		Scheduler: ctx.Scheduler,
		Dashboard: dash,
		Queue:     queue,
		Timeout:   ctx.Config.Store.Timeout,
		Now:       ctx.Now,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
