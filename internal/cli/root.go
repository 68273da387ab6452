package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/julianstephens/botroom/internal/config"
	"github.com/julianstephens/botroom/internal/identity"
	"github.com/julianstephens/botroom/internal/notify"
	"github.com/julianstephens/botroom/internal/operations"
	"github.com/julianstephens/botroom/internal/scheduler"
	"github.com/julianstephens/botroom/internal/storage"
)

// Context is shared by every command. It is built once in main.
type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
	Config    config.Config
	Identity  identity.Identity
	Notifier  notify.Notifier

	// ConfigPath is the file Config was loaded from.
	ConfigPath string

	// Out receives command output; nil means stdout.
	Out io.Writer
	// Now is the clock used for schedule insight; nil means time.Now.
	Now func() time.Time
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Clock() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// StoreContext bounds one store round trip by the configured timeout.
func (c *Context) StoreContext() (context.Context, context.CancelFunc) {
	timeout := c.Config.Store.Timeout
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}

// LoadDashboard fetches the roster into a new dashboard.
func (c *Context) LoadDashboard() (*operations.Dashboard, error) {
	dash := operations.NewDashboard(c.Identity, c.Notifier)
	ctx, cancel := c.StoreContext()
	defer cancel()
	if err := dash.Load(ctx, c.Store); err != nil {
		return nil, err
	}
	return dash, nil
}
