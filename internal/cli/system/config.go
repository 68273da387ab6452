package system

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/botroom/internal/cli"
	"github.com/julianstephens/botroom/internal/config"
)

// ConfigInitCmd writes a config file with default values.
type ConfigInitCmd struct {
	Force bool `help:"Overwrite an existing config file."`
}

func (c *ConfigInitCmd) Run(ctx *cli.Context) error {
	path := config.ExpandPath(ctx.ConfigPath)
	if _, err := os.Stat(path); err == nil && !c.Force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to access config: %w", err)
	}

	if err := config.Default().Save(path); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Stdout(), "Wrote default config to: %s\n", path)
	return nil
}

// ConfigShowCmd prints the effective configuration after env overrides
// and flags.
type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(ctx *cli.Context) error {
	cfg := ctx.Config
	if cfg.Store.Timeout > 0 {
		cfg.Store.TimeoutRaw = cfg.Store.Timeout.String()
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	out := ctx.Stdout()
	fmt.Fprintf(out, "# %s\n", config.ExpandPath(ctx.ConfigPath))
	_, err = out.Write(data)
	return err
}
