package system

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/botroom/internal/cli"
	"github.com/julianstephens/botroom/internal/config"
)

func TestConfigInitCmd(t *testing.T) {
	t.Setenv("BOTROOM_STORE", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	ctx := &cli.Context{ConfigPath: path, Out: &bytes.Buffer{}}

	if err := (&ConfigInitCmd{}).Run(ctx); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if err := (&ConfigInitCmd{}).Run(ctx); err == nil {
		t.Error("second init without --force should fail")
	}
	if err := (&ConfigInitCmd{Force: true}).Run(ctx); err != nil {
		t.Errorf("init with --force failed: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load written config: %v", err)
	}
	want := config.ExpandPath(config.Default().Store.DSN)
	if cfg.Store.DSN != want {
		t.Errorf("store.dsn = %q, want default %q", cfg.Store.DSN, want)
	}
}

func TestConfigShowCmd(t *testing.T) {
	cfg := config.Default()
	cfg.User.Email = "jordan@example.com"
	out := &bytes.Buffer{}

	if err := (&ConfigShowCmd{}).Run(&cli.Context{Config: cfg, ConfigPath: "/tmp/botroom.yaml", Out: out}); err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	for _, want := range []string{"# /tmp/botroom.yaml", "email: jordan@example.com", "dsn:"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}
