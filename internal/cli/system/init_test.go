package system

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/botroom/internal/backup"
	"github.com/julianstephens/botroom/internal/cli"
	"github.com/julianstephens/botroom/internal/config"
	"github.com/julianstephens/botroom/internal/models"
	"github.com/julianstephens/botroom/internal/scheduler"
	"github.com/julianstephens/botroom/internal/storage/sqlite"
)

func setupTestInitDB(t *testing.T) (*cli.Context, string, *bytes.Buffer) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)
	out := &bytes.Buffer{}

	ctx := &cli.Context{
		Store:     store,
		Scheduler: scheduler.New(),
		Config:    config.Default(),
		Out:       out,
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return ctx, dbPath, out
}

func TestInitCmd_Success(t *testing.T) {
	ctx, dbPath, out := setupTestInitDB(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
	if !strings.Contains(out.String(), "Initialized botroom storage") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _, _ := setupTestInitDB(t)

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("second init failed: %v", err)
	}
}

func TestInitCmd_ForceResetsBots(t *testing.T) {
	ctx, dbPath, out := setupTestInitDB(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := ctx.Store.InsertBot(t.Context(), models.BotRow{Name: "A", MachineName: "M", Platform: "UiPath", StartTime: "12:00 AM", EndTime: "12:00 AM"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("forced init failed: %v", err)
	}
	rows, err := ctx.Store.ListBots(t.Context())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d bots after --force, want 0", len(rows))
	}

	backups, err := backup.NewManager(dbPath).List()
	if err != nil {
		t.Fatalf("list backups failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("got %d backups after --force, want 1", len(backups))
	}
	if !strings.Contains(out.String(), "Backed up existing database to: "+backups[0].Path) {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestInitCmd_ForceRejectsSameSource(t *testing.T) {
	ctx, dbPath, _ := setupTestInitDB(t)

	if err := (&InitCmd{Force: true, Source: dbPath}).Run(ctx); err == nil {
		t.Error("expected error when source and destination are the same")
	}
}

func TestInitCmd_CopiesBotsFromSource(t *testing.T) {
	sourcePath := filepath.Join(t.TempDir(), "source.db")
	source := sqlite.NewStore(sourcePath)
	if err := source.Init(); err != nil {
		t.Fatalf("source init failed: %v", err)
	}
	for _, name := range []string{"Invoice Bot", "Payroll"} {
		row := models.BotRow{Name: name, MachineName: "WKS-07", Platform: "UiPath", StartTime: "9:00 AM", EndTime: "5:00 PM", ScheduledDays: []string{"Monday"}}
		if _, err := source.InsertBot(t.Context(), row); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
	if err := source.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	ctx, _, out := setupTestInitDB(t)
	if err := (&InitCmd{Source: sourcePath}).Run(ctx); err != nil {
		t.Fatalf("init with source failed: %v", err)
	}

	rows, err := ctx.Store.ListBots(t.Context())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 2 || rows[0].Name != "Invoice Bot" || rows[1].Name != "Payroll" {
		t.Errorf("copied rows = %+v", rows)
	}
	if !strings.Contains(out.String(), "Copied 2 bots") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestMigrateCmd_UpToDate(t *testing.T) {
	ctx, _, out := setupTestInitDB(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	out.Reset()

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "up to date") {
		t.Errorf("unexpected output: %s", out.String())
	}
}
