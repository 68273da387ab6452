package botlist

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/botroom/internal/models"
	"github.com/julianstephens/botroom/internal/scheduler"
)

func key(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func TestUpdateEmitsActions(t *testing.T) {
	m := New(80, 20)
	bots := []models.BotRecord{{ID: "b1", Name: "Invoice Bot", Platform: models.PlatformUiPath, Schedule: models.ScheduleWindow{Start: "9:00 AM", End: "5:00 PM"}}}
	m.SetBots(bots, scheduler.New(), time.Date(2026, 10, 14, 10, 0, 0, 0, time.Local))

	tests := []struct {
		key  string
		want tea.Msg
	}{
		{"a", AddBotMsg{}},
		{"e", EditBotMsg{ID: "b1"}},
		{"d", DeleteBotMsg{ID: "b1"}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, cmd := m.Update(key(tt.key))
			if cmd == nil {
				t.Fatal("expected a command")
			}
			if got := cmd(); got != tt.want {
				t.Errorf("msg = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestEmptyListOnlyAdds(t *testing.T) {
	m := New(80, 20)
	if _, cmd := m.Update(key("e")); cmd != nil {
		if _, ok := cmd().(EditBotMsg); ok {
			t.Error("edit should not fire on an empty list")
		}
	}
	if m.View() == "" {
		t.Error("empty view should explain how to add a bot")
	}
}

func TestItemDescription(t *testing.T) {
	i := Item{
		Bot: models.BotRecord{
			Name:        "Invoice Bot",
			MachineName: "WKS-07",
			Platform:    models.PlatformUiPath,
			Schedule:    models.ScheduleWindow{Start: "9:00 AM", End: "5:00 PM", Days: models.NewWeekdaySet(time.Monday)},
		},
		Status: scheduler.Status{Active: true},
	}
	want := "WKS-07 | UiPath | Mon 9:00 AM-5:00 PM | running window open"
	if got := i.Description(); got != want {
		t.Errorf("Description() = %q, want %q", got, want)
	}
}
