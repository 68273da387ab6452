package botlist

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/botroom/internal/models"
	"github.com/julianstephens/botroom/internal/scheduler"
)

type AddBotMsg struct{}

type EditBotMsg struct {
	ID string
}

type DeleteBotMsg struct {
	ID string
}

type Item struct {
	Bot    models.BotRecord
	Status scheduler.Status
}

func (i Item) Title() string { return i.Bot.Name }
func (i Item) Description() string {
	w := i.Bot.Schedule
	return fmt.Sprintf("%s | %s | %s %s-%s | %s", i.Bot.MachineName, i.Bot.Platform, w.Days, w.Start, w.End, i.Status)
}
func (i Item) FilterValue() string { return i.Bot.Name + " " + i.Bot.MachineName }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Bots"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	// Quitting is owned by the page model.
	l.KeyMap.Quit.SetEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

// SetBots replaces the items, computing each bot's schedule status at now.
func (m *Model) SetBots(bots []models.BotRecord, sched *scheduler.Scheduler, now time.Time) {
	items := make([]list.Item, len(bots))
	for i, b := range bots {
		items[i] = Item{Bot: b, Status: sched.StatusAt(b, now)}
	}
	m.list.SetItems(items)
}

// Selected returns the highlighted bot.
func (m Model) Selected() (models.BotRecord, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Bot, ok
}

func (m Model) Len() int { return len(m.list.Items()) }

func (m Model) Filtering() bool { return m.list.FilterState() == list.Filtering }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddBotMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EditBotMsg{ID: i.Bot.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteBotMsg{ID: i.Bot.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No bots yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
