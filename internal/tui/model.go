package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/botroom/internal/constants"
	"github.com/julianstephens/botroom/internal/models"
	"github.com/julianstephens/botroom/internal/notify"
	"github.com/julianstephens/botroom/internal/operations"
	"github.com/julianstephens/botroom/internal/scheduler"
	"github.com/julianstephens/botroom/internal/storage"
	"github.com/julianstephens/botroom/internal/tui/components/botlist"
	"github.com/julianstephens/botroom/internal/validation"
)

// maxToasts is how many recent notifications stay on screen.
const maxToasts = 3

// rosterLoadedMsg carries the result of a roster fetch.
type rosterLoadedMsg struct {
	records []models.BotRecord
	err     error
}

// submitDoneMsg reports the end of a create, update or delete.
type submitDoneMsg struct {
	op  string
	err error
}

type Options struct {
	Store     storage.BotStore
	Scheduler *scheduler.Scheduler
	Dashboard *operations.Dashboard
	// Queue must be the notifier the dashboard was built with.
	Queue   *notify.Queue
	Timeout time.Duration
	Now     func() time.Time
}

type Model struct {
	store     storage.BotStore
	scheduler *scheduler.Scheduler
	dash      *operations.Dashboard
	ctrl      *operations.Controller
	queue     *notify.Queue
	timeout   time.Duration
	now       func() time.Time

	state   constants.SessionState
	busy    bool
	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	botList botlist.Model
	form    *huh.Form
	botForm *BotFormModel

	toasts            []notify.Notification
	validationWarning string
	quitting          bool
	width             int
	height            int
}

func NewModel(opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Scheduler == nil {
		opts.Scheduler = scheduler.New()
	}
	s := spinner.New(spinner.WithSpinner(spinner.Dot))

	return Model{
		store:     opts.Store,
		scheduler: opts.Scheduler,
		dash:      opts.Dashboard,
		ctrl:      opts.Dashboard.Controller(opts.Store),
		queue:     opts.Queue,
		timeout:   opts.Timeout,
		now:       opts.Now,
		state:     constants.StateRoster,
		busy:      true,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   s,
		botList:   botlist.New(0, 0),
	}
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case constants.StateConfirmDelete:
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	case constants.StateAdding, constants.StateEditing:
		return []key.Binding{m.keys.Cancel}
	}
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchRoster())
}

func (m Model) storeContext() (context.Context, context.CancelFunc) {
	if m.timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), m.timeout)
}

// fetchRoster runs the list call off the UI goroutine. It touches no model
// state; the result is applied when rosterLoadedMsg arrives.
func (m Model) fetchRoster() tea.Cmd {
	store := m.store
	ctx, cancel := m.storeContext()
	return func() tea.Msg {
		defer cancel()
		records, err := operations.FetchRoster(ctx, store)
		return rosterLoadedMsg{records: records, err: err}
	}
}

// submit runs one controller submission in a command. The caller must set
// busy so nothing else reads the controller until submitDoneMsg arrives.
func (m Model) submit(op string, fn func(context.Context) error) tea.Cmd {
	ctx, cancel := m.storeContext()
	return func() tea.Msg {
		defer cancel()
		return submitDoneMsg{op: op, err: fn(ctx)}
	}
}

// refresh rebuilds everything derived from the roster and collects toasts.
func (m *Model) refresh() {
	bots := m.dash.Roster.All()
	m.botList.SetBots(bots, m.scheduler, m.now())

	res := validation.New().ValidateRoster(bots)
	if res.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d roster warning(s)", len(res.Conflicts))
	} else {
		m.validationWarning = ""
	}

	m.collectToasts()
}

func (m *Model) collectToasts() {
	if m.queue == nil {
		return
	}
	m.toasts = append(m.toasts, m.queue.Drain()...)
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[len(m.toasts)-maxToasts:]
	}
}
