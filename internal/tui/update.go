package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/botroom/internal/constants"
	"github.com/julianstephens/botroom/internal/logger"
	"github.com/julianstephens/botroom/internal/models"
	"github.com/julianstephens/botroom/internal/operations"
	"github.com/julianstephens/botroom/internal/tui/components/botlist"
)

const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.botList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case rosterLoadedMsg:
		m.busy = false
		if err := m.dash.Apply(msg.records, msg.err); err != nil {
			logger.Debug("roster load failed", "error", err)
		}
		m.refresh()
		return m, nil

	case submitDoneMsg:
		m.busy = false
		return m, m.afterSubmit(msg)
	}

	// A store call is in flight: only a hard quit gets through.
	if m.busy {
		if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch m.state {
	case constants.StateAdding, constants.StateEditing:
		return m.updateForm(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}
	return m.updateRoster(msg)
}

func (m Model) updateRoster(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.botList.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.busy = true
			m.dash.Loading = true
			return m, tea.Batch(m.spinner.Tick, m.fetchRoster())
		}

	case botlist.AddBotMsg:
		return m, m.startAdd()
	case botlist.EditBotMsg:
		return m, m.startEdit(msg.ID)
	case botlist.DeleteBotMsg:
		m.startDelete(msg.ID)
		return m, nil
	}

	var cmd tea.Cmd
	m.botList, cmd = m.botList.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.Cancel) {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.busy = true
		return m, tea.Batch(cmd, m.spinner.Tick, m.submitForm())
	case huh.StateAborted:
		m.closeForm()
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, m.keys.Confirm):
		m.busy = true
		return m, tea.Batch(m.spinner.Tick, m.deleteCmd())
	case key.Matches(k, m.keys.Cancel), k.String() == "n", k.String() == "N":
		m.ctrl.CancelEdit()
		m.state = constants.StateRoster
	}
	return m, nil
}

func (m *Model) startAdd() tea.Cmd {
	m.ctrl.RequestAdd()
	d, _ := m.ctrl.Draft()
	m.botForm = formFromDraft(d)
	m.form = NewBotForm(m.botForm, false)
	m.state = constants.StateAdding
	return m.form.Init()
}

func (m *Model) startEdit(id string) tea.Cmd {
	if err := m.ctrl.SelectForEdit(id); err != nil {
		logger.Warn("cannot edit bot", "id", id, "error", err)
		return nil
	}
	wc, _ := m.ctrl.WorkingCopy()
	m.botForm = formFromRecord(wc)
	m.form = NewBotForm(m.botForm, true)
	m.state = constants.StateEditing
	return m.form.Init()
}

func (m *Model) startDelete(id string) {
	if err := m.ctrl.SelectForEdit(id); err != nil {
		logger.Warn("cannot delete bot", "id", id, "error", err)
		return
	}
	m.state = constants.StateConfirmDelete
}

func (m *Model) closeForm() {
	switch m.state {
	case constants.StateAdding:
		m.ctrl.CancelAdd()
	case constants.StateEditing:
		m.ctrl.CancelEdit()
	}
	m.form = nil
	m.botForm = nil
	m.state = constants.StateRoster
}

// submitForm copies the finished form into the controller and returns the
// store command. Days are reconciled through ToggleDay.
func (m *Model) submitForm() tea.Cmd {
	fm := m.botForm
	start, startErr := fm.Start()
	end, endErr := fm.End()

	switch m.state {
	case constants.StateAdding:
		m.ctrl.EditDraft(func(d *models.BotDraft) {
			d.Name = fm.Name
			d.MachineName = fm.Machine
			d.Platform = fm.Platform
			if startErr == nil {
				d.Start = start
			}
			if endErr == nil {
				d.End = end
			}
		})
		d, _ := m.ctrl.Draft()
		for _, day := range d.Days.TogglesTo(fm.DaySet()) {
			m.ctrl.ToggleDay(day)
		}
		return m.submit(opCreate, m.ctrl.SubmitCreate)

	case constants.StateEditing:
		m.ctrl.EditWorkingCopy(func(b *models.BotRecord) {
			b.Name = fm.Name
			b.MachineName = fm.Machine
			b.Platform = fm.Platform
			if fm.Reschedule && startErr == nil && endErr == nil {
				b.SetStart(start)
				b.SetEnd(end)
			}
		})
		wc, _ := m.ctrl.WorkingCopy()
		for _, day := range wc.Schedule.Days.TogglesTo(fm.DaySet()) {
			m.ctrl.ToggleDay(day)
		}
		return m.submit(opUpdate, m.ctrl.SubmitUpdate)
	}
	return nil
}

func (m *Model) deleteCmd() tea.Cmd {
	return m.submit(opDelete, m.ctrl.SubmitDelete)
}

// afterSubmit returns to the roster on success. On failure the controller
// kept the draft or working copy, so the form is rebuilt from it.
func (m *Model) afterSubmit(msg submitDoneMsg) tea.Cmd {
	m.refresh()
	if msg.err == nil {
		m.form = nil
		m.botForm = nil
		m.state = constants.StateRoster
		return nil
	}

	logger.Debug("submit failed", "op", msg.op, "error", msg.err)
	switch mode := m.ctrl.Mode().(type) {
	case operations.Adding:
		m.botForm = formFromDraft(mode.Draft)
		m.form = NewBotForm(m.botForm, false)
		m.state = constants.StateAdding
		return m.form.Init()
	case operations.Editing:
		if msg.op == opDelete {
			m.state = constants.StateConfirmDelete
			return nil
		}
		reschedule := m.botForm != nil && m.botForm.Reschedule
		m.botForm = formFromRecord(mode.WorkingCopy)
		m.botForm.Reschedule = reschedule
		m.form = NewBotForm(m.botForm, true)
		m.state = constants.StateEditing
		return m.form.Init()
	}
	m.state = constants.StateRoster
	return nil
}
