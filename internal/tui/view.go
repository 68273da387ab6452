package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/botroom/internal/constants"
	"github.com/julianstephens/botroom/internal/notify"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	parts := []string{m.viewHeader()}
	if m.validationWarning != "" && !m.busy {
		parts = append(parts, warningStyle.Render(m.validationWarning))
	}

	var content string
	switch {
	case m.busy:
		// No controller reads while a submission is in flight.
		content = m.spinner.View() + " " + m.busyLabel()
	case m.state == constants.StateAdding:
		content = "New bot\n\n" + m.form.View()
	case m.state == constants.StateEditing:
		content = "Edit bot\n\n" + m.form.View()
	case m.state == constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	default:
		content = m.botList.View()
	}
	parts = append(parts, docStyle.Render(content))

	if toasts := m.viewToasts(); toasts != "" {
		parts = append(parts, toasts)
	}
	parts = append(parts, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewHeader() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("botroom"),
		subtleStyle.Render(fmt.Sprintf("  Welcome, %s", m.dash.Username)),
	)
}

func (m Model) busyLabel() string {
	if m.dash.Loading {
		return "Loading bots..."
	}
	return "Saving..."
}

func (m Model) viewConfirmDelete() string {
	wc, _ := m.ctrl.WorkingCopy()
	return lipgloss.JoinVertical(lipgloss.Left,
		dangerStyle.Render(fmt.Sprintf("Delete bot %q?", wc.Name)),
		"",
		"[y] Yes",
		"[n] No",
	)
}

func (m Model) viewToasts() string {
	lines := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		line := t.Title + ": " + t.Description
		if t.Severity == notify.SeverityDestructive {
			lines = append(lines, dangerStyle.Render(line))
		} else {
			lines = append(lines, toastStyle.Render(line))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
