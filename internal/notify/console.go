package notify

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/botroom/internal/logger"
)

var (
	neutralTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Bold(true)

	destructiveTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Bold(true)
)

// Console writes each notification as one styled line.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Notify(n Notification) {
	style := neutralTitleStyle
	if n.Severity == SeverityDestructive {
		style = destructiveTitleStyle
		logger.Warn("notification", "title", n.Title, "description", n.Description)
	} else {
		logger.Info("notification", "title", n.Title, "description", n.Description)
	}

	line := style.Render(n.Title)
	if n.Description != "" {
		line += " " + n.Description
	}
	fmt.Fprintln(c.w, line)
}
