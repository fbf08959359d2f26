package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *appModel) View() string {
	if m.quitting {
		return ""
	}

	header := lipgloss.NewStyle().Bold(true).Render("Favorite servers") +
		styleMuted().Render(fmt.Sprintf("  %d  %s", m.widget.count(), m.dir))

	bodyH := m.height - 4
	if bodyH < 1 {
		bodyH = 1
	}
	var body string
	switch {
	case m.dialogs.open():
		body = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center, m.dialogs.view(m.width))
	case m.widget.count() == 0:
		body = styleMuted().Render("No favorite servers yet. Press a to add one.")
	default:
		body = m.widget.view()
	}

	status := ""
	if m.status != "" {
		if m.statusErr {
			status = styleError().Render(m.status)
		} else {
			status = styleMuted().Render(m.status)
		}
	}

	footer := renderFooter(m.keys.footer())
	return strings.Join([]string{
		normalizePane(header, m.width, 1),
		"",
		normalizePane(body, m.width, bodyH),
		normalizePane(status, m.width, 1),
		normalizePane(footer, m.width, 1),
	}, "\n")
}
