package tui

import (
	"strings"

	"serverpanel/internal/panel"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// confirmDialog is an open yes/no dialog waiting for the user's answer.
type confirmDialog struct {
	prompt string
	label  string
	focus  confirmModalFocus
	done   func(panel.ConfirmResult)
}

func newConfirmDialog(prompt string, opts panel.ConfirmOptions, done func(panel.ConfirmResult)) *confirmDialog {
	label := strings.TrimSpace(opts.ValidationLabel)
	if label == "" {
		label = "OK"
	}
	// Destructive confirmations start on Cancel.
	return &confirmDialog{prompt: prompt, label: label, focus: confirmFocusCancel, done: done}
}

// update handles a key while the dialog is open. It returns the answer once the user decides.
func (d *confirmDialog) update(msg tea.KeyMsg) (panel.ConfirmResult, bool) {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		if d.focus == confirmFocusConfirm {
			d.focus = confirmFocusCancel
		} else {
			d.focus = confirmFocusConfirm
		}
	case "enter":
		if d.focus == confirmFocusConfirm {
			return panel.Confirmed(), true
		}
		return panel.Declined(), true
	case "y":
		return panel.Confirmed(), true
	case "n", "esc", "ctrl+g":
		return panel.Declined(), true
	}
	return panel.ConfirmResult{}, false
}

func (d *confirmDialog) view(width int) string {
	bodyW := modalBodyWidth(width)
	body := lipgloss.NewStyle().Width(bodyW).Render(d.prompt)
	return renderConfirmModal(width, d.label, body, d.label, "Cancel", d.focus)
}

func renderConfirmModal(width int, title string, body string, confirmLabel string, cancelLabel string, focus confirmModalFocus) string {
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)
	if monochrome {
		btnActive = btnActive.Reverse(true)
	}

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	}
	if focus == confirmFocusCancel {
		cancel = btnActive.Render(cancelLabel)
	}

	sep := lipgloss.NewStyle().Background(colorControlBg).Render(" ")
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, sep, cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   y/n   esc: cancel")

	content := strings.Join([]string{
		body,
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}
