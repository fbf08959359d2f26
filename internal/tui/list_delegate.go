package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// serverItemDelegate renders one server per line: a mark column, the host and the label.
type serverItemDelegate struct {
	marked func(serverItem) bool
}

func (d serverItemDelegate) Height() int  { return 1 }
func (d serverItemDelegate) Spacing() int { return 0 }
func (d serverItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d serverItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	it, ok := item.(serverItem)
	if !ok || contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	isCursor := index == m.Index()
	mark := "  "
	if d.marked != nil && d.marked(it) {
		mark = "* "
	}
	if isCursor {
		mark = "> "
		if d.marked != nil && d.marked(it) {
			mark = ">*"
		}
	}

	label := ""
	if strings.TrimSpace(it.label) != "" {
		label = "  " + styleMuted().Render(it.label)
	}
	line := mark + " " + it.host + label

	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW)
	}

	if !isCursor {
		fmt.Fprint(w, line)
		return
	}
	style := lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	if monochrome {
		style = style.Reverse(true)
	}
	fmt.Fprint(w, style.Render(line))
}
