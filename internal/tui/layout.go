package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and height
// lines tall, so the frame does not jitter as rows change.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i, ln := range lines {
		w := xansi.StringWidth(ln)
		if w > width {
			switch {
			case width <= 0:
				ln = ""
			case width == 1:
				ln = xansi.Cut(ln, 0, 1)
			default:
				ln = xansi.Cut(ln, 0, width-1) + "…"
			}
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}
	return strings.Join(lines, "\n")
}

const (
	modalMaxWidth = 64
	modalMinWidth = 24
)

func modalBoxWidth(width int) int {
	w := width - 4
	if w > modalMaxWidth {
		w = modalMaxWidth
	}
	if w < modalMinWidth {
		w = modalMinWidth
	}
	return w
}

// modalBodyWidth is the usable text width inside a modal (box minus horizontal padding).
func modalBodyWidth(width int) int {
	return modalBoxWidth(width) - 2
}

// renderModalBox draws a titled box on the surface background. No borders: some terminals
// show background artifacts around bordered components on a colored surface.
func renderModalBox(width int, title string, body string) string {
	boxW := modalBoxWidth(width)
	header := lipgloss.NewStyle().
		Width(boxW).
		Padding(0, 1).
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorModalHeaderBg).
		Render(title)

	lines := strings.Split(body, "\n")
	bodyW := modalBodyWidth(width)
	for i := range lines {
		lines[i] = normalizePane(lines[i], bodyW, 1)
	}
	content := lipgloss.NewStyle().
		Width(boxW).
		Padding(1, 1).
		Foreground(colorSurfaceFg).
		Background(colorSurfaceBg).
		Render(strings.Join(lines, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, header, content)
}
