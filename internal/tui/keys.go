package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type keyMap struct {
	Add      key.Binding
	Edit     key.Binding
	Remove   key.Binding
	Open     key.Binding
	Mark     key.Binding
	Clear    key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Copy     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add:      key.NewBinding(key.WithKeys("a", "+"), key.WithHelp("a", "add")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Remove:   key.NewBinding(key.WithKeys("d", "x", "delete"), key.WithHelp("d", "remove")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Mark:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "mark")),
		Clear:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		MoveUp:   key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy host")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// setActions mirrors the panel's action state onto the bindings; key.Matches ignores
// disabled bindings.
func (k *keyMap) setActions(add, edit, remove bool) {
	k.Add.SetEnabled(add)
	k.Edit.SetEnabled(edit)
	k.Remove.SetEnabled(remove)
	k.Open.SetEnabled(edit)
	k.Copy.SetEnabled(edit)
}

func (k keyMap) footer() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Remove, k.Open, k.Mark, k.Copy, k.Quit}
}

// renderFooter shows every footer binding; disabled ones are struck through.
func renderFooter(bindings []key.Binding) string {
	keyStyle := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	disabled := styleMuted().Strikethrough(true)

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if !b.Enabled() {
			parts = append(parts, disabled.Render(h.Key+": "+h.Desc))
			continue
		}
		parts = append(parts, keyStyle.Render(h.Key)+styleMuted().Render(": "+h.Desc))
	}
	return strings.Join(parts, "   ")
}
