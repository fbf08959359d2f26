package tui

import (
	"strings"

	"serverpanel/internal/panel"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	fieldHostname = iota
	fieldPort
	fieldLabel
	fieldCount
)

var serverFieldNames = [fieldCount]string{"Hostname", "Port", "Label"}

// serverForm is an open add/edit dialog waiting for the user's answer.
type serverForm struct {
	prompt string
	label  string
	inputs [fieldCount]textinput.Model
	focus  int
	err    string
	done   func(panel.FormResult)
}

func newServerForm(prompt string, opts panel.ServerDialogOptions, done func(panel.FormResult)) *serverForm {
	f := &serverForm{prompt: prompt, label: strings.TrimSpace(opts.ValidationLabel), done: done}
	if f.label == "" {
		f.label = "OK"
	}
	initial := [fieldCount]string{opts.InitialHostname, opts.InitialPort, opts.InitialLabel}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 255
		in.SetValue(initial[i])
		in.CursorEnd()
		f.inputs[i] = in
	}
	f.inputs[fieldPort].CharLimit = 5
	f.inputs[fieldPort].Placeholder = "default"
	f.inputs[fieldLabel].Placeholder = "optional"
	f.focusField(fieldHostname)
	return f
}

func (f *serverForm) focusField(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

func (f *serverForm) fields() panel.ServerFields {
	return panel.ServerFields{
		Hostname: f.inputs[fieldHostname].Value(),
		Port:     f.inputs[fieldPort].Value(),
		Label:    f.inputs[fieldLabel].Value(),
	}
}

// update handles a message while the form is open. answered is true once the user submitted
// or dismissed; result then holds the answer.
func (f *serverForm) update(msg tea.Msg) (result panel.FormResult, answered bool, cmd tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc", "ctrl+g":
			return panel.Dismissed(), true, nil
		case "enter", "ctrl+s":
			if strings.TrimSpace(f.inputs[fieldHostname].Value()) == "" {
				f.err = "a hostname is required"
				return result, false, f.focusField(fieldHostname)
			}
			return panel.Submitted(f.fields()), true, nil
		case "tab", "down":
			return result, false, f.focusField(f.focus + 1)
		case "shift+tab", "up":
			return result, false, f.focusField(f.focus - 1)
		}
	}
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return result, false, cmd
}

func (f *serverForm) view(width int) string {
	bodyW := modalBodyWidth(width)
	labelStyle := styleMuted()
	focusedLabel := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Width(bodyW).Render(f.prompt))
	b.WriteString("\n")
	for i := range f.inputs {
		st := labelStyle
		if i == f.focus {
			st = focusedLabel
		}
		b.WriteString("\n")
		b.WriteString(st.Render(serverFieldNames[i]))
		b.WriteString("\n")
		b.WriteString(renderInputLine(bodyW, f.inputs[i].View()))
	}
	if f.err != "" {
		b.WriteString("\n\n")
		b.WriteString(styleError().Width(bodyW).Render(f.err))
	}
	b.WriteString("\n\n")
	b.WriteString(styleMuted().Width(bodyW).Render("tab: next field   enter: " + strings.ToLower(f.label) + "   esc: cancel"))
	return renderModalBox(width, f.label+" server", b.String())
}

// dialogHost implements panel.Dialogs on top of the app model: at most one modal is open, and
// its continuation runs from the key that answers it.
type dialogHost struct {
	form    *serverForm
	confirm *confirmDialog
}

func (h *dialogHost) PromptServer(prompt string, opts panel.ServerDialogOptions, done func(panel.FormResult)) {
	h.form = newServerForm(prompt, opts, done)
}

func (h *dialogHost) Confirm(prompt string, opts panel.ConfirmOptions, done func(panel.ConfirmResult)) {
	h.confirm = newConfirmDialog(prompt, opts, done)
}

func (h *dialogHost) open() bool { return h.form != nil || h.confirm != nil }

// update routes msg to the open modal. The modal is closed before its continuation runs so
// the continuation may open the next one.
func (h *dialogHost) update(msg tea.Msg) tea.Cmd {
	switch {
	case h.form != nil:
		f := h.form
		res, answered, cmd := f.update(msg)
		if answered {
			h.form = nil
			f.done(res)
		}
		return cmd
	case h.confirm != nil:
		km, ok := msg.(tea.KeyMsg)
		if !ok {
			return nil
		}
		d := h.confirm
		if res, answered := d.update(km); answered {
			h.confirm = nil
			d.done(res)
		}
	}
	return nil
}

func (h *dialogHost) view(width int) string {
	switch {
	case h.form != nil:
		return h.form.view(width)
	case h.confirm != nil:
		return h.confirm.view(width)
	}
	return ""
}
