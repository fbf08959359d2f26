package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/glog"
)

func (m *appModel) Init() tea.Cmd {
	return m.followUp(nil)
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case saveMsg:
		m.flush(msg.seq)

	case statusDoneMsg:
		// Only clear if no newer status replaced this one.
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	default:
		if m.dialogs.open() {
			cmd = m.dialogs.update(msg)
		}
	}
	return m, m.followUp(cmd)
}

func (m *appModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.dialogs.open() {
		cmd := m.dialogs.update(msg)
		// A committed dialog may have added the first row under the cursor.
		m.widget.sync()
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
	case key.Matches(msg, m.keys.Add):
		m.report(m.ctrl.Add())
	case key.Matches(msg, m.keys.Edit):
		m.report(m.ctrl.Edit())
	case key.Matches(msg, m.keys.Remove):
		m.report(m.ctrl.Remove())
	case key.Matches(msg, m.keys.Open):
		m.widget.activate()
	case key.Matches(msg, m.keys.Mark):
		m.widget.toggleMark()
		m.widget.sync()
	case key.Matches(msg, m.keys.Clear):
		m.widget.clearSelection()
		m.widget.sync()
	case key.Matches(msg, m.keys.MoveUp):
		m.proposeMove(-1)
	case key.Matches(msg, m.keys.MoveDown):
		m.proposeMove(1)
	case key.Matches(msg, m.keys.Copy):
		m.copyHost()
	default:
		return m.widget.update(msg)
	}
	return nil
}

func (m *appModel) proposeMove(delta int) {
	proposed, accepted := m.widget.proposeMove(delta)
	if proposed && !accepted {
		m.setStatus("servers cannot be dragged here; use `serverpanel servers reorder`", true)
	}
}

func (m *appModel) copyHost() {
	id, ok := m.ctrl.Selection().Primary()
	if !ok {
		return
	}
	host := m.hostOf(id)
	if err := clipboard.WriteAll(host); err != nil {
		glog.V(1).Infof("tui: clipboard: %v", err)
		m.setStatus("copy failed: "+err.Error(), true)
		return
	}
	m.setStatus("copied "+host, false)
}

// followUp runs after every message: it quits on activation, quit or a broken invariant,
// and otherwise schedules the debounced saves and the status timeout.
func (m *appModel) followUp(cmd tea.Cmd) tea.Cmd {
	if err := m.ctrl.Err(); err != nil && m.err == nil {
		m.err = err
		m.quitting = true
	}
	if m.chosen != nil {
		m.quitting = true
	}
	if m.quitting {
		m.pendingSaves = nil
		if err := m.flushNow(); err != nil && m.err == nil {
			m.err = err
		}
		return tea.Quit
	}

	m.syncKeys()
	cmds := []tea.Cmd{cmd}
	for _, seq := range m.pendingSaves {
		seq := seq
		cmds = append(cmds, tea.Tick(m.saveDelay, func(time.Time) tea.Msg { return saveMsg{seq: seq} }))
	}
	m.pendingSaves = nil
	if m.statusDirty {
		m.statusDirty = false
		seq := m.statusSeq
		cmds = append(cmds, tea.Tick(statusTimeout, func(time.Time) tea.Msg { return statusDoneMsg{seq: seq} }))
	}
	return tea.Batch(cmds...)
}
