// Package tui is the interactive favorite-server panel.
package tui

import (
	"context"

	"serverpanel/internal/model"
	"serverpanel/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/glog"
)

// Run shows the panel over es until the user quits or opens a server. It returns the opened
// server, or nil when the user quit.
func Run(ctx context.Context, cfg *store.GlobalConfig, es *store.EntryStore, dir string) (*model.ServerEntry, error) {
	applyColorProfilePreference()
	applyThemePreference()
	applyAppearancePreference(cfg.Profile())

	m, err := newAppModel(ctx, cfg, es, dir)
	if err != nil {
		return nil, err
	}
	st := store.Store{Dir: dir}
	if state, err := st.LoadTUIState(); err == nil && state.CursorServerID != "" {
		if m.widget.selectID(state.CursorServerID) {
			m.widget.sync()
			m.syncKeys()
		}
	}
	final, runErr := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if fm, ok := final.(*appModel); ok && fm != nil {
		m = fm
	}
	// The program may stop without a quit key (context cancelled); don't lose pending saves.
	if err := m.flushNow(); err != nil && m.err == nil {
		m.err = err
	}
	if err := st.SaveTUIState(&store.TUIState{CursorServerID: m.widget.cursorID()}); err != nil {
		glog.Warningf("tui: save state: %v", err)
	}
	if m.err != nil {
		return nil, m.err
	}
	if runErr != nil {
		return nil, runErr
	}
	return m.chosen, nil
}
