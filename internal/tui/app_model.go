package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"serverpanel/internal/model"
	"serverpanel/internal/panel"
	"serverpanel/internal/store"

	"github.com/golang/glog"
)

type appModel struct {
	ctx       context.Context
	dir       string
	saveDelay time.Duration

	ctrl    *panel.Controller
	widget  *treeWidget
	dialogs *dialogHost
	keys    keyMap

	width  int
	height int

	// Save seqs scheduled since the last Update; each becomes a debounced saveMsg.
	pendingSaves []int

	status      string
	statusErr   bool
	statusSeq   int
	statusDirty bool

	chosen   *model.ServerEntry
	quitting bool
	err      error
}

// newAppModel builds the panel on es and starts it, so the first frame already shows the
// persisted servers.
func newAppModel(ctx context.Context, cfg *store.GlobalConfig, es *store.EntryStore, dir string) (*appModel, error) {
	m := &appModel{
		ctx:       ctx,
		dir:       dir,
		saveDelay: cfg.SaveDelay(),
		widget:    newTreeWidget(),
		dialogs:   &dialogHost{},
		keys:      defaultKeyMap(),
		width:     80,
		height:    24,
	}
	nav := panel.NavigatorFunc(func(e model.ServerEntry) {
		m.chosen = &e
	})
	m.ctrl = panel.New(es, m.widget, m.dialogs, nav, panel.WithAddDefaults(cfg.AddDefaults()))
	m.ctrl.Flow().OnPersist(func(seq int) { m.pendingSaves = append(m.pendingSaves, seq) })
	m.ctrl.Flow().OnSettled(m.onSettled)

	// Start schedules a save through OnPersist when it had to backfill ids.
	if err := m.ctrl.Start(ctx); err != nil {
		return nil, err
	}
	m.resize()
	m.widget.sync()
	m.syncKeys()
	return m, nil
}

func (m *appModel) resize() {
	// Header, blank line, status and footer.
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	m.widget.setSize(m.width, h)
}

func (m *appModel) syncKeys() {
	a := m.ctrl.Actions()
	m.keys.setActions(a.Add, a.Edit, a.Remove)
}

func (m *appModel) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
	m.statusSeq++
	m.statusDirty = true
}

// report shows err from a panel action, if any.
func (m *appModel) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, panel.ErrFlowBusy):
		m.setStatus("finish the open dialog first", true)
	case errors.Is(err, panel.ErrNoSelection):
		m.setStatus("select a server first", true)
	default:
		m.setStatus(err.Error(), true)
	}
}

func (m *appModel) onSettled(o panel.Outcome) {
	switch o.Result {
	case panel.Committed:
		switch o.Op {
		case panel.OpAdd:
			m.setStatus("added "+m.hostOf(o.ID), false)
		case panel.OpEdit:
			m.setStatus("updated "+m.hostOf(o.ID), false)
		case panel.OpRemove:
			m.setStatus("removed server "+o.ID, false)
		}
	case panel.Cancelled:
		if errors.Is(o.Err, store.ErrInvalidEntry) {
			m.setStatus("a hostname is required", true)
		}
	case panel.Stale:
		m.setStatus("that server no longer exists", true)
	case panel.Failed:
		m.setStatus(fmt.Sprintf("%s failed: %v", o.Op, o.Err), true)
	}
}

func (m *appModel) hostOf(id string) string {
	if e, ok := m.ctrl.Entry(id); ok {
		return e.Host()
	}
	return id
}

// flush writes save seq if it is still the latest one.
func (m *appModel) flush(seq int) {
	wrote, err := m.ctrl.Store().Flush(m.ctx, seq)
	if err != nil {
		glog.Errorf("tui: save failed: %v", err)
		m.setStatus("save failed: "+err.Error(), true)
		return
	}
	if wrote {
		glog.V(2).Infof("tui: flushed seq=%d", seq)
	}
}

// flushNow writes anything pending; used on quit.
func (m *appModel) flushNow() error {
	if err := m.ctrl.Store().FlushNow(context.WithoutCancel(m.ctx)); err != nil {
		glog.Errorf("tui: save on exit failed: %v", err)
		return err
	}
	return nil
}
