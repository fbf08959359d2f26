package panel

import (
	"context"
	"errors"
	"fmt"

	"serverpanel/internal/model"
	"serverpanel/internal/store"

	"github.com/golang/glog"
)

// ActionState is the enabled state of the panel's buttons.
type ActionState struct {
	Add    bool
	Edit   bool
	Remove bool
}

type Option func(*Controller)

// WithAddDefaults overrides the hostname/port pre-filled by the add dialog.
func WithAddDefaults(d store.AddDefaults) Option {
	return func(c *Controller) { c.defaults = d }
}

// Controller wires the entry store, tree sync, selection and edit flow together.
type Controller struct {
	store     *store.EntryStore
	tree      *TreeSync
	selection *SelectionController
	flow      *EditFlow

	defaults store.AddDefaults
	started  bool
	fatal    error
}

func New(st *store.EntryStore, w Widget, d Dialogs, nav Navigator, opts ...Option) *Controller {
	c := &Controller{
		store:    st,
		defaults: store.AddDefaults{Hostname: store.DefaultAddHostname, Port: store.DefaultAddPort},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.tree = NewTreeSync(w)
	c.selection = NewSelectionController(st, c.tree)
	if nav != nil {
		c.selection.OnActivate(nav.OpenServer)
	}
	c.flow = NewEditFlow(st, c.tree, c.selection, d, c.defaults)
	c.flow.OnSettled(func(o Outcome) {
		var inv *InvariantError
		if errors.As(o.Err, &inv) && c.fatal == nil {
			c.fatal = inv
		}
		if glog.V(2) {
			if err := c.CheckConsistency(); err != nil {
				glog.Errorf("panel: after %s %s: %v", o.Op, o.ID, err)
				if c.fatal == nil {
					c.fatal = err
				}
			}
		}
	})

	w.Bind(WidgetEvents{
		SelectionChanged: c.selection.handleSelection,
		Activated:        c.selection.Activate,
		Drop:             c.tree.OnDrop,
	})
	return c
}

// Start loads the persisted entries and creates their nodes in stored order. Add becomes
// available only after Start succeeds.
func (c *Controller) Start(ctx context.Context) error {
	if c.started {
		return nil
	}
	entries, err := c.store.Load(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := c.tree.CreateNode(e); err != nil {
			return &InvariantError{Op: "start", ID: e.ID, Err: err}
		}
	}
	c.started = true
	if c.store.Dirty() {
		// Load backfilled ids; write them out with the next flush.
		c.flow.persist()
	}
	glog.V(1).Infof("panel: started with %d servers", len(entries))
	return nil
}

func (c *Controller) Add() error {
	if !c.started {
		return ErrNotStarted
	}
	return c.flow.Add()
}

// Edit opens the edit dialog for the first selected server.
func (c *Controller) Edit() error {
	if !c.started {
		return ErrNotStarted
	}
	return c.flow.Edit()
}

// Remove asks to remove the first selected server.
func (c *Controller) Remove() error {
	if !c.started {
		return ErrNotStarted
	}
	return c.flow.Remove()
}

// Activate opens the first selected server through the navigator.
func (c *Controller) Activate() { c.selection.Activate() }

// Reorder changes the order of the servers in the store and then in the tree.
// An invalid payload is rejected by the store and leaves both unchanged.
func (c *Controller) Reorder(ids []string) error {
	if c.flow.Busy() {
		return ErrFlowBusy
	}
	if err := c.store.Reorder(ids); err != nil {
		return err
	}
	if err := c.tree.ApplyReorder(ids); err != nil {
		inv := &InvariantError{Op: "reorder", ID: fmt.Sprint(ids), Err: err}
		if c.fatal == nil {
			c.fatal = inv
		}
		return inv
	}
	c.flow.persist()
	return nil
}

func (c *Controller) Actions() ActionState {
	enabled := c.selection.ActionsEnabled()
	return ActionState{Add: c.started, Edit: enabled, Remove: enabled}
}

// Err returns the first invariant violation seen, if any.
func (c *Controller) Err() error { return c.fatal }

// CheckConsistency verifies that store ids and node ids match, order included.
func (c *Controller) CheckConsistency() error {
	want := c.store.IDs()
	got := c.tree.IDs()
	if !sameIDs(want, got) {
		return &InvariantError{Op: "check", ID: "*", Err: fmt.Errorf("store ids %v, tree ids %v", want, got)}
	}
	return nil
}

// Entry returns the stored entry for id.
func (c *Controller) Entry(id string) (model.ServerEntry, bool) { return c.store.Get(id) }

func (c *Controller) Store() *store.EntryStore { return c.store }
func (c *Controller) Tree() *TreeSync { return c.tree }
func (c *Controller) Selection() *SelectionController { return c.selection }
func (c *Controller) Flow() *EditFlow { return c.flow }
