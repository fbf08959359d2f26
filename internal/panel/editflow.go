package panel

import (
	"errors"
	"strings"

	"serverpanel/internal/model"
	"serverpanel/internal/store"

	"github.com/golang/glog"
)

type FlowState int

const (
	FlowIdle FlowState = iota
	FlowDialogOpen
)

type Op int

const (
	OpAdd Op = iota
	OpEdit
	OpRemove
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpEdit:
		return "edit"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

type Result int

const (
	// Committed: store, tree and persistence all updated.
	Committed Result = iota
	// Cancelled: the user dismissed the dialog (or submitted nothing usable); no side effects.
	Cancelled
	// Stale: the selected entry disappeared; the selection was refreshed instead.
	Stale
	// Failed: an invariant was violated; Err is an *InvariantError.
	Failed
)

func (r Result) String() string {
	switch r {
	case Committed:
		return "committed"
	case Cancelled:
		return "cancelled"
	case Stale:
		return "stale"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome describes how one add/edit/remove operation settled.
type Outcome struct {
	Op     Op
	Result Result
	ID     string
	Err    error
}

const (
	addPrompt    = "Enter the server details"
	editPrompt   = "Edit the server details"
	removePrompt = "Are you sure you want to remove the server?"
)

// EditFlow runs add/edit/remove as a modal state machine:
// Idle → DialogOpen → (Committed | Cancelled | Stale | Failed) → Idle.
// Only one operation may be in flight; starting another returns ErrFlowBusy.
type EditFlow struct {
	store     *store.EntryStore
	tree      *TreeSync
	selection *SelectionController
	dialogs   Dialogs
	defaults  store.AddDefaults

	state FlowState
	opSeq int
	last  *Outcome

	persistListeners []func(seq int)
	settleListeners  []func(Outcome)
}

func NewEditFlow(st *store.EntryStore, tree *TreeSync, sel *SelectionController, d Dialogs, defaults store.AddDefaults) *EditFlow {
	return &EditFlow{
		store:     st,
		tree:      tree,
		selection: sel,
		dialogs:   d,
		defaults:  defaults,
	}
}

func (f *EditFlow) State() FlowState { return f.state }

func (f *EditFlow) Busy() bool { return f.state == FlowDialogOpen }

// Last returns the outcome of the most recent settled operation.
func (f *EditFlow) Last() (Outcome, bool) {
	if f.last == nil {
		return Outcome{}, false
	}
	return *f.last, true
}

// OnPersist registers fn to receive the save sequence of every committed change; the caller
// schedules EntryStore.Flush for it.
func (f *EditFlow) OnPersist(fn func(seq int)) {
	f.persistListeners = append(f.persistListeners, fn)
}

// OnSettled registers fn to run after each operation returns to Idle.
func (f *EditFlow) OnSettled(fn func(Outcome)) {
	f.settleListeners = append(f.settleListeners, fn)
}

// begin moves to DialogOpen and returns a token the continuation must present.
func (f *EditFlow) begin() (int, error) {
	if f.state == FlowDialogOpen {
		return 0, ErrFlowBusy
	}
	f.state = FlowDialogOpen
	f.opSeq++
	return f.opSeq, nil
}

// resume reports whether a continuation for token may run. A dialog answering twice, or late,
// is ignored.
func (f *EditFlow) resume(token int) bool {
	return f.state == FlowDialogOpen && f.opSeq == token
}

func (f *EditFlow) settle(o Outcome) {
	f.state = FlowIdle
	f.last = &o
	if o.Result == Failed {
		glog.Errorf("flow: %s %s failed: %v", o.Op, o.ID, o.Err)
	} else {
		glog.V(1).Infof("flow: %s %s %s", o.Op, o.ID, o.Result)
	}
	for _, fn := range f.settleListeners {
		fn(o)
	}
}

func (f *EditFlow) persist() {
	seq := f.store.Persist()
	for _, fn := range f.persistListeners {
		fn(seq)
	}
}

func (f *EditFlow) invariant(op Op, id string, err error) Outcome {
	return Outcome{Op: op, Result: Failed, ID: id, Err: &InvariantError{Op: op.String(), ID: id, Err: err}}
}

// Add opens the add dialog pre-filled with the defaults. On submit the entry gets a fresh id
// from the current collection, is added to the store and the tree, and a save is scheduled.
func (f *EditFlow) Add() error {
	token, err := f.begin()
	if err != nil {
		return err
	}
	opts := ServerDialogOptions{
		ValidationLabel: "Add",
		InitialHostname: f.defaults.Hostname,
		InitialPort:     f.defaults.Port,
		InitialLabel:    "",
	}
	f.dialogs.PromptServer(addPrompt, opts, func(r FormResult) {
		if !f.resume(token) {
			return
		}
		f.settle(f.commitAdd(r))
	})
	return nil
}

func (f *EditFlow) commitAdd(r FormResult) Outcome {
	fields, ok := r.Fields()
	if !ok {
		return Outcome{Op: OpAdd, Result: Cancelled}
	}
	entry, err := entryFromFields(fields)
	if err != nil {
		return Outcome{Op: OpAdd, Result: Cancelled, Err: err}
	}
	// Allocate against the collection as it is now, not as it was when the dialog opened.
	entry.ID = store.NextID(f.store.Entries())

	if err := f.store.Add(entry); err != nil {
		return f.invariant(OpAdd, entry.ID, err)
	}
	if _, err := f.tree.CreateNode(entry); err != nil {
		_ = f.store.Remove(entry.ID)
		return f.invariant(OpAdd, entry.ID, err)
	}
	f.persist()
	return Outcome{Op: OpAdd, Result: Committed, ID: entry.ID}
}

// Edit opens the edit dialog for the primary selection.
func (f *EditFlow) Edit() error {
	if f.state == FlowDialogOpen {
		return ErrFlowBusy
	}
	id, ok := f.selection.Primary()
	if !ok {
		return ErrNoSelection
	}
	entry, ok := f.store.Get(id)
	if !ok {
		f.selection.Prune()
		f.settle(Outcome{Op: OpEdit, Result: Stale, ID: id, Err: store.ErrNotFound})
		return nil
	}

	token, err := f.begin()
	if err != nil {
		return err
	}
	opts := ServerDialogOptions{
		ValidationLabel: "Edit",
		InitialHostname: entry.Hostname,
		InitialPort:     entry.PortValue(),
		InitialLabel:    entry.Label,
	}
	f.dialogs.PromptServer(editPrompt, opts, func(r FormResult) {
		if !f.resume(token) {
			return
		}
		f.settle(f.commitEdit(id, r))
	})
	return nil
}

func (f *EditFlow) commitEdit(id string, r FormResult) Outcome {
	fields, ok := r.Fields()
	if !ok {
		return Outcome{Op: OpEdit, Result: Cancelled, ID: id}
	}
	next, err := entryFromFields(fields)
	if err != nil {
		return Outcome{Op: OpEdit, Result: Cancelled, ID: id, Err: err}
	}

	if err := f.store.Update(id, next.Patch()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			f.selection.Prune()
			return Outcome{Op: OpEdit, Result: Stale, ID: id, Err: err}
		}
		return Outcome{Op: OpEdit, Result: Cancelled, ID: id, Err: err}
	}
	updated, _ := f.store.Get(id)
	if err := f.tree.UpdateNode(id, updated); err != nil {
		return f.invariant(OpEdit, id, err)
	}
	f.persist()
	return Outcome{Op: OpEdit, Result: Committed, ID: id}
}

// Remove asks for confirmation, then removes the primary selection from the store and the tree.
func (f *EditFlow) Remove() error {
	if f.state == FlowDialogOpen {
		return ErrFlowBusy
	}
	id, ok := f.selection.Primary()
	if !ok {
		return ErrNoSelection
	}
	token, err := f.begin()
	if err != nil {
		return err
	}
	f.dialogs.Confirm(removePrompt, ConfirmOptions{ValidationLabel: "Remove"}, func(r ConfirmResult) {
		if !f.resume(token) {
			return
		}
		f.settle(f.commitRemove(id, r))
	})
	return nil
}

func (f *EditFlow) commitRemove(id string, r ConfirmResult) Outcome {
	if !r.OK() {
		return Outcome{Op: OpRemove, Result: Cancelled, ID: id}
	}
	if err := f.store.Remove(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			f.selection.Prune()
			return Outcome{Op: OpRemove, Result: Stale, ID: id, Err: err}
		}
		return f.invariant(OpRemove, id, err)
	}
	if err := f.tree.RemoveNode(id); err != nil {
		return f.invariant(OpRemove, id, err)
	}
	f.selection.Prune()
	f.persist()
	return Outcome{Op: OpRemove, Result: Committed, ID: id}
}

func entryFromFields(fields ServerFields) (model.ServerEntry, error) {
	host := strings.TrimSpace(fields.Hostname)
	if host == "" {
		return model.ServerEntry{}, store.ErrInvalidEntry
	}
	return model.ServerEntry{
		Hostname: host,
		Port:     model.PortPtr(fields.Port),
		Label:    fields.Label,
	}, nil
}
