package panel

import (
	"context"
	"testing"

	"serverpanel/internal/model"
	"serverpanel/internal/store"
)

type fakeNode struct {
	handle NodeHandle
	id     string
	host   string
	label  string
}

// fakeWidget behaves like a simple DOM tree view: detaching a selected node deselects it.
type fakeWidget struct {
	next     NodeHandle
	nodes    []*fakeNode
	selected []NodeHandle
	events   WidgetEvents
	moves    int
}

func (w *fakeWidget) Append(id, host, label string) NodeHandle {
	w.next++
	w.nodes = append(w.nodes, &fakeNode{handle: w.next, id: id, host: host, label: label})
	return w.next
}

func (w *fakeWidget) SetText(h NodeHandle, host, label string) {
	if n := w.node(h); n != nil {
		n.host = host
		n.label = label
	}
}

func (w *fakeWidget) Detach(h NodeHandle) {
	for i, n := range w.nodes {
		if n.handle == h {
			w.nodes = append(w.nodes[:i], w.nodes[i+1:]...)
			break
		}
	}
	keep := []NodeHandle{}
	for _, s := range w.selected {
		if s != h {
			keep = append(keep, s)
		}
	}
	if len(keep) != len(w.selected) {
		w.selected = keep
		w.events.SelectionChanged(append([]NodeHandle{}, keep...))
	}
}

func (w *fakeWidget) Move(h NodeHandle, index int) {
	w.moves++
	var moved *fakeNode
	for i, n := range w.nodes {
		if n.handle == h {
			moved = n
			w.nodes = append(w.nodes[:i], w.nodes[i+1:]...)
			break
		}
	}
	if moved == nil {
		return
	}
	if index > len(w.nodes) {
		index = len(w.nodes)
	}
	w.nodes = append(w.nodes[:index], append([]*fakeNode{moved}, w.nodes[index:]...)...)
}

func (w *fakeWidget) Bind(ev WidgetEvents) { w.events = ev }

func (w *fakeWidget) node(h NodeHandle) *fakeNode {
	for _, n := range w.nodes {
		if n.handle == h {
			return n
		}
	}
	return nil
}

// nodeByTag looks a node up by its id tag; only tests do this.
func (w *fakeWidget) nodeByTag(id string) *fakeNode {
	for _, n := range w.nodes {
		if n.id == id {
			return n
		}
	}
	return nil
}

func (w *fakeWidget) tags() []string {
	out := []string{}
	for _, n := range w.nodes {
		out = append(out, n.id)
	}
	return out
}

func (w *fakeWidget) selectTags(ids ...string) {
	w.selected = []NodeHandle{}
	for _, id := range ids {
		if n := w.nodeByTag(id); n != nil {
			w.selected = append(w.selected, n.handle)
		}
	}
	w.events.SelectionChanged(append([]NodeHandle{}, w.selected...))
}

type fakeDialogs struct {
	prompts     []string
	formOpts    ServerDialogOptions
	confirmOpts ConfirmOptions
	form        func(FormResult)
	confirm     func(ConfirmResult)
}

func (d *fakeDialogs) PromptServer(prompt string, opts ServerDialogOptions, done func(FormResult)) {
	d.prompts = append(d.prompts, prompt)
	d.formOpts = opts
	d.form = done
}

func (d *fakeDialogs) Confirm(prompt string, opts ConfirmOptions, done func(ConfirmResult)) {
	d.prompts = append(d.prompts, prompt)
	d.confirmOpts = opts
	d.confirm = done
}

func (d *fakeDialogs) submit(t *testing.T, f ServerFields) {
	t.Helper()
	if d.form == nil {
		t.Fatalf("no form dialog open")
	}
	done := d.form
	d.form = nil
	done(Submitted(f))
}

func (d *fakeDialogs) dismiss(t *testing.T) {
	t.Helper()
	if d.form == nil {
		t.Fatalf("no form dialog open")
	}
	done := d.form
	d.form = nil
	done(Dismissed())
}

func (d *fakeDialogs) answer(t *testing.T, yes bool) {
	t.Helper()
	if d.confirm == nil {
		t.Fatalf("no confirm dialog open")
	}
	done := d.confirm
	d.confirm = nil
	if yes {
		done(Confirmed())
	} else {
		done(Declined())
	}
}

type harness struct {
	ctrl     *Controller
	backend  *store.MemoryBackend
	widget   *fakeWidget
	dialogs  *fakeDialogs
	opened   []model.ServerEntry
	persists []int
	outcomes []Outcome
}

func newHarness(t *testing.T, seed ...model.ServerEntry) *harness {
	t.Helper()
	h := &harness{
		backend: store.NewMemoryBackend(seed...),
		widget:  &fakeWidget{},
		dialogs: &fakeDialogs{},
	}
	nav := NavigatorFunc(func(e model.ServerEntry) { h.opened = append(h.opened, e) })
	h.ctrl = New(store.NewEntryStore(h.backend), h.widget, h.dialogs, nav)
	h.ctrl.Flow().OnPersist(func(seq int) { h.persists = append(h.persists, seq) })
	h.ctrl.Flow().OnSettled(func(o Outcome) { h.outcomes = append(h.outcomes, o) })
	if err := h.ctrl.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return h
}

func (h *harness) mustConsistent(t *testing.T) {
	t.Helper()
	if err := h.ctrl.CheckConsistency(); err != nil {
		t.Fatalf("%v", err)
	}
	if got, want := h.widget.tags(), h.ctrl.Store().IDs(); !sameIDs(got, want) {
		t.Fatalf("widget nodes %v, store ids %v", got, want)
	}
}

func (h *harness) lastOutcome(t *testing.T) Outcome {
	t.Helper()
	if len(h.outcomes) == 0 {
		t.Fatalf("no outcome recorded")
	}
	return h.outcomes[len(h.outcomes)-1]
}

func (h *harness) flush(t *testing.T) {
	t.Helper()
	if len(h.persists) == 0 {
		return
	}
	if _, err := h.ctrl.Store().Flush(context.Background(), h.persists[len(h.persists)-1]); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

func homeEntry() model.ServerEntry {
	return model.ServerEntry{ID: "0", Hostname: "10.0.0.1", Port: model.PortPtr("4237"), Label: "Home"}
}
