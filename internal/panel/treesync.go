package panel

import (
	"fmt"

	"serverpanel/internal/model"
	"serverpanel/internal/store"

	"github.com/golang/glog"
)

// TreeSync projects the entry store onto the widget: one node per entry, keyed by id.
//
// Identity lives in TreeSync's own id→handle map; it is never read back from the widget.
type TreeSync struct {
	widget Widget

	byID     map[string]NodeHandle
	byHandle map[NodeHandle]string
	order    []string
}

func NewTreeSync(w Widget) *TreeSync {
	return &TreeSync{
		widget:   w,
		byID:     map[string]NodeHandle{},
		byHandle: map[NodeHandle]string{},
	}
}

// CreateNode appends a node showing hostname[:port] and label for entry.
func (t *TreeSync) CreateNode(entry model.ServerEntry) (NodeHandle, error) {
	if _, ok := t.byID[entry.ID]; ok {
		return 0, fmt.Errorf("%w: %s", ErrNodeExists, entry.ID)
	}
	h := t.widget.Append(entry.ID, entry.Host(), entry.Label)
	t.byID[entry.ID] = h
	t.byHandle[h] = entry.ID
	t.order = append(t.order, entry.ID)
	return h, nil
}

// UpdateNode re-renders the host and label text of the node for id.
func (t *TreeSync) UpdateNode(id string, entry model.ServerEntry) error {
	h, ok := t.byID[id]
	if !ok {
		return nodeNotFound(id)
	}
	t.widget.SetText(h, entry.Host(), entry.Label)
	return nil
}

// RemoveNode detaches the node for id and forgets it.
func (t *TreeSync) RemoveNode(id string) error {
	h, ok := t.byID[id]
	if !ok {
		return nodeNotFound(id)
	}
	delete(t.byID, id)
	delete(t.byHandle, h)
	for i := range t.order {
		if t.order[i] == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	t.widget.Detach(h)
	return nil
}

// ApplyReorder moves the existing nodes into the given order. Nodes are never recreated, so
// transient widget state on them survives. A payload that is not a permutation of the current
// node ids leaves the widget untouched.
func (t *TreeSync) ApplyReorder(ids []string) error {
	if err := store.ValidatePermutation(t.order, ids); err != nil {
		return err
	}
	for i, id := range ids {
		t.widget.Move(t.byID[id], i)
	}
	t.order = append([]string(nil), ids...)
	return nil
}

// OnDrop is the widget's drop callback. Reordering by drag is not supported yet: every drop is
// refused and nothing changes. A future implementation must go through EntryStore.Reorder and
// then ApplyReorder, never move widget nodes on its own.
func (t *TreeSync) OnDrop(p DropProposal) bool {
	if glog.V(1) {
		glog.Infof("tree: refused drop of %v %s %s", t.idsFor(p.Dragged), p.Placement, t.byHandle[p.Target])
	}
	return false
}

func (t *TreeSync) idsFor(hs []NodeHandle) []string {
	out := make([]string, 0, len(hs))
	for _, h := range hs {
		if id, ok := t.byHandle[h]; ok {
			out = append(out, id)
		}
	}
	return out
}

// Handle returns the node handle for id.
func (t *TreeSync) Handle(id string) (NodeHandle, bool) {
	h, ok := t.byID[id]
	return h, ok
}

// IDForHandle returns the id a node was created for.
func (t *TreeSync) IDForHandle(h NodeHandle) (string, bool) {
	id, ok := t.byHandle[h]
	return id, ok
}

// IDs returns node ids in widget order.
func (t *TreeSync) IDs() []string { return append([]string(nil), t.order...) }

func (t *TreeSync) Len() int { return len(t.order) }
