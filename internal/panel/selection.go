package panel

import (
	"serverpanel/internal/model"
	"serverpanel/internal/store"

	"github.com/golang/glog"
)

// SelectionController mirrors the widget's selection as entry ids and routes activation.
//
// Edit and remove act on the first selected id only.
type SelectionController struct {
	store *store.EntryStore
	tree  *TreeSync

	current []string

	changeListeners   []func([]string)
	activateListeners []func(model.ServerEntry)
}

func NewSelectionController(st *store.EntryStore, tree *TreeSync) *SelectionController {
	return &SelectionController{store: st, tree: tree}
}

// Current returns the selected ids, primary first. Empty means nothing is selected.
func (c *SelectionController) Current() []string {
	return append([]string{}, c.current...)
}

// Primary returns the first selected id.
func (c *SelectionController) Primary() (string, bool) {
	if len(c.current) == 0 {
		return "", false
	}
	return c.current[0], true
}

// ActionsEnabled reports whether edit/remove may run.
func (c *SelectionController) ActionsEnabled() bool { return len(c.current) > 0 }

// OnSelectionChange registers fn to run whenever the selected set changes.
func (c *SelectionController) OnSelectionChange(fn func(selected []string)) {
	c.changeListeners = append(c.changeListeners, fn)
}

// OnActivate registers fn to receive the entry the user activates.
func (c *SelectionController) OnActivate(fn func(entry model.ServerEntry)) {
	c.activateListeners = append(c.activateListeners, fn)
}

// handleSelection is bound to the widget's selection event.
func (c *SelectionController) handleSelection(handles []NodeHandle) {
	ids := make([]string, 0, len(handles))
	seen := map[string]bool{}
	for _, h := range handles {
		id, ok := c.tree.IDForHandle(h)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	c.set(ids)
}

// Prune drops selected ids that no longer have a node. Called after removals and when an
// operation finds its selection stale.
func (c *SelectionController) Prune() {
	keep := make([]string, 0, len(c.current))
	for _, id := range c.current {
		if _, ok := c.tree.Handle(id); ok {
			keep = append(keep, id)
		}
	}
	c.set(keep)
}

func (c *SelectionController) set(ids []string) {
	if sameIDs(c.current, ids) {
		return
	}
	c.current = ids
	for _, fn := range c.changeListeners {
		fn(c.Current())
	}
}

// Activate delivers the primary selected entry to the activation listeners. It does nothing
// when the selection is empty.
func (c *SelectionController) Activate() {
	id, ok := c.Primary()
	if !ok {
		return
	}
	entry, ok := c.store.Get(id)
	if !ok {
		glog.Warningf("selection: activated server %s is gone", id)
		c.Prune()
		return
	}
	for _, fn := range c.activateListeners {
		fn(entry)
	}
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
