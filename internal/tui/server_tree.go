package tui

import (
	"serverpanel/internal/panel"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type serverItem struct {
	handle panel.NodeHandle
	id     string
	host   string
	label  string
}

func (it serverItem) FilterValue() string { return it.host + " " + it.label }

// treeWidget is the panel.Widget of the terminal panel: a flat bubbles list of server rows.
//
// The row under the cursor is the primary selection; rows marked with space join it. Esc
// clears both until the cursor moves again.
type treeWidget struct {
	list   list.Model
	items  []serverItem
	next   panel.NodeHandle
	marks  []panel.NodeHandle
	clear  bool
	events panel.WidgetEvents

	reported []panel.NodeHandle
}

func newTreeWidget() *treeWidget {
	w := &treeWidget{}
	w.list = newList(serverItemDelegate{marked: w.isMarked})
	return w
}

func newList(delegate list.ItemDelegate) list.Model {
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Favorite servers"
	// The app renders its own header and footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	// Handles index rows directly; filtering would remap them.
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("server", "servers")
	// q/esc are handled by the app.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)
	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)
	return l
}

func (w *treeWidget) Bind(events panel.WidgetEvents) { w.events = events }

func (w *treeWidget) Append(id, host, label string) panel.NodeHandle {
	w.next++
	w.items = append(w.items, serverItem{handle: w.next, id: id, host: host, label: label})
	w.refresh()
	return w.next
}

func (w *treeWidget) SetText(h panel.NodeHandle, host, label string) {
	if i := w.indexOf(h); i >= 0 {
		w.items[i].host = host
		w.items[i].label = label
		w.refresh()
	}
}

// Detach removes the row; a selected row is deselected and the change is reported.
func (w *treeWidget) Detach(h panel.NodeHandle) {
	i := w.indexOf(h)
	if i < 0 {
		return
	}
	w.items = append(w.items[:i], w.items[i+1:]...)
	w.unmark(h)
	w.refresh()
	w.sync()
}

func (w *treeWidget) Move(h panel.NodeHandle, index int) {
	i := w.indexOf(h)
	if i < 0 {
		return
	}
	cursor, hasCursor := w.cursorHandle()

	it := w.items[i]
	w.items = append(w.items[:i], w.items[i+1:]...)
	if index < 0 {
		index = 0
	}
	if index > len(w.items) {
		index = len(w.items)
	}
	w.items = append(w.items[:index], append([]serverItem{it}, w.items[index:]...)...)
	w.refresh()
	if hasCursor {
		w.list.Select(w.indexOf(cursor))
	}
}

func (w *treeWidget) indexOf(h panel.NodeHandle) int {
	for i := range w.items {
		if w.items[i].handle == h {
			return i
		}
	}
	return -1
}

func (w *treeWidget) refresh() {
	items := make([]list.Item, 0, len(w.items))
	for _, it := range w.items {
		items = append(items, it)
	}
	_ = w.list.SetItems(items)
	if n := len(w.items); n > 0 && w.list.Index() >= n {
		w.list.Select(n - 1)
	}
}

// selectID moves the cursor to the row of id.
func (w *treeWidget) selectID(id string) bool {
	for i, it := range w.items {
		if it.id == id {
			w.list.Select(i)
			w.clear = false
			return true
		}
	}
	return false
}

func (w *treeWidget) cursorID() string {
	if it, ok := w.list.SelectedItem().(serverItem); ok {
		return it.id
	}
	return ""
}

func (w *treeWidget) cursorHandle() (panel.NodeHandle, bool) {
	if it, ok := w.list.SelectedItem().(serverItem); ok {
		return it.handle, true
	}
	return 0, false
}

func (w *treeWidget) isMarked(it serverItem) bool {
	for _, h := range w.marks {
		if h == it.handle {
			return true
		}
	}
	return false
}

func (w *treeWidget) unmark(h panel.NodeHandle) {
	for i, m := range w.marks {
		if m == h {
			w.marks = append(w.marks[:i], w.marks[i+1:]...)
			return
		}
	}
}

func (w *treeWidget) toggleMark() {
	h, ok := w.cursorHandle()
	if !ok {
		return
	}
	w.clear = false
	if w.isMarked(serverItem{handle: h}) {
		w.unmark(h)
	} else {
		w.marks = append(w.marks, h)
	}
}

func (w *treeWidget) clearSelection() {
	w.marks = nil
	w.clear = true
}

// selection returns the selected handles, primary first.
func (w *treeWidget) selection() []panel.NodeHandle {
	if w.clear {
		return nil
	}
	var out []panel.NodeHandle
	primary, ok := w.cursorHandle()
	if ok {
		out = append(out, primary)
	}
	for _, h := range w.marks {
		if !ok || h != primary {
			out = append(out, h)
		}
	}
	return out
}

// sync reports the selection if it differs from the last report.
func (w *treeWidget) sync() {
	sel := w.selection()
	if sameHandles(sel, w.reported) {
		return
	}
	w.reported = sel
	if w.events.SelectionChanged != nil {
		w.events.SelectionChanged(append([]panel.NodeHandle(nil), sel...))
	}
}

// proposeMove asks whether the selection may move one row up (delta<0) or down. The answer
// comes from the panel; the widget never moves rows on its own.
func (w *treeWidget) proposeMove(delta int) (proposed, accepted bool) {
	sel := w.selection()
	if len(sel) == 0 {
		return false, false
	}
	i := w.indexOf(sel[0]) + delta
	if i < 0 || i >= len(w.items) {
		return false, false
	}
	p := panel.DropProposal{Dragged: sel, Target: w.items[i].handle, Placement: panel.PlaceAfter}
	if delta < 0 {
		p.Placement = panel.PlaceBefore
	}
	if w.events.Drop == nil {
		return true, false
	}
	return true, w.events.Drop(p)
}

func (w *treeWidget) activate() {
	if w.events.Activated != nil {
		w.events.Activated()
	}
}

// update passes navigation keys to the list and reports the resulting selection.
func (w *treeWidget) update(msg tea.Msg) tea.Cmd {
	before := w.list.Index()
	var cmd tea.Cmd
	w.list, cmd = w.list.Update(msg)
	if w.list.Index() != before {
		w.clear = false
	}
	w.sync()
	return cmd
}

func (w *treeWidget) setSize(width, height int) { w.list.SetSize(width, height) }

func (w *treeWidget) view() string { return w.list.View() }

func (w *treeWidget) count() int { return len(w.items) }

func sameHandles(a, b []panel.NodeHandle) bool {
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
