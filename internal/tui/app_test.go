package tui

import (
	"context"
	"strings"
	"testing"

	"serverpanel/internal/model"
	"serverpanel/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func seedEntries() []model.ServerEntry {
	return []model.ServerEntry{
		{ID: "0", Hostname: "10.0.0.1", Port: model.PortPtr("4237"), Label: "Home"},
		{ID: "1", Hostname: "lab.local", Label: "Lab"},
	}
}

func newTestApp(t *testing.T, seed ...model.ServerEntry) (*appModel, *store.MemoryBackend) {
	t.Helper()
	t.Setenv("SERVERPANEL_CONFIG_DIR", t.TempDir())

	b := store.NewMemoryBackend(seed...)
	m, err := newAppModel(context.Background(), &store.GlobalConfig{}, store.NewEntryStore(b), "test")
	if err != nil {
		t.Fatalf("newAppModel: %v", err)
	}
	return m, b
}

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func press(t *testing.T, m *appModel, msgs ...tea.Msg) {
	t.Helper()
	for _, msg := range msgs {
		mm, _ := m.Update(msg)
		if mm.(*appModel) != m {
			t.Fatalf("expected Update to keep the same model")
		}
	}
}

func TestApp_StartsWithCursorRowSelected(t *testing.T) {
	m, _ := newTestApp(t, seedEntries()...)

	if got := m.ctrl.Selection().Current(); len(got) != 1 || got[0] != "0" {
		t.Fatalf("expected selection [0], got %v", got)
	}
	if !m.keys.Edit.Enabled() || !m.keys.Remove.Enabled() {
		t.Fatalf("expected edit/remove enabled with a selection")
	}
	view := m.View()
	if !strings.Contains(view, "10.0.0.1:4237") || !strings.Contains(view, "lab.local") {
		t.Fatalf("expected both servers in view, got:\n%s", view)
	}
}

func TestApp_EmptyStoreDisablesEditAndRemove(t *testing.T) {
	m, _ := newTestApp(t)

	if !m.keys.Add.Enabled() {
		t.Fatalf("expected add enabled after start")
	}
	if m.keys.Edit.Enabled() || m.keys.Remove.Enabled() {
		t.Fatalf("expected edit/remove disabled without a selection")
	}
	if !strings.Contains(m.View(), "No favorite servers yet") {
		t.Fatalf("expected empty hint in view")
	}
}

func TestApp_AddWithDefaultsThenDebouncedSave(t *testing.T) {
	m, b := newTestApp(t, seedEntries()...)

	press(t, m, keyRunes("a"))
	if !m.dialogs.open() || m.dialogs.form == nil {
		t.Fatalf("expected add dialog to open")
	}
	if got := m.dialogs.form.fields(); got.Hostname != "127.0.0.1" || got.Port != "4237" {
		t.Fatalf("expected add defaults, got %#v", got)
	}
	if !strings.Contains(m.View(), "Enter the server details") {
		t.Fatalf("expected add prompt in view")
	}

	press(t, m, keyEnter)
	if m.dialogs.open() {
		t.Fatalf("expected dialog closed after submit")
	}
	e, ok := m.ctrl.Entry("2")
	if !ok || e.Host() != "127.0.0.1:4237" {
		t.Fatalf("expected new entry 2 with defaults, got %#v ok=%v", e, ok)
	}
	if b.Saves != 0 {
		t.Fatalf("expected no save before the debounce fires, got %d", b.Saves)
	}

	press(t, m, saveMsg{seq: 1})
	if b.Saves != 1 || len(b.Servers) != 3 {
		t.Fatalf("expected one save of 3 servers, got saves=%d servers=%d", b.Saves, len(b.Servers))
	}
}

func TestApp_StaleSaveSeqIsCoalesced(t *testing.T) {
	m, b := newTestApp(t)

	press(t, m, keyRunes("a"), keyEnter, keyRunes("a"), keyEnter)
	if m.ctrl.Store().Len() != 2 {
		t.Fatalf("expected 2 servers, got %d", m.ctrl.Store().Len())
	}

	press(t, m, saveMsg{seq: 1})
	if b.Saves != 0 {
		t.Fatalf("expected stale seq to be ignored, got %d saves", b.Saves)
	}
	press(t, m, saveMsg{seq: 2})
	if b.Saves != 1 {
		t.Fatalf("expected exactly one save, got %d", b.Saves)
	}
}

func TestApp_EditChangesLabelOfCursorRow(t *testing.T) {
	m, _ := newTestApp(t, seedEntries()...)

	press(t, m, keyDown, keyRunes("e"))
	if m.dialogs.form == nil {
		t.Fatalf("expected edit dialog to open")
	}
	if got := m.dialogs.form.fields(); got.Hostname != "lab.local" || got.Label != "Lab" {
		t.Fatalf("expected edit dialog pre-filled with entry 1, got %#v", got)
	}

	press(t, m, keyTab, keyTab, keyRunes("2"), keyEnter)
	e, _ := m.ctrl.Entry("1")
	if e.Label != "Lab2" {
		t.Fatalf("expected label Lab2, got %q", e.Label)
	}
	if !strings.Contains(m.View(), "Lab2") {
		t.Fatalf("expected updated label in view")
	}
}

func TestApp_EscDismissesFormWithoutChanges(t *testing.T) {
	m, b := newTestApp(t, seedEntries()...)

	press(t, m, keyRunes("e"), keyRunes("zzz"), keyEsc)
	if m.dialogs.open() {
		t.Fatalf("expected dialog closed")
	}
	e, _ := m.ctrl.Entry("0")
	if e.Hostname != "10.0.0.1" {
		t.Fatalf("expected unchanged hostname, got %q", e.Hostname)
	}
	if len(m.pendingSaves) != 0 || m.ctrl.Store().Dirty() || b.Saves != 0 {
		t.Fatalf("expected no save after cancel")
	}
}

func TestApp_BlankHostnameKeepsFormOpen(t *testing.T) {
	m, _ := newTestApp(t)

	press(t, m, keyRunes("a"), tea.KeyMsg{Type: tea.KeyCtrlU}, keyTab, keyTab, keyRunes("Lab"), keyEnter)
	if m.dialogs.form == nil {
		t.Fatalf("expected the form to stay open for a blank hostname")
	}
	if m.ctrl.Store().Len() != 0 {
		t.Fatalf("expected no entry for blank hostname")
	}
	if !strings.Contains(m.View(), "a hostname is required") {
		t.Fatalf("expected inline hostname error in view:\n%s", m.View())
	}
	if got := m.dialogs.form.fields().Label; got != "Lab" {
		t.Fatalf("expected typed label kept, got %q", got)
	}

	press(t, m, keyRunes("h"), keyEnter)
	if m.dialogs.form != nil {
		t.Fatalf("expected the form to close after a valid submit")
	}
	e, ok := m.ctrl.Entry("0")
	if !ok || e.Hostname != "h" || e.Label != "Lab" {
		t.Fatalf("unexpected entry %#v", e)
	}
}

func TestApp_AddIntoEmptyListSelectsNewRow(t *testing.T) {
	m, _ := newTestApp(t)

	press(t, m, keyRunes("a"), keyEnter)
	if got := m.ctrl.Selection().Current(); len(got) != 1 || got[0] != "0" {
		t.Fatalf("expected selection [0], got %v", got)
	}
	if !m.keys.Edit.Enabled() || !m.keys.Remove.Enabled() {
		t.Fatalf("expected edit/remove enabled after the first add")
	}

	press(t, m, keyRunes("e"))
	if m.dialogs.form == nil {
		t.Fatalf("expected the first e to open the edit form")
	}
}

func TestApp_RemoveAsksForConfirmation(t *testing.T) {
	m, _ := newTestApp(t, seedEntries()...)

	press(t, m, keyRunes("d"))
	if m.dialogs.confirm == nil {
		t.Fatalf("expected confirm dialog")
	}
	if !strings.Contains(m.View(), "Are you sure you want to remove the server?") {
		t.Fatalf("expected confirm prompt in view")
	}
	// Focus starts on Cancel.
	press(t, m, keyEnter)
	if m.ctrl.Store().Len() != 2 {
		t.Fatalf("expected nothing removed on cancel")
	}

	press(t, m, keyRunes("d"), keyRunes("y"))
	if _, ok := m.ctrl.Entry("0"); ok {
		t.Fatalf("expected entry 0 removed")
	}
	if err := m.ctrl.CheckConsistency(); err != nil {
		t.Fatalf("inconsistent after remove: %v", err)
	}
	if got := m.ctrl.Selection().Current(); len(got) != 1 || got[0] != "1" {
		t.Fatalf("expected cursor to land on entry 1, got %v", got)
	}
}

func TestApp_RemoveLastEntryDisablesActions(t *testing.T) {
	m, _ := newTestApp(t, seedEntries()[0])

	press(t, m, keyRunes("d"), keyRunes("y"))
	if m.ctrl.Store().Len() != 0 || m.widget.count() != 0 {
		t.Fatalf("expected empty panel")
	}
	if m.keys.Edit.Enabled() || m.keys.Remove.Enabled() {
		t.Fatalf("expected edit/remove disabled")
	}
}

func TestApp_EscClearsSelection(t *testing.T) {
	m, _ := newTestApp(t, seedEntries()...)

	press(t, m, keyEsc)
	if got := m.ctrl.Selection().Current(); len(got) != 0 {
		t.Fatalf("expected empty selection, got %v", got)
	}
	press(t, m, keyRunes("e"))
	if m.dialogs.open() {
		t.Fatalf("expected edit to be a no-op without a selection")
	}

	press(t, m, keyDown)
	if got := m.ctrl.Selection().Current(); len(got) != 1 || got[0] != "1" {
		t.Fatalf("expected moving the cursor to select again, got %v", got)
	}
}

func TestApp_MarksExtendSelectionWithCursorFirst(t *testing.T) {
	m, _ := newTestApp(t, seedEntries()...)

	press(t, m, keySpace, keyDown)
	got := m.ctrl.Selection().Current()
	if len(got) != 2 || got[0] != "1" || got[1] != "0" {
		t.Fatalf("expected selection [1 0], got %v", got)
	}
}

func TestApp_MoveProposalIsRejected(t *testing.T) {
	m, _ := newTestApp(t, seedEntries()...)

	press(t, m, keyRunes("J"))
	if got := m.ctrl.Tree().IDs(); got[0] != "0" || got[1] != "1" {
		t.Fatalf("expected order unchanged, got %v", got)
	}
	if !strings.Contains(m.status, "cannot be dragged") {
		t.Fatalf("expected rejection status, got %q", m.status)
	}
}

func TestApp_EnterOpensSelectedServerAndQuits(t *testing.T) {
	m, b := newTestApp(t, seedEntries()...)

	press(t, m, keyRunes("a"), keyEnter, keyDown)
	press(t, m, keyEnter)
	if m.chosen == nil || m.chosen.ID != "1" {
		t.Fatalf("expected entry 1 chosen, got %#v", m.chosen)
	}
	if !m.quitting {
		t.Fatalf("expected the panel to quit after opening a server")
	}
	if b.Saves != 1 {
		t.Fatalf("expected pending add to be flushed on quit, got %d saves", b.Saves)
	}
}

func TestApp_QuitFlushesPendingSave(t *testing.T) {
	m, b := newTestApp(t)

	press(t, m, keyRunes("a"), keyEnter, keyRunes("q"))
	if !m.quitting || m.chosen != nil {
		t.Fatalf("expected plain quit")
	}
	if b.Saves != 1 || len(b.Servers) != 1 || b.Servers[0].ID != "0" {
		t.Fatalf("expected one save with entry 0, got saves=%d servers=%#v", b.Saves, b.Servers)
	}
}

func TestApp_BackfilledIDsAreSaved(t *testing.T) {
	m, b := newTestApp(t, model.ServerEntry{Hostname: "a"}, model.ServerEntry{ID: "4", Hostname: "b"})

	if len(m.pendingSaves) != 1 {
		t.Fatalf("expected one save scheduled for backfilled ids, got %v", m.pendingSaves)
	}
	press(t, m, saveMsg{seq: m.pendingSaves[0]})
	if b.Saves != 1 || b.Servers[0].ID != "5" {
		t.Fatalf("expected backfilled id 5 saved, got %#v", b.Servers)
	}
}

func TestTreeWidget_SelectIDRestoresCursor(t *testing.T) {
	m, _ := newTestApp(t, seedEntries()...)

	if !m.widget.selectID("1") {
		t.Fatalf("expected row for id 1")
	}
	m.widget.sync()
	if got := m.ctrl.Selection().Current(); len(got) != 1 || got[0] != "1" {
		t.Fatalf("expected selection [1], got %v", got)
	}
	if m.widget.cursorID() != "1" {
		t.Fatalf("expected cursor id 1, got %q", m.widget.cursorID())
	}
	if m.widget.selectID("missing") {
		t.Fatalf("expected no row for an unknown id")
	}
}
