// Package panel keeps the favorite-server store, the tree widget and the edit dialogs in sync.
//
// Everything here runs on one event loop (the TUI's Update). Dialogs are continuations: the
// flow hands a callback to the dialog and the dialog invokes it once the user answers.
package panel

import "serverpanel/internal/model"

// NodeHandle is an opaque reference to a widget node. Only TreeSync maps handles to ids.
type NodeHandle uint64

type Placement int

const (
	PlaceBefore Placement = iota
	PlaceAfter
	PlaceInside
)

func (p Placement) String() string {
	switch p {
	case PlaceBefore:
		return "before"
	case PlaceAfter:
		return "after"
	case PlaceInside:
		return "inside"
	default:
		return "unknown"
	}
}

// DropProposal is what the widget reports when the user drags nodes onto a target.
type DropProposal struct {
	Dragged   []NodeHandle
	Target    NodeHandle
	Placement Placement
}

// WidgetEvents are the callbacks a widget reports user interaction through.
type WidgetEvents struct {
	// SelectionChanged receives the selected nodes, primary first.
	SelectionChanged func(selected []NodeHandle)
	Activated        func()
	// Drop returns whether the widget may apply the move.
	Drop func(DropProposal) bool
}

// Widget is the tree widget collaborator. It renders nodes; it never owns entries.
type Widget interface {
	Append(id, host, label string) NodeHandle
	SetText(h NodeHandle, host, label string)
	Detach(h NodeHandle)
	Move(h NodeHandle, index int)
	Bind(events WidgetEvents)
}

// ServerDialogOptions pre-fill the add/edit dialog.
type ServerDialogOptions struct {
	ValidationLabel string
	InitialHostname string
	InitialPort     string
	InitialLabel    string
}

// ServerFields is what the add/edit dialog collects. A blank Port means the default port.
type ServerFields struct {
	Hostname string
	Port     string
	Label    string
}

// FormResult is the answer of an add/edit dialog: either submitted fields or dismissed.
type FormResult struct {
	fields    ServerFields
	submitted bool
}

func Submitted(f ServerFields) FormResult { return FormResult{fields: f, submitted: true} }

func Dismissed() FormResult { return FormResult{} }

// Fields returns the submitted fields; ok is false when the dialog was dismissed.
func (r FormResult) Fields() (f ServerFields, ok bool) { return r.fields, r.submitted }

type ConfirmOptions struct {
	ValidationLabel string
}

// ConfirmResult is the answer of a yes/no dialog.
type ConfirmResult struct {
	confirmed bool
}

func Confirmed() ConfirmResult { return ConfirmResult{confirmed: true} }

func Declined() ConfirmResult { return ConfirmResult{} }

func (r ConfirmResult) OK() bool { return r.confirmed }

// Dialogs is the modal dialog collaborator. Each call must invoke done exactly once.
type Dialogs interface {
	PromptServer(prompt string, opts ServerDialogOptions, done func(FormResult))
	Confirm(prompt string, opts ConfirmOptions, done func(ConfirmResult))
}

// Navigator opens a server chosen by activation.
type Navigator interface {
	OpenServer(entry model.ServerEntry)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(model.ServerEntry)

func (f NavigatorFunc) OpenServer(entry model.ServerEntry) { f(entry) }
