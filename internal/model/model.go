package model

import "strings"

// ServerEntry is one favorite server.
//
// ID is assigned once (see store.NextID) and never changes; it is the join key between the
// entry store and the tree widget.
type ServerEntry struct {
	ID       string  `json:"id"`
	Hostname string  `json:"hostname"`
	Port     *string `json:"port,omitempty"` // nil => default port
	Label    string  `json:"label"`
}

// ServerPatch carries the editable fields of an entry. It never carries an id.
type ServerPatch struct {
	Hostname string
	Port     *string
	Label    string
}

// Host returns the display text for the host sub-field: hostname or hostname:port.
func (e ServerEntry) Host() string {
	if e.Port == nil {
		return e.Hostname
	}
	return e.Hostname + ":" + *e.Port
}

// PortValue returns the port, or "" when the default port is used.
func (e ServerEntry) PortValue() string {
	if e.Port == nil {
		return ""
	}
	return *e.Port
}

// Clone returns a copy that shares no pointers with e.
func (e ServerEntry) Clone() ServerEntry {
	out := e
	if e.Port != nil {
		p := *e.Port
		out.Port = &p
	}
	return out
}

// Patch returns the editable fields of e.
func (e ServerEntry) Patch() ServerPatch {
	c := e.Clone()
	return ServerPatch{Hostname: c.Hostname, Port: c.Port, Label: c.Label}
}

// Apply copies the patch fields onto e. The id is left untouched.
func (e *ServerEntry) Apply(p ServerPatch) {
	e.Hostname = p.Hostname
	e.Label = p.Label
	e.Port = nil
	if p.Port != nil {
		v := *p.Port
		e.Port = &v
	}
}

// PortPtr normalizes user input: blank means "default port" (nil).
func PortPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
