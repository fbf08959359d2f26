package model

import "testing"

func TestServerEntry_Host(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		entry ServerEntry
		want  string
	}{
		{name: "default port", entry: ServerEntry{Hostname: "10.0.0.1"}, want: "10.0.0.1"},
		{name: "explicit port", entry: ServerEntry{Hostname: "10.0.0.1", Port: PortPtr("4237")}, want: "10.0.0.1:4237"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.Host(); got != tt.want {
				t.Fatalf("Host() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestServerEntry_ApplyKeepsID(t *testing.T) {
	t.Parallel()

	e := ServerEntry{ID: "3", Hostname: "a", Port: PortPtr("1"), Label: "x"}
	e.Apply(ServerPatch{Hostname: "b", Label: "y"})
	if e.ID != "3" {
		t.Fatalf("expected id to stay 3, got %q", e.ID)
	}
	if e.Hostname != "b" || e.Label != "y" || e.Port != nil {
		t.Fatalf("unexpected entry after apply: %#v", e)
	}
}

func TestServerEntry_CloneDoesNotAliasPort(t *testing.T) {
	t.Parallel()

	e := ServerEntry{ID: "0", Hostname: "h", Port: PortPtr("22")}
	c := e.Clone()
	*c.Port = "2222"
	if e.PortValue() != "22" {
		t.Fatalf("clone aliased port: %q", e.PortValue())
	}
}

func TestPortPtr_BlankIsDefault(t *testing.T) {
	t.Parallel()

	if PortPtr("  ") != nil {
		t.Fatalf("expected blank port to be nil")
	}
	if p := PortPtr(" 80 "); p == nil || *p != "80" {
		t.Fatalf("expected trimmed port 80, got %v", p)
	}
}
