package store

import (
	"testing"

	"serverpanel/internal/model"
)

func entriesWithIDs(ids ...string) []model.ServerEntry {
	out := make([]model.ServerEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.ServerEntry{ID: id, Hostname: "h-" + id})
	}
	return out
}

func TestNextID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ids  []string
		want string
	}{
		{name: "empty collection", ids: nil, want: "0"},
		{name: "gaps", ids: []string{"0", "2", "5"}, want: "6"},
		{name: "unordered", ids: []string{"7", "1"}, want: "8"},
		{name: "non-numeric ignored", ids: []string{"abc", "3", "x9"}, want: "4"},
		{name: "only non-numeric", ids: []string{"home"}, want: "0"},
		{name: "max int64", ids: []string{"9223372036854775807"}, want: "9223372036854775808"},
		{name: "max int64 and below", ids: []string{"9223372036854775806", "9223372036854775807"}, want: "9223372036854775808"},
		{name: "beyond int64", ids: []string{"3", "99999999999999999999"}, want: "100000000000000000000"},
		{name: "negative ids", ids: []string{"-5", "-1"}, want: "0"},
		{name: "leading zeros", ids: []string{"007"}, want: "8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextID(entriesWithIDs(tt.ids...)); got != tt.want {
				t.Fatalf("NextID(%v) = %q, want %q", tt.ids, got, tt.want)
			}
		})
	}
}

func TestNextID_DeterministicWithoutAdd(t *testing.T) {
	t.Parallel()

	entries := entriesWithIDs("0")
	a := NextID(entries)
	b := NextID(entries)
	if a != b {
		t.Fatalf("expected same id for same input, got %q and %q", a, b)
	}
}

func TestAssignMissingIDs_KeepsPositions(t *testing.T) {
	t.Parallel()

	entries := entriesWithIDs("", "4", "", "1")
	if n := AssignMissingIDs(entries); n != 2 {
		t.Fatalf("expected 2 assigned ids, got %d", n)
	}
	got := []string{entries[0].ID, entries[1].ID, entries[2].ID, entries[3].ID}
	want := []string{"5", "4", "6", "1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ids = %v, want %v", got, want)
		}
	}
}

func TestNextID_NeverReturnsAnIDInUse(t *testing.T) {
	t.Parallel()

	ids := []string{"9223372036854775806", "9223372036854775807", "18446744073709551615", "x", "0"}
	entries := entriesWithIDs(ids...)
	for i := 0; i < 3; i++ {
		id := NextID(entries)
		for _, e := range entries {
			if e.ID == id {
				t.Fatalf("NextID returned %q, already in use", id)
			}
		}
		entries = append(entries, model.ServerEntry{ID: id, Hostname: "h"})
	}
}

func TestIsNumericID(t *testing.T) {
	t.Parallel()

	for id, want := range map[string]bool{
		"0":                    true,
		"99999999999999999999": true,
		" 12 ":                 true,
		"":                     false,
		"web":                  false,
		"1.5":                  false,
		"0x10":                 false,
	} {
		if got := IsNumericID(id); got != want {
			t.Fatalf("IsNumericID(%q) = %v, want %v", id, got, want)
		}
	}
}
