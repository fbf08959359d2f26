package store

import (
	"math/big"
	"strings"

	"serverpanel/internal/model"
)

// NextID returns a fresh id strictly greater than every numeric id in entries.
//
// Ids are read as base-10 integers of any size; ids that do not parse are skipped, not
// converted. The result depends only on entries, so the caller must Add the new entry before
// asking for another id.
func NextID(entries []model.ServerEntry) string {
	next := big.NewInt(0)
	for _, e := range entries {
		n, ok := parseNumericID(e.ID)
		if !ok {
			continue
		}
		if n.Cmp(next) >= 0 {
			next.Add(n, big.NewInt(1))
		}
	}
	return next.String()
}

// IsNumericID reports whether id counts toward NextID.
func IsNumericID(id string) bool {
	_, ok := parseNumericID(id)
	return ok
}

func parseNumericID(id string) (*big.Int, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, false
	}
	return new(big.Int).SetString(id, 10)
}

// AssignMissingIDs gives every entry with a blank id a fresh one, keeping positions.
// It returns how many ids were assigned.
func AssignMissingIDs(entries []model.ServerEntry) int {
	n := 0
	for i := range entries {
		if strings.TrimSpace(entries[i].ID) != "" {
			continue
		}
		entries[i].ID = NextID(entries)
		n++
	}
	return n
}
