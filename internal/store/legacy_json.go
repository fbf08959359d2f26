package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"serverpanel/internal/model"
)

// legacyFile is the settings layout written by older clients:
// {"favoriteServers": [{"id": "0", "hostname": "...", "port": "4237", "label": "..."}]}.
// A bare array of entries is accepted too.
type legacyFile struct {
	FavoriteServers []legacyEntry `json:"favoriteServers"`
}

type legacyEntry struct {
	ID       json.RawMessage `json:"id"`
	Hostname string          `json:"hostname"`
	Port     json.RawMessage `json:"port"`
	Label    string          `json:"label"`
}

// ParseLegacyServers decodes a legacy servers.json payload.
//
// Ids and ports may be strings or numbers; null or missing ports mean the default port.
// Entries with duplicate or missing ids keep their position but lose the id, so EntryStore.Load
// assigns a fresh one.
func ParseLegacyServers(b []byte) ([]model.ServerEntry, error) {
	b = bytes.TrimSpace(b)
	var raw []legacyEntry
	if len(b) > 0 && b[0] == '[' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return nil, fmt.Errorf("parse legacy servers: %w", err)
		}
	} else {
		var f legacyFile
		if err := json.Unmarshal(b, &f); err != nil {
			return nil, fmt.Errorf("parse legacy servers: %w", err)
		}
		raw = f.FavoriteServers
	}

	out := make([]model.ServerEntry, 0, len(raw))
	seen := map[string]bool{}
	for i, r := range raw {
		host := strings.TrimSpace(r.Hostname)
		if host == "" {
			return nil, fmt.Errorf("parse legacy servers: entry %d: %w", i, ErrInvalidEntry)
		}
		id, err := scalarString(r.ID)
		if err != nil {
			return nil, fmt.Errorf("parse legacy servers: entry %d id: %w", i, err)
		}
		if seen[id] {
			id = ""
		}
		if id != "" {
			seen[id] = true
		}
		port, err := scalarString(r.Port)
		if err != nil {
			return nil, fmt.Errorf("parse legacy servers: entry %d port: %w", i, err)
		}
		out = append(out, model.ServerEntry{
			ID:       id,
			Hostname: host,
			Port:     model.PortPtr(port),
			Label:    r.Label,
		})
	}
	return out, nil
}

func scalarString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	if !IsNumericID(n.String()) {
		return "", fmt.Errorf("not an integer: %s", n)
	}
	return n.String(), nil
}

type exportFile struct {
	FavoriteServers []model.ServerEntry `json:"favoriteServers"`
}

// MarshalLegacyServers encodes entries in the layout ParseLegacyServers reads, in panel order.
func MarshalLegacyServers(entries []model.ServerEntry) ([]byte, error) {
	if entries == nil {
		entries = []model.ServerEntry{}
	}
	b, err := json.MarshalIndent(exportFile{FavoriteServers: entries}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// WriteLegacyServers writes entries to path. An existing file is only replaced when overwrite is set.
func WriteLegacyServers(path string, entries []model.ServerEntry, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	b, err := MarshalLegacyServers(entries)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return atomicWriteFile(dir, ".servers-*.json", path, b, 0o644)
}
