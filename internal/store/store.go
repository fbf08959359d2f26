package store

import (
	"context"
	"os"
	"path/filepath"

	"serverpanel/internal/model"
)

const (
	sqliteFileName     = "servers.sqlite"
	legacyJSONFileName = "servers.json"
)

// Backend is the persistence collaborator behind an EntryStore.
type Backend interface {
	LoadServers(ctx context.Context) ([]model.ServerEntry, error)
	SaveServers(ctx context.Context, entries []model.ServerEntry) error
}

// Store is the on-disk backend: a SQLite file inside Dir.
type Store struct {
	Dir string
}

var _ Backend = Store{}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func (s Store) legacyJSONPath() string {
	return filepath.Join(s.Dir, legacyJSONFileName)
}

// MemoryBackend keeps the persisted collection in memory. Saves counts SaveServers calls.
type MemoryBackend struct {
	Servers []model.ServerEntry
	Saves   int

	// SaveErr, when set, is returned by SaveServers.
	SaveErr error
}

var _ Backend = (*MemoryBackend)(nil)

func NewMemoryBackend(entries ...model.ServerEntry) *MemoryBackend {
	return &MemoryBackend{Servers: cloneEntries(entries)}
}

func (m *MemoryBackend) LoadServers(context.Context) ([]model.ServerEntry, error) {
	return cloneEntries(m.Servers), nil
}

func (m *MemoryBackend) SaveServers(_ context.Context, entries []model.ServerEntry) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saves++
	m.Servers = cloneEntries(entries)
	return nil
}

func cloneEntries(in []model.ServerEntry) []model.ServerEntry {
	out := make([]model.ServerEntry, 0, len(in))
	for _, e := range in {
		out = append(out, e.Clone())
	}
	return out
}
