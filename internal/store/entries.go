package store

import (
	"context"
	"strings"

	"serverpanel/internal/model"

	"github.com/golang/glog"
)

// EntryStore owns the authoritative ordered collection of favorite servers and its id index.
//
// All mutation goes through its methods so that persistence scheduling stays attached.
// It is not safe for concurrent use; the panel drives it from a single event loop.
type EntryStore struct {
	backend Backend

	entries []*model.ServerEntry
	byID    map[string]*model.ServerEntry

	// Persistence coalescing: every Persist bumps saveSeq; Flush only writes the latest one.
	saveSeq  int
	savedSeq int
	dirty    bool
}

func NewEntryStore(b Backend) *EntryStore {
	return &EntryStore{
		backend: b,
		byID:    map[string]*model.ServerEntry{},
	}
}

// Load replaces the in-memory collection with the persisted one, in stored order.
// A backend with no prior state yields an empty collection.
//
// Entries persisted without an id (hand-edited files) get one from NextID in place; that marks
// the store dirty so the backfill is written on the next flush.
func (s *EntryStore) Load(ctx context.Context) ([]model.ServerEntry, error) {
	loaded, err := s.backend.LoadServers(ctx)
	if err != nil {
		return nil, err
	}

	s.entries = make([]*model.ServerEntry, 0, len(loaded))
	s.byID = make(map[string]*model.ServerEntry, len(loaded))
	s.dirty = false

	entries := cloneEntries(loaded)
	for i := range entries {
		entries[i].ID = strings.TrimSpace(entries[i].ID)
	}
	if n := AssignMissingIDs(entries); n > 0 {
		s.dirty = true
		glog.Infof("store: assigned ids to %d servers without one", n)
	}
	for _, e := range entries {
		if _, ok := s.byID[e.ID]; ok {
			s.entries, s.byID = nil, map[string]*model.ServerEntry{}
			return nil, duplicateIDError{id: e.ID}
		}
		s.insert(e)
	}
	return s.Entries(), nil
}

func (s *EntryStore) insert(e model.ServerEntry) {
	p := &e
	s.entries = append(s.entries, p)
	s.byID[p.ID] = p
}

// Entries returns copies of the entries in order.
func (s *EntryStore) Entries() []model.ServerEntry {
	out := make([]model.ServerEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Clone())
	}
	return out
}

// IDs returns the ids in order.
func (s *EntryStore) IDs() []string {
	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.ID)
	}
	return out
}

func (s *EntryStore) Len() int { return len(s.entries) }

// Get returns a copy of the entry with the given id.
func (s *EntryStore) Get(id string) (model.ServerEntry, bool) {
	e, ok := s.byID[id]
	if !ok {
		return model.ServerEntry{}, false
	}
	return e.Clone(), true
}

// Add appends entry to the end of the collection.
func (s *EntryStore) Add(entry model.ServerEntry) error {
	if strings.TrimSpace(entry.ID) == "" || strings.TrimSpace(entry.Hostname) == "" {
		return ErrInvalidEntry
	}
	if _, ok := s.byID[entry.ID]; ok {
		return duplicateIDError{id: entry.ID}
	}
	s.insert(entry.Clone())
	return nil
}

// Remove deletes the entry from both the sequence and the index.
func (s *EntryStore) Remove(id string) error {
	e, ok := s.byID[id]
	if !ok {
		return errNotFound(id)
	}
	delete(s.byID, id)
	for i := range s.entries {
		if s.entries[i] == e {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}
	return nil
}

// Update applies patch in place to the entry with the given id.
func (s *EntryStore) Update(id string, patch model.ServerPatch) error {
	e, ok := s.byID[id]
	if !ok {
		return errNotFound(id)
	}
	if strings.TrimSpace(patch.Hostname) == "" {
		return ErrInvalidEntry
	}
	e.Apply(patch)
	return nil
}

// Reorder replaces the order of the collection. ids must be a permutation of the current ids;
// otherwise the order is left unchanged.
func (s *EntryStore) Reorder(ids []string) error {
	if err := ValidatePermutation(s.IDs(), ids); err != nil {
		return err
	}
	next := make([]*model.ServerEntry, 0, len(ids))
	for _, id := range ids {
		next = append(next, s.byID[id])
	}
	s.entries = next
	return nil
}

// Persist schedules a save of the current state and returns its sequence number.
// Only the latest sequence is written by Flush, so a burst of Persist calls yields one write.
func (s *EntryStore) Persist() int {
	s.saveSeq++
	s.dirty = true
	return s.saveSeq
}

// Dirty reports whether there are changes not yet written to the backend.
func (s *EntryStore) Dirty() bool { return s.dirty }

// Flush writes the current state if seq is the latest scheduled save. Stale sequences are
// ignored and report false.
func (s *EntryStore) Flush(ctx context.Context, seq int) (bool, error) {
	if seq != s.saveSeq {
		return false, nil
	}
	if !s.dirty {
		return false, nil
	}
	if err := s.write(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// FlushNow writes the current state if anything is pending.
func (s *EntryStore) FlushNow(ctx context.Context) error {
	if !s.dirty {
		return nil
	}
	return s.write(ctx)
}

func (s *EntryStore) write(ctx context.Context) error {
	if err := s.backend.SaveServers(ctx, s.Entries()); err != nil {
		// Stay dirty so a later flush retries.
		return err
	}
	s.dirty = false
	s.savedSeq = s.saveSeq
	glog.V(1).Infof("store: saved %d servers (seq=%d)", len(s.entries), s.savedSeq)
	return nil
}
