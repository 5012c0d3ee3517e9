package catalog

import (
	"sort"
	"strings"
)

// Store holds the authoritative mapping canonical key -> Entry.
//
// Writes go to a pending overlay; Commit folds the overlay into the base map
// and Discard throws it away. Readers see pending writes, so a run observes
// its own inserts (needed for in-run dedup), while the committed state stays
// intact until the run is known good.
type Store struct {
	entries map[string]Entry
	pending map[string]Entry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]Entry),
		pending: make(map[string]Entry),
	}
}

// Get returns the entry for key, consulting pending writes first.
func (s *Store) Get(key string) (Entry, bool) {
	if entry, ok := s.pending[key]; ok {
		return entry, true
	}
	entry, ok := s.entries[key]
	return entry, ok
}

// Put records an entry under key in the pending overlay. It overwrites
// unconditionally; merge policy is the caller's responsibility.
func (s *Store) Put(key string, entry Entry) {
	entry.CanonicalKey = key
	s.pending[key] = entry
}

// Commit folds pending writes into the committed state.
func (s *Store) Commit() {
	for key, entry := range s.pending {
		s.entries[key] = entry
	}
	s.pending = make(map[string]Entry)
}

// Discard drops all pending writes.
func (s *Store) Discard() {
	s.pending = make(map[string]Entry)
}

// PendingCount returns the number of uncommitted writes.
func (s *Store) PendingCount() int {
	return len(s.pending)
}

// Len returns the number of entries visible to readers.
func (s *Store) Len() int {
	count := len(s.entries)
	for key := range s.pending {
		if _, ok := s.entries[key]; !ok {
			count++
		}
	}
	return count
}

// Snapshot returns a copy of all visible entries keyed by canonical key.
func (s *Store) Snapshot() map[string]Entry {
	out := make(map[string]Entry, s.Len())
	for key, entry := range s.entries {
		out[key] = entry
	}
	for key, entry := range s.pending {
		out[key] = entry
	}
	return out
}

// Group is all entries sharing a (model, hardware variant) pair, ordered
// newest first.
type Group struct {
	Model           string
	HardwareVariant string
	Entries         []Entry
}

// AllGrouped returns entries grouped by (model, hardware variant), groups
// sorted by model then hardware variant, and entries within a group sorted by
// release date descending with semantic version comparison breaking ties or
// standing in when dates are absent.
func (s *Store) AllGrouped() []Group {
	type groupKey struct {
		model string
		hw    string
	}

	buckets := make(map[groupKey][]Entry)
	for _, entry := range s.Snapshot() {
		key := groupKey{model: entry.Model, hw: entry.HardwareVariant}
		buckets[key] = append(buckets[key], entry)
	}

	keys := make([]groupKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].model != keys[j].model {
			return keys[i].model < keys[j].model
		}
		return keys[i].hw < keys[j].hw
	})

	groups := make([]Group, 0, len(keys))
	for _, key := range keys {
		entries := buckets[key]
		sort.Slice(entries, func(i, j int) bool {
			a, b := entries[i], entries[j]
			if a.ReleaseDate != b.ReleaseDate {
				// ISO dates compare correctly as strings; absent dates sort last.
				if a.ReleaseDate == "" {
					return false
				}
				if b.ReleaseDate == "" {
					return true
				}
				return a.ReleaseDate > b.ReleaseDate
			}
			if cmp := CompareVersions(a.FirmwareVersion, b.FirmwareVersion); cmp != 0 {
				return cmp > 0
			}
			return strings.Compare(a.CanonicalKey, b.CanonicalKey) < 0
		})
		groups = append(groups, Group{
			Model:           key.model,
			HardwareVariant: key.hw,
			Entries:         entries,
		})
	}
	return groups
}
