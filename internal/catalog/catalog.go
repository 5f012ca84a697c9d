package catalog

import (
	"sort"
	"strings"
	"sync/atomic"
)

// Snapshot is an immutable, fully-indexed view of the catalog at one
// point in time. Snapshots are never mutated after construction; the
// Store replaces them by reference, so a reader holding a Snapshot can
// keep using it regardless of concurrent refreshes.
type Snapshot struct {
	byName map[string]Item   // canonical display name -> item
	byLine map[string]string // alternate key -> canonical display name
	byUID  map[string]Item   // external id -> item
	lines  []string          // alternate keys in sorted order, for scans
}

func emptySnapshot() *Snapshot {
	return &Snapshot{
		byName: map[string]Item{},
		byLine: map[string]string{},
		byUID:  map[string]Item{},
	}
}

// build indexes raw records into a fresh snapshot. Records missing a
// display name or an external id are skipped: they cannot be matched or
// refreshed, so they are filtered as a data-quality measure rather than
// treated as errors.
func build(raw []Item) *Snapshot {
	s := emptySnapshot()
	for _, it := range raw {
		name := it.DisplayName()
		uid := it.ExternalID()
		if name == "" || uid == "" {
			continue
		}
		s.byName[name] = it
		s.byUID[uid] = it
		for _, key := range it.AlternateKeys() {
			if _, taken := s.byLine[key]; !taken {
				s.byLine[key] = name
			}
		}
	}

	// Matching tiers scan keys linearly; a sorted slice keeps that scan
	// order stable across cycles so repeat detections resolve the same
	// way every time.
	s.lines = make([]string, 0, len(s.byLine))
	for key := range s.byLine {
		s.lines = append(s.lines, key)
	}
	sort.Strings(s.lines)
	return s
}

// Len returns the number of indexed items.
func (s *Snapshot) Len() int {
	return len(s.byName)
}

// LookupByName returns the item stored under its canonical name.
func (s *Snapshot) LookupByName(name string) (Item, bool) {
	it, ok := s.byName[name]
	return it, ok
}

// LookupByLine resolves a normalized text line against the alternate-key
// index. Lookups are case-insensitive.
func (s *Snapshot) LookupByLine(line string) (Item, bool) {
	name, ok := s.byLine[strings.ToLower(line)]
	if !ok {
		return Item{}, false
	}
	return s.byName[name], true
}

// LookupByUID returns the item with the given external id.
func (s *Snapshot) LookupByUID(uid string) (Item, bool) {
	it, ok := s.byUID[uid]
	return it, ok
}

// ForEachLine visits every (alternate key, canonical name) pair in
// sorted key order until fn returns false.
func (s *Snapshot) ForEachLine(fn func(key, name string) bool) {
	for _, key := range s.lines {
		if !fn(key, s.byLine[key]) {
			return
		}
	}
}

// Items returns all indexed items sorted by canonical name, suitable for
// cache persistence.
func (s *Snapshot) Items() []Item {
	items := make([]Item, 0, len(s.byName))
	for _, it := range s.byName {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].DisplayName() < items[j].DisplayName()
	})
	return items
}

// PersistFunc receives the full item list after every successful catalog
// mutation, for cache persistence. It runs on the mutating goroutine.
type PersistFunc func(items []Item)

// Store owns the current catalog snapshot. The snapshot pointer is
// swapped atomically: readers observe either the old snapshot or the new
// one, never a mix of indices.
type Store struct {
	snap    atomic.Pointer[Snapshot]
	persist PersistFunc
}

// NewStore creates an empty store. persist may be nil.
func NewStore(persist PersistFunc) *Store {
	st := &Store{persist: persist}
	st.snap.Store(emptySnapshot())
	return st
}

// Snapshot returns the current catalog snapshot.
func (st *Store) Snapshot() *Snapshot {
	return st.snap.Load()
}

// Ready reports whether a catalog has been loaded.
func (st *Store) Ready() bool {
	return st.Snapshot().Len() > 0
}

// Load indexes raw records into a new snapshot and installs it, replacing
// the previous one wholesale. Returns the number of indexed items.
func (st *Store) Load(raw []Item) int {
	s := build(raw)
	st.snap.Store(s)
	if st.persist != nil {
		st.persist(s.Items())
	}
	return s.Len()
}

// MergeLive replaces the market fields of the item addressed by name with
// those of live, producing a new snapshot. If name is absent (the item
// may have been superseded by a concurrent full refresh) nothing happens.
// The new snapshot is installed with a compare-and-swap against the one
// the merge was derived from: a full refresh landing mid-merge wins, and
// the merge is dropped. The next live fetch supplies fresh prices anyway.
func (st *Store) MergeLive(name string, live Item) bool {
	old := st.Snapshot()
	it, ok := old.byName[name]
	if !ok {
		return false
	}
	merged := it.mergeMarket(live)

	s := &Snapshot{
		byName: make(map[string]Item, len(old.byName)),
		byLine: old.byLine, // identity keys never change across a merge
		byUID:  make(map[string]Item, len(old.byUID)),
		lines:  old.lines,
	}
	for k, v := range old.byName {
		s.byName[k] = v
	}
	for k, v := range old.byUID {
		s.byUID[k] = v
	}
	s.byName[name] = merged
	if uid := merged.ExternalID(); uid != "" {
		s.byUID[uid] = merged
	}

	if !st.snap.CompareAndSwap(old, s) {
		return false
	}
	if st.persist != nil {
		st.persist(s.Items())
	}
	return true
}
