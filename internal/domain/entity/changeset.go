package entity

import "sort"

// ChangeSet collects the ids touched by a mutation.
type ChangeSet map[NodeID]struct{}

// NewChangeSet returns a change set holding ids.
func NewChangeSet(ids ...NodeID) ChangeSet {
	cs := make(ChangeSet, len(ids))
	cs.Add(ids...)
	return cs
}

// Add records ids. Empty ids are ignored.
func (cs ChangeSet) Add(ids ...NodeID) {
	for _, id := range ids {
		if id != "" {
			cs[id] = struct{}{}
		}
	}
}

// Has reports whether id was recorded.
func (cs ChangeSet) Has(id NodeID) bool {
	_, ok := cs[id]
	return ok
}

// Merge adds every id of other.
func (cs ChangeSet) Merge(other ChangeSet) {
	for id := range other {
		cs[id] = struct{}{}
	}
}

// IDs returns the recorded ids sorted.
func (cs ChangeSet) IDs() []NodeID {
	ids := make([]NodeID, 0, len(cs))
	for id := range cs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
