package core

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// ChangeTracker collects coordinates whose visual state changed since the
// last drain. Marking the same coordinate twice keeps one entry.
type ChangeTracker struct {
	set mapset.Set[Coord]
}

// NewChangeTracker returns an empty tracker.
func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{set: mapset.New[Coord]()}
}

// Mark records c as changed.
func (t *ChangeTracker) Mark(c Coord) {
	t.set.Put(c)
}

// Has reports whether c is pending.
func (t *ChangeTracker) Has(c Coord) bool {
	return t.set.Has(c)
}

// Len returns the number of pending coordinates.
func (t *ChangeTracker) Len() int {
	return t.set.Size()
}

// Drain returns all pending coordinates in row-major order and clears the set.
func (t *ChangeTracker) Drain() []Coord {
	if t.set.Size() == 0 {
		return nil
	}
	out := make([]Coord, 0, t.set.Size())
	t.set.Each(func(c Coord) {
		out = append(out, c)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	t.set = mapset.New[Coord]()
	return out
}
