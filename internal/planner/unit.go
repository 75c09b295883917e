package planner

import (
	"sort"

	"github.com/danieljhkim/datasplit/internal/scan"
)

// Unit is the atomic element of a split: either a single file or a
// fixed-size group of files that must always land in the same subset.
type Unit struct {
	// Files holds one entry for a plain file, or every member of a
	// group. Group members are kept sorted by relative path.
	Files []scan.FileEntry
}

// Key returns the canonical sort key for the unit: the lexicographically
// smallest member's relative path.
func (u Unit) Key() string {
	return u.Files[0].RelPath
}

// IsGroup reports whether the unit is a multi-file group.
func (u Unit) IsGroup() bool {
	return len(u.Files) > 1
}

// Len returns the number of files in the unit.
func (u Unit) Len() int {
	return len(u.Files)
}

// FromFiles wraps each file in its own unit.
func FromFiles(files []scan.FileEntry) []Unit {
	units := make([]Unit, 0, len(files))
	for _, f := range files {
		units = append(units, Unit{Files: []scan.FileEntry{f}})
	}
	return units
}

// FromGroups wraps each group in a unit, sorting members so Key is stable
// regardless of the grouper's discovery order.
func FromGroups(groups [][]scan.FileEntry) []Unit {
	units := make([]Unit, 0, len(groups))
	for _, g := range groups {
		members := make([]scan.FileEntry, len(g))
		copy(members, g)
		sort.Slice(members, func(i, j int) bool {
			return members[i].RelPath < members[j].RelPath
		})
		units = append(units, Unit{Files: members})
	}
	return units
}
