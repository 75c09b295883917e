// Package group clusters files sharing a common name prefix into
// fixed-size cohorts. A cohort is atomic: every later stage (shuffling,
// slicing, oversampling, transfer) treats it as one unit, so paired files
// such as an image and its mask can never be split across subsets.
package group

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/danieljhkim/datasplit/internal/scan"
)

// GroupingError reports a failure to assemble fixed-size cohorts.
type GroupingError struct {
	// File is the base name of the offending file; empty when the
	// failure is a leftover count after all files were processed
	File string

	// Found and Want are the match counts at the failing prefix length
	Found int
	Want  int

	// Grouped and Total describe a leftover failure
	Grouped int
	Total   int
}

func (e *GroupingError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("could only group %d of %d files into cohorts", e.Grouped, e.Total)
	}
	if e.Found > e.Want {
		return fmt.Sprintf("found %d prefix matches for %q, want exactly %d", e.Found, e.File, e.Want)
	}
	return fmt.Sprintf("no cohort of %d found for %q", e.Want+1, e.File)
}

// ByPrefix partitions files into groups of exactly size members sharing
// the longest-possible common name prefix. Every file must end up in
// exactly one group.
//
// Files are processed in canonical (name-sorted) order. For each
// ungrouped file the candidate prefix starts at its full name and shrinks
// one character at a time until exactly size-1 other ungrouped files
// match it. Finding more than size-1 matches at any prefix length means
// the naming scheme is ambiguous for the requested size and is an error,
// as is running out of prefix, as are leftover ungrouped files.
func ByPrefix(files []scan.FileEntry, size int) ([][]scan.FileEntry, error) {
	if size < 2 {
		return nil, fmt.Errorf("group size must be at least 2, got %d", size)
	}

	p := newPool(files)
	groups := make([][]scan.FileEntry, 0, len(files)/size)
	grouped := 0

	for i := range p.files {
		if p.taken[i] {
			continue
		}
		g, err := p.matchGroup(i, size)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
		grouped += len(g)
	}

	if grouped != len(files) {
		return nil, &GroupingError{Grouped: grouped, Total: len(files)}
	}
	return groups, nil
}

// pool is the mutable set of not-yet-grouped files, kept sorted by base
// name so prefix matches resolve to a contiguous range found by binary
// search instead of a scan over every file per prefix length.
type pool struct {
	files []scan.FileEntry
	names []string
	taken []bool
}

func newPool(files []scan.FileEntry) *pool {
	sorted := make([]scan.FileEntry, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool {
		ni, nj := sorted[i].Name(), sorted[j].Name()
		if ni != nj {
			return ni < nj
		}
		return sorted[i].RelPath < sorted[j].RelPath
	})

	names := make([]string, len(sorted))
	for i, f := range sorted {
		names[i] = f.Name()
	}
	return &pool{
		files: sorted,
		names: names,
		taken: make([]bool, len(sorted)),
	}
}

// matchGroup resolves the cohort containing the file at index i.
func (p *pool) matchGroup(i, size int) ([]scan.FileEntry, error) {
	name := p.names[i]

	for prefix := name; prefix != ""; prefix = trimLastRune(prefix) {
		matches := p.prefixMatches(prefix, name)
		switch {
		case len(matches) == size-1:
			g := make([]scan.FileEntry, 0, size)
			g = append(g, p.files[i])
			p.taken[i] = true
			for _, j := range matches {
				g = append(g, p.files[j])
				p.taken[j] = true
			}
			return g, nil
		case len(matches) > size-1:
			return nil, &GroupingError{File: name, Found: len(matches), Want: size - 1}
		}
	}

	return nil, &GroupingError{File: name, Found: 0, Want: size - 1}
}

// prefixMatches returns the indices of ungrouped files whose name starts
// with prefix, excluding files named exactly name. The sorted name slice
// makes the prefix range contiguous: locate its start with a binary
// search, then its end with a second search over the monotone
// has-prefix predicate.
func (p *pool) prefixMatches(prefix, name string) []int {
	lo := sort.SearchStrings(p.names, prefix)
	hi := lo + sort.Search(len(p.names)-lo, func(k int) bool {
		return !strings.HasPrefix(p.names[lo+k], prefix)
	})

	var matches []int
	for j := lo; j < hi; j++ {
		if p.taken[j] || p.names[j] == name {
			continue
		}
		matches = append(matches, j)
	}
	return matches
}

func trimLastRune(s string) string {
	_, n := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-n]
}
