package engine

import "time"

// RatioRequest describes a ratio-mode split.
type RatioRequest struct {
	// Input is the dataset root (one subdirectory per class)
	Input string

	// Output is the root of the materialized tree
	// (output/{train,val,test}/{class}/...)
	Output string

	// Seed makes the shuffle reproducible; it is reset for every class
	Seed int64

	// Ratio holds 2 or 3 fractions summing to 1: train, val, and
	// optionally test
	Ratio []float64

	// Move transfers files by moving instead of copying
	Move bool

	// Workers bounds transfer parallelism; below 1 defaults to the
	// available CPU parallelism
	Workers int

	// GroupPrefix is the cohort size for prefix grouping; 0 disables it
	GroupPrefix int

	// Extensions is the eligible-file allow-list; empty means the
	// default image extensions
	Extensions []string
}

// FixedRequest describes a fixed-count split.
type FixedRequest struct {
	// Input is the dataset root (one subdirectory per class)
	Input string

	// Output is the root of the materialized tree
	Output string

	// Seed makes the shuffle reproducible; it is reset for every class
	Seed int64

	// Fixed holds 1 or 2 counts: the val size, and optionally the test
	// size; train receives the remainder
	Fixed []int

	// Oversample tops up smaller classes' train subsets to the largest
	// class's sample count by duplicating random train files
	Oversample bool

	// Workers bounds transfer parallelism; below 1 defaults to the
	// available CPU parallelism
	Workers int

	// GroupPrefix is the cohort size for prefix grouping; 0 disables it
	GroupPrefix int

	// Extensions is the eligible-file allow-list; empty means the
	// default image extensions
	Extensions []string
}

// SubsetCount reports the size of one subset of one class.
type SubsetCount struct {
	// Name is "train", "val", or "test"
	Name string

	// Units is the number of atomic units (files, or groups when
	// grouping is active)
	Units int

	// Files is the number of individual files
	Files int
}

// ClassReport is the per-class outcome of a split.
type ClassReport struct {
	// Class is the class label
	Class string

	// Units and Files are the pre-split totals
	Units int
	Files int

	// Subsets lists the subset sizes in plan order
	Subsets []SubsetCount

	// Oversampled is the number of duplicates synthesized into the
	// train subset (fixed mode with oversampling only)
	Oversampled int
}

// RunReport is the outcome of a whole run.
type RunReport struct {
	// Input and Output are the request's directories
	Input  string
	Output string

	// Mode is "ratio" or "fixed"
	Mode string

	// Seed is the shuffle seed used
	Seed int64

	// Classes holds one report per processed class
	Classes []ClassReport

	// StartedAt and FinishedAt bound the run (UTC)
	StartedAt  time.Time
	FinishedAt time.Time
}

// TotalFiles returns the number of files materialized across all classes,
// including oversampled duplicates.
func (r *RunReport) TotalFiles() int {
	n := 0
	for _, c := range r.Classes {
		n += c.Files + c.Oversampled
	}
	return n
}

// Duration returns the run's wall time.
func (r *RunReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
