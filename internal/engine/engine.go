// Package engine orchestrates a split run: it enumerates class
// directories and drives each one through grouping, shuffling,
// partitioning, and materialization, then runs the optional oversampling
// pass for fixed-mode splits.
package engine

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/datasplit/internal/clock"
	"github.com/danieljhkim/datasplit/internal/config"
	"github.com/danieljhkim/datasplit/internal/fsops"
	"github.com/danieljhkim/datasplit/internal/group"
	"github.com/danieljhkim/datasplit/internal/planner"
	"github.com/danieljhkim/datasplit/internal/scan"
	"github.com/danieljhkim/datasplit/internal/shuffle"
	"github.com/danieljhkim/datasplit/internal/transfer"
)

// Engine runs dataset splits against an injected filesystem and clock.
type Engine struct {
	fs    fsops.FS
	clock clock.Clock
}

// New creates an Engine with the specified dependencies.
func New(fs fsops.FS, clk clock.Clock) *Engine {
	return &Engine{fs: fs, clock: clk}
}

// classUnits lists a class's eligible files and turns them into the
// shuffled unit sequence the partitioner slices. The shuffle seed is
// reset here, per class, so the result never depends on which classes
// were processed before.
func (e *Engine) classUnits(class scan.ClassDir, exts []string, groupPrefix int, seed int64) ([]planner.Unit, error) {
	files, err := scan.ListFiles(class.Path, exts)
	if err != nil {
		return nil, err
	}

	var units []planner.Unit
	if groupPrefix > 0 {
		groups, err := group.ByPrefix(files, groupPrefix)
		if err != nil {
			return nil, err
		}
		units = planner.FromGroups(groups)
	} else {
		units = planner.FromFiles(files)
	}

	shuffle.Units(units, seed)
	return units, nil
}

// materialize transfers every subset of a class's plan through the pool.
// The whole class's jobs are submitted as one batch; a failed transfer
// does not cancel siblings already in flight, but any failure fails the
// class.
func (e *Engine) materialize(plan *planner.SplitPlan, class scan.ClassDir, output string, move bool, pool *transfer.Pool) error {
	var jobs []transfer.Job
	for _, subset := range plan.Subsets {
		destDir := filepath.Join(output, subset.Name, class.Name)
		if err := e.fs.MkdirAll(destDir, 0o755); err != nil {
			return fmt.Errorf("failed to create %q: %w", destDir, err)
		}
		for _, u := range subset.Units {
			jobs = append(jobs, transfer.Job{Unit: u, DestDir: destDir, Move: move})
		}
	}

	var firstErr error
	failed := 0
	for _, r := range pool.Run(jobs) {
		if r.Err != nil {
			failed++
			if firstErr == nil {
				firstErr = r.Err
			}
		}
	}
	if failed > 1 {
		return fmt.Errorf("%d transfers failed, first failure: %w", failed, firstErr)
	}
	return firstErr
}

// newClassReport summarizes a class's plan for the run report.
func newClassReport(class scan.ClassDir, plan *planner.SplitPlan) ClassReport {
	cr := ClassReport{
		Class: class.Name,
		Units: plan.TotalUnits(),
		Files: plan.TotalFiles(),
	}
	for _, s := range plan.Subsets {
		cr.Subsets = append(cr.Subsets, SubsetCount{
			Name:  s.Name,
			Units: len(s.Units),
			Files: s.FileCount(),
		})
	}
	return cr
}

// extensions applies the default allow-list when the request gave none.
// Entries are accepted with or without the leading dot; filepath.Ext
// always produces one, so a bare "jpg" would otherwise match nothing.
func extensions(exts []string) []string {
	if len(exts) == 0 {
		return config.DefaultExtensions
	}

	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}
