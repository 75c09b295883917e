package engine

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/datasplit/internal/config"
	"github.com/danieljhkim/datasplit/internal/planner"
	"github.com/danieljhkim/datasplit/internal/scan"
	"github.com/danieljhkim/datasplit/internal/transfer"
)

// classSplit retains what the oversampling pass needs about one
// materialized class.
type classSplit struct {
	class scan.ClassDir

	// units is the pre-split sample count (groups count as one)
	units int

	// trainFiles are the destination paths of the class's train files
	trainFiles []string
}

// SplitByFixed reserves the requested val (and test) counts from each
// class and materializes the subsets by copying. With req.Oversample,
// smaller classes' train subsets are then topped up to the largest
// class's pre-split sample count with duplicates of random train files.
func (e *Engine) SplitByFixed(ctx context.Context, req *FixedRequest) (*RunReport, error) {
	if err := config.ValidateFixed(req.Fixed); err != nil {
		return nil, err
	}
	if err := config.ValidateGroupPrefix(req.GroupPrefix); err != nil {
		return nil, err
	}
	if ok, err := e.fs.Exists(req.Input); err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("input directory %q does not exist", req.Input)
	}

	report := &RunReport{
		Input:     req.Input,
		Output:    req.Output,
		Mode:      "fixed",
		Seed:      req.Seed,
		StartedAt: e.clock.Now().UTC(),
	}

	classes, err := scan.ListClassDirs(req.Input)
	if err != nil {
		return nil, err
	}

	exts := extensions(req.Extensions)
	pool := transfer.NewPool(e.fs, req.Workers)
	splits := make([]classSplit, 0, len(classes))

	for _, class := range classes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		units, err := e.classUnits(class, exts, req.GroupPrefix, req.Seed)
		if err != nil {
			return nil, fmt.Errorf("class %q: %w", class.Name, err)
		}

		plan, err := planner.BuildFixedPlan(units, req.Fixed, class.Name)
		if err != nil {
			return nil, err
		}

		if err := e.materialize(plan, class, req.Output, false, pool); err != nil {
			return nil, fmt.Errorf("class %q: %w", class.Name, err)
		}

		report.Classes = append(report.Classes, newClassReport(class, plan))
		splits = append(splits, classSplit{
			class:      class,
			units:      len(units),
			trainFiles: trainDestPaths(plan, filepath.Join(req.Output, planner.SubsetTrain, class.Name)),
		})
	}

	if req.Oversample {
		if err := e.oversample(splits, req.Seed, report); err != nil {
			return nil, err
		}
	}

	report.FinishedAt = e.clock.Now().UTC()
	return report, nil
}

// oversample duplicates random train files of classes smaller than the
// largest one until every class has produced the same sample count.
// Duplicates are named <stem>_<i><ext> with a per-class 0-based index.
//
// One seeded generator is shared across all classes and drawn from
// sequentially; running classes concurrently here would scramble the
// draw order and break reproducibility.
func (e *Engine) oversample(splits []classSplit, seed int64, report *RunReport) error {
	maxLen := 0
	for _, cs := range splits {
		if cs.units > maxLen {
			maxLen = cs.units
		}
	}

	rng := rand.New(rand.NewSource(seed))

	for i, cs := range splits {
		need := maxLen - cs.units
		if need == 0 || len(cs.trainFiles) == 0 {
			continue
		}

		for n := 0; n < need; n++ {
			src := cs.trainFiles[rng.Intn(len(cs.trainFiles))]
			ext := filepath.Ext(src)
			stem := strings.TrimSuffix(filepath.Base(src), ext)
			dst := filepath.Join(filepath.Dir(src), fmt.Sprintf("%s_%d%s", stem, n, ext))

			if err := e.fs.CopyFile(src, dst); err != nil {
				return fmt.Errorf("oversampling class %q: %w", cs.class.Name, err)
			}
			report.Classes[i].Oversampled++
		}
	}
	return nil
}

// trainDestPaths collects the destination paths of every file in the
// plan's train subset. The oversampler draws from this pool, which is
// exactly the class's materialized train set before any duplicates.
func trainDestPaths(plan *planner.SplitPlan, trainDir string) []string {
	train := plan.Subset(planner.SubsetTrain)
	if train == nil {
		return nil
	}

	var paths []string
	for _, u := range train.Units {
		for _, f := range u.Files {
			paths = append(paths, transfer.DestPath(u, f, trainDir))
		}
	}
	return paths
}
