package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/datasplit/internal/config"
	"github.com/danieljhkim/datasplit/internal/planner"
	"github.com/danieljhkim/datasplit/internal/scan"
	"github.com/danieljhkim/datasplit/internal/transfer"
)

// SplitByRatio partitions every class directory under req.Input at
// floor-rounded ratio boundaries and materializes the subsets under
// req.Output. Classes processed before a failure are left in place.
func (e *Engine) SplitByRatio(ctx context.Context, req *RatioRequest) (*RunReport, error) {
	if err := config.ValidateRatio(req.Ratio); err != nil {
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
		Mode:      "ratio",
		Seed:      req.Seed,
		StartedAt: e.clock.Now().UTC(),
	}

	classes, err := scan.ListClassDirs(req.Input)
	if err != nil {
		return nil, err
	}

	exts := extensions(req.Extensions)
	pool := transfer.NewPool(e.fs, req.Workers)

	for _, class := range classes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		units, err := e.classUnits(class, exts, req.GroupPrefix, req.Seed)
		if err != nil {
			return nil, fmt.Errorf("class %q: %w", class.Name, err)
		}

		plan := planner.BuildRatioPlan(units, req.Ratio)
		if err := e.materialize(plan, class, req.Output, req.Move, pool); err != nil {
			return nil, fmt.Errorf("class %q: %w", class.Name, err)
		}

		report.Classes = append(report.Classes, newClassReport(class, plan))
	}

	report.FinishedAt = e.clock.Now().UTC()
	return report, nil
}
