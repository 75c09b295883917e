package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/danieljhkim/datasplit/internal/clock"
	"github.com/danieljhkim/datasplit/internal/engine"
	"github.com/danieljhkim/datasplit/internal/fsops"
)

// newEngine creates an engine with real implementations of all dependencies.
func newEngine() *engine.Engine {
	return engine.New(fsops.NewRealFS(), &clock.RealClock{})
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printReport renders a run report, either as JSON (--json) or as a
// per-class table.
func printReport(report *engine.RunReport) error {
	if jsonOutput {
		return outputJSON(report)
	}

	if len(report.Classes) == 0 {
		PrintEmptyState("no class directories found")
		return nil
	}

	PrintSuccess(fmt.Sprintf("Split %s (%s) in %s",
		PrintCount(len(report.Classes), "class", "classes"),
		PrintCount(report.TotalFiles(), "file", "files"),
		report.Duration().Round(time.Millisecond)))

	headers := []string{"Class"}
	for _, s := range report.Classes[0].Subsets {
		headers = append(headers, s.Name)
	}
	oversampled := false
	for _, c := range report.Classes {
		if c.Oversampled > 0 {
			oversampled = true
			break
		}
	}
	if oversampled {
		headers = append(headers, "oversampled")
	}

	rows := make([][]string, 0, len(report.Classes))
	for _, c := range report.Classes {
		row := []string{c.Class}
		for _, s := range c.Subsets {
			row = append(row, fmt.Sprintf("%d", s.Files))
		}
		if oversampled {
			row = append(row, fmt.Sprintf("%d", c.Oversampled))
		}
		rows = append(rows, row)
	}
	PrintTable(headers, rows)

	PrintLabelValue("Output", report.Output)
	PrintLabelValue("Seed", fmt.Sprintf("%d", report.Seed))
	return nil
}
