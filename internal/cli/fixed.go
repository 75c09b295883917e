package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/datasplit/internal/config"
	"github.com/danieljhkim/datasplit/internal/engine"
)

var (
	fixedOutput      string
	fixedSeed        int64
	fixedCounts      []int
	fixedOversample  bool
	fixedWorkers     int
	fixedGroupPrefix int
	fixedExts        []string
)

var fixedCmd = &cobra.Command{
	Use:   "fixed <input-dir>",
	Short: "Reserve fixed val[/test] counts per class, train gets the rest",
	Long: `Reserve an absolute number of val (and optionally test) samples from every
class directory under <input-dir>; the remaining samples become train.

A class with fewer samples than the fixed counts require fails the run.
With --oversample, classes smaller than the largest one have their train
subset topped up with duplicates of randomly chosen train files.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &engine.FixedRequest{
			Input:       args[0],
			Output:      fixedOutput,
			Seed:        fixedSeed,
			Fixed:       fixedCounts,
			Oversample:  fixedOversample,
			Workers:     fixedWorkers,
			GroupPrefix: fixedGroupPrefix,
			Extensions:  fixedExts,
		}

		report, err := newEngine().SplitByFixed(context.Background(), req)
		if err != nil {
			return err
		}
		return printReport(report)
	},
}

func init() {
	fixedCmd.Flags().StringVarP(&fixedOutput, "output", "o", "output", "Destination root for the split tree")
	fixedCmd.Flags().Int64Var(&fixedSeed, "seed", config.DefaultSeed, "Shuffle seed (reset for every class)")
	fixedCmd.Flags().IntSliceVar(&fixedCounts, "fixed", []int{100, 100}, "Val[,test] sample counts to reserve per class")
	fixedCmd.Flags().BoolVar(&fixedOversample, "oversample", false, "Duplicate train files of smaller classes up to the largest class")
	fixedCmd.Flags().IntVar(&fixedWorkers, "workers", 0, "Transfer workers (0 = number of CPUs)")
	fixedCmd.Flags().IntVar(&fixedGroupPrefix, "group-prefix", 0, "Keep cohorts of this many same-prefix files together (0 = off)")
	fixedCmd.Flags().StringSliceVar(&fixedExts, "ext", nil, "Eligible file extensions, with or without the dot (default .jpg,.jpeg,.png)")
}
