package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/datasplit/internal/config"
	"github.com/danieljhkim/datasplit/internal/engine"
)

var (
	ratioOutput      string
	ratioSeed        int64
	ratioFractions   []float64
	ratioMove        bool
	ratioWorkers     int
	ratioGroupPrefix int
	ratioExts        []string
)

var ratioCmd = &cobra.Command{
	Use:   "ratio <input-dir>",
	Short: "Split every class by train/val[/test] fractions",
	Long: `Split every class directory under <input-dir> at the given fractions.

With three fractions the output has train, val, and test subsets; with two
fractions there is no test subset. Remainders from rounding land in the last
subset. The same seed always reproduces the same split.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &engine.RatioRequest{
			Input:       args[0],
			Output:      ratioOutput,
			Seed:        ratioSeed,
			Ratio:       ratioFractions,
			Move:        ratioMove,
			Workers:     ratioWorkers,
			GroupPrefix: ratioGroupPrefix,
			Extensions:  ratioExts,
		}

		report, err := newEngine().SplitByRatio(context.Background(), req)
		if err != nil {
			return err
		}
		return printReport(report)
	},
}

func init() {
	ratioCmd.Flags().StringVarP(&ratioOutput, "output", "o", "output", "Destination root for the split tree")
	ratioCmd.Flags().Int64Var(&ratioSeed, "seed", config.DefaultSeed, "Shuffle seed (reset for every class)")
	ratioCmd.Flags().Float64SliceVar(&ratioFractions, "ratio", []float64{0.8, 0.1, 0.1}, "Train,val[,test] fractions summing to 1")
	ratioCmd.Flags().BoolVar(&ratioMove, "move", false, "Move files instead of copying them")
	ratioCmd.Flags().IntVar(&ratioWorkers, "workers", 0, "Transfer workers (0 = number of CPUs)")
	ratioCmd.Flags().IntVar(&ratioGroupPrefix, "group-prefix", 0, "Keep cohorts of this many same-prefix files together (0 = off)")
	ratioCmd.Flags().StringSliceVar(&ratioExts, "ext", nil, "Eligible file extensions, with or without the dot (default .jpg,.jpeg,.png)")
}
