package cli

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/isomers/internal/config"
	"github.com/matzehuels/isomers/pkg/errors"
	"github.com/matzehuels/isomers/pkg/isomers"
)

type benchFlags struct {
	vertices int
	degree   int
	workers  int
	trials   int
	warmup   int
	plan     string
}

// benchCommand creates the bench command, which times repeated uncached
// counts.
func (c *CLI) benchCommand() *cobra.Command {
	var f benchFlags
	def := config.DefaultBench()
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time repeated tree counts",
		Long: `Run the unrooted tree count repeatedly and report the average time per
call in microseconds. Results are never cached. A --plan file lists several
cases to time in one run.`,
		Example: `  isomers bench
  isomers bench --vertices 40 --trials 50
  isomers bench --plan bench.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			for _, bc := range plan.Cases {
				if err := errors.ValidateVertices(bc.Vertices, bc.Degree, c.Config.ErrorLimits()); err != nil {
					return err
				}
			}

			runID := uuid.New()
			logger := c.Logger.With("run", runID.String()[:8])
			ctx := withLogger(cmd.Context(), logger)
			logger.Debug("starting bench", "id", runID, "cases", len(plan.Cases), "trials", plan.Trials)

			spinner := newSpinnerWithContext(ctx, "Benchmarking...")
			spinner.Start()
			results := make([]*benchResult, 0, len(plan.Cases))
			for i, bc := range plan.Cases {
				spinner.SetMessage(fmt.Sprintf("Case %d/%d: %d vertices, degree %d...", i+1, len(plan.Cases), bc.Vertices, bc.Degree))
				res, err := runBench(ctx, bc, plan.Trials, plan.Warmup)
				if err != nil {
					spinner.Stop()
					return err
				}
				results = append(results, res)
			}
			spinner.Stop()

			for _, res := range results {
				writeBenchResult(cmd.OutOrStdout(), res)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&f.vertices, "vertices", "n", def.Cases[0].Vertices, "number of vertices")
	cmd.Flags().IntVarP(&f.degree, "degree", "d", def.Cases[0].Degree, "maximum vertex degree")
	cmd.Flags().IntVarP(&f.workers, "parallel", "p", 0, "count with N workers (0 = sequential)")
	cmd.Flags().IntVarP(&f.trials, "trials", "t", def.Trials, "timed repetitions per case")
	cmd.Flags().IntVar(&f.warmup, "warmup", 0, "untimed repetitions before timing")
	cmd.Flags().StringVarP(&f.plan, "plan", "f", "", "TOML file with [[case]] entries")
	return cmd
}

// resolve builds the plan from --plan or from the single-case flags.
// Explicit flags override the file's trials and warmup.
func (f *benchFlags) resolve(cmd *cobra.Command) (config.Bench, error) {
	if f.plan == "" {
		plan := config.Bench{
			Trials: f.trials,
			Warmup: f.warmup,
			Cases:  []config.BenchCase{{Vertices: f.vertices, Degree: f.degree, Workers: f.workers}},
		}
		return plan, plan.Validate()
	}

	plan, err := config.LoadBench(f.plan)
	if err != nil {
		return config.Bench{}, err
	}
	if cmd.Flags().Changed("trials") {
		plan.Trials = f.trials
	}
	if cmd.Flags().Changed("warmup") {
		plan.Warmup = f.warmup
	}
	return plan, plan.Validate()
}

type benchResult struct {
	Case   config.BenchCase
	Value  *big.Int
	Trials int
	PerOp  time.Duration
}

// runBench times trials counts of bc after warmup untimed ones.
func runBench(ctx context.Context, bc config.BenchCase, trials, warmup int) (*benchResult, error) {
	logger := loggerFromContext(ctx)
	count := func() (*big.Int, error) {
		if bc.Workers > 1 {
			return isomers.TreePermutationsParallel(ctx, bc.Vertices, bc.Degree, bc.Workers)
		}
		return isomers.TreePermutations(bc.Vertices, bc.Degree), nil
	}

	for range warmup {
		if _, err := count(); err != nil {
			return nil, err
		}
	}

	var value *big.Int
	start := time.Now()
	for i := range trials {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeCanceled, err, "bench interrupted after %d trials", i)
		}
		v, err := count()
		if err != nil {
			return nil, err
		}
		value = v
	}
	elapsed := time.Since(start)

	res := &benchResult{Case: bc, Value: value, Trials: trials, PerOp: elapsed / time.Duration(trials)}
	logger.Info("bench case done",
		"vertices", bc.Vertices,
		"degree", bc.Degree,
		"workers", bc.Workers,
		"trials", trials,
		"total", elapsed.Round(time.Millisecond))
	return res, nil
}

// writeBenchResult prints "<value> Permutations (<µs>us)".
func writeBenchResult(w io.Writer, r *benchResult) {
	fmt.Fprintf(w, "%s Permutations (%dus)\n", r.Value, r.PerOp.Microseconds())
}
