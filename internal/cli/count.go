package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isomers/pkg/errors"
	"github.com/matzehuels/isomers/pkg/service"
)

// countFlags holds the flags shared by count and rooted.
type countFlags struct {
	bound   int
	workers int
	noCache bool
	refresh bool
	plain   bool
}

func (f *countFlags) register(cmd *cobra.Command, boundName, shorthand, boundUsage string) {
	cmd.Flags().IntVarP(&f.bound, boundName, shorthand, 0, boundUsage)
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even if the result is cached")
	cmd.Flags().BoolVar(&f.plain, "plain", false, "print only the count")
}

// countCommand creates the count command for unrooted trees.
func (c *CLI) countCommand() *cobra.Command {
	var f countFlags
	cmd := &cobra.Command{
		Use:   "count <vertices>",
		Short: "Count unrooted trees with bounded vertex degree",
		Long: `Count unlabeled unrooted trees on the given number of vertices in which no
vertex has more than --degree neighbours. With the default degree of 4 this is
the number of structural isomers of the alkane CnH2n+2.`,
		Example: `  isomers count 20
  isomers count 60 --degree 4 --parallel 8
  isomers count 12 --degree 3 --plain`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vertices, err := errors.ParseInt("vertices", args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("degree") {
				f.bound = c.Config.Count.Degree
			}
			if !cmd.Flags().Changed("parallel") {
				f.workers = c.Config.Count.Workers
			}
			opts := service.CountOptions{
				Kind:     service.KindTrees,
				Vertices: vertices,
				Bound:    f.bound,
				Workers:  f.workers,
				Refresh:  f.refresh,
			}
			return c.runCount(cmd.Context(), cmd.OutOrStdout(), opts, f)
		},
	}
	f.register(cmd, "degree", "d", "maximum vertex degree")
	cmd.Flags().IntVarP(&f.workers, "parallel", "p", 0, "split the count across N goroutines")
	return cmd
}

// rootedCommand creates the rooted command.
func (c *CLI) rootedCommand() *cobra.Command {
	var f countFlags
	cmd := &cobra.Command{
		Use:   "rooted <vertices>",
		Short: "Count rooted trees with bounded branching",
		Long: `Count unlabeled rooted trees on the given number of vertices in which every
node has at most --branching children. With a branching of 3 these are the
alkyl substituents CnH2n+1.`,
		Example: `  isomers rooted 10
  isomers rooted 12 --branching 11`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vertices, err := errors.ParseInt("vertices", args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("branching") {
				f.bound = c.Config.Count.Branching
			}
			opts := service.CountOptions{
				Kind:     service.KindRooted,
				Vertices: vertices,
				Bound:    f.bound,
				Refresh:  f.refresh,
			}
			return c.runCount(cmd.Context(), cmd.OutOrStdout(), opts, f)
		},
	}
	f.register(cmd, "branching", "b", "maximum children per node")
	return cmd
}

func (c *CLI) runCount(ctx context.Context, w io.Writer, opts service.CountOptions, f countFlags) error {
	runner, closeCache, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return err
	}
	defer closeCache()

	var spinner *Spinner
	if !f.plain {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Counting %s with %d vertices...", opts.Kind, opts.Vertices))
		spinner.Start()
	}
	res, err := runner.Count(ctx, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if f.plain {
		_, err := fmt.Fprintln(w, res.Count)
		return err
	}

	boundLabel := "degree"
	if res.Kind == service.KindRooted {
		boundLabel = "branching"
	}
	printKeyValue("vertices", strconv.Itoa(res.Vertices))
	printKeyValue(boundLabel, strconv.Itoa(res.Bound))
	printKeyValue(res.Kind, StyleNumber.Render(groupDigits(res.Count)))
	printStats(res.Digits, res.Duration, res.Cached)
	return nil
}
