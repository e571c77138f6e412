package cli

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/isomers/pkg/errors"
	"github.com/matzehuels/isomers/pkg/partition"
	"github.com/matzehuels/isomers/pkg/service"
)

type partitionsFlags struct {
	parts       int
	max         int
	limit       int
	dot         bool
	svg         bool
	output      string
	interactive bool
	noCache     bool
}

// partitionsCommand creates the partitions command.
func (c *CLI) partitionsCommand() *cobra.Command {
	var f partitionsFlags
	cmd := &cobra.Command{
		Use:   "partitions <sum>",
		Short: "List integer partitions with bounded parts",
		Long: `List the partitions of sum into at most --parts parts, each no larger than
--max, in the order the tree counter visits them. Zero bounds mean unbounded.`,
		Example: `  isomers partitions 8
  isomers partitions 19 --parts 4 --max 9
  isomers partitions 7 --svg -o seven.svg
  isomers partitions 30 --interactive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := errors.ParseInt("sum", args[0])
			if err != nil {
				return err
			}
			opts := service.PartitionOptions{Sum: sum, MaxParts: f.parts, MaxValue: f.max, Limit: f.limit}
			if f.dot || f.svg || f.interactive {
				return c.drawPartitions(cmd, opts, f)
			}
			return c.listPartitions(cmd, opts, f)
		},
	}
	cmd.Flags().IntVarP(&f.parts, "parts", "k", 0, "maximum number of parts (0 = unbounded)")
	cmd.Flags().IntVarP(&f.max, "max", "m", 0, "maximum part value (0 = unbounded)")
	cmd.Flags().IntVarP(&f.limit, "limit", "l", 0, fmt.Sprintf("maximum partitions to show (default %d)", service.DefaultPartitionLimit))
	cmd.Flags().BoolVar(&f.dot, "dot", false, "write the enumeration as a Graphviz DOT graph")
	cmd.Flags().BoolVar(&f.svg, "svg", false, "render the enumeration graph as SVG")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file for --dot or --svg (default stdout for DOT)")
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "browse partitions interactively")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	cmd.MarkFlagsMutuallyExclusive("dot", "svg", "interactive")
	return cmd
}

func (c *CLI) listPartitions(cmd *cobra.Command, opts service.PartitionOptions, f partitionsFlags) error {
	runner, closeCache, err := c.newRunner(cmd.Context(), f.noCache)
	if err != nil {
		return err
	}
	defer closeCache()

	res, err := runner.Partitions(cmd.Context(), opts)
	if err != nil {
		return err
	}
	if err := writePartitions(cmd.OutOrStdout(), res); err != nil {
		return err
	}

	noun := "partitions"
	if res.Total == 1 {
		noun = "partition"
	}
	printInfo("%d %s of %d (parts ≤ %d, values ≤ %d)", res.Total, noun, res.Sum, res.MaxParts, res.MaxValue)
	if res.Truncated {
		printWarning("showing the first %d, raise --limit to see more", len(res.Partitions))
		printNextStep("Browse them all", fmt.Sprintf("isomers partitions %d --parts %d --max %d --interactive", res.Sum, res.MaxParts, res.MaxValue))
	}
	return nil
}

func writePartitions(w io.Writer, res *service.PartitionResult) error {
	for _, p := range res.Partitions {
		if _, err := fmt.Fprintln(w, partition.FormatSum(p)); err != nil {
			return err
		}
	}
	return nil
}

// drawPartitions handles the DOT, SVG and interactive outputs, which walk
// the enumeration directly instead of going through the cache.
func (c *CLI) drawPartitions(cmd *cobra.Command, opts service.PartitionOptions, f partitionsFlags) error {
	if err := opts.ValidateAndSetDefaults(c.Config.ErrorLimits()); err != nil {
		return err
	}
	p := opts.Partitioner()

	switch {
	case f.interactive:
		return runBrowser(p)
	case f.dot:
		dot := p.ToDOT(opts.Limit)
		if f.output == "" {
			_, err := io.WriteString(cmd.OutOrStdout(), dot)
			return err
		}
		return writeOutput(f.output, []byte(dot))
	default:
		prog := newProgress(c.Logger)
		svg, err := p.RenderSVG(cmd.Context(), opts.Limit)
		if err != nil {
			return err
		}
		out := f.output
		if out == "" {
			out = fmt.Sprintf("partitions-%d.svg", opts.Sum)
		}
		if err := writeOutput(out, svg); err != nil {
			return err
		}
		prog.done("Rendered SVG")
		return nil
	}
}

func writeOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printSuccess("Wrote %d bytes", len(data))
	printFile(path)
	return nil
}

func runBrowser(p *partition.Partitioner) error {
	final, err := tea.NewProgram(NewPartitionBrowser(p)).Run()
	if err != nil {
		return err
	}
	m, ok := final.(PartitionBrowser)
	if !ok || m.Chosen == nil {
		printDetail("No selection made")
		return nil
	}
	printSuccess("%s", partition.FormatSum(m.Chosen.Slice()))
	printDetail("parts %v", m.Chosen.Values())
	return nil
}
