package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/isomers/pkg/errors"
	"github.com/matzehuels/isomers/pkg/service"
)

// tableCommand creates the table command.
func (c *CLI) tableCommand() *cobra.Command {
	var (
		maxVertices int
		degrees     string
		asCSV       bool
	)
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print a table of tree counts by vertices and degree",
		Example: `  isomers table
  isomers table --max 30 --degrees 3,4,5
  isomers table --csv > counts.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			degs, err := errors.ParseIntList("degrees", degrees)
			if err != nil {
				return err
			}
			runner, closeCache, err := c.newRunner(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer closeCache()

			prog := newProgress(c.Logger)
			tbl, err := runner.Table(cmd.Context(), maxVertices, degs)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Computed %d rows", len(tbl.Rows)))

			if asCSV {
				return writeTableCSV(cmd.OutOrStdout(), tbl)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), renderTable(tbl))
			return err
		},
	}
	cmd.Flags().IntVarP(&maxVertices, "max", "n", 20, "largest vertex count")
	cmd.Flags().StringVar(&degrees, "degrees", "1,2,3,4", "comma-separated degree bounds")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "write CSV instead of a table")
	return cmd
}

func tableHeaders(t *service.Table) []string {
	headers := []string{"n"}
	for _, d := range t.Degrees {
		headers = append(headers, fmt.Sprintf("deg ≤ %d", d))
	}
	return headers
}

func tableRows(t *service.Table) [][]string {
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := []string{strconv.Itoa(i + 1)}
		for _, v := range row {
			cells = append(cells, v.String())
		}
		rows[i] = cells
	}
	return rows
}

// renderTable draws the counts with column 0 holding the vertex count.
func renderTable(t *service.Table) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(tableHeaders(t)...).
		Rows(tableRows(t)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1: // header
				return headerStyle
			case col == 0:
				return cellStyle.Foreground(colorGray)
			default:
				return cellStyle.Foreground(colorWhite)
			}
		}).
		Render()
}

func writeTableCSV(w io.Writer, t *service.Table) error {
	cw := csv.NewWriter(w)
	header := []string{"vertices"}
	for _, d := range t.Degrees {
		header = append(header, "degree_"+strconv.Itoa(d))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(tableRows(t)); err != nil {
		return err
	}
	return cw.Error()
}
