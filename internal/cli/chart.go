package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/studymind/internal/chart"
)

var (
	chartWidth int
	chartSVG   string
)

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().IntVar(&chartWidth, "width", 72, "terminal width for the chart")
	chartCmd.Flags().StringVar(&chartSVG, "svg", "", "write the chart as SVG to this file")
}

// ChartListing is the payload of `studymind chart` without a name.
type ChartListing struct {
	Charts []string `json:"charts"`
}

var chartCmd = &cobra.Command{
	Use:   "chart [name]",
	Short: "Draw a chart from the sample data",
	Long: `Draw one of the dashboard or analytics charts in the terminal, or export it as SVG.

Examples:
  studymind chart
  studymind chart progress
  studymind chart hours --svg hours.svg`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: chart.Names(),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			names := chart.Names()
			if IsJSONOutput() || IsJSONLOutput() {
				return WriteOutput(out, ChartListing{Charts: names})
			}
			fmt.Fprintln(out, "Available charts:")
			for _, name := range names {
				fmt.Fprintf(out, "  %s\n", name)
			}
			return nil
		}

		snapshot, err := loadSnapshot()
		if err != nil {
			return err
		}
		projection, err := chart.Build(args[0], snapshot)
		if err != nil {
			return &PreflightError{
				Message:  err.Error(),
				Hint:     "available charts: " + strings.Join(chart.Names(), ", "),
				NextStep: "run `studymind chart` to list them",
			}
		}

		if chartSVG != "" {
			return writeSVG(cmd, projection, chartSVG)
		}
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(out, projection)
		}
		drawn, err := chart.NewTerminalRenderer(chartWidth).Draw(projection)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, drawn)
		return nil
	},
}

func writeSVG(cmd *cobra.Command, projection chart.Projection, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := chart.NewSVGRenderer().Write(f, projection); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s chart to %s\n", projection.Name, path)
	return nil
}
