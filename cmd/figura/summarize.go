package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/figura/insights"
	"github.com/tsawler/figura/internal/logger"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [csv-file]",
	Short: "Compute statistics, trends and quality scores over a CSV table",
	Long: `Generate the analysis summary for a CSV file: per-column statistics,
top category frequencies, a linear trend over the first numeric
column, a data quality score, and interquartile-range outliers.
A first row of non-numeric text is treated as the header row.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	summarizeCmd.Flags().Int("top", 5, "How many top categories to report")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("summarize")

	top, _ := cmd.Flags().GetInt("top")

	rows, err := readCSVRows(args[0])
	if err != nil {
		return err
	}

	generator := insights.NewGenerator()
	config := insights.DefaultConfig()
	config.TopCategories = top
	if err := generator.Configure(config); err != nil {
		return err
	}

	summary := generator.Summarize(insights.FromRows(rows))

	log.Info().
		Int("rows", summary.Statistics.RowCount).
		Int("columns", summary.Statistics.ColumnCount).
		Msg("Summary finished")

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
