package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/figura"
	"github.com/tsawler/figura/internal/logger"
)

var chartsCmd = &cobra.Command{
	Use:   "charts [image-file]",
	Short: "Detect charts in a page image and extract their data points",
	Long: `Find chart-like regions in a page image, classify each as a bar, pie
or line chart, and extract its data points. Values are heuristic
estimates derived from pixel geometry, not calibrated axis readings.`,
	Example: `  # Print detected charts as JSON
  figura charts report.png`,
	Args: cobra.ExactArgs(1),
	RunE: runCharts,
}

func init() {
	rootCmd.AddCommand(chartsCmd)

	chartsCmd.Flags().Int("timeout", 120, "Processing timeout in seconds")
}

func runCharts(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("charts")

	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := commandContext(timeoutSecs)
	defer cancel()

	detection, err := figura.Open(args[0]).DetectCharts(ctx)
	if err != nil {
		return fmt.Errorf("detecting charts: %w", err)
	}

	log.Info().
		Int("candidates", detection.Candidates).
		Int("charts", len(detection.Charts)).
		Msg("Detection finished")

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(detection)
}
