package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/figura/internal/logger"
	"github.com/tsawler/figura/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate [csv-file]",
	Short: "Check a CSV table for structural and data quality issues",
	Long: `Run the table validator over a CSV file: structural consistency,
duplicate rows, missing values, mixed column types, and a stray
header row left in the data. Warnings never make a table invalid;
only an empty table does.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().Bool("sanitize", false, "Sanitize rows before validating")
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("validate")

	sanitize, _ := cmd.Flags().GetBool("sanitize")

	rows, err := readCSVRows(args[0])
	if err != nil {
		return err
	}
	if sanitize {
		rows = validate.Sanitize(rows)
	}

	result := validate.Validate(rows)

	log.Info().
		Bool("valid", result.IsValid).
		Int("errors", len(result.Errors)).
		Int("warnings", len(result.Warnings)).
		Msg("Validation finished")

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}

	if !result.IsValid {
		return fmt.Errorf("table is invalid")
	}
	return nil
}
