package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/sensorable/pointprep"
)

var batchCmd = &cobra.Command{
	Use:   "batch <json-dir> <out-dir> [label ... | all]",
	Short: "Extract point coordinates from every document in a directory",
	Long: `Batch runs the extractor over every .json document found directly in the
source directory (no recursion) and writes the coordinate files into the
output directory, one .txt per document, named by stem. Malformed documents
are skipped with a warning; the run ends with a processed/skipped/failed
summary.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := pointprep.NewLabelFilter(args[2:])

		result, err := pointprep.ExtractDir(args[0], args[1], filter)
		if err != nil {
			return fmt.Errorf("batch extract: %w", err)
		}

		log.Printf("Processed %d documents: %d extracted, %d skipped, %d failed",
			result.Total(), result.Extracted, result.Skipped, result.Failed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
}
