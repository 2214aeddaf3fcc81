package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/sensorable/pointprep"
)

var extractCmd = &cobra.Command{
	Use:   "extract <annotation.json> [label ... | all]",
	Short: "Extract point coordinates from one LabelMe document",
	Long: `Extract reads a single LabelMe annotation document, keeps the shapes with
shape_type "point" whose label matches one of the given label tokens (no
tokens, or the single token "all", keeps every label), and writes one "x y"
line per point to a .txt file beside the input, named by the input's stem.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := pointprep.NewLabelFilter(args[1:])
		if labels := filter.Labels(); labels == nil {
			log.Print("Label filter: off (extracting every point shape)")
		} else {
			log.Print("Label filter: keeping only ", labels)
		}

		outPath, n, err := pointprep.ExtractFile(args[0], "", filter)
		if err != nil {
			return fmt.Errorf("extract %s: %w", args[0], err)
		}
		if n == 0 {
			log.Printf("No matching point shapes in %q, nothing written", args[0])
			return nil
		}

		log.Printf("Extracted %d point coordinates to %q", n, outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
