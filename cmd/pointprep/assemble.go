package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sensorable/pointprep"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble <images-dir> <coords-dir> <out-root> <train-fraction>",
	Short: "Assemble a train/test dataset from images and coordinate files",
	Long: `Assemble matches the images to the coordinate files by filename stem,
randomly partitions the matched pairs into train and test groups by the given
fraction, copies each pair into <out-root>/<group>/<stem>/ and writes the
train.list and test.list manifests at the output root.

The split is reproducible: the same inputs and --seed produce the same
partition.`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		fraction, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return fmt.Errorf("invalid train fraction %q: %v", args[3], err)
		}
		seed, _ := cmd.Flags().GetInt64("seed")

		result, err := pointprep.Assemble(args[0], args[1], args[2], fraction, seed)
		if err != nil {
			return fmt.Errorf("assemble: %w", err)
		}

		log.Printf("Dataset assembled at %q: %d matched, %d train, %d test, %d copy failures",
			args[2], result.Matched, result.Train, result.Test, result.Failed)
		log.Printf("Excluded unmatched samples: %d images without coordinates,"+
			" %d coordinate files without images", result.MissingCoords, result.MissingImages)
		return nil
	},
}

func init() {
	assembleCmd.Flags().Int64("seed", 42, "random seed for the train/test split")

	rootCmd.AddCommand(assembleCmd)
}
