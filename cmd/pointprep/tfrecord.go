package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sensorable/pointprep"
)

var tfrecordCmd = &cobra.Command{
	Use:   "tfrecord <dataset-root> <group> <record-file>",
	Short: "Export an assembled dataset group to TFRecord files",
	Long: `Tfrecord serialises the samples listed in the group's manifest (train.list
or test.list) into TFRecord files. Each example carries the raw image bytes
and the point coordinates as float lists; images are never decoded.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		group := args[1]
		if group != pointprep.GroupTrain && group != pointprep.GroupTest {
			return fmt.Errorf("unknown group %q: must be %q or %q",
				group, pointprep.GroupTrain, pointprep.GroupTest)
		}
		numShards, _ := cmd.Flags().GetInt("num-shards")

		if err := pointprep.WriteTFRecord(args[0], group, args[2], numShards); err != nil {
			return fmt.Errorf("tfrecord export: %w", err)
		}
		return nil
	},
}

func init() {
	tfrecordCmd.Flags().Int("num-shards", 1, "number of TFRecord shard files to create")

	rootCmd.AddCommand(tfrecordCmd)
}
