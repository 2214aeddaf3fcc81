// Prepares crowd/point-counting training datasets from LabelMe point
// annotations: coordinate extraction, batch conversion, train/test assembly
// and TFRecord export.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pointprep CLI.
var rootCmd = &cobra.Command{
	Use:   "pointprep",
	Short: "Point annotation dataset preparation",
	Long: `pointprep converts LabelMe-style point annotations into per-image
coordinate files and assembles them, together with the source images, into a
train/test dataset layout with manifest lists for point-counting training
pipelines.

Each preparation stage is a subcommand: extract, batch, assemble, and
tfrecord.`,
	Version: version,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
