package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cppkgs/concpp/internal/env"
)

var (
	sourceVersion string
	sourceDir     string
)

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Fetch and extract the connector source tree",
	RunE:  runSource,
}

func init() {
	sourceCmd.Flags().StringVar(&sourceVersion, "version", "9.2.0", "Upstream connector version")
	sourceCmd.Flags().StringVar(&sourceDir, "dir", "", "Target directory (default: user cache)")
	rootCmd.AddCommand(sourceCmd)
}

func runSource(cmd *cobra.Command, args []string) error {
	dir := sourceDir
	if dir == "" {
		var err error
		if dir, err = env.SourceDir(sourceVersion); err != nil {
			return err
		}
	}
	if err := materialize(cmd.Context(), sourceVersion, dir); err != nil {
		return err
	}
	fmt.Println(dir)
	return nil
}
