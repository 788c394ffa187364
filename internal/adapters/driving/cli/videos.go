package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var videosBatches []string

var videosCmd = &cobra.Command{
	Use:     "videos",
	Short:   "List the video names of one or more batches",
	Example: `  framescope videos --batch 0 --batch 1`,
	RunE:    runVideos,
}

func init() {
	videosCmd.Flags().StringSliceVarP(&videosBatches, "batch", "b", []string{"0"}, "batch ids to list")
	rootCmd.AddCommand(videosCmd)
}

func runVideos(cmd *cobra.Command, _ []string) error {
	if filterService == nil {
		return errNotConfigured("filter")
	}

	names, err := filterService.LoadVideoNames(cmd.Context(), videosBatches)
	if err != nil {
		return fmt.Errorf("failed to load video names: %w", err)
	}
	if len(names) == 0 {
		cmd.Println("No videos found.")
		return nil
	}
	for _, name := range names {
		cmd.Println(name)
	}
	return nil
}
