package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/framescope/internal/core/domain"
)

var (
	scrollFPS   float64
	scrollStart float64
	scrollEnd   float64
	scrollModel string
	scrollPage  int
)

var scrollCmd = &cobra.Command{
	Use:   "scroll <video> <keyframe>",
	Short: "Browse every frame of the shot containing a keyframe",
	Long: `Runs a scroll search restricted to one video and the time range of a
shot, as given by its start and end frame numbers.`,
	Example: `  framescope scroll L01_V001 00120 --fps 25 --start 100 --end 300`,
	Args:    cobra.ExactArgs(2),
	RunE:    runScroll,
}

func init() {
	scrollCmd.Flags().Float64Var(&scrollFPS, "fps", 25, "frame rate of the video")
	scrollCmd.Flags().Float64Var(&scrollStart, "start", 0, "first frame of the shot")
	scrollCmd.Flags().Float64Var(&scrollEnd, "end", 0, "last frame of the shot")
	scrollCmd.Flags().StringVarP(&scrollModel, "model", "m", "", "retrieval model (default from settings)")
	scrollCmd.Flags().IntVarP(&scrollPage, "page", "p", 1, "result page to print")
	rootCmd.AddCommand(scrollCmd)
}

func runScroll(cmd *cobra.Command, args []string) error {
	if searchService == nil || resultsView == nil {
		return errNotConfigured("search")
	}

	req, err := defaultRequest(cmd)
	if err != nil {
		return err
	}
	if scrollModel != "" {
		req.Model = domain.Model(strings.ToUpper(scrollModel))
	}

	frame := focalFrame(args[0], args[1], scrollFPS)
	frame.RelatedStartFrame = domain.FlexFloat(scrollStart)
	frame.RelatedEndFrame = domain.FlexFloat(scrollEnd)
	if scrollEnd == 0 {
		frame.RelatedEndFrame = domain.FlexFloat(frame.FrameNumber())
	}

	entry, err := searchService.ScrollAround(cmd.Context(), frame, req.Model, req.Settings)
	if err != nil {
		return fmt.Errorf("scroll failed: %w", err)
	}

	resultsView.DisplayPage(scrollPage)
	printResults(cmd, entry)
	return nil
}
