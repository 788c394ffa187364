package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/framescope/internal/core/domain"
)

var neighborsFPS float64

var neighborsCmd = &cobra.Command{
	Use:   "neighbors <video> <keyframe>",
	Short: "List the frames around a keyframe",
	Long: `Fetches the neighbouring frames of a keyframe, as shown in the detail
view's strip. The focal frame is marked with '>'.`,
	Example: `  framescope neighbors L01_V001 00120 --fps 25`,
	Args:    cobra.ExactArgs(2),
	RunE:    runNeighbors,
}

func init() {
	neighborsCmd.Flags().Float64Var(&neighborsFPS, "fps", 25, "frame rate of the video")
	rootCmd.AddCommand(neighborsCmd)
}

func runNeighbors(cmd *cobra.Command, args []string) error {
	if navigator == nil {
		return errNotConfigured("navigator")
	}

	gen := navigator.Open(focalFrame(args[0], args[1], neighborsFPS))
	navigator.Load(cmd.Context(), gen)
	defer navigator.Close()

	if !navigator.StripVisible() {
		cmd.Println("No neighbouring frames available.")
	}

	cursor := navigator.Cursor()
	for i, frame := range navigator.Frames() {
		mark := " "
		if i == cursor {
			mark = ">"
		}
		cmd.Printf("%s %s\n", mark, describeNeighbor(frame))
	}
	return nil
}

func describeNeighbor(rec domain.FrameRecord) string {
	line := fmt.Sprintf("%s #%s %s", rec.BaseVideoName(), rec.FrameNumberText(), rec.Timecode())
	if rec.FramePath != "" {
		line += "  " + rec.FramePath
	}
	return line
}
