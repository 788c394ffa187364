package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	submitFPS     float64
	submitSession string
	submitEval    string
	submitDryRun  bool
)

var submitCmd = &cobra.Command{
	Use:   "submit <video> <keyframe>",
	Short: "Submit a frame to the DRES evaluation server",
	Long: `Converts a keyframe to a millisecond timestamp and submits it as the
answer for the active evaluation. Session and evaluation ids are fetched
from the hub unless given.`,
	Example: `  framescope submit L01_V001 00750 --fps 25`,
	Args:    cobra.ExactArgs(2),
	RunE:    runSubmit,
}

func init() {
	submitCmd.Flags().Float64Var(&submitFPS, "fps", 25, "frame rate of the video")
	submitCmd.Flags().StringVar(&submitSession, "session", "", "DRES session id")
	submitCmd.Flags().StringVar(&submitEval, "eval", "", "DRES evaluation id")
	submitCmd.Flags().BoolVar(&submitDryRun, "dry-run", false, "print the submission without sending it")
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	if submissionService == nil {
		return errNotConfigured("submission")
	}
	ctx := cmd.Context()

	sub, err := submissionService.Fill(ctx, focalFrame(args[0], args[1], submitFPS))
	if err != nil {
		return fmt.Errorf("failed to prepare submission: %w", err)
	}
	if submitSession != "" {
		sub.SessionID = submitSession
	}
	if submitEval != "" {
		sub.EvalID = submitEval
	}

	cmd.Printf("Session: %s  Eval: %s\n", sub.SessionID, sub.EvalID)
	cmd.Printf("Media:   %s  %d-%d ms\n", sub.MediaItem, sub.StartMS, sub.EndMS)
	if submitDryRun {
		return nil
	}

	result, err := submissionService.Submit(ctx, *sub)
	if err != nil {
		return fmt.Errorf("submission failed: %w", err)
	}

	verdict := "INCORRECT"
	if result.Correct() {
		verdict = "CORRECT"
	}
	cmd.Printf("%s: %s\n", verdict, result.Description)
	return nil
}
