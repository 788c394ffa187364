package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/framescope/internal/core/domain"
)

// terminalWidth returns the width of stdout when it is a terminal, or 0.
func terminalWidth(cmd *cobra.Command) int {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}

// fit truncates s to width display cells. Width 0 means unlimited.
func fit(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// formatFrame renders one record as a single line.
func formatFrame(rec domain.FrameRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d] %s #%s %s", rec.Index, rec.BaseVideoName(), rec.FrameNumberText(), rec.Timecode())
	if rec.Score != 0 {
		fmt.Fprintf(&b, "  score %.4f", float64(rec.Score))
	}
	if len(rec.Objects) > 0 {
		names := make([]string, 0, len(rec.Objects))
		for _, o := range rec.Objects {
			names = append(names, o.Object)
		}
		fmt.Fprintf(&b, "  objects: %s", strings.Join(names, ", "))
	}
	if t := rec.Transcript(); t != "" {
		fmt.Fprintf(&b, "  \"%s\"", t)
	}
	return b.String()
}

// printResults writes the view's current page.
func printResults(cmd *cobra.Command, entry *domain.SearchContext) {
	width := terminalWidth(cmd)
	out := cmd.OutOrStdout()

	if entry != nil {
		fmt.Fprintf(out, "%s [%s, %s]\n", entry.Summary(), entry.QueryType, entry.Model.Display())
	}

	rs := resultsView.Results()
	if rs.IsEmpty() {
		fmt.Fprintln(out, "No results found.")
		return
	}

	info := resultsView.PageInfo()
	switch resultsView.Mode() {
	case domain.ViewTable:
		fmt.Fprintf(out, "%d videos x %d scenes (page %d/%d)\n\n", info.Total, rs.SceneCount, info.Page, info.TotalPages)
		for _, row := range resultsView.VisibleRows() {
			fmt.Fprintln(out, fit(row.VideoName, width))
			for scene, cell := range row.Cells {
				if cell == nil {
					fmt.Fprintf(out, "  scene %d: -\n", scene+1)
					continue
				}
				fmt.Fprintln(out, fit(fmt.Sprintf("  scene %d: %s", scene+1, formatFrame(*cell)), width))
			}
		}
	default:
		fmt.Fprintf(out, "%d frames (page %d/%d)\n\n", info.Total, info.Page, info.TotalPages)
		for _, rec := range resultsView.PageRecords() {
			fmt.Fprintln(out, fit(formatFrame(rec), width))
		}
	}
}

// focalFrame builds a record for a frame given on the command line.
func focalFrame(video, keyframe string, fps float64) domain.FrameRecord {
	if !strings.HasSuffix(video, domain.VideoExtension) {
		video += domain.VideoExtension
	}
	return domain.FrameRecord{
		Index:      -1,
		VideoName:  video,
		KeyframeID: keyframe,
		FPS:        domain.FlexFloat(fps),
	}
}
