package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/framescope/internal/core/domain"
)

var (
	historyShowYAML bool
	historyShowJSON bool
	historyPage     int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and replay this session's searches",
	Long: `Lists the searches of the current session, most recent first.

History is kept per session. With history.backend = sqlite, every
invocation sharing FRAMESCOPE_SESSION sees the same history.`,
	RunE: runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded searches",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <index>",
	Short: "Show one recorded search",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyReplayCmd = &cobra.Command{
	Use:   "replay [index]",
	Short: "Re-render a recorded search without querying the hub",
	Long: `Restores the filters and settings of a recorded search and prints its
stored results. Without an index the most recent search is replayed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistoryReplay,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear this session's history",
	RunE:  runHistoryClear,
}

func init() {
	historyShowCmd.Flags().BoolVar(&historyShowYAML, "yaml", false, "output as YAML")
	historyShowCmd.Flags().BoolVar(&historyShowJSON, "json", false, "output as JSON")
	historyReplayCmd.Flags().IntVarP(&historyPage, "page", "p", 1, "result page to print")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyReplayCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errNotConfigured("history")
	}

	entries, err := historyService.Entries(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if len(entries) == 0 {
		cmd.Println("No history yet.")
		return nil
	}

	width := terminalWidth(cmd)
	for i, entry := range entries {
		cmd.Println(fit(fmt.Sprintf("%2d  %s  (%d results)", i, entry.Label(), entry.Results.Len()), width))
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errNotConfigured("history")
	}
	i, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	entry, err := historyService.Get(cmd.Context(), i)
	if err != nil {
		return fmt.Errorf("history entry %d: %w", i, err)
	}

	switch {
	case historyShowJSON:
		return writeJSON(cmd.OutOrStdout(), entry)
	case historyShowYAML:
		data, err := yaml.Marshal(exportEntry(*entry))
		if err != nil {
			return fmt.Errorf("failed to marshal entry: %w", err)
		}
		cmd.Print(string(data))
		return nil
	}

	cmd.Println(entry.Label())
	cmd.Printf("  Type:     %s\n", entry.QueryType)
	cmd.Printf("  Model:    %s\n", entry.Model)
	cmd.Printf("  K:        %d\n", entry.Settings.K)
	if entry.Filters.VideoFilter != "" {
		cmd.Printf("  Videos:   %s\n", entry.Filters.VideoFilter)
	}
	if entry.Filters.S2TFilter != "" {
		cmd.Printf("  S2T:      %s\n", entry.Filters.S2TFilter)
	}
	if entry.Filters.TimeIn != "" || entry.Filters.TimeOut != "" {
		cmd.Printf("  Time:     %s-%s\n", entry.Filters.TimeIn, entry.Filters.TimeOut)
	}
	cmd.Printf("  Results:  %d (%s)\n", entry.Results.Len(), entry.Results.Shape)
	return nil
}

func runHistoryReplay(cmd *cobra.Command, args []string) error {
	if searchService == nil || resultsView == nil {
		return errNotConfigured("search")
	}

	i := 0
	if len(args) > 0 {
		var err error
		if i, err = parseIndex(args[0]); err != nil {
			return err
		}
	}

	form, err := defaultRequest(cmd)
	if err != nil {
		return err
	}
	restored, err := searchService.Replay(cmd.Context(), i, form)
	if err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}

	cmd.Printf("Replayed: %q (%s, %s)\n", restored.Query, restored.Type, restored.Model)
	resultsView.DisplayPage(historyPage)
	printResults(cmd, nil)
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errNotConfigured("history")
	}
	if err := historyService.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	cmd.Println("History cleared.")
	return nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("%w: index must be a non-negative integer, got %q", domain.ErrInvalidInput, s)
	}
	return i, nil
}

// historyExport is the YAML form of a history entry.
type historyExport struct {
	ID        string                `yaml:"id"`
	Timestamp time.Time             `yaml:"timestamp"`
	Label     string                `yaml:"label"`
	Query     string                `yaml:"query,omitempty"`
	QueryType string                `yaml:"query_type"`
	Model     string                `yaml:"model"`
	Filters   domain.ContextFilters `yaml:"filters"`
	K         int                   `yaml:"k"`
	Shape     string                `yaml:"shape"`
	Frames    []frameExport         `yaml:"frames"`
}

type frameExport struct {
	Index    int     `yaml:"index"`
	Video    string  `yaml:"video"`
	Keyframe string  `yaml:"keyframe"`
	Time     string  `yaml:"time"`
	Score    float64 `yaml:"score,omitempty"`
}

func exportEntry(entry domain.SearchContext) historyExport {
	out := historyExport{
		ID:        entry.ID,
		Timestamp: entry.Timestamp,
		Label:     entry.Label(),
		Query:     entry.Query,
		QueryType: entry.QueryType.String(),
		Model:     entry.Model.String(),
		Filters:   entry.Filters,
		K:         entry.Settings.K,
		Shape:     entry.Results.Shape.String(),
		Frames:    make([]frameExport, 0, len(entry.Results.Records)),
	}
	for _, rec := range entry.Results.Records {
		out.Frames = append(out.Frames, frameExport{
			Index:    rec.Index,
			Video:    rec.VideoName,
			Keyframe: rec.KeyframeID,
			Time:     rec.Timecode(),
			Score:    float64(rec.Score),
		})
	}
	return out
}
