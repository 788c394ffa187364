package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/framescope/internal/adapters/driving/imageref"
	"github.com/custodia-labs/framescope/internal/core/domain"
)

var (
	searchModel     string
	searchImage     string
	searchK         int
	searchVideos    []string
	searchS2T       string
	searchPage      int
	searchJSON      bool
	searchTranslate bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search keyframes by text or image",
	Long: `Searches the hub for keyframes matching a description.

With a TEMPORAL_ model and two or more sentences, each sentence is matched
as a consecutive scene and results are grouped per video. An empty query
scrolls through frames using the filters only.

Use --image with a URL or a local file to search by example image.`,
	Example: `  framescope search "a red car in the rain"
  framescope search -m TEMPORAL_SIGLIP_V2 "A man opens a door. He walks into the rain."
  framescope search --image ./frame.jpg --video L01_V001`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchModel, "model", "m", "", "retrieval model (default from settings)")
	searchCmd.Flags().StringVar(&searchImage, "image", "", "search by image URL or local file")
	searchCmd.Flags().IntVar(&searchK, "k", 0, "number of results to request (default from settings)")
	searchCmd.Flags().StringSliceVar(&searchVideos, "video", nil, "restrict to these videos")
	searchCmd.Flags().StringVar(&searchS2T, "s2t", "", "transcript filter")
	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 1, "result page to print")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output the search context as JSON")
	searchCmd.Flags().BoolVar(&searchTranslate, "translate", false, "translate the query to English first")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil || resultsView == nil {
		return errNotConfigured("search")
	}
	ctx := cmd.Context()

	req, err := defaultRequest(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		req.Query = args[0]
	}
	if searchImage != "" {
		image, err := imageref.Resolve(searchImage)
		if err != nil {
			return err
		}
		req.Type = domain.QueryImage
		req.ImagePath = image
	}
	if searchModel != "" {
		req.Model = domain.Model(strings.ToUpper(searchModel))
	}
	if searchK > 0 {
		req.Settings.K = searchK
	}
	if searchTranslate {
		req.AutoTranslate = true
	}
	if filterService != nil {
		if cmd.Flags().Changed("video") {
			filterService.SetVideos(searchVideos)
		}
		if cmd.Flags().Changed("s2t") {
			filterService.SetS2T(searchS2T)
		}
		if req.Filters, err = filterService.Filters(ctx); err != nil {
			return err
		}
	}

	entry, err := searchService.Submit(ctx, req)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return writeJSON(cmd.OutOrStdout(), entry)
	}
	resultsView.DisplayPage(searchPage)
	printResults(cmd, entry)
	return nil
}

// defaultRequest builds a text request from the stored settings.
func defaultRequest(cmd *cobra.Command) (domain.SearchRequest, error) {
	req := domain.SearchRequest{
		Type:     domain.QueryText,
		Model:    domain.DefaultAppSettings().Query.Model,
		Settings: domain.DefaultSearchSettings(),
	}
	if settingsService == nil {
		return req, nil
	}
	settings, err := settingsService.Get()
	if err != nil {
		return req, fmt.Errorf("failed to get settings: %w", err)
	}
	req.Model = settings.Query.Model
	req.Settings = settings.Query.Settings
	req.AutoTranslate = settings.Query.AutoTranslate
	if resultsView != nil {
		resultsView.SetResultsPerPage(settings.View.ResultsPerPage)
	}
	return req, nil
}
