package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the hub connection, search defaults, and view options.

Settings are stored in ~/.framescope/config.toml. FRAMESCOPE_HUB_URL
overrides hub.base_url for a single run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Validates and stores one setting. Run "framescope settings keys" for
the list of keys.`,
	Example: `  framescope settings set search.model TEMPORAL_SIGLIP_V2
  framescope settings set view.results_per_page 24`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	RunE:  runSettingsKeys,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Hub]")
	cmd.Printf("  Base URL:   %s\n", settings.Hub.BaseURL)
	if settings.Hub.APIPrefix != "" {
		cmd.Printf("  API prefix: %s\n", settings.Hub.APIPrefix)
	}
	cmd.Printf("  Timeout:    %ds\n", settings.Hub.TimeoutSeconds)
	if settings.Hub.RateLimit > 0 {
		cmd.Printf("  Rate limit: %d req/s\n", settings.Hub.RateLimit)
	} else {
		cmd.Println("  Rate limit: off")
	}
	cmd.Println()

	q := settings.Query
	cmd.Println("[Search]")
	cmd.Printf("  Model:              %s\n", q.Model)
	cmd.Printf("  K:                  %d\n", q.Settings.K)
	cmd.Printf("  Return transcript:  %t\n", q.Settings.ReturnS2T)
	cmd.Printf("  Return objects:     %t\n", q.Settings.ReturnObject)
	cmd.Printf("  Frame class filter: %t\n", q.Settings.FrameClassFilter)
	cmd.Printf("  Auto translate:     %t\n", q.AutoTranslate)
	cmd.Println()

	cmd.Println("[View]")
	cmd.Printf("  Results per page: %d\n", settings.View.ResultsPerPage)
	cmd.Printf("  Neighbour frames: %d\n", settings.View.NeighborFrames)
	cmd.Println()

	cmd.Println("[History]")
	cmd.Printf("  Backend: %s\n", settings.History.Backend.Description())
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("%s updated.\n", args[0])
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}
	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}
