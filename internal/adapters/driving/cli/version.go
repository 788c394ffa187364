package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the configured hub",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("framescope %s (%s %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		if settingsService == nil {
			return
		}
		if settings, err := settingsService.Get(); err == nil {
			cmd.Printf("hub: %s\n", settings.Hub.BaseURL)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
