// Package cli provides the cobra command tree for framescope.
package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/framescope/internal/core/ports/driving"
	"github.com/custodia-labs/framescope/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var verbose bool

// Services wired by main. Commands report a configuration error when the
// service they need is nil.
var (
	searchService     driving.SearchService
	historyService    driving.HistoryService
	filterService     driving.FilterService
	navigator         driving.NeighborNavigator
	submissionService driving.SubmissionService
	settingsService   driving.SettingsService
	resultsView       driving.ResultsView
	configWatcher     ConfigWatcher
)

// ConfigWatcher reloads the configuration when its file changes and calls
// onChange afterwards. Watch blocks until ctx is done.
type ConfigWatcher interface {
	Watch(ctx context.Context, delay time.Duration, onChange func()) error
}

// Services groups the driving ports the commands use.
type Services struct {
	Search     driving.SearchService
	History    driving.HistoryService
	Filter     driving.FilterService
	Navigator  driving.NeighborNavigator
	Submission driving.SubmissionService
	Settings   driving.SettingsService
	Results    driving.ResultsView

	// Watcher is optional; the TUI hot-reloads settings when it is set.
	Watcher ConfigWatcher
}

var rootCmd = &cobra.Command{
	Use:   "framescope",
	Short: "Search video keyframes on a retrieval hub",
	Long: `framescope queries a video keyframe retrieval hub by text, image, or
multi-scene (temporal) descriptions, browses the frames around a hit,
and submits answers to a DRES evaluation server.

Run "framescope tui" for the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging to stderr")
}

// SetServices installs the services used by every command.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	searchService = s.Search
	historyService = s.History
	filterService = s.Filter
	navigator = s.Navigator
	submissionService = s.Submission
	settingsService = s.Settings
	resultsView = s.Results
	configWatcher = s.Watcher
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx available to every command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// errNotConfigured reports a missing service.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}
