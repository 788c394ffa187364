package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/framescope/internal/adapters/driving/tui"
	"github.com/custodia-labs/framescope/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/framescope/internal/logger"
)

// configReloadDelay debounces bursts of writes to the config file.
const configReloadDelay = 250 * time.Millisecond

// tuiLogPath is where verbose logs are written while the TUI owns the terminal.
var tuiLogPath = func() string {
	return filepath.Join(os.TempDir(), "framescope-tui.log")
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for framescope.

The TUI shows results as a frame grid, or as a scene table for temporal
queries, and opens any frame with the keyframes around it.

Controls:
  /        - Edit the query line
  :        - Command mode (filter, model, k, videos, set, ...)
  Enter    - Search / open frame
  ←/→      - Previous / next page
  x s r    - Exclude / scroll around / rerank by colour
  c        - Commit the open frame for submission
  ctrl+s   - Send the pending submission
  ?        - Toggle help
  q        - Quit

Settings edited on disk are picked up while the TUI runs. With --verbose,
logs are written to framescope-tui.log in the temp directory.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts collects the configured services for the TUI.
func tuiPorts() *tui.Ports {
	return &tui.Ports{
		Search:     searchService,
		History:    historyService,
		Filter:     filterService,
		Results:    resultsView,
		Navigator:  navigator,
		Submission: submissionService,
		Settings:   settingsService,
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(tuiPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	restoreLog, err := redirectVerboseLog()
	if err != nil {
		return err
	}
	defer restoreLog()

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	app.WithContext(ctx)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	watchConfig(ctx, p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// watchConfig forwards config file changes to the running program.
func watchConfig(ctx context.Context, p *tea.Program) {
	if configWatcher == nil || settingsService == nil {
		return
	}
	go func() {
		err := configWatcher.Watch(ctx, configReloadDelay, func() {
			settings, err := settingsService.Get()
			p.Send(messages.SettingsReloaded{Settings: settings, Err: err})
		})
		if err != nil {
			logger.Warn("config watcher stopped: %v", err)
		}
	}()
}

// redirectVerboseLog moves verbose output off stderr for the lifetime of
// the TUI. The returned func restores stderr.
func redirectVerboseLog() (func(), error) {
	if !logger.IsVerbose() {
		return func() {}, nil
	}
	f, err := os.OpenFile(tuiLogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening TUI log: %w", err)
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}
