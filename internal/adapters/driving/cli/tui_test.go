package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/framescope/internal/adapters/driving/tui"
	"github.com/custodia-labs/framescope/internal/logger"
)

func TestTUICmd_Registered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"tui"})
	require.NoError(t, err)
	assert.Equal(t, "tui", cmd.Name())
	assert.Contains(t, cmd.Long, "Command mode")
}

func TestTUICmd_NotConfigured(t *testing.T) {
	SetServices(nil)

	_, err := execute(t, "tui")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create TUI")
	assert.ErrorIs(t, err, tui.ErrMissingSearchService)
}

func TestTUIPorts(t *testing.T) {
	setupTestServices(t)

	ports := tuiPorts()

	require.NoError(t, ports.Validate())
	assert.Equal(t, searchService, ports.Search)
	assert.Equal(t, navigator, ports.Navigator)
	assert.Equal(t, submissionService, ports.Submission)
	assert.Equal(t, settingsService, ports.Settings)
}

type stubWatcher struct{}

func (stubWatcher) Watch(ctx context.Context, _ time.Duration, _ func()) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestSetServices_InstallsWatcher(t *testing.T) {
	w := stubWatcher{}
	SetServices(&Services{Watcher: w})
	t.Cleanup(func() { SetServices(nil) })

	assert.Equal(t, ConfigWatcher(w), configWatcher)

	SetServices(nil)
	assert.Nil(t, configWatcher)
}

func useTUILog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tui.log")
	orig := tuiLogPath
	tuiLogPath = func() string { return path }
	t.Cleanup(func() {
		tuiLogPath = orig
		logger.SetVerbose(false)
	})
	return path
}

func TestRedirectVerboseLog(t *testing.T) {
	path := useTUILog(t)
	logger.SetVerbose(true)

	restore, err := redirectVerboseLog()
	require.NoError(t, err)
	logger.Debug("route %s", "text")
	restore()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "route text")
}

func TestRedirectVerboseLog_Quiet(t *testing.T) {
	path := useTUILog(t)
	logger.SetVerbose(false)

	restore, err := redirectVerboseLog()
	require.NoError(t, err)
	restore()

	assert.NoFileExists(t, path)
}
