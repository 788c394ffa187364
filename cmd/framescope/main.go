// Command framescope searches video keyframes on a retrieval hub.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/custodia-labs/framescope/internal/adapters/driven/config/file"
	"github.com/custodia-labs/framescope/internal/adapters/driven/hub"
	"github.com/custodia-labs/framescope/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/framescope/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/framescope/internal/adapters/driving/cli"
	"github.com/custodia-labs/framescope/internal/core/domain"
	"github.com/custodia-labs/framescope/internal/core/ports/driven"
	"github.com/custodia-labs/framescope/internal/core/services"
	"github.com/custodia-labs/framescope/internal/logger"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

// Environment overrides, also read from a .env file in the working directory.
const (
	envHubURL  = "FRAMESCOPE_HUB_URL"
	envSession = "FRAMESCOPE_SESSION"
)

// sessionFile holds the generated session id inside the data directory.
const sessionFile = "session_id"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cleanup, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// cobra reports command errors itself.
	err = cli.ExecuteContext(ctx)
	cleanup()
	if err != nil {
		os.Exit(1)
	}
}

// setup wires the adapters and services into the command tree. The returned
// func releases the stores.
func setup() (func(), error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("reading .env: %v", err)
	}

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger.Debug("config: %s", configStore.Path())
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	if url := os.Getenv(envHubURL); url != "" {
		settings.Hub.BaseURL = url
	}

	hubClient := hub.NewClient(hub.Config{
		BaseURL:       settings.Hub.BaseURL,
		APIPrefix:     settings.Hub.APIPrefix,
		Timeout:       time.Duration(settings.Hub.TimeoutSeconds) * time.Second,
		RatePerSecond: float64(settings.Hub.RateLimit),
	})

	stores, err := openStores(settings.History.Backend)
	if err != nil {
		return nil, err
	}

	results := services.NewResultsView(settings.View.ResultsPerPage)
	history := services.NewHistoryService(stores.history)
	filter := services.NewFilterService(stores.exclusions, hubClient)
	submission := services.NewSubmissionService(hubClient)

	cli.SetServices(&cli.Services{
		Search: services.NewSearchService(
			hubClient, services.NewQueryRouter(), services.NewResultNormalizer(), results, history, filter,
		),
		History:    history,
		Filter:     filter,
		Navigator:  services.NewNeighborNavigator(hubClient, submission, settings.View.NeighborFrames),
		Submission: submission,
		Settings:   settingsService,
		Results:    results,
		Watcher:    configStore,
	})
	cli.SetVersion(version)

	return stores.close, nil
}

type sessionStores struct {
	history    driven.HistoryStore
	exclusions driven.ExclusionStore
	close      func()
}

// openStores returns the history and exclusion stores for the configured backend.
func openStores(backend domain.HistoryBackend) (*sessionStores, error) {
	if backend != domain.HistoryBackendSQLite {
		return &sessionStores{
			history:    memory.NewHistoryStore(),
			exclusions: memory.NewExclusionStore(),
			close:      func() {},
		}, nil
	}

	dataDir, err := defaultDataDir()
	if err != nil {
		return nil, err
	}
	session, err := sessionID(dataDir)
	if err != nil {
		return nil, err
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}
	logger.Debug("session %s in %s", session, store.Path())

	return &sessionStores{
		history:    store.HistoryStore(session),
		exclusions: store.ExclusionStore(session),
		close: func() {
			if err := store.Close(); err != nil {
				logger.Warn("closing session store: %v", err)
			}
		},
	}, nil
}

func defaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".framescope", "data"), nil
}

// sessionID returns FRAMESCOPE_SESSION when set. Otherwise it reads the id
// stored in dataDir, generating and storing a new one on first use.
func sessionID(dataDir string) (string, error) {
	if id := strings.TrimSpace(os.Getenv(envSession)); id != "" {
		return id, nil
	}

	path := filepath.Join(dataDir, sessionFile)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("reading session id: %w", err)
	}

	id := uuid.NewString()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0600); err != nil {
		return "", fmt.Errorf("writing session id: %w", err)
	}
	return id, nil
}
