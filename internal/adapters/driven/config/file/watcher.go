package file

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/framescope/internal/logger"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 250 * time.Millisecond

// Watch reloads the store whenever its file changes and then calls onChange.
// Events are debounced by delay. The directory is watched rather than the
// file so atomic renames by editors are seen. Watch blocks until ctx is done.
func (s *ConfigStore) Watch(ctx context.Context, delay time.Duration, onChange func()) error {
	if delay <= 0 {
		delay = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.filePath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Debug("config: watching %s (debounce %s)", s.filePath, delay)

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	reload := func() {
		if err := s.Load(); err != nil {
			logger.Warn("config: reload failed: %v", err)
			return
		}
		logger.Debug("config: reloaded %s", s.filePath)
		if onChange != nil {
			onChange()
		}
	}
	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, reload)
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.filePath) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config: watch error: %v", err)
		}
	}
}
