// Package watch reports changes to schema and data files so callers can
// re-render a form view.
package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce groups bursts of editor writes into a single callback.
const DefaultDebounce = 150 * time.Millisecond

// ChangeFunc receives the paths that changed since the previous call.
type ChangeFunc func(paths []string)

// Files watches the given files until ctx is cancelled. Parent directories
// are watched instead of the files so editors that replace files on save
// keep being tracked. Empty paths are ignored.
func Files(ctx context.Context, paths []string, debounce time.Duration, logger *slog.Logger, cb ChangeFunc) error {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	targets := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		if path == "" {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("watch: resolve %s: %w", path, err)
		}
		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	if len(targets) == 0 {
		return fmt.Errorf("watch: no files to watch")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer w.Close()

	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch: add %s: %w", dir, err)
		}
	}

	logger.Info("watch: started", slog.Int("files", len(targets)))

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending = make(map[string]struct{})
	)
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerC = timer.C
			return
		}
		timer.Reset(debounce)
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watch: stopped")
			return nil

		case <-timerC:
			timer, timerC = nil, nil
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			clear(pending)
			logger.Debug("watch: change", slog.Any("paths", changed))
			if cb != nil {
				cb(changed)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			if _, ok := targets[abs]; !ok {
				continue
			}
			pending[abs] = struct{}{}
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch: error", slog.String("error", watchErr.Error()))
		}
	}
}
