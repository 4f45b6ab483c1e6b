package projects

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Debounce is how long Watch waits after the last change before reloading.
var Debounce = 300 * time.Millisecond

// Watch reloads the catalog whenever path is written, created or renamed
// into place, until ctx is cancelled. The directory is watched rather than
// the file so editors that save by rename are still seen. A catalog that
// fails to parse is logged and the previous contents stay live.
func Watch(ctx context.Context, path string, c *Catalog, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("projects: watch: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("projects: watch: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return fmt.Errorf("projects: watch %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer w.Close()

		timer := time.NewTimer(Debounce)
		timer.Stop()
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				timer.Reset(Debounce)

			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Error("project watcher error", zap.Error(err))

			case <-timer.C:
				if err := c.Reload(abs); err != nil {
					logger.Warn("project catalog reload failed", zap.String("path", abs), zap.Error(err))
					continue
				}
				logger.Info("project catalog reloaded", zap.String("path", abs), zap.Int("projects", c.Len()))
			}
		}
	}()
	return nil
}
