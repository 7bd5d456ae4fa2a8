package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// reloadOps are the events on the config file that trigger a reload. Create
// and Rename cover editors that save through a temp file moved over path.
const reloadOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

// Watch reloads path whenever it changes and passes the result to onChange,
// until ctx is done. The parent directory is watched, so the file may be
// replaced atomically, or not exist yet when Watch starts.
//
// A file that fails to load is logged and skipped; onChange keeps the last
// good Config.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	target := filepath.Clean(path)
	dir := filepath.Dir(target)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("config: watch %s: %w", dir, err)
	}
	slog.Debug("config: watching", "path", target)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&reloadOps == 0 {
				continue
			}
			cfg, err := Load(target)
			if err != nil {
				slog.Warn("config: reload skipped", "path", target, "op", ev.Op.String(), "err", err)
				continue
			}
			slog.Info("config: reloaded", "path", target)
			onChange(cfg)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("config: watcher error", "err", err)
		}
	}
}
