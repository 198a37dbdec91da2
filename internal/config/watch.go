package config

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors paths and calls onChange with the path that was written.
// It runs until ctx is cancelled. Editors often save via rename, so create
// events count as writes and the file is re-added afterwards.
func Watch(ctx context.Context, onChange func(path string), paths ...string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, p := range paths {
		if err := watcher.Add(p); err != nil {
			return err
		}
		slog.Info("config: watching for changes", "path", p)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			slog.Debug("config: change detected", "path", event.Name, "op", event.Op.String())
			onChange(event.Name)
			_ = watcher.Add(event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: watcher error", "err", err)
		}
	}
}
