package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/justyntemme/simplegain/pkg/framework/debug"
)

// watchBundle reads the bundle at path, then reloads it whenever the file is
// written or replaced until ctx is done. The first read is returned; later
// ones go to onLoad on the watcher goroutine.
func watchBundle(ctx context.Context, path string, logger *debug.Logger, onLoad func(script string)) (string, error) {
	path = filepath.Clean(path)
	script, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read bundle: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return "", fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: build tools often replace the file instead of
	// writing it in place, which drops a watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return "", fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				data, err := os.ReadFile(path)
				if err != nil {
					logger.Warn("reload bundle: %v", err)
					continue
				}
				logger.Info("reloaded %s (%d bytes)", path, len(data))
				onLoad(string(data))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("watcher: %v", err)
			case <-ctx.Done():
				return
			}
		}
	}()

	return string(script), nil
}
