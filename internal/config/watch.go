package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	aglaerrors "github.com/gxo-labs/aglalog/pkg/aglalog/v1/errors"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/plugin"
)

// reloadDelay lets editors finish writing before the file is read back.
const reloadDelay = 100 * time.Millisecond

// ApplyFunc receives the options of a successfully reloaded file.
// Configuration.SetConfiguration satisfies it.
type ApplyFunc func(Options) error

// Watch reloads the config file at path whenever it changes and hands the
// result to apply, until ctx is done. A file that fails to load or apply is
// reported on log and the previous configuration stays in place.
//
// The parent directory is watched rather than the file so editors that
// replace the file through a rename keep triggering reloads.
func Watch(ctx context.Context, path string, reg plugin.Registry, apply ApplyFunc, log *slog.Logger) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return aglaerrors.NewConfigError("failed to resolve config path for watching", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return aglaerrors.NewConfigError("failed to create config file watcher", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil {
			log.Warn("failed to close config file watcher", "error", closeErr)
		}
	}()

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return aglaerrors.NewConfigError("failed to watch config directory", err)
	}
	log.Info("watching config file for changes", "path", absPath)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(reloadDelay):
			}
			reload(absPath, reg, apply, log)
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("config watcher error", "error", watchErr)
		}
	}
}

func reload(path string, reg plugin.Registry, apply ApplyFunc, log *slog.Logger) {
	opts, err := LoadOptions(path, reg)
	if err != nil {
		log.Error("config reload failed, keeping previous configuration", "path", path, "error", err)
		return
	}
	if err := apply(opts); err != nil {
		log.Error("config apply failed, keeping previous configuration", "path", path, "error", err)
		return
	}
	log.Info("config reloaded", "path", path)
}
