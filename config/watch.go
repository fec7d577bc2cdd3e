package config

import (
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchRetryInterval = time.Second

// fileWatcher drives reload notifications for a set of configuration files.
type fileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	reload   func()
	paths    []string
	absPaths map[string]bool
}

// WatchFiles invokes reload whenever one of the given files changes, until
// closeCh is closed.
//
// reload always fires once immediately after the watches are in place, so a
// change racing the setup is never missed; callers should treat reload as
// "rebuild the snapshot now" rather than as a change description. Watch
// setup failures (e.g. a file that does not exist yet) are logged and
// retried.
//
// Typical wiring rebuilds through the same Builder:
//
//	closeCh := make(chan struct{})
//	err := config.WatchFiles([]string{"app.yaml"}, logger, func() {
//	    snap, err := builder.Build()
//	    ...
//	}, closeCh)
func WatchFiles(paths []string, logger *slog.Logger, reload func(), closeCh <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: unable to create file watcher: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	fw := &fileWatcher{
		watcher:  watcher,
		logger:   logger.With(slog.String("component", "config.watch")),
		reload:   reload,
		paths:    paths,
		absPaths: make(map[string]bool),
	}
	go fw.run(closeCh)
	return nil
}

func (fw *fileWatcher) run(closeCh <-chan struct{}) {
	retryCh := make(chan struct{}, 1)
	scheduleRetry := func() {
		time.AfterFunc(watchRetryInterval, func() {
			select {
			case retryCh <- struct{}{}: // one pending retry is enough
			default:
			}
		})
	}
	for {
		if err := fw.setupWatches(); err != nil {
			fw.logger.Warn("watch setup failed, will retry", slog.String("err", err.Error()))
			scheduleRetry()
		}

		// Reload here rather than after waitForEvents: the first pass is a
		// redundant load, but it closes the window where a file changes
		// before the watches were registered.
		fw.reload()

		if quit := fw.waitForEvents(closeCh, retryCh); quit {
			return
		}
	}
}

func (fw *fileWatcher) setupWatches() error {
	for _, p := range fw.paths {
		dir := path.Dir(p)
		realDir, err := filepath.EvalSymlinks(dir)
		if err != nil {
			return fmt.Errorf("config: unable to evaluate symlinks for %q: %w", dir, err)
		}

		realPath := path.Join(realDir, path.Base(p))
		fw.absPaths[realPath] = true
		if err = fw.watcher.Add(realPath); err != nil {
			return fmt.Errorf("config: unable to watch %q: %w", realPath, err)
		}
		// watching the directory catches rename-based atomic rewrites
		if err = fw.watcher.Add(realDir); err != nil {
			return fmt.Errorf("config: unable to watch %q: %w", realDir, err)
		}
	}
	return nil
}

func (fw *fileWatcher) waitForEvents(closeCh <-chan struct{}, retryCh <-chan struct{}) bool {
	for {
		select {
		case <-closeCh:
			if err := fw.watcher.Close(); err != nil {
				fw.logger.Warn("error closing watcher", slog.String("err", err.Error()))
			}
			return true
		case event := <-fw.watcher.Events:
			if !fw.absPaths[event.Name] {
				break
			}
			fw.drainEvents()
			return false
		case err := <-fw.watcher.Errors:
			fw.logger.Warn("watcher error", slog.String("err", err.Error()))
		case <-retryCh:
			drainRetries(retryCh)
			return false
		}
	}
}

// drainEvents collapses bursts of events for a single change into one reload.
func (fw *fileWatcher) drainEvents() {
	for {
		select {
		case <-fw.watcher.Events:
		default:
			return
		}
	}
}

func drainRetries(retryCh <-chan struct{}) {
	for {
		select {
		case <-retryCh:
		default:
			return
		}
	}
}
