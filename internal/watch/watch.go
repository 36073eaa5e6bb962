// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch re-runs a compose cycle whenever a component changes.
package watch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce batches the burst of events editors emit on save into one
// rebuild.
const debounce = 300 * time.Millisecond

// Run watches the components folder recursively and calls rebuild after
// each (debounced) change until ctx is cancelled. rebuild errors are
// reported to out and do not stop the watch; a broken intermediate state
// is expected while the user edits.
func Run(ctx context.Context, componentsFolder string, rebuild func() error, out io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	if err := addRecursive(watcher, componentsFolder); err != nil {
		return err
	}

	fmt.Fprintf(out, "watching %s for changes (interrupt to stop)\n", componentsFolder)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New subdirectories join the watch so components created
			// under them trigger rebuilds too.
			if event.Op.Has(fsnotify.Create) {
				_ = addRecursive(watcher, event.Name)
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			timerC = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(out, "watch error: %v\n", err)

		case <-timerC:
			timerC = nil
			if err := rebuild(); err != nil {
				fmt.Fprintf(out, "rebuild failed: %v\n", err)
			}
		}
	}
}

// addRecursive registers path and every directory below it. Non-directory
// paths are ignored, which lets the caller feed raw event names through.
func addRecursive(watcher *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := watcher.Add(p); err != nil {
				return fmt.Errorf("watching %s: %w", p, err)
			}
		}
		return nil
	})
}
