package filewatch

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// OnModify calls handler each time when the file is modified
// (= written, created, removed, renamed or changed its mode).
//
// The directory of the file is watched, so the file may not exist yet,
// and may be replaced by renaming another file onto it.
//
// # Args
//
// - ctx: context.Context. Watching continues until it is done.
//
// - path: the file to be watched.
//
// - handler: called with the event, on the goroutine of OnModify.
//
// # Returns
//
// - error: error caused when it fails to start watching the file or while watching.
// It returns nil when ctx is done.
func OnModify(ctx context.Context, path string, handler func(fsnotify.Event)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			handler(event)
		}
	}
}
