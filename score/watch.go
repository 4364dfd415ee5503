package score

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"score-follower/debug"
)

// reloadDebounce coalesces the burst of events editors produce on save
const reloadDebounce = 150 * time.Millisecond

// Watch reloads the score at path whenever it changes and hands every
// successfully parsed version to onChange. Parse errors go to onError and
// the previous score stays in use. Blocks until ctx is done.
//
// The parent directory is watched rather than the file, so editors that
// save by rename keep working.
func Watch(ctx context.Context, path string, onChange func(*Score), onError func(error)) error {
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

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(reloadDebounce)
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			debug.Log("score", "watch error: %v", err)
			if onError != nil {
				onError(err)
			}

		case <-fire:
			fire = nil
			s, err := Load(abs)
			if err != nil {
				debug.Log("score", "reload failed: %v", err)
				if onError != nil {
					onError(err)
				}
				continue
			}
			debug.Log("score", "reloaded %s (%d cues)", abs, s.Len())
			onChange(s)
		}
	}
}
