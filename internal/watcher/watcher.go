// Package watcher re-runs a callback when the configuration file
// changes, debouncing the bursts editors produce on save.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"vawter.tech/stopper"
)

// Debounce is how long the watcher waits after the last change before
// firing.
const Debounce = 200 * time.Millisecond

// Watcher invokes onChange after the watched file settles. Callbacks run
// on the debounce timer's goroutine, one at a time.
type Watcher struct {
	path     string
	onChange func()

	mu        sync.Mutex
	debouncer *time.Timer
	sctx      *stopper.Context
}

// New creates a watcher for path. Nothing happens until Start.
func New(path string, onChange func()) *Watcher {
	return &Watcher{path: path, onChange: onChange}
}

// Start begins watching. The parent directory is watched rather than the
// file itself, so rename-replace saves keep delivering events.
func (w *Watcher) Start(ctx context.Context) error {
	abs, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", w.path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	sctx := stopper.WithContext(ctx)
	w.mu.Lock()
	w.sctx = sctx
	w.mu.Unlock()

	sctx.Defer(func() {
		fsw.Close()
	})
	sctx.Go(func(sctx *stopper.Context) error {
		for {
			select {
			case <-sctx.Stopping():
				return nil
			case ev, ok := <-fsw.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				w.bump()
			case _, ok := <-fsw.Errors:
				if !ok {
					return nil
				}
			}
		}
	})
	return nil
}

// bump restarts the debounce window.
func (w *Watcher) bump() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debouncer != nil {
		w.debouncer.Stop()
	}
	w.debouncer = time.AfterFunc(Debounce, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	sctx := w.sctx
	w.mu.Unlock()
	if sctx != nil && sctx.IsStopping() {
		return
	}
	w.onChange()
}

// Stop halts the watcher and waits for its goroutine to drain.
func (w *Watcher) Stop() {
	w.mu.Lock()
	sctx := w.sctx
	debouncer := w.debouncer
	w.mu.Unlock()
	if debouncer != nil {
		debouncer.Stop()
	}
	if sctx == nil {
		return
	}
	sctx.Stop(100 * time.Millisecond)
	_ = sctx.Wait()
}
