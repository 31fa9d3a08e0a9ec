package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
)

const defaultDebounce = 100 * time.Millisecond

// debouncer runs the last triggered function once no trigger has arrived
// for interval. After stop returns no function is running or will run.
type debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	running sync.WaitGroup
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval}
}

func (d *debouncer) trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		if d.stopped {
			d.mu.Unlock()
			return
		}
		d.running.Add(1)
		d.mu.Unlock()

		defer d.running.Done()
		fn()
	})
}

// stop cancels any pending call and waits for one already in progress.
func (d *debouncer) stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()

	d.running.Wait()
}

// watchFile calls onChange after path is written, created, or renamed over,
// until ctx is done. It watches the parent directory. Errors from onChange
// are logged and watching continues.
func watchFile(ctx context.Context, path string, interval time.Duration, logger hclog.Logger, onChange func() error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	d := newDebouncer(interval)
	defer d.stop()

	var runMu sync.Mutex
	run := func() {
		runMu.Lock()
		defer runMu.Unlock()
		if err := onChange(); err != nil {
			logger.Error("resolve failed", "error", err)
		}
	}

	logger.Info("watching", "path", path, "debounce", interval)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != abs || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			logger.Debug("file event", "path", event.Name, "op", event.Op.String())
			d.trigger(run)

		case err, ok := <-w.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.Error("file watcher error", "error", err)
		}
	}
}
