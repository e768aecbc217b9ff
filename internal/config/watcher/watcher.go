// Package watcher provides file watching for configuration live reload.
//
// The watcher monitors the directory holding the config file, so editors
// that replace the file on save are still seen, and delivers a freshly
// loaded Config once changes settle.
package watcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/fractalterm/internal/config"
)

// ErrWatcherClosed is returned when operating on a closed watcher.
var ErrWatcherClosed = errors.New("watcher closed")

// Reload is the outcome of reloading after a change.
type Reload struct {
	// Config is nil when Err is set.
	Config *config.Config
	Err    error
	Time   time.Time
}

// LoadFunc loads the config at path.
type LoadFunc func(path string) (*config.Config, error)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long changes must settle before reloading.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLoader replaces config.Load.
func WithLoader(fn LoadFunc) Option {
	return func(w *Watcher) {
		if fn != nil {
			w.load = fn
		}
	}
}

// Watcher reloads a config file when it changes.
type Watcher struct {
	mu sync.Mutex

	path     string
	debounce time.Duration
	load     LoadFunc

	fsw     *fsnotify.Watcher
	reloads chan Reload

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// New starts watching path. The file need not exist yet, but its
// directory must.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		debounce: 100 * time.Millisecond,
		load:     config.Load,
		reloads:  make(chan Reload, 1),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	w.fsw = fsw

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Reloads delivers the latest reload. Unread reloads are replaced, not
// queued.
func (w *Watcher) Reloads() <-chan Reload {
	return w.reloads
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.closedWg.Wait()
	close(w.reloads)
	return w.fsw.Close()
}

// processLoop debounces fsnotify events for the config file.
func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.send(Reload{Err: err, Time: time.Now()})

		case <-timer.C:
			cfg, err := w.load(w.path)
			w.send(Reload{Config: cfg, Err: err, Time: time.Now()})
		}
	}
}

// relevant reports whether ev may have changed the config file contents.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename)
}

// send delivers r, replacing any reload the consumer has not read.
func (w *Watcher) send(r Reload) {
	for {
		select {
		case w.reloads <- r:
			return
		default:
		}
		select {
		case <-w.reloads:
		default:
		}
	}
}
