package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"pomodoro/internal/core/model"
	"pomodoro/internal/logfields"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher reloads the Duration Table when its file is edited outside the app.
type Watcher struct {
	store    *FileStore
	onChange func(model.Durations)
	debounce time.Duration
	watcher  *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
	done  chan struct{}
}

// NewWatcher prepares a watcher for the settings file of store. onChange runs
// on the watcher goroutine after writes settle for the debounce period.
func NewWatcher(store *FileStore, debounce time.Duration, onChange func(model.Durations)) (*Watcher, error) {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	return &Watcher{
		store:    store,
		onChange: onChange,
		debounce: debounce,
		watcher:  watcher,
		done:     make(chan struct{}),
	}, nil
}

// Start watches the store directory until ctx ends or Stop is called. The
// directory is watched rather than the file so atomic replacements are seen.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(w.store.Dir()); err != nil {
		return fmt.Errorf("watch %s: %w", w.store.Dir(), err)
	}
	slog.Debug("Watching settings file", logfields.Path(w.store.Path(KeySettings)))
	go w.loop(ctx)
	return nil
}

// Stop ends the watch and cancels any pending reload.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	select {
	case <-w.done:
		w.mu.Unlock()
		return nil
	default:
	}
	close(w.done)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	settingsFile := filepath.Base(w.store.Path(KeySettings))
	for {
		select {
		case <-ctx.Done():
			_ = w.Stop()
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != settingsFile {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.schedule(ctx)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Settings watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	select {
	case <-w.done:
		return
	default:
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() { w.reload(ctx) })
}

func (w *Watcher) reload(ctx context.Context) {
	select {
	case <-w.done:
		return
	default:
	}
	durations, err := LoadDurations(ctx, w.store)
	if err != nil {
		slog.Warn("Reloaded settings with defaults", logfields.Store("file"), logfields.Error(err))
	}
	if w.onChange != nil {
		w.onChange(durations)
	}
}
