package postpage

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/labstack/echo/v4"
)

// ContentWatcher re-imports a content file whenever it changes and
// invalidates the post cache.
type ContentWatcher struct {
	path   string
	store  *Store
	cache  *PostCache
	logger echo.Logger
	delay  time.Duration

	mu       sync.Mutex
	debounce *time.Timer
	stopped  bool
	inflight sync.WaitGroup
	reloaded func(res ImportResult, err error)
}

// NewContentWatcher returns a watcher for path.
func NewContentWatcher(path string, store *Store, cache *PostCache, logger echo.Logger) *ContentWatcher {
	return &ContentWatcher{
		path:   path,
		store:  store,
		cache:  cache,
		logger: logger,
		delay:  100 * time.Millisecond,
	}
}

// Run watches the directory holding the content file until ctx is done.
// Editors often replace files rather than write them, so the directory is
// watched instead of the file itself.
func (w *ContentWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	defer w.stop()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	target := filepath.Clean(w.path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Errorf("content watcher: %v", err)
		}
	}
}

func (w *ContentWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(w.delay, w.fire)
}

// stop cancels a pending reload and waits for a running one, so the store
// can be closed once Run returns.
func (w *ContentWatcher) stop() {
	w.mu.Lock()
	w.stopped = true
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.mu.Unlock()
	w.inflight.Wait()
}

func (w *ContentWatcher) fire() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.inflight.Add(1)
	w.mu.Unlock()
	defer w.inflight.Done()
	w.reload()
}

func (w *ContentWatcher) reload() {
	res, err := ImportFile(w.store, w.path)
	if err != nil {
		w.logger.Errorf("content watcher: reload %s: %v", w.path, err)
	} else {
		w.cache.Invalidate()
		w.logger.Infof("content watcher: reloaded %d posts from %s, removed %d", res.Saved, w.path, res.Removed)
	}
	if w.reloaded != nil {
		w.reloaded(res, err)
	}
}
