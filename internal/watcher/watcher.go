// Package watcher re-decodes notebooks when they change on disk.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/stateful/webnb/internal/storage"
	"github.com/stateful/webnb/pkg/document/editor"
)

const defaultDebounce = 100 * time.Millisecond

// Result is reported for every notebook that changed. Exactly one of
// Notebook and Err is set unless Removed is true.
type Result struct {
	Path     string
	Notebook *editor.Notebook
	Err      error
	Removed  bool
}

type Callback func(Result)

type Option func(*Watcher)

func WithLogger(logger *zap.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithDebounce sets how long the watcher waits for a burst of events
// to settle before decoding.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

type Watcher struct {
	store    *storage.FS
	matcher  *storage.Matcher
	logger   *zap.Logger
	debounce time.Duration
}

func New(store *storage.FS, matcher *storage.Matcher, opts ...Option) *Watcher {
	w := &Watcher{
		store:    store,
		matcher:  matcher,
		debounce: defaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = zap.NewNop()
	}
	return w
}

// Run watches the storage root until ctx is cancelled and calls cb
// for every changed notebook. cb is never called concurrently.
func (w *Watcher) Run(ctx context.Context, cb Callback) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create watcher")
	}
	defer fw.Close()

	if err := w.addDirs(fw, w.store.Root()); err != nil {
		return err
	}

	w.logger.Info("watcher started", zap.String("root", w.store.Root()))

	pending := make(map[string]fsnotify.Op)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped")
			return nil

		case <-timer.C:
			w.flush(pending, cb)
			clear(pending)

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}

			if ev.Has(fsnotify.Create) {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if err := w.addDirs(fw, ev.Name); err != nil {
						w.logger.Warn("failed to watch new directory", zap.String("path", ev.Name), zap.Error(err))
					}
					continue
				}
			}

			rel, err := filepath.Rel(w.store.Root(), ev.Name)
			if err != nil || !w.matcher.Match(rel) {
				continue
			}

			pending[rel] |= ev.Op
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) flush(pending map[string]fsnotify.Op, cb Callback) {
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, rel := range paths {
		data, err := w.store.Read(rel)
		if errors.Is(err, fs.ErrNotExist) {
			w.logger.Debug("notebook removed", zap.String("path", rel))
			cb(Result{Path: rel, Removed: true})
			continue
		}
		if err != nil {
			cb(Result{Path: rel, Err: err})
			continue
		}

		notebook, err := editor.Deserialize(data, editor.Options{Logger: w.logger})
		if err != nil {
			w.logger.Debug("notebook invalid", zap.String("path", rel), zap.Error(err))
			cb(Result{Path: rel, Err: err})
			continue
		}

		w.logger.Debug("notebook decoded", zap.String("path", rel), zap.Int("cells", len(notebook.Cells)))
		cb(Result{Path: rel, Notebook: notebook})
	}
}

// addDirs adds root and all its subdirectories that are not ignored.
func (w *Watcher) addDirs(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(w.store.Root(), path)
		if err != nil {
			return err
		}
		if w.matcher.SkipDir(rel) {
			return filepath.SkipDir
		}
		return errors.Wrapf(fw.Add(path), "failed to watch %s", rel)
	})
}
