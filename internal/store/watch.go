package store

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultWatchDebounce = 150 * time.Millisecond

// Watcher reports changes to a data file made by other processes. It watches
// the parent directory so atomic replace-by-rename is seen too.
type Watcher struct {
	fw       *fsnotify.Watcher
	path     string
	names    map[string]bool
	debounce time.Duration
	log      *zap.Logger
}

func NewWatcher(path string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}
	base := filepath.Base(abs)
	return &Watcher{
		fw:   fw,
		path: abs,
		// SQLite in WAL mode writes to the -wal sidecar first.
		names:    map[string]bool{base: true, base + "-wal": true},
		debounce: defaultWatchDebounce,
		log:      log,
	}, nil
}

// Run calls fn once per burst of changes until ctx is done, then closes the
// watcher. fn runs on the Run goroutine.
func (w *Watcher) Run(ctx context.Context, fn func()) error {
	defer w.fw.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !w.names[filepath.Base(ev.Name)] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("data file watch error", zap.String("path", w.path), zap.Error(err))
		case <-fire:
			fire = nil
			w.log.Debug("data file changed", zap.String("path", w.path))
			fn()
		}
	}
}
