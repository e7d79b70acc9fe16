package specfile

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spiceai/specs/pkg/loggers"
	"go.uber.org/zap"
)

// Watcher reports changes to a fixed set of spec files. The parent
// directories are watched so files replaced by editors are still seen.
type Watcher struct {
	watcher *fsnotify.Watcher
	paths   map[string]bool
}

func NewWatcher(paths []string) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error starting spec file watcher: %w", err)
	}

	w := &Watcher{
		watcher: watcher,
		paths:   make(map[string]bool),
	}

	dirs := make(map[string]bool)
	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		w.paths[absPath] = true

		dir := filepath.Dir(absPath)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("error watching '%s': %w", dir, err)
		}
		dirs[dir] = true
	}

	return w, nil
}

// Calls onChange with the path of every watched file that is created or
// written, until ctx is done
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			path, err := filepath.Abs(event.Name)
			if err != nil || !w.paths[path] {
				continue
			}
			zaplog.Debug("spec file changed", loggers.Path(path), zap.String("op", event.Op.String()))
			onChange(path)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			zaplog.Warn("spec file watcher error", zap.Error(err))
		}
	}
}

// Reloads the spec files at paths whenever one of them changes. Files that
// fail to load are logged and onReload is not called.
func WatchAll(ctx context.Context, paths []string, separator string, onReload func(set *SpecSet)) error {
	w, err := NewWatcher(paths)
	if err != nil {
		return err
	}

	return w.Run(ctx, func(path string) {
		set, err := LoadAll(ctx, paths, separator)
		if err != nil {
			zaplog.Error("failed to reload spec files", loggers.Path(path), zap.Error(err))
			return
		}
		onReload(set)
	})
}
