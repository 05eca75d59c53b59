package live

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vango-dev/marks/pkg/dataset"
)

// watchDebounce collapses the burst of events an editor save produces.
const watchDebounce = 100 * time.Millisecond

// watch reloads the dataset at path whenever it changes. The parent
// directory is watched so rename-on-save editors are seen too.
func (s *Server) watch(ctx context.Context, path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer.Reset(watchDebounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("dataset watcher error", "error", err)
		case <-timer.C:
			s.reloadFile(ctx, path)
		}
	}
}

// reloadFile loads path and swaps it in. Decode failures are shown in the
// preview and the current dataset is kept.
func (s *Server) reloadFile(ctx context.Context, path string) {
	ds, err := dataset.Load(path)
	if err != nil {
		s.logger.Warn("dataset reload failed", "path", path, "error", err)
		s.hub.Broadcast(Message{Type: MessageError, Frame: s.Frame(), Error: err.Error()})
		return
	}
	s.logger.Info("dataset reloaded", "path", path, "frames", ds.Len())
	s.Reload(ctx, ds)
}
