package background

import (
	"context"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
)

// DefaultSettle is how long the Watcher waits after the last change before
// reloading, so a file written in several steps is read once.
const DefaultSettle = 150 * time.Millisecond

// Watcher reloads a background file whenever it changes on disk.
type Watcher struct {
	Path   string
	Settle time.Duration
	// OnChange receives each successfully decoded image.
	OnChange func(image.Image)
	// OnError receives load and watch errors. When nil they are logged.
	OnError func(error)
}

// Run watches until ctx is done. The directory is watched rather than the
// file so editors that replace files by rename are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	path, err := homedir.Expand(w.Path)
	if err != nil {
		return fmt.Errorf("expand %s: %w", w.Path, err)
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fw.Close()
	if err := fw.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	settle := w.Settle
	if settle <= 0 {
		settle = DefaultSettle
	}
	timer := time.NewTimer(settle)
	if !timer.Stop() {
		<-timer.C
	}
	provider := FileProvider{Path: path}
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(settle)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.report(err)
		case <-timer.C:
			img, err := provider.Load(ctx)
			if err != nil {
				w.report(err)
				continue
			}
			if w.OnChange != nil {
				w.OnChange(img)
			}
		}
	}
}

func (w *Watcher) report(err error) {
	if w.OnError != nil {
		w.OnError(err)
		return
	}
	log.Printf("background watch: %v", err)
}
