package settings

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadSettle = 100 * time.Millisecond

// Watch reloads the settings file whenever it is written or replaced and
// passes the result to onChange. It watches the parent directory so editors
// that save via rename are seen. Watch returns once the watcher is running;
// the goroutine exits when ctx is done.
func (s *Store) Watch(ctx context.Context, onChange func(Settings)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch settings dir: %w", err)
	}

	target := filepath.Clean(s.path)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}

				// Let the writer finish before reading.
				time.Sleep(reloadSettle)

				// Renamed away or deleted: Load would recreate defaults.
				if _, err := os.Stat(s.path); err != nil {
					continue
				}

				cfg, _, err := s.Load()
				if err != nil {
					log.Printf("settings reload: %v", err)
					continue
				}
				onChange(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("settings watcher: %v", err)
			}
		}
	}()
	return nil
}
