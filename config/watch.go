package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow is how long the file must stay quiet before it is re-read.
const debounceWindow = 100 * time.Millisecond

// Watcher re-reads a settings file whenever it changes on disk and publishes the result.
// The containing directory is watched so atomic rename-on-save editors are picked up.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher

	Changes chan Config
	Errors  chan error

	closeCh chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

// NewWatcher starts watching the settings file at path.
//
// Parameters:
//   - path: the settings file to watch
//
// Returns:
//   - *Watcher: the running watcher; call Close to stop it
//   - error: error if the watch cannot be established
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	watcher := &Watcher{
		path:    abs,
		watcher: w,
		Changes: make(chan Config, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher and closes the Changes and Errors channels.
// Safe to call multiple times.
//
// Returns:
//   - error: error from the underlying fsnotify watcher, if any
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.doneCh
		close(w.Changes)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.doneCh)

	// Reload once the file has been quiet for debounceWindow, so a save that
	// lands as several writes is read only after the last one.
	timer := time.NewTimer(debounceWindow)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				timer.Reset(debounceWindow)
			}
		case <-timer.C:
			cfg, err := Load(w.path)
			if err != nil {
				w.publishError(err)
				continue
			}
			w.publish(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.publishError(err)
		case <-w.closeCh:
			return
		}
	}
}

// relevant reports whether an fsnotify event touches the watched file with new content.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create) != 0
}

// publish delivers the newest config, replacing one the consumer has not read yet.
func (w *Watcher) publish(cfg Config) {
	for {
		select {
		case w.Changes <- cfg:
			return
		case <-w.closeCh:
			return
		default:
			select {
			case <-w.Changes:
			default:
			}
		}
	}
}

// publishError delivers an error without blocking; older unread errors are dropped.
func (w *Watcher) publishError(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
