package config

import (
	"github.com/fsnotify/fsnotify"

	"github.com/hydepwns/phos-go/internal/logging"
)

// Watcher watches a config directory tree for changes and invokes onChange
// for every write/create/remove/rename event, passing the affected path.
// It only reports changes to its caller; no phos command starts one, so
// new or edited programs/themes are read at the next start.
type Watcher struct {
	fs *fsnotify.Watcher
}

// WatchDir starts watching dir, returning an error if dir cannot be
// watched (for example, because it does not exist). onChange is invoked
// from a background goroutine; callers that mutate shared state from it
// must synchronize themselves.
func WatchDir(dir string, onChange func(path string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{fs: fw}
	go w.loop(onChange)
	return w, nil
}

func (w *Watcher) loop(onChange func(path string)) {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				onChange(event.Name)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logging.Warn().Err(err).Msg("config watcher error")
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
