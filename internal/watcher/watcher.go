// Package watcher observes the catalog database file. The database files
// are produced by an external pipeline and may be replaced on disk while
// the server runs; the watcher logs the change and triggers a stats
// refresh so the cached counts track the new file.
package watcher

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

const debounceInterval = 2 * time.Second

// Refresher is notified after the catalog file settles following a change
type Refresher interface {
	Refresh()
}

// Watcher watches the catalog database file for on-disk changes
type Watcher struct {
	path      string
	refresher Refresher
	fsw       *fsnotify.Watcher
	done      chan struct{}
}

// New creates a watcher for the catalog file at path
func New(path string, refresher Refresher) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: replace-by-rename would drop a
	// watch on the file itself
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	return &Watcher{
		path:      path,
		refresher: refresher,
		fsw:       fsw,
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching in the background
func (w *Watcher) Start() {
	go w.loop()
	log.Debug().Str("path", w.path).Msg("Catalog file watcher started")
}

// Stop ends the watch
func (w *Watcher) Stop() {
	close(w.done)
	if err := w.fsw.Close(); err != nil {
		log.Debug().Err(err).Msg("Error closing file watcher (ignored)")
	}
}

func (w *Watcher) loop() {
	var debounce *time.Timer
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Info().Str("path", w.path).Str("op", event.Op.String()).Msg("Catalog database changed on disk")
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceInterval, w.refresher.Refresh)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("Catalog file watcher error")
		}
	}
}
