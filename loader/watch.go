// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watcher reports writes to one local file. It watches the directory
// rather than the file, so that editors that replace the file on save
// are still seen.
type watcher struct {
	fw   *fsnotify.Watcher
	path string
	done chan struct{}
}

// watchFile starts watching the absolute path, sending it on changed
// whenever the file is written. Sends never block: a pending change
// absorbs further ones.
func watchFile(abs string, changed chan<- string) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}
	w := &watcher{fw: fw, path: abs, done: make(chan struct{})}
	go w.run(changed)
	return w, nil
}

func (w *watcher) run(changed chan<- string) {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				select {
				case changed <- w.path:
				default:
				}
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			slog.Warn("loader: watch error", "path", w.path, "err", err)
		}
	}
}

func (w *watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}
