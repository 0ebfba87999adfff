// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/watch.go
// Summary: Config hot-reload (§6 "Hot-reload replaces the configuration
// atomically at a quiescent point between commands").

package config

import (
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher delivers a freshly loaded Config each time the file at path
// changes on disk. It watches the file's directory rather than the file
// itself so that editors which write via a temp-file-then-rename are
// still observed.
type Watcher struct {
	path    string
	fw      *fsnotify.Watcher
	Updates chan *Config
}

// Watch starts watching path's directory for changes and returns a
// Watcher whose Updates channel receives a newly loaded Config after each
// write or rename that targets path. Call Close when done.
func Watch(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{path: path, fw: fw, Updates: make(chan *Config, 1)}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	abs, err := filepath.Abs(w.path)
	if err != nil {
		abs = w.path
	}
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			evAbs, err := filepath.Abs(ev.Name)
			if err != nil {
				evAbs = ev.Name
			}
			if evAbs != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				log.Printf("config: reload %s: %v", w.path, err)
				continue
			}
			select {
			case w.Updates <- cfg:
			default:
				// Drop the stale pending reload; the newest one wins.
				select {
				case <-w.Updates:
				default:
				}
				w.Updates <- cfg
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.Printf("config: watch error: %v", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fw.Close()
}
