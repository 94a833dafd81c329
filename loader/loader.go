// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package loader turns a source, a local path or a URL, into a molecule
// without blocking the frame loop: sources are fetched, decompressed and
// parsed on their own goroutine, and the results are handed back when the
// frame loop polls for them. Only the result of the latest request is
// ever applied.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"cogentcore.org/molview/base/errors"
	"cogentcore.org/molview/molecule"
	"cogentcore.org/molview/options"
	"golang.org/x/sync/singleflight"
)

// DefaultTimeout bounds a whole load.
const DefaultTimeout = 30 * time.Second

// State is what the view sees of the current source. While a load is in
// flight Scene is nil and Loading is true; a failed load has a nil Scene
// and a non-empty Error.
type State struct {
	Scene   *molecule.Molecule
	Loading bool
	Error   string
}

type result struct {
	gen    uint64
	source string
	mol    *molecule.Molecule
	err    error
}

// Loader loads the molecule of the current source. Its methods other
// than [Loader.LoadNow] must only be called from the frame goroutine.
type Loader struct {

	// Fetcher gets source bytes; nil uses [Sources] with default settings.
	Fetcher Fetcher

	// Timeout bounds each load; 0 uses [DefaultTimeout].
	Timeout time.Duration

	// Watch reloads a local source when its file is written.
	Watch bool

	source    string
	parse     options.Parse
	requested bool
	gen       uint64
	state     State

	results chan result
	changed chan string
	watcher *watcher
	group   singleflight.Group

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	wg     sync.WaitGroup
	closed bool
}

// New returns a new loader fetching with f (nil for default [Sources]).
func New(f Fetcher) *Loader {
	if f == nil {
		f = &Sources{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		Fetcher: f,
		results: make(chan result, 8),
		changed: make(chan string, 1),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
}

// Load requests the molecule of source parsed with po. It does nothing
// when neither has changed since the last call, so it can be called on
// every frame. An empty source clears the state.
func (l *Loader) Load(source string, po options.Parse) {
	if l.closed || (l.requested && source == l.source && po == l.parse) {
		return
	}
	l.source, l.parse, l.requested = source, po, true
	l.start(false)
}

// Reload loads the current source again, fetching it anew even if a
// fetch of it is still in flight.
func (l *Loader) Reload() {
	if l.closed || !l.requested {
		return
	}
	l.start(true)
}

// start loads the current source under a new generation. A fresh start
// does not join a fetch already in flight, whose bytes may predate a
// change of the source.
func (l *Loader) start(fresh bool) {
	l.gen++
	gen, source, po := l.gen, l.source, l.parse
	if fresh {
		l.group.Forget(source)
	}
	l.watch(source)
	if source == "" {
		l.state = State{}
		return
	}
	l.state = State{Loading: true}
	slog.Info("loading", "source", source, "model", po.Model)
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		mol, err := l.LoadNow(l.ctx, source, po)
		select {
		case l.results <- result{gen: gen, source: source, mol: mol, err: err}:
		case <-l.done:
		}
	}()
}

// Poll applies any finished loads and file changes, and returns whether
// the state changed. Results of superseded requests are discarded.
func (l *Loader) Poll() bool {
	changed := false
	for {
		select {
		case r := <-l.results:
			if r.gen != l.gen {
				slog.Debug("loader: discarded stale result", "source", r.source)
				continue
			}
			if r.err != nil {
				slog.Error("load failed", "source", r.source, "err", r.err)
				l.state = State{Error: r.err.Error()}
			} else {
				slog.Info("loaded", "source", r.source, "atoms", len(r.mol.Atoms), "bonds", len(r.mol.Bonds))
				l.state = State{Scene: r.mol}
			}
			changed = true
		case path := <-l.changed:
			if l.watcher == nil || l.watcher.path != path {
				continue
			}
			slog.Info("source changed, reloading", "source", l.source)
			l.start(true)
			changed = true
		default:
			return changed
		}
	}
}

// State returns the current state.
func (l *Loader) State() State {
	return l.state
}

// LoadNow fetches, decompresses and parses source, blocking until done.
// Concurrent fetches of the same source share one request.
func (l *Loader) LoadNow(ctx context.Context, source string, po options.Parse) (*molecule.Molecule, error) {
	timeout := l.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	v, err, _ := l.group.Do(source, func() (any, error) {
		return l.Fetcher.Fetch(ctx, source)
	})
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return nil, err
		}
		return nil, fmt.Errorf("loading %s: %w", source, err)
	}
	data, err := Decompress(v.([]byte))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", source, err)
	}
	return molecule.ParsePDB(source, data, po)
}

// watch makes the watcher follow source, if watching is on
// and the source is a local file.
func (l *Loader) watch(source string) {
	if !l.Watch || source == "" || IsURL(source) {
		l.unwatch()
		return
	}
	path, err := localPath(source)
	if err == nil && l.watcher != nil && l.watcher.path == path {
		return
	}
	l.unwatch()
	if err == nil {
		l.watcher, err = watchFile(path, l.changed)
	}
	if err != nil {
		slog.Warn("loader: cannot watch source", "source", source, "err", err)
	}
}

func (l *Loader) unwatch() {
	if l.watcher != nil {
		errors.Log(l.watcher.Close())
		l.watcher = nil
	}
}

// Close stops watching, cancels loads in flight and waits for them.
func (l *Loader) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	close(l.done)
	l.cancel()
	l.unwatch()
	l.wg.Wait()
	return nil
}
