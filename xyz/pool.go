// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"log/slog"
	"sync/atomic"
)

// Pool accounts for the GPU-side resources held by meshes and materials.
// Every [Mesh] and [Material] is allocated from a pool and must be released
// back to it exactly once; the counters make leaks and double releases
// observable.
type Pool struct {
	allocs   atomic.Int64
	releases atomic.Int64
	doubles  atomic.Int64
}

// DefaultPool is used when a nil pool is given.
var DefaultPool = &Pool{}

func poolOrDefault(p *Pool) *Pool {
	if p == nil {
		return DefaultPool
	}
	return p
}

func (p *Pool) alloc() {
	p.allocs.Add(1)
}

func (p *Pool) release(what, name string, released *bool) {
	if *released {
		p.doubles.Add(1)
		slog.Error("xyz: resource released twice", "kind", what, "name", name)
		return
	}
	*released = true
	p.releases.Add(1)
}

// Live returns the number of resources allocated and not yet released.
func (p *Pool) Live() int {
	return int(p.allocs.Load() - p.releases.Load())
}

// Allocated returns the total number of resources ever allocated.
func (p *Pool) Allocated() int {
	return int(p.allocs.Load())
}

// Released returns the total number of resources released.
func (p *Pool) Released() int {
	return int(p.releases.Load())
}

// DoubleReleases returns the number of release calls on
// resources that were already released.
func (p *Pool) DoubleReleases() int {
	return int(p.doubles.Load())
}
