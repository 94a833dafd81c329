// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frame provides a single-threaded animation frame scheduler:
// callbacks requested for the next frame run, in request order, when the
// frame loop calls [Scheduler.Tick], and can be cancelled until then.
package frame

// ID identifies a requested callback. The zero ID is never issued.
type ID uint64

// request is one pending callback; fn is nil once it is cancelled.
type request struct {
	id ID
	fn func()
}

// Scheduler holds the callbacks requested for the next frame.
// It must only be used from the frame goroutine.
type Scheduler struct {
	pending []*request
	byID    map[ID]*request
	lastID  ID
	ticks   int
}

// Request schedules fn to run on the next tick and returns its ID.
// Callbacks requested while a tick is running run on the following tick.
func (s *Scheduler) Request(fn func()) ID {
	if s.byID == nil {
		s.byID = make(map[ID]*request)
	}
	s.lastID++
	rq := &request{id: s.lastID, fn: fn}
	s.pending = append(s.pending, rq)
	s.byID[rq.id] = rq
	return rq.id
}

// Cancel cancels a pending callback. It returns false if the callback
// already ran or was already cancelled.
func (s *Scheduler) Cancel(id ID) bool {
	rq, ok := s.byID[id]
	if !ok {
		return false
	}
	rq.fn = nil
	delete(s.byID, id)
	return true
}

// Tick runs every callback pending at the start of the tick and returns
// how many ran.
func (s *Scheduler) Tick() int {
	s.ticks++
	run := s.pending
	s.pending = nil
	n := 0
	for _, rq := range run {
		if rq.fn == nil {
			continue
		}
		fn := rq.fn
		rq.fn = nil
		delete(s.byID, rq.id)
		fn()
		n++
	}
	return n
}

// Len returns the number of callbacks waiting for the next tick.
func (s *Scheduler) Len() int {
	return len(s.byID)
}

// Ticks returns the number of ticks so far.
func (s *Scheduler) Ticks() int {
	return s.ticks
}
